package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-research/newswatch/internal/contracts"
)

const wireURL = "https://www.prnewswire.com/news-releases/acme-123.html"

func TestClassify_DefinitiveAcquisition(t *testing.T) {
	text := "Acme Corp announces definitive merger agreement to be acquired for $5.00 per share in cash"

	result := Classify(text, wireURL, 0)

	assert.Equal(t, contracts.CategoryAcquisitionBuyout, result.Category)
	assert.Equal(t, 4.0, result.Weight)
	assert.True(t, result.OnWire)
	assert.Empty(t, result.Suppressed)
}

func TestClassify_AnalystNoteSuppressed(t *testing.T) {
	text := "Maxim Group initiates coverage on Acme Corp with a Buy rating and $10 price target"

	result := Classify(text, "https://news.example.com/analyst", 0)

	assert.Equal(t, contracts.CategoryOther, result.Category)
	assert.Equal(t, "analyst-note", result.Suppressed)
	assert.Zero(t, result.Weight)
}

func TestClassify_RetractionSuppressed(t *testing.T) {
	result := Classify("Acme Corp retracts its previous announcement regarding FDA approval", wireURL, 0)

	assert.Equal(t, contracts.CategoryOther, result.Category)
	assert.Equal(t, "retraction", result.Suppressed)
	assert.Zero(t, result.Weight)
}

func TestClassify_EmptyInput(t *testing.T) {
	result := Classify("", "", 0)

	assert.Equal(t, contracts.CategoryOther, result.Category)
	assert.Zero(t, result.Weight)
	assert.False(t, result.OnWire)
}

func TestClassify_OffWireWeightSubstitution(t *testing.T) {
	text := "Acme Corp receives FDA approval for its lead device"

	onWire := Classify(text, wireURL, 0)
	offWire := Classify(text, "https://blog.example.com/post", 0)

	assert.Equal(t, contracts.CategoryFDAApproval, onWire.Category)
	assert.Equal(t, 4.5, onWire.Weight)

	assert.Equal(t, contracts.CategoryFDAApproval, offWire.Category)
	assert.Equal(t, 2.5, offWire.Weight)
	assert.False(t, offWire.OnWire)
}

func TestClassify_WireRequiredRule(t *testing.T) {
	text := "Acme Corp approved for listing on the Nasdaq"

	onWire := Classify(text, wireURL, 0)
	assert.Equal(t, contracts.CategoryUplisting, onWire.Category)

	offWire := Classify(text, "https://stockblog.example.com/x", 0)
	assert.Equal(t, contracts.CategoryOther, offWire.Category)
	assert.Zero(t, offWire.Weight)
}

func TestClassify_SynergyBonus(t *testing.T) {
	text := "Acme's phase 3 trial met its primary endpoint and the company received FDA approval"

	result := Classify(text, wireURL, 0)

	// Both sides fire; the dominant one carries the pair bonus.
	assert.Equal(t, contracts.CategoryFDAApproval, result.Category)
	assert.Greater(t, result.Weight, 4.5)
}

func TestClassify_MaterialityRatioBoost(t *testing.T) {
	text := "Acme Corp wins $12 million supply contract from Initech Inc"

	smallCap := Classify(text, wireURL, 40)
	largeCap := Classify(text, wireURL, 5000)

	assert.Equal(t, contracts.CategoryMajorContract, smallCap.Category)
	assert.Equal(t, 12.0, smallCap.AmountM)
	assert.InDelta(t, 0.30, smallCap.Ratio, 1e-9)
	assert.Greater(t, smallCap.Weight, largeCap.Weight)
}

func TestClassify_StrongCatalystFloor(t *testing.T) {
	text := "Acme Corp partners with Initech to explore future opportunities"

	// Off-wire partnership fires at reduced weight below the floor.
	offWire := Classify(text, "https://blog.example.com/x", 0)
	assert.Equal(t, contracts.CategoryOther, offWire.Category)
	assert.Zero(t, offWire.Weight)

	onWire := Classify(text, wireURL, 0)
	assert.Equal(t, contracts.CategoryStrategicPartnership, onWire.Category)
}

func TestClassify_AwardSuppressionVetoedByContract(t *testing.T) {
	pureAward := Classify("Acme Corp named one of the best places to work", wireURL, 0)
	assert.Equal(t, "award-only", pureAward.Suppressed)
	assert.Equal(t, contracts.CategoryOther, pureAward.Category)

	awardWithContract := Classify("Acme Corp wins Supplier of the Year award under new $8 million contract", wireURL, 0)
	assert.Empty(t, awardWithContract.Suppressed)
	assert.Equal(t, contracts.CategoryMajorContract, awardWithContract.Category)
}

func TestClassify_DilutiveFinancing(t *testing.T) {
	plain := Classify("Acme Corp announces pricing of public offering of common stock", wireURL, 0)
	assert.Equal(t, contracts.CategoryOther, plain.Category)
	assert.Equal(t, "plain-dilutive", plain.Suppressed)
	assert.Equal(t, 0.25, plain.Weight)

	qualified := Classify("Acme Corp announces private placement priced at a premium with a strategic investment from an institutional investor", wireURL, 0)
	assert.Equal(t, contracts.CategoryDilutiveFinancing, qualified.Category)
}

func TestClassify_TieBreaksByRegistrationOrder(t *testing.T) {
	// Tender offer and regulatory clearance both fire at 3.5.
	text := "Acme Corp launches tender offer following regulatory clearance"

	result := Classify(text, wireURL, 0)

	assert.Equal(t, contracts.CategoryTenderOffer, result.Category)
	assert.Equal(t, 3.5, result.Weight)
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Acme Corp receives FDA approval after its trial met its primary endpoint with a $40 million grant"

	first := Classify(text, wireURL, 75)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify(text, wireURL, 75))
	}
}
