package classify

import (
	"net/url"
	"regexp"
	"strings"
)

// wireDomains is the allow-list of press-wire hosts. A source URL whose host
// matches (or is a subdomain of) one of these is treated as on-wire.
var wireDomains = []string{
	"prnewswire.com",
	"globenewswire.com",
	"businesswire.com",
	"accesswire.com",
	"newsfilecorp.com",
	"newswire.ca",
	"einpresswire.com",
}

// irHostPrefixes mark issuer investor-relations domains, which count as
// on-wire provenance the same as a recognized press wire.
var irHostPrefixes = []string{
	"ir.",
	"investors.",
	"investor.",
}

// wireTokenRe matches in-text wire-service attribution lines, e.g.
// "NEW YORK, June 3, 2025 /PRNewswire/ --".
var wireTokenRe = regexp.MustCompile(`(?i)(/PRNewswire/|GLOBE NEWSWIRE|BUSINESS ?WIRE|/?ACCESSWIRE/?|Newsfile Corp|CNW Group)`)

// IsOnWire determines provenance: whether the item was distributed via a
// recognized financial press wire or an issuer IR domain, either by source
// URL host or by an in-text attribution token.
func IsOnWire(sourceURL, text string) bool {
	if hostOnWire(sourceURL) {
		return true
	}
	return wireTokenRe.MatchString(text)
}

// HasWireToken reports an in-text wire attribution independent of the URL.
func HasWireToken(text string) bool {
	return wireTokenRe.MatchString(text)
}

// HostOnWire reports whether the source URL alone confirms provenance.
func HostOnWire(sourceURL string) bool {
	return hostOnWire(sourceURL)
}

func hostOnWire(sourceURL string) bool {
	if sourceURL == "" {
		return false
	}

	u, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, domain := range wireDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	for _, prefix := range irHostPrefixes {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}

	return false
}
