// Package feed pulls corporate news from configured RSS/Atom endpoints and
// normalizes entries into the immutable items the pipeline consumes.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/httputil"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// maxFeedBody bounds a single feed document read.
const maxFeedBody = 8 << 20

// Source fetches and normalizes all configured feeds. One unreachable feed
// does not fail the cycle; its entries are simply absent.
type Source struct {
	cfg    config.FeedConfig
	http   *httputil.Client
	logger *logger.Logger
}

func NewSource(cfg config.FeedConfig, log *logger.Logger) *Source {
	return &Source{
		cfg:    cfg,
		http:   httputil.NewWithTimeout(log, 15*time.Second),
		logger: log.WithField("module", "feed"),
	}
}

// Fetch pulls every configured feed and returns the normalized union.
func (s *Source) Fetch(ctx context.Context) ([]contracts.RawItem, error) {
	var items []contracts.RawItem
	for _, url := range s.cfg.URLs {
		entries, err := s.fetchOne(ctx, url)
		if err != nil {
			s.logger.WithError(err).WithField("feed", url).Warn("Feed fetch failed")
			continue
		}
		items = append(items, entries...)
	}

	s.logger.WithFields(map[string]interface{}{
		"feeds": len(s.cfg.URLs),
		"items": len(items),
	}).Debug("Fetched feeds")
	return items, nil
}

func (s *Source) fetchOne(ctx context.Context, url string) ([]contracts.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	entries, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]contracts.RawItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, Normalize(e))
	}
	return items, nil
}

// rssDocument covers RSS 2.0; atomDocument covers Atom. Both decode
// leniently: unknown elements are ignored.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string     `xml:"title"`
		Items []rssEntry `xml:"item"`
	} `xml:"channel"`
}

type rssEntry struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Source      string `xml:"source"`
}

type atomDocument struct {
	XMLName xml.Name `xml:"feed"`
	Title   string   `xml:"title"`
	Entries []struct {
		Title   string `xml:"title"`
		ID      string `xml:"id"`
		Updated string `xml:"updated"`
		Summary string `xml:"summary"`
		Content string `xml:"content"`
		Link    struct {
			Href string `xml:"href,attr"`
		} `xml:"link"`
	} `xml:"entry"`
}

// Entry is one raw feed entry before normalization.
type Entry struct {
	Title       string
	Link        string
	Description string
	GUID        string
	Source      string
	Published   time.Time
}

func parseFeed(body []byte) ([]Entry, error) {
	var rss rssDocument
	if err := xml.Unmarshal(body, &rss); err == nil && rss.XMLName.Local == "rss" {
		entries := make([]Entry, 0, len(rss.Channel.Items))
		for _, item := range rss.Channel.Items {
			entries = append(entries, Entry{
				Title:       item.Title,
				Link:        item.Link,
				Description: item.Description,
				GUID:        item.GUID,
				Source:      firstNonEmpty(item.Source, rss.Channel.Title),
				Published:   parseFeedTime(item.PubDate),
			})
		}
		return entries, nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(body, &atom); err != nil {
		return nil, fmt.Errorf("neither rss nor atom: %w", err)
	}

	entries := make([]Entry, 0, len(atom.Entries))
	for _, e := range atom.Entries {
		entries = append(entries, Entry{
			Title:       e.Title,
			Link:        e.Link.Href,
			Description: firstNonEmpty(e.Summary, e.Content),
			GUID:        e.ID,
			Source:      atom.Title,
			Published:   parseFeedTime(e.Updated),
		})
	}
	return entries, nil
}

// parseFeedTime tries the formats feeds use in the wild. Zero time means
// unparsable; the normalizer substitutes the fetch time.
func parseFeedTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
