package browse

import (
	"bytes"
	"context"
	"net/http"
	nurl "net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/utils/request"
)

// Link is one followable control on the current page, as shown to the
// model when grounding an instruction.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Session is the single stateful browsing context a sweep runs against.
// It is an explicitly passed handle: acquired with Open before the run,
// released with Close after, never a package-level singleton. All
// positioning and extraction during one run shares this one session, so
// callers must not navigate it concurrently.
type Session struct {
	client      *http.Client
	userAgent   string
	maxSnapshot int

	opened bool
	url    string
	doc    *goquery.Document
}

// NewSession builds an unopened session.
func NewSession(opts ...Option) *Session {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Session{
		client:      options.httpClient,
		userAgent:   options.userAgent,
		maxSnapshot: options.maxSnapshot,
	}
}

// Open readies the session for navigation.
func (s *Session) Open(_ context.Context) error {
	if s.opened {
		return errors.New("session already open")
	}
	s.opened = true
	return nil
}

// Close releases the session. Using it afterwards is an error.
func (s *Session) Close() error {
	if !s.opened {
		return errors.New("session not open")
	}
	s.opened = false
	s.doc = nil
	s.url = ""
	return nil
}

// Navigate loads the target page into the session.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if !s.opened {
		return errors.New("session not open")
	}
	body, err := request.Fetch(ctx, s.client, url, "User-Agent", s.userAgent)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "parse %s", url)
	}
	s.url = url
	s.doc = doc
	return nil
}

// URL reports the page the session currently sits on.
func (s *Session) URL() string {
	return s.url
}

var blankRuns = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)

// Snapshot renders the current page as plain text for the model. Pages
// whose full text exceeds the snapshot budget go through readability to
// isolate the main content first; if that still overflows, the text is
// truncated.
func (s *Session) Snapshot() string {
	if s.doc == nil {
		return ""
	}
	text := condense(s.doc.Find("body").Text())
	if len(text) <= s.maxSnapshot {
		return text
	}
	if html, err := s.doc.Html(); err == nil {
		pageURL, _ := nurl.Parse(s.url)
		if article, err := readability.FromReader(strings.NewReader(html), pageURL); err == nil {
			if main := condense(article.TextContent); main != "" && len(main) < len(text) {
				text = main
			}
		}
	}
	if len(text) > s.maxSnapshot {
		cut := s.maxSnapshot
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// Links lists the followable anchors on the current page, hrefs resolved
// against the page URL.
func (s *Session) Links() []Link {
	if s.doc == nil {
		return nil
	}
	links := make([]Link, 0)
	s.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		links = append(links, Link{
			Text: condense(sel.Text()),
			Href: request.ResolveURL(s.url, href),
		})
	})
	return links
}

func condense(text string) string {
	lines := blankRuns.Split(strings.TrimSpace(text), -1)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
