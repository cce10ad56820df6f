package metadata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Literal defaults guaranteeing non-empty title and description.
const (
	DefaultTitle       = "Sin título"
	DefaultDescription = "Sin descripción"
)

// step is one candidate extractor in a field's fallback chain.
type step struct {
	name    string
	extract func(doc *goquery.Document, base *url.URL) string
}

// The chains are ordered by authority: Open Graph tags first, generic HTML
// elements second. The first step yielding a non-empty trimmed value wins.
var (
	titleChain = []step{
		{name: "og:title", extract: metaProperty("og:title")},
		{name: "title element", extract: documentTitle},
	}

	descriptionChain = []step{
		{name: "og:description", extract: metaProperty("og:description")},
		{name: "meta description", extract: metaName("description")},
	}

	imageChain = []step{
		{name: "og:image", extract: metaProperty("og:image")},
		{name: "first img", extract: firstImage},
	}
)

// Resolver fetches one HTML document and extracts a best-effort
// (title, description, image) triple. It holds no cross-call state and is
// safe for concurrent use on distinct URLs.
type Resolver struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewResolver wires a Fetcher into a Resolver.
func NewResolver(fetcher Fetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve performs exactly one GET against rawURL and walks the fallback
// chains over the returned markup. Fields degrade to their defaults rather
// than failing the operation; only fetch or parse faults produce an error.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (Result, error) {
	page, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return Result{}, err
		}
		return Result{}, &FetchError{URL: rawURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return Result{}, &ParseError{URL: rawURL, Err: err}
	}

	base, err := url.Parse(page.BaseURL())
	if err != nil {
		return Result{}, &ParseError{URL: rawURL, Err: fmt.Errorf("base url: %w", err)}
	}

	result := Result{
		Title:       resolveField(doc, base, titleChain, DefaultTitle),
		Description: resolveField(doc, base, descriptionChain, DefaultDescription),
		ImageURL:    resolveField(doc, base, imageChain, ""),
	}

	r.logger.Debug("Metadata resolved",
		zap.String("url", rawURL),
		zap.String("title", result.Title),
		zap.Bool("image_found", result.ImageURL != ""),
	)
	return result, nil
}

func resolveField(doc *goquery.Document, base *url.URL, chain []step, fallback string) string {
	for _, s := range chain {
		if v := s.extract(doc, base); v != "" {
			return v
		}
	}
	return fallback
}

func metaProperty(property string) func(*goquery.Document, *url.URL) string {
	selector := fmt.Sprintf("meta[property=%q]", property)
	return func(doc *goquery.Document, _ *url.URL) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}

func metaName(name string) func(*goquery.Document, *url.URL) string {
	selector := fmt.Sprintf("meta[name=%q]", name)
	return func(doc *goquery.Document, _ *url.URL) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}

func documentTitle(doc *goquery.Document, _ *url.URL) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// firstImage returns the src of the first <img> anywhere in the document,
// resolved to an absolute URL against the page's own URL.
func firstImage(doc *goquery.Document, base *url.URL) string {
	src, ok := doc.Find("img[src]").First().Attr("src")
	if !ok {
		return ""
	}
	src = strings.TrimSpace(src)
	if src == "" || base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
