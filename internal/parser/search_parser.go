package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// SearchParser implements the Parser interface for the search result page
type SearchParser struct {
	categoryPath string
}

// NewSearchParser creates a parser that derives series IDs by stripping
// categoryPath from result links.
func NewSearchParser(categoryPath string) *SearchParser {
	return &SearchParser{
		categoryPath: categoryPath,
	}
}

// ParseHtml extracts the search results in document order. Result nodes without
// an href or a title are skipped.
func (p *SearchParser) ParseHtml(body io.Reader) ([]models.SeriesSearchResult, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	results := make([]models.SeriesSearchResult, 0)
	doc.Find(searchResultSelector).Each(func(i int, link *goquery.Selection) {
		href, hasHref := attr(link, "href").Get()
		title, hasTitle := attr(link, "title").Get()
		if !hasHref || !hasTitle {
			logger.Debug().Int("index", i).Bool("href", hasHref).Bool("title", hasTitle).Msg("Skipping search result with missing attribute")
			return
		}

		results = append(results, models.SeriesSearchResult{
			ID:   p.seriesIDFromHref(href),
			Name: title,
		})
	})

	logger.Debug().Int("results", len(results)).Msg("Completed HTML parsing for search results")
	return results, nil
}

// seriesIDFromHref removes the category prefix from a result link. Absolute links
// are reduced to their path first.
func (p *SearchParser) seriesIDFromHref(href string) string {
	path := strings.TrimSpace(href)
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		path = u.Path
	}
	return strings.TrimPrefix(path, p.categoryPath)
}
