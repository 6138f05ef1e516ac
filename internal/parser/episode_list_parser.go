package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// EpisodeListParser implements the Parser interface for the episode listing fragment
type EpisodeListParser struct{}

// NewEpisodeListParser creates a new episode listing parser
func NewEpisodeListParser() Parser[models.EpisodeReference] {
	return &EpisodeListParser{}
}

// ParseHtml returns one reference per listed anchor, in listing order.
// An anchor without href contributes an empty reference so positions stay aligned.
func (p *EpisodeListParser) ParseHtml(body io.Reader) ([]models.EpisodeReference, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	links := doc.Find(episodeLinkSelector)
	refs := make([]models.EpisodeReference, 0, links.Length())
	links.Each(func(i int, link *goquery.Selection) {
		// The origin pads hrefs with whitespace (href=" /naruto-episode-1").
		href := strings.TrimSpace(attr(link, "href").OrEmpty())
		if href == "" {
			logger.Debug().Int("index", i).Msg("Episode link without href")
		}
		refs = append(refs, models.EpisodeReference(href))
	})

	logger.Debug().Int("episodes", len(refs)).Msg("Completed HTML parsing for episode list")
	return refs, nil
}
