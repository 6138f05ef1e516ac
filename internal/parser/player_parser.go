package parser

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/GogoResolver/internal/config"
)

// PlayerParser implements the SingleResultParser interface for an episode page,
// returning the raw src of the embedded player iframe.
type PlayerParser struct{}

// NewPlayerParser creates a new episode page parser
func NewPlayerParser() SingleResultParser[string] {
	return &PlayerParser{}
}

// ParseHtml returns the iframe src exactly as written in the page; it may be
// relative, protocol-relative, or absolute.
func (p *PlayerParser) ParseHtml(body io.Reader) (string, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	iframe, err := firstNode(doc, playerIframeSelector, "player iframe")
	if err != nil {
		return "", err
	}
	src, err := requiredAttr(iframe, "player iframe", "src")
	if err != nil {
		return "", err
	}

	logger.Debug().Str("src", src).Msg("Found player iframe")
	return src, nil
}
