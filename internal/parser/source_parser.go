package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// SourceListParser decodes the JSON body of the source lookup endpoint
type SourceListParser struct{}

// NewSourceListParser creates a new source list parser
func NewSourceListParser() *SourceListParser {
	return &SourceListParser{}
}

// ParseJSON returns the listed source files in document order.
//
// Invalid JSON yields apperrors.ErrParseJSON. A valid document without a usable
// "source" array (absent, null, another type, or a non-object document) yields an
// empty list: the episode simply has no registered sources. An array entry without
// a string "file" yields apperrors.ErrMalformedOrigin.
func (p *SourceListParser) ParseJSON(body []byte) ([]string, error) {
	logger := config.GetLogger()

	var resp models.SourceListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			logger.Debug().Str("type", typeErr.Value).Msg("Source lookup returned a non-object document")
			return []string{}, nil
		}
		return nil, &apperrors.ErrParseJSON{Err: err}
	}

	files, err := resp.Files()
	if err != nil {
		var entryErr *models.ErrSourceEntry
		if errors.As(err, &entryErr) {
			return nil, &apperrors.ErrMalformedOrigin{
				Resource:  "source list",
				Attribute: fmt.Sprintf("source[%d].file", entryErr.Index),
				Value:     entryErr.Raw,
			}
		}
		return nil, err
	}

	logger.Debug().Int("sources", len(files)).Msg("Parsed source list")
	return files, nil
}
