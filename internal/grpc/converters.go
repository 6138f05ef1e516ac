package grpc

import (
	"fmt"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/GogoResolver/internal/models"
)

// convertSearchResultsToProto converts search results to a list of {id, name} structs
func convertSearchResultsToProto(results []models.SeriesSearchResult) *structpb.ListValue {
	return &structpb.ListValue{
		Values: lo.Map(results, func(r models.SeriesSearchResult, _ int) *structpb.Value {
			return structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					"id":   structpb.NewStringValue(r.ID),
					"name": structpb.NewStringValue(r.Name),
				},
			})
		}),
	}
}

// convertReferencesToProto converts episode references to a list of strings
func convertReferencesToProto(refs []models.EpisodeReference) *structpb.ListValue {
	return &structpb.ListValue{
		Values: lo.Map(refs, func(ref models.EpisodeReference, _ int) *structpb.Value {
			return structpb.NewStringValue(string(ref))
		}),
	}
}

// convertRangeToProto converts an episode range to a {start, end} struct
func convertRangeToProto(r models.EpisodeRange) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"start": structpb.NewNumberValue(float64(r.Start)),
			"end":   structpb.NewNumberValue(float64(r.End)),
		},
	}
}

// convertSourcesToProto converts resolved sources to a list of {url, origin} structs
func convertSourcesToProto(sources []models.VideoSource) *structpb.ListValue {
	return &structpb.ListValue{
		Values: lo.Map(sources, func(s models.VideoSource, _ int) *structpb.Value {
			return structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					"url":    structpb.NewStringValue(s.URL),
					"origin": structpb.NewStringValue(s.Origin),
				},
			})
		}),
	}
}

// convertSearchResultsFromProto is the inverse of convertSearchResultsToProto
func convertSearchResultsFromProto(list *structpb.ListValue) ([]models.SeriesSearchResult, error) {
	results := make([]models.SeriesSearchResult, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("search result %d is not a struct", i)
		}
		results = append(results, models.SeriesSearchResult{
			ID:   fields["id"].GetStringValue(),
			Name: fields["name"].GetStringValue(),
		})
	}
	return results, nil
}

// convertReferencesFromProto is the inverse of convertReferencesToProto
func convertReferencesFromProto(list *structpb.ListValue) []models.EpisodeReference {
	return lo.Map(list.GetValues(), func(v *structpb.Value, _ int) models.EpisodeReference {
		return models.EpisodeReference(v.GetStringValue())
	})
}

// convertRangeFromProto is the inverse of convertRangeToProto
func convertRangeFromProto(s *structpb.Struct) models.EpisodeRange {
	fields := s.GetFields()
	return models.EpisodeRange{
		Start: int(fields["start"].GetNumberValue()),
		End:   int(fields["end"].GetNumberValue()),
	}
}

// convertSourcesFromProto is the inverse of convertSourcesToProto
func convertSourcesFromProto(list *structpb.ListValue) ([]models.VideoSource, error) {
	sources := make([]models.VideoSource, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("video source %d is not a struct", i)
		}
		sources = append(sources, models.VideoSource{
			URL:    fields["url"].GetStringValue(),
			Origin: fields["origin"].GetStringValue(),
		})
	}
	return sources, nil
}
