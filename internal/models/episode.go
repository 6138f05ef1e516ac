package models

import (
	"fmt"
	"strings"
)

// EpisodeReference is an opaque path that locates one episode page on the origin,
// e.g. "/one-piece-episode-1".
type EpisodeReference string

// EpisodeReferenceFor builds the canonical reference of episode n of a series.
func EpisodeReferenceFor(seriesID string, n int) EpisodeReference {
	return EpisodeReference(fmt.Sprintf("/%s-episode-%d", strings.Trim(seriesID, "/"), n))
}

// SeriesPage holds what the category page of a series tells us about its episodes.
// EpisodeStart and EpisodeEnd are the raw pager attributes and are passed back to
// the episode listing endpoint untouched.
type SeriesPage struct {
	EpisodeStart int    `json:"episodeStart"`
	EpisodeEnd   int    `json:"episodeEnd"`
	MovieID      string `json:"movieId"`
}

// Range converts the raw pager bounds into episode numbers.
// The origin numbers the first episode 0 and its upper bound is inclusive,
// so both ends are shifted by one.
func (p SeriesPage) Range() EpisodeRange {
	return EpisodeRange{
		Start: p.EpisodeStart + 1,
		End:   p.EpisodeEnd + 1,
	}
}

// EpisodeRange is the half-open interval [Start, End) of episode numbers.
type EpisodeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of episodes in the range, never negative.
func (r EpisodeRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether episode n is inside the range.
func (r EpisodeRange) Contains(n int) bool {
	return n >= r.Start && n < r.End
}

// References returns the canonical reference of every episode in the range, in order.
func (r EpisodeRange) References(seriesID string) []EpisodeReference {
	refs := make([]EpisodeReference, 0, r.Len())
	for n := r.Start; n < r.End; n++ {
		refs = append(refs, EpisodeReferenceFor(seriesID, n))
	}
	return refs
}
