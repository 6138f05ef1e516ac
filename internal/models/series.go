package models

// SeriesSearchResult is one entry of the origin's search result list
type SeriesSearchResult struct {
	ID   string `json:"id"`   // Site slug, e.g. "one-piece"
	Name string `json:"name"` // Display title
}
