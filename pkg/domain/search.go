package domain

// SearchResult is a server-ordered page of results. Callers must not re-sort.
type SearchResult[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total"`
}

// Len returns the number of results actually returned.
func (r SearchResult[T]) Len() int {
	return len(r.Results)
}
