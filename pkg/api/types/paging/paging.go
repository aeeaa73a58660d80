package paging

// Page is the pagination envelope.
//
// Next and Previous are absolute URLs of the neighbour pages, keeping
// the query parameters of the request; null at either end. Results is
// never null, an empty page carries [].
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
