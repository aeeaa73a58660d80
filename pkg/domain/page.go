package domain

// Window is a paging window over a listing.
type Window struct {
	Offset int

	// Limit is the max number of items in the window.
	//
	// Zero or negative means no limit.
	Limit int
}

// Page is a window of a listing along with the total count of the
// listing disregarding the window.
type Page[T any] struct {
	Count int
	Items []T
}
