// Package paging parses paging query parameters and composes the
// pagination envelope.
package paging

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	apipaging "github.com/foodgram-dev/foodgram/pkg/api/types/paging"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100

	pageParam  = "page"
	limitParam = "limit"
)

// ErrInvalidPage is wrapped by errors from page parameters which are
// not positive integers.
var ErrInvalidPage error = errors.New("invalid page")

// Params is a parsed paging request.
type Params struct {
	// Page is 1-based.
	Page int

	Limit int
}

// ParseParams reads the page and limit query parameters.
//
// limit falls back to DefaultPageSize when absent or unparsable, and is
// capped at MaxPageSize.
//
// Returns
//
// - Params
//
// - error: ErrInvalidPage when page is given but is not a positive
// integer.
func ParseParams(query url.Values) (Params, error) {
	p := Params{Page: 1, Limit: DefaultPageSize}

	if v := query.Get(limitParam); v != "" {
		if n, err := strconv.Atoi(v); err == nil && 0 < n {
			p.Limit = n
			if MaxPageSize < p.Limit {
				p.Limit = MaxPageSize
			}
		}
	}

	if v := query.Get(pageParam); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("%w: page=%s", ErrInvalidPage, v)
		}
		p.Page = n
	}

	return p, nil
}

// Window is the storage paging window of these Params.
func (p Params) Window() domain.Window {
	return domain.Window{Offset: (p.Page - 1) * p.Limit, Limit: p.Limit}
}

// OutOfRange tells whether the page starts beyond a listing of count
// items. The first page of an empty listing is in range.
func (p Params) OutOfRange(count int) bool {
	return 1 < p.Page && count <= (p.Page-1)*p.Limit
}

// Compose builds the pagination envelope of a listing response.
//
// Args
//
// - requestURL: absolute URL of the request. Next and Previous are
// derived from it by rewriting its page parameter, keeping the rest of
// the query.
//
// - p: the paging window results were retrieved with.
//
// - count: total matches disregarding the window.
//
// - results: items of this page.
func Compose[T any](requestURL *url.URL, p Params, count int, results []T) apipaging.Page[T] {
	if results == nil {
		results = []T{}
	}

	page := apipaging.Page[T]{Count: count, Results: results}
	if p.Page*p.Limit < count {
		next := pageURL(requestURL, p.Page+1)
		page.Next = &next
	}
	if 1 < p.Page {
		prev := pageURL(requestURL, p.Page-1)
		page.Previous = &prev
	}

	return page
}

// pageURL rewrites the page parameter of u. Page 1 drops the parameter.
func pageURL(u *url.URL, page int) string {
	q := u.Query()
	if page <= 1 {
		q.Del(pageParam)
	} else {
		q.Set(pageParam, strconv.Itoa(page))
	}

	rewritten := *u
	rewritten.RawQuery = q.Encode()
	return rewritten.String()
}
