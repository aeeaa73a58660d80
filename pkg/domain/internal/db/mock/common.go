// Package mocks has shared building blocks for database mocks.
package mocks

// CallLog records the arguments of each call to a mocked method,
// in the order the calls were made.
type CallLog[T any] []T

// Times returns how many calls are recorded.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}
