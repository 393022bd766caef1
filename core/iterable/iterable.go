package iterable

import (
	"io"
	"iter"
)

// Iterator returns items in a collection with every call to Next().
// The error will be set to io.EOF when the iterator is complete.
type Iterator[T any] interface {
	Next() (T, error)
}

type iterator[T any] struct {
	next func() (T, error)
}

func (it *iterator[T]) Next() (T, error) {
	return it.next()
}

func NewIterator[T any](next func() (T, error)) Iterator[T] {
	return &iterator[T]{next}
}

func Collect[T any](it Iterator[T]) ([]T, error) {
	var items []T
	for {
		item, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// From iterates the items of a slice.
func From[T any](items []T) Iterator[T] {
	i := 0
	return NewIterator(func() (T, error) {
		if i < len(items) {
			item := items[i]
			i++
			return item, nil
		}
		var zero T
		return zero, io.EOF
	})
}

// FromSeq2 pulls items from a sequence of item and error pairs. Iteration
// stops at the first non-nil error.
func FromSeq2[T any](seq iter.Seq2[T, error]) Iterator[T] {
	next, stop := iter.Pull2(seq)
	done := false
	return NewIterator(func() (T, error) {
		var zero T
		if done {
			return zero, io.EOF
		}
		item, err, ok := next()
		if !ok {
			done = true
			stop()
			return zero, io.EOF
		}
		if err != nil {
			done = true
			stop()
			return zero, err
		}
		return item, nil
	})
}
