package indexing

import (
	"fmt"
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
)

// buildable is an index that can be populated row by row
type buildable interface {
	Index
	add(v data.Value, pos int)
}

// Build scans the store once and returns an index of the given kind over
// column. Rows are appended to their bucket in row order, so every bucket
// lists positions ascending.
func Build(kind Kind, store *data.RowStore, column int) (Index, error) {
	var idx buildable
	switch kind {
	case KindHash:
		idx = newHashIndex(column, store.Len())
	case KindOrdered:
		idx = newOrderedIndex(column)
	default:
		return nil, fmt.Errorf("cannot build index of kind %v", kind)
	}

	var (
		firstKind data.Kind
		warned    bool
	)
	store.Each(func(pos int, row data.Row) bool {
		if column >= len(row) {
			return true
		}
		val := row[column]

		// Check kind consistency (very useful during development)
		if pos == 0 {
			firstKind = val.Kind()
		} else if val.Kind() != firstKind && !warned {
			slog.Warn("kind inconsistency in indexed column",
				slog.Int("column", column),
				slog.String("previous_kind", firstKind.String()),
				slog.String("new_kind", val.Kind().String()),
				slog.Int("row", pos))
			warned = true
		}

		idx.add(val, pos)
		return true
	})

	slog.Debug("index built",
		slog.String("kind", kind.String()),
		slog.Int("column", column),
		slog.Int("rows", store.Len()),
		slog.Int("unique_values", idx.Keys()))

	return idx, nil
}

// BuildTemporaryHash builds a hash index that is owned by the caller and
// never attached to a table
func BuildTemporaryHash(store *data.RowStore, column int) *HashIndex {
	h := newHashIndex(column, store.Len())
	store.Each(func(pos int, row data.Row) bool {
		h.add(row[column], pos)
		return true
	})
	return h
}
