package indexing

import (
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
)

// Manager owns the single live index of a table.
//
// States: none -> Generate(kind, column) -> hash(column) | ordered(column).
// A later Generate replaces whatever is live, even on another column.
// Repair rebuilds the live index from scratch; the table calls it after every
// insert and delete while still holding its write lock.
type Manager struct {
	live Index
}

// Live returns the current index, or nil when the table has none
func (m *Manager) Live() Index {
	return m.live
}

// On returns the live index if it covers column, otherwise nil
func (m *Manager) On(column int) Index {
	if m.live == nil || m.live.Column() != column {
		return nil
	}
	return m.live
}

// Generate builds a new index and makes it the live one
func (m *Manager) Generate(kind Kind, store *data.RowStore, column int) (Index, error) {
	idx, err := Build(kind, store, column)
	if err != nil {
		return nil, err
	}
	m.live = idx
	return idx, nil
}

// Repair rebuilds the live index against the current contents of store.
// It is a no-op when no index exists.
func (m *Manager) Repair(store *data.RowStore) error {
	if m.live == nil {
		return nil
	}
	idx, err := Build(m.live.Kind(), store, m.live.Column())
	if err != nil {
		slog.Error("failed to repair index",
			slog.String("kind", m.live.Kind().String()),
			slog.Int("column", m.live.Column()),
			slog.Any("error", err),
		)
		return err
	}
	m.live = idx
	return nil
}

// Drop forgets the live index
func (m *Manager) Drop() {
	m.live = nil
}
