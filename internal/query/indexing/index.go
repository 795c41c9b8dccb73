package indexing

import (
	"fmt"

	"github.com/google/btree"

	"github.com/leengari/sillyql/internal/domain/data"
)

// Kind selects the structure of a secondary index
type Kind int

const (
	KindHash    Kind = iota + 1 // unordered, bucket per value
	KindOrdered                 // sorted by value (B-tree)
)

// String returns the protocol name of the kind ("hash" or "bst")
func (k Kind) String() string {
	switch k {
	case KindHash:
		return "hash"
	case KindOrdered:
		return "bst"
	default:
		return "none"
	}
}

// ParseKind accepts "hash", "bst" or "ordered"
func ParseKind(s string) (Kind, error) {
	switch s {
	case "hash":
		return KindHash, nil
	case "bst", "ordered":
		return KindOrdered, nil
	}
	return 0, fmt.Errorf("unknown index type %q", s)
}

// Index is an in-memory secondary index on a single column.
// Buckets hold row positions in ascending row order as of the last build.
type Index interface {
	Kind() Kind
	Column() int
	// Lookup returns the bucket for v, or nil if v is absent.
	// The returned slice belongs to the index and must not be modified.
	Lookup(v data.Value) []int
	// Keys returns the number of distinct values indexed
	Keys() int
}

// HashIndex maps each value to the positions of the rows holding it
type HashIndex struct {
	column  int
	buckets map[data.Value][]int
}

func newHashIndex(column, sizeHint int) *HashIndex {
	return &HashIndex{
		column:  column,
		buckets: make(map[data.Value][]int, sizeHint),
	}
}

func (h *HashIndex) Kind() Kind  { return KindHash }
func (h *HashIndex) Column() int { return h.column }
func (h *HashIndex) Keys() int   { return len(h.buckets) }

func (h *HashIndex) add(v data.Value, pos int) {
	h.buckets[v] = append(h.buckets[v], pos)
}

func (h *HashIndex) Lookup(v data.Value) []int {
	return h.buckets[v]
}

// Each visits every bucket in unspecified order
func (h *HashIndex) Each(fn func(key data.Value, rows []int)) {
	for k, rows := range h.buckets {
		fn(k, rows)
	}
}

// orderedEntry is one B-tree node payload: a key and its bucket
type orderedEntry struct {
	key  data.Value
	rows []int
}

func lessEntry(a, b *orderedEntry) bool {
	return a.key.Less(b.key)
}

// btreeDegree is the node fan-out of ordered indexes
const btreeDegree = 32

// OrderedIndex keeps values sorted so range predicates can walk keys in
// ascending order
type OrderedIndex struct {
	column int
	tree   *btree.BTreeG[*orderedEntry]
}

func newOrderedIndex(column int) *OrderedIndex {
	return &OrderedIndex{
		column: column,
		tree:   btree.NewG(btreeDegree, lessEntry),
	}
}

func (o *OrderedIndex) Kind() Kind  { return KindOrdered }
func (o *OrderedIndex) Column() int { return o.column }
func (o *OrderedIndex) Keys() int   { return o.tree.Len() }

func (o *OrderedIndex) add(v data.Value, pos int) {
	if e, ok := o.tree.Get(&orderedEntry{key: v}); ok {
		e.rows = append(e.rows, pos)
		return
	}
	o.tree.ReplaceOrInsert(&orderedEntry{key: v, rows: []int{pos}})
}

func (o *OrderedIndex) Lookup(v data.Value) []int {
	if e, ok := o.tree.Get(&orderedEntry{key: v}); ok {
		return e.rows
	}
	return nil
}

// Ascend visits every key in ascending order until fn returns false
func (o *OrderedIndex) Ascend(fn func(key data.Value, rows []int) bool) {
	o.tree.Ascend(func(e *orderedEntry) bool {
		return fn(e.key, e.rows)
	})
}

// AscendLess visits keys strictly less than v in ascending order
func (o *OrderedIndex) AscendLess(v data.Value, fn func(key data.Value, rows []int) bool) {
	o.tree.AscendLessThan(&orderedEntry{key: v}, func(e *orderedEntry) bool {
		return fn(e.key, e.rows)
	})
}

// AscendGreater visits keys strictly greater than v in ascending order
func (o *OrderedIndex) AscendGreater(v data.Value, fn func(key data.Value, rows []int) bool) {
	o.tree.AscendGreaterOrEqual(&orderedEntry{key: v}, func(e *orderedEntry) bool {
		if e.key.Equal(v) {
			return true
		}
		return fn(e.key, e.rows)
	})
}
