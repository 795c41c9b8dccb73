package data

import (
	"encoding/json"
	"testing"

	"gotest.tools/v3/assert"
)

func intStore(n int) *RowStore {
	s := NewRowStore()
	for i := 0; i < n; i++ {
		s.Append(Row{Int(int64(i))})
	}
	return s
}

func ints(s *RowStore) []int64 {
	var out []int64
	s.Each(func(_ int, row Row) bool {
		out = append(out, row[0].Int64())
		return true
	})
	return out
}

func TestAppendReturnsRange(t *testing.T) {
	s := intStore(2)

	start, end := s.Append(Row{Int(2)}, Row{Int(3)}, Row{Int(4)})
	assert.Equal(t, start, 2)
	assert.Equal(t, end, 5)
	assert.Equal(t, s.Len(), 5)
}

func TestAppendCopiesRows(t *testing.T) {
	s := NewRowStore()
	row := Row{String("a")}
	s.Append(row)

	row[0] = String("b")
	assert.Equal(t, s.At(0)[0], String("a"))
}

func TestDeletePositions(t *testing.T) {
	s := intStore(10)

	// unordered with a duplicate and an out-of-range position
	removed := s.DeletePositions([]int{5, 2, 7, 2, 42})
	assert.Equal(t, removed, 3)
	assert.DeepEqual(t, ints(s), []int64{0, 1, 3, 4, 6, 8, 9})

	assert.Equal(t, s.DeletePositions(nil), 0)
}

func TestDeleteFunc(t *testing.T) {
	s := intStore(6)

	removed := s.DeleteFunc(func(r Row) bool { return r[0].Int64()%2 == 0 })
	assert.Equal(t, removed, 3)
	assert.DeepEqual(t, ints(s), []int64{1, 3, 5})
}

func TestEachStops(t *testing.T) {
	s := intStore(5)
	visited := 0
	s.Each(func(pos int, _ Row) bool {
		visited++
		return pos < 1
	})
	assert.Equal(t, visited, 2)
}

func TestRowMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Row{String("Rex"), Int(3), Double(2.5), Bool(true)})
	assert.NilError(t, err)
	assert.Equal(t, string(b), `["Rex",3,2.5,true]`)
}
