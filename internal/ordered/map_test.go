package ordered_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivotdb/viewsql/internal/ordered"
)

func TestBasicFeatures(t *testing.T) {
	m := ordered.NewMap[int, int]()

	assert.Equal(t, 0, m.Len(), "expected length 0")

	m.Store(5, 50)
	m.Store(3, 30)
	m.Store(1, 10)
	m.Store(4, 40)
	m.Store(2, 20)

	assert.Equal(t, 5, m.Len(), "expected length 5 after storing 5 elements")

	val, ok := m.Load(1)
	assert.True(t, ok, "expected key 1 to be present")
	assert.Equal(t, 10, val, "expected value 10 for key 1")

	val, ok = m.Load(2)
	assert.True(t, ok, "expected key 2 to be present")
	assert.Equal(t, 20, val, "expected value 20 for key 2")

	expectedKeys := []int{5, 3, 1, 4, 2}
	assert.Equal(t, expectedKeys, m.Keys(), "expected keys to be [5, 3, 1, 4, 2]")

	expectedValues := []int{50, 30, 10, 40, 20}
	assert.Equal(t, expectedValues, m.Values(), "expected values to be [50, 30, 10, 40, 20]")

	m.Delete(3)
	assert.Equal(t, 4, m.Len(), "expected length 4 after deleting key 3")
	expectedKeys = []int{5, 1, 4, 2}
	assert.Equal(t, expectedKeys, m.Keys(), "expected keys to be [5, 1, 4, 2]")

	expectedValues = []int{50, 10, 40, 20}
	assert.Equal(t, expectedValues, m.Values(), "expected values to be [50, 10, 40, 20]")

	m.Delete(1)
	assert.Equal(t, 3, m.Len(), "expected length 3 after deleting key 1")
	expectedKeys = []int{5, 4, 2}
	assert.Equal(t, expectedKeys, m.Keys(), "expected keys to be [5, 4, 2]")

	expectedValues = []int{50, 40, 20}
	assert.Equal(t, expectedValues, m.Values(), "expected values to be [50, 40, 20]")

	m.Clear()
	assert.Equal(t, 0, m.Len(), "expected length 0 after clearing the map")
	assert.Empty(t, m.Keys(), "expected no keys after clearing the map")
	assert.Empty(t, m.Values(), "expected no values after clearing the map")
}

func TestStoreUpdatesExistingKeyInPlace(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)
	m.Store("a", 100)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	val, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 100, val)
}
