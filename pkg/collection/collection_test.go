package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/pkg/collection"
)

type line struct {
	id    string
	price float64
	qty   int
}

func TestJoinHelpers(t *testing.T) {
	lines := []line{{"a", 2.5, 2}, {"b", 1, 1}, {"a", 2.5, 1}}

	ids := collection.Unique(collection.Map(lines, func(l line) string { return l.id }))
	assert.Equal(t, []string{"a", "b"}, ids)

	byID := collection.KeyBy(lines, func(l line) string { return l.id })
	assert.Len(t, byID, 2)
	assert.Equal(t, 1, byID["a"].qty, "last element wins")

	total := collection.Sum(lines, func(l line) float64 { return l.price * float64(l.qty) })
	assert.Equal(t, 8.5, total)
}

func TestEmptyInputs(t *testing.T) {
	assert.Empty(t, collection.Unique([]int(nil)))
	assert.Empty(t, collection.KeyBy([]line(nil), func(l line) string { return l.id }))
	assert.Zero(t, collection.Sum([]line(nil), func(l line) float64 { return l.price }))
}
