package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

type book struct {
	Title  string
	Secret string
}

func bookResource(b book) resource.Map {
	return resource.Map{"title": b.Title}
}

func TestItemHidesUnlistedFields(t *testing.T) {
	out, err := json.Marshal(resource.Item(book{Title: "Dune", Secret: "x"}, bookResource))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Dune"}`, string(out))
}

func TestEmptyCollectionEncodesAsArray(t *testing.T) {
	out, err := json.Marshal(resource.Collection([]book(nil), bookResource))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	assert.Len(t, resource.Collection([]book{{Title: "a"}, {Title: "b"}}, bookResource), 2)
}

func TestWithMerges(t *testing.T) {
	base := resource.Map{"a": 1, "b": 2}
	got := resource.With(base, resource.Map{"b": 3, "c": 4})
	assert.Equal(t, resource.Map{"a": 1, "b": 3, "c": 4}, got)
	assert.Equal(t, 2, base["b"])
}
