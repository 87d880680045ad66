package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cfg := mustConfig(t,
		ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2", "3"}},
		ColorEntry{Name: "Blue", Color: "#0000ff"},
	)

	urls := map[string]string{
		"1": "https://cdn.test/1.jpg",
		"3": "https://cdn.test/3.jpg",
	}
	resolved := Resolve(cfg, func(ref string) (string, bool) {
		u, ok := urls[ref]
		return u, ok
	})

	require.Equal(t, 2, resolved.Len())
	assert.Equal(t, []string{"Red", "Blue"}, resolved.Names())

	red, ok := resolved.Get("Red")
	require.True(t, ok)
	assert.Equal(t, []string{"https://cdn.test/1.jpg", "https://cdn.test/3.jpg"}, red.Images)
	assert.Equal(t, 1, red.Dropped)
	assert.Equal(t, []string{"1", "2", "3"}, red.Refs)

	blue, ok := resolved.Get("Blue")
	require.True(t, ok)
	assert.NotNil(t, blue.Images)
	assert.Empty(t, blue.Images)

	assert.Equal(t, 1, resolved.Dropped())
}

func TestResolve_ImagesNeverExceedRefs(t *testing.T) {
	cfg := mustConfig(t,
		ColorEntry{Name: "A", Color: "#111111", Refs: []string{"1", "1", "2"}},
		ColorEntry{Name: "B", Color: "#222222", Refs: []string{"9"}},
	)

	lookups := []AssetLookup{
		nil,
		func(string) (string, bool) { return "", true },
		func(ref string) (string, bool) { return "u" + ref, true },
		func(ref string) (string, bool) { return "u" + ref, ref != "1" },
	}

	for _, lookup := range lookups {
		resolved := Resolve(cfg, lookup)
		for _, e := range resolved.Entries() {
			assert.LessOrEqual(t, len(e.Images), len(e.Refs))
			assert.Equal(t, len(e.Refs), len(e.Images)+e.Dropped)
		}
	}
}

func TestResolve_NilLookupDropsEverything(t *testing.T) {
	cfg := mustConfig(t, ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2"}})

	resolved := Resolve(cfg, nil)

	red, ok := resolved.First()
	require.True(t, ok)
	assert.Empty(t, red.Images)
	assert.Equal(t, 2, resolved.Dropped())
}

func TestResolve_NilConfig(t *testing.T) {
	resolved := Resolve(nil, nil)

	assert.Zero(t, resolved.Len())
	_, ok := resolved.First()
	assert.False(t, ok)
	assert.False(t, resolved.Has("Red"))

	b, err := resolved.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
