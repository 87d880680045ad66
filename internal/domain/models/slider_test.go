package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConfig(t *testing.T, entries ...ColorEntry) *SliderConfig {
	t.Helper()

	cfg := NewSliderConfig()
	for _, e := range entries {
		require.NoError(t, cfg.Add(e))
	}
	return cfg
}

func TestSliderConfig_Serialize(t *testing.T) {
	tests := []struct {
		name string
		cfg  *SliderConfig
		want string
	}{
		{
			name: "empty config",
			cfg:  NewSliderConfig(),
			want: `{}`,
		},
		{
			name: "empty gallery is an empty string",
			cfg:  mustConfig(t, ColorEntry{Name: "Red", Color: "#ff0000"}),
			want: `{"Red":{"color":"#ff0000","images":""}}`,
		},
		{
			name: "insertion order is kept",
			cfg: mustConfig(t,
				ColorEntry{Name: "Blue", Color: "#0000ff", Refs: []string{"4", "5"}},
				ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2", "3"}},
			),
			want: `{"Blue":{"color":"#0000ff","images":"4,5"},"Red":{"color":"#ff0000","images":"1,2,3"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Serialize())
		})
	}
}

func TestParseSliderConfig(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantNames []string
		wantErr   bool
	}{
		{name: "empty string", raw: "", wantNames: []string{}},
		{name: "whitespace", raw: "  \n", wantNames: []string{}},
		{name: "null", raw: "null", wantNames: []string{}},
		{name: "empty object", raw: "{}", wantNames: []string{}},
		{
			name:      "order from document",
			raw:       `{"Zeta":{"color":"#000000","images":""},"Alpha":{"color":"#ffffff","images":"9"}}`,
			wantNames: []string{"Zeta", "Alpha"},
		},
		{
			name:      "missing images defaults to none",
			raw:       `{"Red":{"color":"#ff0000"}}`,
			wantNames: []string{"Red"},
		},
		{name: "not json", raw: "{'}", wantErr: true},
		{name: "array at top", raw: `[1,2]`, wantErr: true},
		{name: "images as array", raw: `{"Red":{"color":"#ff0000","images":["1","2"]}}`, wantErr: true},
		{name: "missing color", raw: `{"Red":{"images":"1"}}`, wantErr: true},
		{name: "bad color", raw: `{"Red":{"color":"red","images":"1"}}`, wantErr: true},
		{name: "bad name", raw: `{"<b>":{"color":"#ff0000","images":""}}`, wantErr: true},
		{name: "duplicate key", raw: `{"Red":{"color":"#ff0000"},"Red":{"color":"#00ff00"}}`, wantErr: true},
		{name: "trailing data", raw: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSliderConfig(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedConfig)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, append([]string{}, cfg.Names()...))
		})
	}
}

func TestParseSliderConfig_SplitsImages(t *testing.T) {
	cfg, err := ParseSliderConfig(`{"Red":{"color":"#ff0000","images":"1, 2,,3"}}`)
	require.NoError(t, err)

	red, ok := cfg.Get("Red")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3"}, red.Refs)
}

func TestLoadSliderConfig_NeverFails(t *testing.T) {
	for _, raw := range []string{"", "garbage", `{"Red":{"color":1}}`, `"string"`, `{"a":`} {
		cfg := LoadSliderConfig(raw)
		require.NotNil(t, cfg)
		assert.Zero(t, cfg.Len(), raw)
	}
}

func TestSliderConfig_RoundTrip(t *testing.T) {
	gofakeit.Seed(42)

	for i := 0; i < 25; i++ {
		cfg := NewSliderConfig()
		for j := 0; j < gofakeit.Number(0, 6); j++ {
			name := fmt.Sprintf("%s %d", gofakeit.Color(), j)
			var refs []string
			for k := 0; k < gofakeit.Number(0, 5); k++ {
				refs = append(refs, fmt.Sprintf("%d", gofakeit.Number(1, 3)))
			}
			require.NoError(t, cfg.Add(ColorEntry{Name: name, Color: gofakeit.HexColor(), Refs: refs}))
		}

		loaded, err := ParseSliderConfig(cfg.Serialize())
		require.NoError(t, err)
		assert.Equal(t, cfg.Entries(), loaded.Entries())
		assert.Equal(t, cfg.Serialize(), loaded.Serialize())
	}
}

func TestSliderConfig_RoundTripKeepsDefaultColor(t *testing.T) {
	cfg := mustConfig(t,
		ColorEntry{Name: "Blue", Color: "#0000ff"},
		ColorEntry{Name: "Red", Color: "#ff0000"},
	)

	loaded, err := ParseSliderConfig(cfg.Serialize())
	require.NoError(t, err)

	first, ok := loaded.First()
	require.True(t, ok)
	assert.Equal(t, "Blue", first.Name)
}

func TestSliderConfig_Add(t *testing.T) {
	cfg := NewSliderConfig()

	require.NoError(t, cfg.Add(NewColorEntry("Red")))
	assert.ErrorIs(t, cfg.Add(NewColorEntry("Red")), ErrColorExists)
	assert.NoError(t, cfg.Add(NewColorEntry("red")), "names are case-sensitive")
	assert.ErrorIs(t, cfg.Add(NewColorEntry("")), ErrEmptyColorName)
	assert.ErrorIs(t, cfg.Add(NewColorEntry("a'b")), ErrInvalidColorName)
	assert.ErrorIs(t, cfg.Add(ColorEntry{Name: "Blue", Color: "#12345"}), ErrInvalidColorValue)
	assert.ErrorIs(t, cfg.Add(ColorEntry{Name: "Blue", Color: "#123456", Refs: []string{"1,2"}}), ErrInvalidRef)

	assert.Equal(t, []string{"Red", "red"}, cfg.Names())
}

func TestSliderConfig_RemoveKeepsOrder(t *testing.T) {
	cfg := mustConfig(t, NewColorEntry("A"), NewColorEntry("B"), NewColorEntry("C"))

	assert.True(t, cfg.Remove("B"))
	assert.False(t, cfg.Remove("B"))
	assert.Equal(t, []string{"A", "C"}, cfg.Names())
}

func TestSliderConfig_GetReturnsCopy(t *testing.T) {
	cfg := mustConfig(t, ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1"}})

	red, _ := cfg.Get("Red")
	red.Refs[0] = "changed"

	again, _ := cfg.Get("Red")
	assert.Equal(t, []string{"1"}, again.Refs)
}

func TestValidateColorName(t *testing.T) {
	valid := []string{"Red", "Pearl White", "sky-blue_2", "Rosé"}
	for _, name := range valid {
		assert.NoError(t, ValidateColorName(name), name)
	}

	invalid := []string{" Red", "Red ", `Red"`, "a<b", "a;b", "x.y"}
	for _, name := range invalid {
		assert.Error(t, ValidateColorName(name), name)
	}
}

func TestResolvedSliderConfig_MarshalJSON(t *testing.T) {
	cfg := mustConfig(t, ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2"}})
	resolved := Resolve(cfg, func(ref string) (string, bool) {
		return "https://cdn.test/" + ref + ".png", ref == "1"
	})

	b, err := json.Marshal(resolved)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Red":{"color":"#ff0000","images":"1,2","image_urls":["https://cdn.test/1.png"]}}`, string(b))
}
