package main

import (
	"bytes"
	"context"
	"testing"

	"wslider/internal/domain/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintConfig(t *testing.T) {
	color.NoColor = true

	cfg := models.NewSliderConfig()
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2"}}))
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Blue", Color: "#0000ff"}))

	var buf bytes.Buffer
	printConfig(&buf, models.Post{ID: 7, Title: "Roadster", PostType: models.PostTypeCar}, cfg)

	out := buf.String()
	assert.Contains(t, out, "#7 Roadster [car]")
	assert.Contains(t, out, "* ")
	assert.Regexp(t, `\* .*Red\s+#ff0000  1,2`, out)
	assert.Regexp(t, `Blue\s+#0000ff  -`, out)
}

func TestPrintConfig_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printConfig(&buf, models.Post{ID: 1, Title: "Empty", PostType: models.PostTypeCar}, models.NewSliderConfig())

	assert.Contains(t, buf.String(), "no colors")
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#12ab0F")
	require.True(t, ok)
	assert.Equal(t, []int{0x12, 0xab, 0x0f}, []int{r, g, b})

	for _, bad := range []string{"", "123456", "#12345", "#zzzzzz"} {
		_, _, _, ok := parseHex(bad)
		assert.False(t, ok, bad)
	}
}

func TestRun_Usage(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, run([]string{}, &buf), errUsage)
}

func TestPostArg(t *testing.T) {
	id, err := postArg([]string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = postArg(nil)
	assert.ErrorIs(t, err, errUsage)

	_, err = postArg([]string{"x"})
	assert.Error(t, err)
}

func TestAddCar_Flags(t *testing.T) {
	var buf bytes.Buffer

	err := addCar(context.Background(), nil, []string{"-author", "6f1d5c7e-2a1b-4c3d-9e8f-0a1b2c3d4e5f"}, &buf)
	assert.ErrorContains(t, err, "-title is required")

	err = addCar(context.Background(), nil, []string{"-title", "Roadster", "-author", "nobody"}, &buf)
	assert.ErrorContains(t, err, "bad -author")
	assert.Empty(t, buf.String())
}
