package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wslider/internal/domain/models"
)

func TestForm_AddColor(t *testing.T) {
	var hooked []string
	f := NewForm(nil, WithChangeHook(func(s string) { hooked = append(hooked, s) }))

	assert.Equal(t, "{}", f.Hidden())

	require.NoError(t, f.AddColor("Red"))
	assert.Equal(t, `{"Red":{"color":"#cc0000","images":""}}`, f.Hidden())

	err := f.AddColor("Red")
	assert.ErrorIs(t, err, models.ErrColorExists)

	err = f.AddColor("")
	assert.ErrorIs(t, err, models.ErrEmptyColorName)

	assert.Len(t, hooked, 1)
}

func TestForm_RemoveColor(t *testing.T) {
	f := NewForm(nil)
	require.NoError(t, f.AddColor("Red"))
	require.NoError(t, f.AddColor("Blue"))
	require.NoError(t, f.SetGallery("Red", []string{"1"}))
	require.NoError(t, f.SetPreviews("Red", []string{"thumb-1"}))

	err := f.RemoveColor("Red", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.True(t, f.Config().Has("Red"))

	require.NoError(t, f.RemoveColor("Red", true))
	assert.False(t, f.Config().Has("Red"))
	assert.Empty(t, f.Previews("Red"))
	assert.Equal(t, `{"Blue":{"color":"#cc0000","images":""}}`, f.Hidden())

	assert.NoError(t, f.RemoveColor("Missing", true))
}

func TestForm_SetGallery(t *testing.T) {
	f := NewForm(nil)
	require.NoError(t, f.AddColor("Red"))

	require.NoError(t, f.SetGallery("Red", []string{"3", "1", "2"}))
	assert.Equal(t, `{"Red":{"color":"#cc0000","images":"3,1,2"}}`, f.Hidden())

	before := f.Hidden()
	require.NoError(t, f.SetGallery("Red", []string{"3", "1", "2"}))
	assert.Equal(t, before, f.Hidden())

	require.NoError(t, f.SetGallery("Red", nil))
	assert.Equal(t, `{"Red":{"color":"#cc0000","images":""}}`, f.Hidden())

	assert.ErrorIs(t, f.SetGallery("Blue", []string{"1"}), models.ErrColorNotFound)
	assert.ErrorIs(t, f.SetGallery("Red", []string{"1,2"}), models.ErrInvalidRef)
}

func TestForm_SetGalleryDropsPreviews(t *testing.T) {
	f := NewForm(nil)
	require.NoError(t, f.AddColor("Red"))
	require.NoError(t, f.SetGallery("Red", []string{"1"}))
	require.NoError(t, f.SetPreviews("Red", []string{"t1"}))

	require.NoError(t, f.SetGallery("Red", []string{"2"}))
	assert.Empty(t, f.Previews("Red"))
}

func TestForm_SetColorValue(t *testing.T) {
	f := NewForm(nil)
	require.NoError(t, f.AddColor("Red"))

	require.NoError(t, f.SetColorValue("Red", "#ff0000"))
	assert.Equal(t, `{"Red":{"color":"#ff0000","images":""}}`, f.Hidden())

	assert.ErrorIs(t, f.SetColorValue("Red", "red"), models.ErrInvalidColorValue)
	assert.ErrorIs(t, f.SetColorValue("Blue", "#000000"), models.ErrColorNotFound)
}

func TestForm_DoesNotMutateSource(t *testing.T) {
	cfg := models.NewSliderConfig()
	require.NoError(t, cfg.Add(models.NewColorEntry("Red")))

	f := NewForm(cfg)
	require.NoError(t, f.AddColor("Blue"))

	assert.Equal(t, 1, cfg.Len())
}

func TestRestore(t *testing.T) {
	hash := `{"Red":{"color":"#ff0000","images":"1,2"},"Blue":{"color":"#0000ff","images":""}}`
	previews := map[string][]string{
		"Red":   {"t1", "t2"},
		"Green": {"stale"},
	}

	f, err := Restore(hash, previews)
	require.NoError(t, err)

	assert.Equal(t, hash, f.Hidden())
	assert.Equal(t, []string{"t1", "t2"}, f.Previews("Red"))
	assert.NotContains(t, f.AllPreviews(), "Green")

	blocks := f.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "Red", blocks[0].Name)
	assert.Equal(t, "1,2", blocks[0].Images)
	assert.Equal(t, "Blue", blocks[1].Name)
	assert.Empty(t, blocks[1].Previews)

	_, err = Restore(`{"Red":[]}`, nil)
	assert.ErrorIs(t, err, models.ErrMalformedConfig)
}
