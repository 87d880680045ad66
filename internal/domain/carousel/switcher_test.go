package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wslider/internal/domain/models"
)

type mockCarousel struct {
	mock.Mock
}

func (m *mockCarousel) Init(container string, opts Options) error {
	args := m.Called(container, opts)
	return args.Error(0)
}

func (m *mockCarousel) ReplaceSlides(slides []Slide) {
	m.Called(slides)
}

func (m *mockCarousel) GoToSlide(index int) {
	m.Called(index)
}

func (m *mockCarousel) Next() {
	m.Called()
}

func (m *mockCarousel) Prev() {
	m.Called()
}

func resolvedFixture(t *testing.T) *models.ResolvedSliderConfig {
	t.Helper()

	cfg := models.NewSliderConfig()
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"1", "2"}}))
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Blue", Color: "#0000ff", Refs: []string{"3", "404"}}))
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Green", Color: "#00ff00"}))

	return models.Resolve(cfg, func(ref string) (string, bool) {
		if ref == "404" {
			return "", false
		}
		return "img-" + ref, true
	})
}

func TestSwitcher_InitialColorIsFirst(t *testing.T) {
	c := new(mockCarousel)
	c.On("ReplaceSlides", slides("img-1", "img-2")).Once()
	c.On("GoToSlide", 0).Once()

	s := NewSwitcher(resolvedFixture(t), c)

	active, ok := s.ActiveColor()
	require.True(t, ok)
	assert.Equal(t, "Red", active)
	c.AssertExpectations(t)
}

func TestSwitcher_SelectColor(t *testing.T) {
	c := new(mockCarousel)
	c.On("ReplaceSlides", mock.Anything)
	c.On("GoToSlide", 0)

	s := NewSwitcher(resolvedFixture(t), c)

	assert.True(t, s.SelectColor("Blue"))
	c.AssertCalled(t, "ReplaceSlides", slides("img-3"))

	active, _ := s.ActiveColor()
	assert.Equal(t, "Blue", active)

	assert.True(t, s.SelectColor("Green"))
	c.AssertCalled(t, "ReplaceSlides", []Slide{})

	swatches := s.Swatches()
	require.Len(t, swatches, 3)
	assert.Equal(t, Swatch{Name: "Green", Color: "#00ff00", Active: true}, swatches[2])
	assert.False(t, swatches[0].Active)
}

func TestSwitcher_UnknownColorKeepsState(t *testing.T) {
	c := new(mockCarousel)
	c.On("ReplaceSlides", mock.Anything)
	c.On("GoToSlide", 0)

	s := NewSwitcher(resolvedFixture(t), c)
	calls := len(c.Calls)

	assert.False(t, s.SelectColor("Purple"))

	active, _ := s.ActiveColor()
	assert.Equal(t, "Red", active)
	assert.Len(t, c.Calls, calls)
}

func TestSwitcher_EmptySource(t *testing.T) {
	c := new(mockCarousel)
	c.On("ReplaceSlides", []Slide(nil)).Once()
	c.On("GoToSlide", 0).Once()

	s := NewSwitcher(nil, c)

	_, ok := s.ActiveColor()
	assert.False(t, ok)
	assert.Empty(t, s.Swatches())
	c.AssertExpectations(t)
}

func TestSwitcher_DrivesTrack(t *testing.T) {
	track := NewTrack()
	require.NoError(t, track.Init(DefaultContainer, DefaultOptions()))

	s := NewSwitcher(resolvedFixture(t), track)
	track.Next()
	assert.Equal(t, 1, track.Index())

	s.SelectColor("Blue")
	assert.Equal(t, 0, track.Index())
	assert.Equal(t, slides("img-3"), track.Slides())
}
