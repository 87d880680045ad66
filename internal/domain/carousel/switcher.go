package carousel

import (
	"wslider/internal/domain/models"
)

// Swatch is one color button under the slider.
type Swatch struct {
	Name   string
	Color  string
	Active bool
}

// Switcher keeps the active color and swaps the carousel slide set on selection.
// The only state is the active color; it changes only through SelectColor.
type Switcher struct {
	source    *models.ResolvedSliderConfig
	carousel  Carousel
	active    string
	hasActive bool
}

// NewSwitcher activates the first color of source, or none when it is empty.
func NewSwitcher(source *models.ResolvedSliderConfig, c Carousel) *Switcher {
	if source == nil {
		source = models.Resolve(nil, nil)
	}

	s := &Switcher{
		source:   source,
		carousel: c,
	}

	first, ok := source.First()
	if !ok {
		c.ReplaceSlides(nil)
		c.GoToSlide(0)
		return s
	}
	s.apply(first)

	return s
}

// ActiveColor returns the selected color name, ok is false when there are no colors.
func (s *Switcher) ActiveColor() (string, bool) {
	return s.active, s.hasActive
}

// SelectColor swaps in the slides of name and rewinds to the first one.
// Unknown names are ignored and reported as false.
func (s *Switcher) SelectColor(name string) bool {
	entry, ok := s.source.Get(name)
	if !ok {
		return false
	}
	s.apply(entry)
	return true
}

func (s *Switcher) Swatches() []Swatch {
	entries := s.source.Entries()
	out := make([]Swatch, 0, len(entries))
	for _, e := range entries {
		out = append(out, Swatch{
			Name:   e.Name,
			Color:  e.Color,
			Active: s.hasActive && e.Name == s.active,
		})
	}
	return out
}

func (s *Switcher) apply(entry models.ResolvedEntry) {
	slides := make([]Slide, 0, len(entry.Images))
	for _, url := range entry.Images {
		slides = append(slides, Slide{URL: url})
	}

	s.carousel.ReplaceSlides(slides)
	s.carousel.GoToSlide(0)
	s.active = entry.Name
	s.hasActive = true
}
