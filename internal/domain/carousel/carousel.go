// Package carousel drives the slide set of the w-slider widget.
package carousel

import (
	"errors"
)

var ErrNoContainer = errors.New("carousel container is required")

const (
	DefaultContainer = ".w-slider-container"
	EffectFade       = "fade"
)

// Options mirror the runtime options passed to the frontend carousel.
type Options struct {
	Loop           bool   `json:"loop"`
	Effect         string `json:"effect"`
	Speed          int    `json:"speed"`
	AllowTouchMove bool   `json:"allowTouchMove"`
}

func DefaultOptions() Options {
	return Options{
		Loop:           true,
		Effect:         EffectFade,
		Speed:          10,
		AllowTouchMove: false,
	}
}

type Slide struct {
	URL string `json:"url"`
}

// Carousel is the slide component the switcher drives. Animation, touch handling
// and navigation belong to the implementation.
type Carousel interface {
	Init(container string, opts Options) error
	ReplaceSlides(slides []Slide)
	GoToSlide(index int)
	Next()
	Prev()
}

// Track is an in-process Carousel. It backs the server-side initial render.
type Track struct {
	container string
	opts      Options
	slides    []Slide
	index     int
}

func NewTrack() *Track {
	return &Track{}
}

func (t *Track) Init(container string, opts Options) error {
	if container == "" {
		return ErrNoContainer
	}
	t.container = container
	t.opts = opts
	t.index = 0
	return nil
}

func (t *Track) ReplaceSlides(slides []Slide) {
	t.slides = append([]Slide(nil), slides...)
	if t.index >= len(t.slides) {
		t.index = 0
	}
}

func (t *Track) GoToSlide(index int) {
	n := len(t.slides)
	switch {
	case n == 0:
		t.index = 0
	case t.opts.Loop:
		t.index = ((index % n) + n) % n
	case index < 0:
		t.index = 0
	case index >= n:
		t.index = n - 1
	default:
		t.index = index
	}
}

func (t *Track) Next() {
	t.GoToSlide(t.index + 1)
}

func (t *Track) Prev() {
	t.GoToSlide(t.index - 1)
}

func (t *Track) Container() string {
	return t.container
}

func (t *Track) Options() Options {
	return t.opts
}

func (t *Track) Index() int {
	return t.index
}

func (t *Track) Slides() []Slide {
	return append([]Slide(nil), t.slides...)
}

func (t *Track) Current() (Slide, bool) {
	if len(t.slides) == 0 {
		return Slide{}, false
	}
	return t.slides[t.index], true
}
