// Package editor holds the color/gallery editor working set for one open meta box.
package editor

import (
	"errors"
	"fmt"

	"wslider/internal/domain/models"
)

// ErrConfirmationRequired guards destructive actions that were not confirmed.
var ErrConfirmationRequired = errors.New("confirmation required")

// Block is one color block as the meta box shows it.
type Block struct {
	Name     string
	Color    string
	Refs     []string
	Images   string
	Previews []string
}

type Option func(*Form)

// WithChangeHook registers fn to receive the serialized working set after every mutation.
func WithChangeHook(fn func(serialized string)) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}

// Form is the in-memory working set of the editor. Every mutation re-serializes
// the set into the hidden value that is submitted with the post.
type Form struct {
	cfg      *models.SliderConfig
	previews map[string][]string
	hidden   string
	onChange func(string)
}

func NewForm(cfg *models.SliderConfig, opts ...Option) *Form {
	if cfg == nil {
		cfg = models.NewSliderConfig()
	}

	f := &Form{
		cfg:      cfg.Clone(),
		previews: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.hidden = f.cfg.Serialize()

	return f
}

// Restore rebuilds a form from a serialized working set and its cached previews.
func Restore(hash string, previews map[string][]string, opts ...Option) (*Form, error) {
	cfg, err := models.ParseSliderConfig(hash)
	if err != nil {
		return nil, err
	}

	f := NewForm(cfg, opts...)
	for name, thumbs := range previews {
		if cfg.Has(name) && len(thumbs) > 0 {
			f.previews[name] = append([]string(nil), thumbs...)
		}
	}

	return f, nil
}

// AddColor appends a color with the default swatch and an empty gallery.
func (f *Form) AddColor(name string) error {
	if err := f.cfg.Add(models.NewColorEntry(name)); err != nil {
		return err
	}
	f.changed()
	return nil
}

// RemoveColor deletes a color block. Unconfirmed calls are refused; unknown names are a no-op.
func (f *Form) RemoveColor(name string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("remove color %q: %w", name, ErrConfirmationRequired)
	}
	if !f.cfg.Remove(name) {
		return nil
	}
	delete(f.previews, name)
	f.changed()
	return nil
}

// SetGallery replaces the refs of a color wholesale and drops its preview thumbnails.
// Replaying the same selection leaves the form unchanged.
func (f *Form) SetGallery(name string, refs []string) error {
	entry, ok := f.cfg.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrColorNotFound, name)
	}

	entry.Refs = refs
	if err := f.cfg.Replace(entry); err != nil {
		return err
	}
	delete(f.previews, name)
	f.changed()
	return nil
}

// SetPreviews caches thumbnail URLs for a color. They are not serialized.
func (f *Form) SetPreviews(name string, thumbs []string) error {
	if !f.cfg.Has(name) {
		return fmt.Errorf("%w: %q", models.ErrColorNotFound, name)
	}
	if len(thumbs) == 0 {
		delete(f.previews, name)
		return nil
	}
	f.previews[name] = append([]string(nil), thumbs...)
	return nil
}

// SetColorValue replaces the swatch color of a color block.
func (f *Form) SetColorValue(name, color string) error {
	entry, ok := f.cfg.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrColorNotFound, name)
	}

	entry.Color = color
	if err := f.cfg.Replace(entry); err != nil {
		return err
	}
	f.changed()
	return nil
}

// Serialize encodes the current working set.
func (f *Form) Serialize() string {
	return f.cfg.Serialize()
}

// Hidden is the value of the submitted hidden field.
func (f *Form) Hidden() string {
	return f.hidden
}

func (f *Form) Config() *models.SliderConfig {
	return f.cfg.Clone()
}

func (f *Form) Previews(name string) []string {
	return append([]string(nil), f.previews[name]...)
}

// AllPreviews returns a copy of the preview cache keyed by color name.
func (f *Form) AllPreviews() map[string][]string {
	out := make(map[string][]string, len(f.previews))
	for name, thumbs := range f.previews {
		out[name] = append([]string(nil), thumbs...)
	}
	return out
}

func (f *Form) Blocks() []Block {
	entries := f.cfg.Entries()
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, Block{
			Name:     e.Name,
			Color:    e.Color,
			Refs:     e.Refs,
			Images:   models.JoinRefs(e.Refs),
			Previews: f.Previews(e.Name),
		})
	}
	return blocks
}

func (f *Form) changed() {
	f.hidden = f.cfg.Serialize()
	if f.onChange != nil {
		f.onChange(f.hidden)
	}
}
