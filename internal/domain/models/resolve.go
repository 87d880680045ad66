package models

import (
	"bytes"
)

// AssetLookup превращает ссылку на изображение в URL. ok false, если вложение
// удалено или ссылка неизвестна.
type AssetLookup func(ref string) (url string, ok bool)

// ResolvedEntry цвет со ссылками, превращенными в URL.
type ResolvedEntry struct {
	Name    string
	Color   string
	Refs    []string
	Images  []string
	Dropped int
}

// ResolvedSliderConfig копия SliderConfig для рендера, никогда не сохраняется.
type ResolvedSliderConfig struct {
	entries []ResolvedEntry
	index   map[string]int
}

// Resolve ищет каждую ссылку по порядку. Нерезолвленные ссылки отбрасываются
// без ошибки, цвета без изображений остаются.
func Resolve(cfg *SliderConfig, lookup AssetLookup) *ResolvedSliderConfig {
	out := &ResolvedSliderConfig{index: make(map[string]int)}
	if cfg == nil {
		return out
	}

	for _, entry := range cfg.Entries() {
		resolved := ResolvedEntry{
			Name:   entry.Name,
			Color:  entry.Color,
			Refs:   entry.Refs,
			Images: []string{},
		}
		for _, ref := range entry.Refs {
			if lookup == nil {
				resolved.Dropped++
				continue
			}
			url, ok := lookup(ref)
			if !ok || url == "" {
				resolved.Dropped++
				continue
			}
			resolved.Images = append(resolved.Images, url)
		}

		out.index[entry.Name] = len(out.entries)
		out.entries = append(out.entries, resolved)
	}

	return out
}

func (r *ResolvedSliderConfig) Get(name string) (ResolvedEntry, bool) {
	i, ok := r.index[name]
	if !ok {
		return ResolvedEntry{}, false
	}
	return r.entries[i], true
}

func (r *ResolvedSliderConfig) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *ResolvedSliderConfig) First() (ResolvedEntry, bool) {
	if len(r.entries) == 0 {
		return ResolvedEntry{}, false
	}
	return r.entries[0], true
}

func (r *ResolvedSliderConfig) Entries() []ResolvedEntry {
	return append([]ResolvedEntry(nil), r.entries...)
}

func (r *ResolvedSliderConfig) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	return names
}

func (r *ResolvedSliderConfig) Len() int {
	return len(r.entries)
}

// Dropped число отброшенных ссылок по всем цветам.
func (r *ResolvedSliderConfig) Dropped() int {
	total := 0
	for _, e := range r.entries {
		total += e.Dropped
	}
	return total
}

// MarshalJSON пишет сохраняемую форму плюс image_urls в порядке вставки.
func (r *ResolvedSliderConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, e.Name, resolvedEncodedEntry{
			Color:     e.Color,
			Images:    JoinRefs(e.Refs),
			ImageURLs: e.Images,
		}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
