package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// SliderMetaKey ключ мета записи с сериализованной картой цветов.
	SliderMetaKey = "_wslider_hash"

	// DefaultColorValue цвет кнопки для только что добавленного цвета.
	DefaultColorValue = "#cc0000"

	maxColorNameLen = 64
)

var (
	ErrEmptyColorName    = errors.New("color name is empty")
	ErrInvalidColorName  = errors.New("color name contains unsupported characters")
	ErrColorExists       = errors.New("color already exists")
	ErrColorNotFound     = errors.New("color not found")
	ErrInvalidColorValue = errors.New("color value must be #rrggbb")
	ErrInvalidRef        = errors.New("invalid image ref")
	ErrMalformedConfig   = errors.New("malformed slider config")
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ColorEntry один вариант карусели: именованный цвет и упорядоченные ссылки на изображения.
type ColorEntry struct {
	Name  string
	Color string
	Refs  []string
}

// SliderConfig карта цветов одной записи. Порядок вставки сохраняется, первый
// цвет активен по умолчанию.
type SliderConfig struct {
	order   []string
	entries map[string]ColorEntry
}

func NewSliderConfig() *SliderConfig {
	return &SliderConfig{
		entries: make(map[string]ColorEntry),
	}
}

// NewColorEntry возвращает цвет по умолчанию без изображений.
func NewColorEntry(name string) ColorEntry {
	return ColorEntry{
		Name:  name,
		Color: DefaultColorValue,
	}
}

// Validate проверяет имя, цвет и ссылки.
func (e ColorEntry) Validate() error {
	if err := ValidateColorName(e.Name); err != nil {
		return err
	}
	if err := ValidateColorValue(e.Color); err != nil {
		return err
	}
	return ValidateRefs(e.Refs)
}

// Add добавляет новый цвет. Имена сравниваются точно, с учетом регистра.
func (c *SliderConfig) Add(entry ColorEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if _, ok := c.entries[entry.Name]; ok {
		return fmt.Errorf("%w: %q", ErrColorExists, entry.Name)
	}

	entry.Refs = copyRefs(entry.Refs)
	c.order = append(c.order, entry.Name)
	c.entries[entry.Name] = entry

	return nil
}

// Replace перезаписывает существующий цвет на его месте.
func (c *SliderConfig) Replace(entry ColorEntry) error {
	if _, ok := c.entries[entry.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrColorNotFound, entry.Name)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.Refs = copyRefs(entry.Refs)
	c.entries[entry.Name] = entry

	return nil
}

// Remove удаляет цвет и сообщает, был ли он.
func (c *SliderConfig) Remove(name string) bool {
	if _, ok := c.entries[name]; !ok {
		return false
	}

	delete(c.entries, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return true
}

func (c *SliderConfig) Get(name string) (ColorEntry, bool) {
	entry, ok := c.entries[name]
	if !ok {
		return ColorEntry{}, false
	}
	entry.Refs = copyRefs(entry.Refs)
	return entry, true
}

func (c *SliderConfig) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

func (c *SliderConfig) Len() int {
	return len(c.order)
}

// Names возвращает имена в порядке вставки.
func (c *SliderConfig) Names() []string {
	return append([]string(nil), c.order...)
}

// Entries возвращает копии всех цветов в порядке вставки.
func (c *SliderConfig) Entries() []ColorEntry {
	out := make([]ColorEntry, 0, len(c.order))
	for _, name := range c.order {
		entry, _ := c.Get(name)
		out = append(out, entry)
	}
	return out
}

// First возвращает цвет, активный по умолчанию.
func (c *SliderConfig) First() (ColorEntry, bool) {
	if len(c.order) == 0 {
		return ColorEntry{}, false
	}
	return c.Get(c.order[0])
}

// AllRefs возвращает все ссылки всех цветов, включая повторы.
func (c *SliderConfig) AllRefs() []string {
	var refs []string
	for _, name := range c.order {
		refs = append(refs, c.entries[name].Refs...)
	}
	return refs
}

func (c *SliderConfig) Clone() *SliderConfig {
	out := NewSliderConfig()
	for _, entry := range c.Entries() {
		out.order = append(out.order, entry.Name)
		out.entries[entry.Name] = entry
	}
	return out
}

// ValidateColorName допускает буквы, цифры, пробел, '-' и '_': имя попадает
// в data-атрибуты и селекторы.
func ValidateColorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyColorName
	}
	if utf8.RuneCountInString(name) > maxColorNameLen {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidColorName, maxColorNameLen)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: leading or trailing space", ErrInvalidColorName)
	}

	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == ' ', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidColorName, r)
		}
	}

	return nil
}

func ValidateColorValue(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColorValue, color)
	}
	return nil
}

// ValidateRefs отклоняет ссылки, которые не переживут склейку через запятую.
func ValidateRefs(refs []string) error {
	for i, ref := range refs {
		if ref == "" || ref != strings.TrimSpace(ref) || strings.Contains(ref, ",") {
			return fmt.Errorf("%w at %d: %q", ErrInvalidRef, i, ref)
		}
	}
	return nil
}

// JoinRefs склеивает ссылки через запятую, "" если их нет.
func JoinRefs(refs []string) string {
	return strings.Join(refs, ",")
}

// SplitRefs разбирает список через запятую, пустые сегменты пропускаются.
func SplitRefs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var refs []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		refs = append(refs, part)
	}
	return refs
}

func copyRefs(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	return append([]string(nil), refs...)
}
