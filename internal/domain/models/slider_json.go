package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// storedEntry сохраняемая форма одного цвета. Images всегда строка через
// запятую, JSON-массив там не проходит схему.
type storedEntry struct {
	Color  *string `json:"color"`
	Images *string `json:"images"`
}

type encodedEntry struct {
	Color  string `json:"color"`
	Images string `json:"images"`
}

type resolvedEncodedEntry struct {
	Color     string   `json:"color"`
	Images    string   `json:"images"`
	ImageURLs []string `json:"image_urls"`
}

// Serialize возвращает канонический JSON конфигурации.
func (c *SliderConfig) Serialize() string {
	b, _ := c.MarshalJSON()
	return string(b)
}

// MarshalJSON пишет цвета объектом по именам в порядке вставки.
func (c *SliderConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		entry := c.entries[name]
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, name, encodedEntry{
			Color:  entry.Color,
			Images: JoinRefs(entry.Refs),
		}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON разбирает сохраненный объект с сохранением порядка ключей.
// Без images галерея пуста. Неверные типы, имена, цвета и повторные ключи это ошибка.
func (c *SliderConfig) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	next := NewSliderConfig()
	if tok == nil {
		*c = *next
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object, got %v", ErrMalformedConfig, tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
		}
		name, _ := keyTok.(string)

		var raw storedEntry
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: entry %q: %v", ErrMalformedConfig, name, err)
		}
		if raw.Color == nil {
			return fmt.Errorf("%w: entry %q has no color", ErrMalformedConfig, name)
		}

		entry := ColorEntry{Name: name, Color: *raw.Color}
		if raw.Images != nil {
			entry.Refs = SplitRefs(*raw.Images)
		}
		if err := next.Add(entry); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", ErrMalformedConfig)
	}

	*c = *next
	return nil
}

// ParseSliderConfig строго разбирает сохраненное значение. Пустая строка это пустая конфигурация.
func ParseSliderConfig(raw string) (*SliderConfig, error) {
	cfg := NewSliderConfig()
	if strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(raw), cfg); err != nil {
		if errors.Is(err, ErrMalformedConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	return cfg, nil
}

// LoadSliderConfig не возвращает ошибок, неразбираемое значение это "цветов пока нет".
func LoadSliderConfig(raw string) *SliderConfig {
	cfg, err := ParseSliderConfig(raw)
	if err != nil {
		return NewSliderConfig()
	}
	return cfg
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
