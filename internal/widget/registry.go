package widget

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrDuplicateWidget  = errors.New("widget already registered")
	ErrUnknownWidget    = errors.New("widget not registered")
	ErrInvalidWidget    = errors.New("widget definition invalid")
	ErrSettingsInvalid  = errors.New("widget settings invalid")
	ErrSchemaCompile    = errors.New("widget schema compile failed")
	errEmptyWidgetName  = errors.New("empty widget name")
	errEmptyControlName = errors.New("empty control name")
)

// SettingsError lists every settings value the control schema rejected.
type SettingsError struct {
	Widget string
	Issues []string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("widget %s: %s", e.Widget, strings.Join(e.Issues, "; "))
}

func (e *SettingsError) Unwrap() error {
	return ErrSettingsInvalid
}

// Registration is a widget together with its compiled control schema and effective settings.
type Registration struct {
	Widget   Widget
	Schema   map[string]any
	Settings map[string]string

	compiled *jsonschema.Schema
}

// Validate checks settings against the widget's control schema.
func (r *Registration) Validate(settings map[string]string) error {
	payload := make(map[string]any, len(settings))
	for k, v := range settings {
		payload[k] = v
	}

	if err := r.compiled.Validate(payload); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &SettingsError{Widget: r.Widget.Name(), Issues: collectIssues(verr)}
		}
		return fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
	}

	return nil
}

// Merge returns the effective settings with overrides applied, then validates them.
func (r *Registration) Merge(overrides map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(r.Settings)+len(overrides))
	for k, v := range r.Settings {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}

	if err := r.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Registry holds widgets registered at startup. Configured overrides are applied
// on top of each widget's control defaults.
type Registry struct {
	mu        sync.RWMutex
	entries   map[string]*Registration
	overrides map[string]map[string]string
}

func NewRegistry(overrides map[string]map[string]string) *Registry {
	return &Registry{
		entries:   make(map[string]*Registration),
		overrides: overrides,
	}
}

func (r *Registry) Register(w Widget) error {
	name := w.Name()
	if name == "" {
		return fmt.Errorf("%w: %v", ErrInvalidWidget, errEmptyWidgetName)
	}

	schema, err := ControlSchema(w.Controls())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidWidget, name, err)
	}

	compiled, err := compileSchema(name, schema)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaCompile, name, err)
	}

	reg := &Registration{
		Widget:   w,
		Schema:   schema,
		Settings: make(map[string]string),
		compiled: compiled,
	}
	for _, c := range w.Controls() {
		reg.Settings[c.Name] = c.Default
	}

	settings, err := reg.Merge(r.overrides[name])
	if err != nil {
		return err
	}
	reg.Settings = settings

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWidget, name)
	}
	r.entries[name] = reg

	return nil
}

func (r *Registry) Get(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	return reg, ok
}

// List returns registrations sorted by name.
func (r *Registry) List() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Registration, 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Widget.Name() < out[j].Widget.Name()
	})

	return out
}

// ControlSchema builds the JSON Schema of a widget's settings object.
func ControlSchema(controls []Control) (map[string]any, error) {
	properties := make(map[string]any, len(controls))
	for _, c := range controls {
		if c.Name == "" {
			return nil, errEmptyControlName
		}
		if _, dup := properties[c.Name]; dup {
			return nil, fmt.Errorf("duplicate control %q", c.Name)
		}

		prop := map[string]any{
			"type":    "string",
			"title":   c.Label,
			"default": c.Default,
		}
		switch c.Type {
		case ControlText:
			prop["maxLength"] = 255
		case ControlTextarea, ControlWysiwyg:
		default:
			return nil, fmt.Errorf("control %q: unknown type %q", c.Name, c.Type)
		}
		properties[c.Name] = prop
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}, nil
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	url := name + ".schema.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}

func collectIssues(err *jsonschema.ValidationError) []string {
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := node.InstanceLocation
			if loc == "" {
				loc = "#"
			}
			issues = append(issues, loc+": "+node.Message)
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
