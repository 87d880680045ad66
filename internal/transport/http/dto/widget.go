package dto

import "encoding/json"

type WidgetResponse struct {
	Name          string            `json:"name"`
	Title         string            `json:"title"`
	Icon          string            `json:"icon"`
	Categories    []string          `json:"categories"`
	StyleDepends  []string          `json:"style_depends"`
	ScriptDepends []string          `json:"script_depends"`
	Settings      map[string]string `json:"settings"`
	Schema        json.RawMessage   `json:"schema" swaggertype:"object"`
}
