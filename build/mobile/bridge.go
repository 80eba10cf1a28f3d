package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/vdraw"
)

type renderResult struct {
	SVG      string   `json:"svg,omitempty"`
	Required []string `json:"required,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func reply(result renderResult) string {
	b, _ := json.Marshal(result)
	return string(b)
}

// Render compiles the program set provided as a JSON map, runs entry and
// returns the SVG document as JSON.
// filesJSON format: {"main.vd":"...","shapes/box.vd":"..."}
// overridesJSON format: {"width":"3","ink":"#ff0000"}
func Render(filesJSON, entry, overridesJSON string) string {
	var result renderResult

	var files map[string]string
	if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
		result.Error = fmt.Sprintf("invalid files json: %v", err)
		return reply(result)
	}
	if len(files) == 0 {
		result.Error = "no files provided"
		return reply(result)
	}

	entry = strings.TrimSpace(entry)
	if entry == "" {
		entry = "main.vd"
	}

	overrides := map[string]string{}
	if strings.TrimSpace(overridesJSON) != "" {
		if err := json.Unmarshal([]byte(overridesJSON), &overrides); err != nil {
			result.Error = fmt.Sprintf("invalid overrides json: %v", err)
			return reply(result)
		}
	}

	prog, err := vdraw.Compile(files, entry)
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
		return reply(result)
	}
	result.Required = prog.Signature().Required()

	doc, err := prog.Render(overrides)
	if err != nil {
		result.Error = fmt.Sprintf("render: %v", err)
		return reply(result)
	}
	result.SVG = doc.String()
	return reply(result)
}
