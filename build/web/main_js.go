//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/gosuda/vdraw"
)

type renderResult struct {
	SVG      string   `json:"svg,omitempty"`
	Required []string `json:"required,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func reply(result renderResult) any {
	b, _ := json.Marshal(result)
	return string(b)
}

// renderProgram is exposed as vdrawRender(filesJSON, main, overridesJSON).
func renderProgram(this js.Value, args []js.Value) any {
	var result renderResult
	if len(args) < 1 {
		result.Error = "vdrawRender requires files JSON object"
		return reply(result)
	}

	var files map[string]string
	if err := json.Unmarshal([]byte(args[0].String()), &files); err != nil {
		result.Error = fmt.Sprintf("invalid files json: %v", err)
		return reply(result)
	}
	if len(files) == 0 {
		result.Error = "no files provided"
		return reply(result)
	}

	entry := "main.vd"
	if len(args) > 1 {
		if e := strings.TrimSpace(args[1].String()); e != "" {
			entry = e
		}
	}

	overrides := map[string]string{}
	if len(args) > 2 && strings.TrimSpace(args[2].String()) != "" {
		if err := json.Unmarshal([]byte(args[2].String()), &overrides); err != nil {
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

func main() {
	js.Global().Set("vdrawRender", js.FuncOf(renderProgram))
	select {}
}
