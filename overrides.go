package vdraw

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
	"github.com/gosuda/vdraw/parser"
	vdruntime "github.com/gosuda/vdraw/runtime"
	"github.com/gosuda/vdraw/typecheck"
)

var (
	ErrUnknownOverride = errors.New("no such declaration")
	ErrMissingOverride = errors.New("declaration has no default and was not set")
	ErrBadOverride     = errors.New("invalid override")
)

// ParseOverrides splits command-line style "name=value" pairs.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not name=value", ErrBadOverride, pair)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%w: %s set twice", ErrBadOverride, name)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}

// ResolveOverrides turns raw override text into values for the declaration
// fields of sig. Only declared names are accepted, every field without a
// default must be present, and each value must have the declared type.
func ResolveOverrides(sig typecheck.Signature, raw map[string]string) (map[string]vdruntime.Value, error) {
	names := make([]string, 0, len(raw))
	for k := range raw {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make(map[string]vdruntime.Value, len(raw))
	for _, name := range names {
		field, ok := sig[name]
		if !ok {
			return nil, fmt.Errorf("override %s: %w", name, ErrUnknownOverride)
		}
		v, err := overrideValue(field.Type, raw[name])
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", name, err)
		}
		out[name] = v
	}
	for _, name := range sig.Required() {
		if _, ok := out[name]; !ok {
			return nil, fmt.Errorf("override %s: %w", name, ErrMissingOverride)
		}
	}
	return out, nil
}

func overrideValue(want ast.Type, text string) (vdruntime.Value, error) {
	if want == ast.Color && strings.HasPrefix(text, "#") {
		c, err := colorful.Hex(text)
		if err != nil {
			return vdruntime.Value{}, fmt.Errorf("%w: %v", ErrBadOverride, err)
		}
		r, g, b := c.RGB255()
		return vdruntime.ColorOf(geom.Color{R: int64(r), G: int64(g), B: int64(b), A: 255}), nil
	}

	tree, err := parser.ParseExpr(text)
	if err != nil {
		return vdruntime.Value{}, fmt.Errorf("%w: %v", ErrBadOverride, err)
	}
	expr, err := ast.LowerExpr(tree)
	if err != nil {
		return vdruntime.Value{}, fmt.Errorf("%w: %v", ErrBadOverride, err)
	}
	got, err := typecheck.CheckExpr(typecheck.NewEnv(), expr)
	if err != nil {
		return vdruntime.Value{}, err
	}
	if _, ok := ast.Unify(want, got); !ok {
		return vdruntime.Value{}, fmt.Errorf("%w: want %s, got %s", typecheck.ErrMismatch, want, got)
	}
	return vdruntime.New(nil, nil).Eval(expr)
}
