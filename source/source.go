// Package source reads program files and turns them into lowered programs,
// resolving import paths relative to the importing file.
package source

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/parser"
)

// ErrImportCycle is returned when a file imports itself, directly or not.
var ErrImportCycle = errors.New("import cycle")

// Reader is the single file-system primitive the pipeline needs.
type Reader interface {
	ReadFile(name string) (string, error)
}

// OSReader reads from the local file system.
type OSReader struct{}

func (OSReader) ReadFile(name string) (string, error) {
	b, err := os.ReadFile(filepath.FromSlash(name))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MapReader serves files from memory, keyed by slash-separated path.
type MapReader map[string]string

func (m MapReader) ReadFile(name string) (string, error) {
	src, ok := m[path.Clean(name)]
	if !ok {
		return "", fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}
	return src, nil
}

// Loader reads, parses and lowers programs. Parsed programs are cached by
// path, and the chain of files currently being loaded through imports is
// tracked to reject cycles.
type Loader struct {
	reader Reader
	cache  map[string]*ast.Program
	active []string
}

func NewLoader(r Reader) *Loader {
	if r == nil {
		r = OSReader{}
	}
	return &Loader{reader: r, cache: map[string]*ast.Program{}}
}

// Resolve returns the path of an import written in the file from.
func Resolve(from, importPath string) string {
	if path.IsAbs(importPath) || from == "" {
		return path.Clean(importPath)
	}
	return path.Join(path.Dir(from), importPath)
}

// Load returns the lowered program stored at name.
func (l *Loader) Load(name string) (*ast.Program, error) {
	name = path.Clean(filepath.ToSlash(name))
	if prog, ok := l.cache[name]; ok {
		return prog, nil
	}
	src, err := l.reader.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return l.LoadSource(name, src)
}

// LoadSource parses and lowers src as if it had been read from name.
func (l *Loader) LoadSource(name, src string) (*ast.Program, error) {
	name = path.Clean(filepath.ToSlash(name))
	tree, err := parser.ParseProgram(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	prog, err := ast.Lower(tree, name)
	if err != nil {
		return nil, err
	}
	l.cache[name] = prog
	return prog, nil
}

// Enter marks name as being imported. The returned func must be called once
// the import has been processed.
func (l *Loader) Enter(name string) (func(), error) {
	for i, a := range l.active {
		if a == name {
			chain := append(append([]string(nil), l.active[i:]...), name)
			return nil, fmt.Errorf("%w: %s", ErrImportCycle, strings.Join(chain, " -> "))
		}
	}
	l.active = append(l.active, name)
	return func() { l.active = l.active[:len(l.active)-1] }, nil
}
