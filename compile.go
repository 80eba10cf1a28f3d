package vdraw

import (
	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
	"github.com/gosuda/vdraw/internal/logger"
	vdruntime "github.com/gosuda/vdraw/runtime"
	"github.com/gosuda/vdraw/source"
	"github.com/gosuda/vdraw/svg"
	"github.com/gosuda/vdraw/typecheck"
)

// Options configures compilation. The zero value reads from the local file
// system and logs nothing.
type Options struct {
	Reader source.Reader
	Log    *logger.Logger
}

// Program is a loaded and type-checked program, ready to run.
type Program struct {
	Main   *ast.Program
	Types  *typecheck.Env
	loader *source.Loader
	log    *logger.Logger
}

// Compile loads main from an in-memory file set and type-checks it.
// The map key is the slash-separated file name (e.g. "shapes/box.vd").
func Compile(files map[string]string, main string) (*Program, error) {
	return CompileFile(main, Options{Reader: source.MapReader(files)})
}

// CompileFile loads the program at name, with its imports, and type-checks
// it.
func CompileFile(name string, opts Options) (*Program, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	ld := source.NewLoader(opts.Reader)

	done := log.Step("load " + name)
	prog, err := ld.Load(name)
	done(err)
	if err != nil {
		return nil, err
	}

	done = log.Step("check " + prog.Path)
	env, err := typecheck.Check(prog, ld)
	done(err)
	if err != nil {
		return nil, err
	}
	return &Program{Main: prog, Types: env, loader: ld, log: log}, nil
}

// Parse only returns the lowered program for tooling use.
func Parse(name, src string) (*ast.Program, error) {
	return source.NewLoader(source.MapReader{}).LoadSource(name, src)
}

// Signature is the declaration-field signature of the main program.
func (p *Program) Signature() typecheck.Signature {
	return p.Types.Decls()
}

// Run resolves the raw overrides against the signature and interprets the
// program.
func (p *Program) Run(overrides map[string]string) (*vdruntime.Env, error) {
	values, err := ResolveOverrides(p.Signature(), overrides)
	if err != nil {
		return nil, err
	}
	done := p.log.Step("run " + p.Main.Path)
	env, err := vdruntime.Interpret(p.Main, p.loader, values)
	done(err)
	return env, err
}

// Shape runs the program and unions its draw list.
func (p *Program) Shape(overrides map[string]string) (geom.FigureArray, error) {
	env, err := p.Run(overrides)
	if err != nil {
		return nil, err
	}
	return env.Shape(), nil
}

// Render runs the program and renders everything it draws into one
// document.
func (p *Program) Render(overrides map[string]string) (*svg.Document, error) {
	shape, err := p.Shape(overrides)
	if err != nil {
		return nil, err
	}
	done := p.log.Step("render " + p.Main.Path)
	doc, err := svg.Render(shape)
	done(err)
	if err != nil {
		return nil, err
	}
	p.log.Rendered(p.Main.Path, len(doc.Paths), doc.ViewBox)
	return doc, nil
}
