package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"github.com/gosuda/vdraw"
)

type renderResult struct {
	svg     string
	figures int
}

func compile(cfg appConfig) (*vdraw.Program, error) {
	prog, err := vdraw.CompileFile(cfg.input, vdraw.Options{Log: cfg.log})
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", cfg.input, err)
	}
	return prog, nil
}

func render(prog *vdraw.Program, raw map[string]string) (renderResult, error) {
	doc, err := prog.Render(raw)
	if err != nil {
		return renderResult{}, err
	}
	return renderResult{svg: doc.String(), figures: len(doc.Paths)}, nil
}

// finish writes a rendered document to the configured output and, when
// asked, to the clipboard.
func finish(cfg appConfig, res renderResult) error {
	if cfg.output == "" {
		if _, err := os.Stdout.WriteString(res.svg); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(cfg.output, []byte(res.svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.output, err)
		}
		cfg.log.Info("wrote %s (%d figures)", cfg.output, res.figures)
	}
	if cfg.copy {
		if err := clipboard.WriteAll(res.svg); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		cfg.log.Info("copied SVG to clipboard")
	}
	return nil
}
