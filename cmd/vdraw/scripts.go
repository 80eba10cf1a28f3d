package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuda/vdraw"
)

// findSources lists the program files under root.
func findSources(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".vd" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .vd files found under %s", root)
	}
	return files, nil
}

// runBatch renders every program under a directory next to its source.
// Programs that draw nothing or need overrides that were not given are
// skipped; they are usually shape libraries meant to be imported.
func runBatch(cfg appConfig) error {
	raw, err := vdraw.ParseOverrides(cfg.overrides)
	if err != nil {
		return err
	}
	files, err := findSources(cfg.input)
	if err != nil {
		return err
	}
	rendered := 0
	for _, file := range files {
		fileCfg := cfg
		fileCfg.input = file
		prog, err := compile(fileCfg)
		if err != nil {
			return err
		}
		own := map[string]string{}
		sig := prog.Signature()
		for k, v := range raw {
			if _, ok := sig[k]; ok {
				own[k] = v
			}
		}
		res, err := render(prog, own)
		if err != nil {
			cfg.log.Warn("skip %s: %v", file, err)
			continue
		}
		out := strings.TrimSuffix(file, filepath.Ext(file)) + ".svg"
		if err := os.WriteFile(out, []byte(res.svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		cfg.log.Info("wrote %s (%d figures)", out, res.figures)
		rendered++
	}
	cfg.log.Info("rendered %d of %d programs", rendered, len(files))
	return nil
}
