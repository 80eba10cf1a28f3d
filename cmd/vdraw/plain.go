package main

import (
	"github.com/gosuda/vdraw"
)

func runPlain(cfg appConfig) error {
	raw, err := vdraw.ParseOverrides(cfg.overrides)
	if err != nil {
		return err
	}
	prog, err := compile(cfg)
	if err != nil {
		return err
	}
	res, err := render(prog, raw)
	if err != nil {
		return err
	}
	return finish(cfg, res)
}
