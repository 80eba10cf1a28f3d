package main

import (
	"strings"

	"github.com/gosuda/vdraw/internal/logger"
)

type appConfig struct {
	input     string
	output    string
	overrides []string
	copy      bool
	log       *logger.Logger
}

// setFlags collects repeated -set name=value flags.
type setFlags []string

func (s *setFlags) String() string {
	return strings.Join(*s, ",")
}

func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type renderDoneMsg struct {
	seq    int
	result renderResult
	err    error
}

type fieldInput struct {
	name     string
	typeName string
	required bool
}
