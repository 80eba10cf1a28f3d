package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/gosuda/vdraw/internal/logger"
)

func main() {
	var sets setFlags
	output := flag.String("o", "", "output file (default: stdout, or <name>.svg for a directory)")
	interactive := flag.Bool("i", false, "edit declaration fields in a terminal form before rendering")
	copyOut := flag.Bool("copy", false, "also copy the rendered SVG to the clipboard")
	level := flag.String("log", "warn", "log level: debug|info|warn|error|off")
	flag.Var(&sets, "set", "override a declaration field, name=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vdraw [flags] <file.vd | dir>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	lv, err := logger.ParseLevel(strings.TrimSpace(*level))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := appConfig{
		input:     flag.Arg(0),
		output:    *output,
		overrides: sets,
		copy:      *copyOut,
		log:       logger.New(os.Stderr, lv, "vdraw"),
	}

	if info, err := os.Stat(cfg.input); err == nil && info.IsDir() {
		if err := runBatch(cfg); err != nil {
			fail(err)
		}
		return
	}

	if !*interactive {
		if err := runPlain(cfg); err != nil {
			fail(err)
		}
		return
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fail(fmt.Errorf("-i needs an interactive terminal"))
	}
	m, err := newModel(cfg)
	if err != nil {
		fail(err)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(model); ok && fm.submitted {
		if err := finish(cfg, fm.result); err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = errStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
