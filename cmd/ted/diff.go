package main

import (
	"fmt"

	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/textdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := readDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	// canonical renderings on both sides: formatting drift alone
	// compares equal
	lines, err := textdiff.Trees(a, b, encode.EncodeFormat(cfg.outFormat()))
	if err != nil {
		return err
	}
	if err := textdiff.Render(cc.Out, lines, cfg.coloredOut(cc.Out)); err != nil {
		return err
	}
	if textdiff.Changed(lines) {
		return cli.ExitCodeErr(1)
	}
	return nil
}
