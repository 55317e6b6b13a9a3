package main

import (
	"fmt"

	"github.com/signadot/tony-edit/query"

	"github.com/scott-cotton/cli"
)

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: del requires one argument, a query", cli.ErrUsage)
	}
	q := queryArg(args[0])
	file := "-"
	if len(args) > 1 {
		file = args[1]
	}
	tree, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	before := tree.Clone()
	paths, err := query.Run(tree, q)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no matches for %s in %s", q, file)
	}
	// back to front, so earlier deletes don't shift later targets
	for i := len(paths) - 1; i >= 0; i-- {
		if err := tree.Delete(paths[i]); err != nil {
			return fmt.Errorf("error deleting %s: %w", paths[i], err)
		}
	}
	return finish(cfg.MainConfig, cc, before, tree, file, cfg.DryRun, cfg.Backup)
}
