package main

import (
	"fmt"

	"github.com/signadot/tony-edit/parse"
	"github.com/signadot/tony-edit/query"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a query and a value", cli.ErrUsage)
	}
	q := queryArg(args[0])
	valTree, err := parse.Parse([]byte(args[1]))
	if err != nil {
		return fmt.Errorf("bad value %q: %w", args[1], err)
	}
	file := "-"
	if len(args) > 2 {
		file = args[2]
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
	for _, p := range paths {
		repl := valTree.Root.Clone()
		repl.MarkModifiedAll()
		if err := tree.Replace(p, repl); err != nil {
			return fmt.Errorf("error replacing %s: %w", p, err)
		}
	}
	return finish(cfg.MainConfig, cc, before, tree, file, cfg.DryRun, cfg.Backup)
}
