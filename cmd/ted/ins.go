package main

import (
	"fmt"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
	"github.com/signadot/tony-edit/parse"
	"github.com/signadot/tony-edit/query"

	"github.com/scott-cotton/cli"
)

func ins(cfg *InsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ins.Parse(cc, args)
	if err != nil {
		cfg.Ins.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: ins requires a query and a value", cli.ErrUsage)
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
		if err := insertAt(cfg, tree, p, valTree.Root); err != nil {
			return fmt.Errorf("error inserting at %s: %w", p, err)
		}
	}
	return finish(cfg.MainConfig, cc, before, tree, file, cfg.DryRun, cfg.Backup)
}

func insertAt(cfg *InsConfig, tree *doc.Tree, p doc.Path, val *ir.Node) error {
	target := tree.Get(p)
	if target == nil {
		return fmt.Errorf("no node at %s", p)
	}
	n := val.Clone()
	n.MarkModifiedAll()
	idx := cfg.At
	if idx < 0 {
		idx = len(target.Values)
	}
	switch target.Type {
	case ir.ObjectType:
		if cfg.Key == "" {
			return fmt.Errorf("%w: object insert requires -k", cli.ErrUsage)
		}
		return tree.InsertInObject(p.Child(idx), cfg.Key, n)
	case ir.ArrayType, ir.MultiDocType:
		return tree.InsertInArray(p.Child(idx), n)
	default:
		return fmt.Errorf("%s is a %s, not a container", p, target.Type)
	}
}
