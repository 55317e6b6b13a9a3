package main

import (
	"fmt"

	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/query"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a query", cli.ErrUsage)
	}
	q := queryArg(args[0])
	if q == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		if err := getFile(cfg, cc, q, file); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, q, err)
		}
	}
	return nil
}

func getFile(cfg *GetConfig, cc *cli.Context, q, file string) error {
	tree, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	paths, err := query.Run(tree, q)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, p := range paths {
		if cfg.Paths {
			if _, err := fmt.Fprintln(cc.Out, p); err != nil {
				return err
			}
			continue
		}
		if err := encode.Encode(tree.Get(p), cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}
