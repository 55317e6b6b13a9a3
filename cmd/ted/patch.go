package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/format"
	"github.com/signadot/tony-edit/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	pd, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read patch %q: %w", args[0], err)
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return fmt.Errorf("bad patch %q: %w", args[0], err)
	}
	file := "-"
	if len(args) > 1 {
		file = args[1]
	}
	tree, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	before := tree.Clone()

	// apply over the JSON rendering and re-parse; comments and anchors
	// do not survive an RFC 6902 round trip
	jbuf := bytes.NewBuffer(nil)
	if err := encode.EncodeTree(tree, jbuf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return err
	}
	jOut, err := ops.Apply(bytes.TrimSpace(jbuf.Bytes()))
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	patched, err := parse.Parse(jOut)
	if err != nil {
		return fmt.Errorf("error decoding patch result: %w", err)
	}
	// drop the intermediate JSON source so the result renders canonically
	res := doc.New(patched.Root)
	return finish(cfg.MainConfig, cc, before, res, file, cfg.DryRun, cfg.Backup)
}
