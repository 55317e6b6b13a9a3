package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/parse"
	"github.com/signadot/tony-edit/textdiff"

	"github.com/scott-cotton/cli"
)

func readDoc(cfg *MainConfig, cc *cli.Context, path string) (*doc.Tree, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	if cfg.yamlIn(path) {
		return parse.ParseYAML(d)
	}
	return parse.Parse(d)
}

// yamlIn decides whether path holds block YAML rather than flow syntax.
// Explicit flags win over the file suffix.
func (cfg *MainConfig) yamlIn(path string) bool {
	switch {
	case cfg.Y:
		return true
	case cfg.J:
		return false
	case cfg.InFormat != nil:
		return cfg.InFormat.IsYAML()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// queryArg normalizes a command line query, allowing the leading $ to be
// dropped.
func queryArg(a string) string {
	if a == "" || a[0] == '$' {
		return a
	}
	if a[0] != '.' && a[0] != '[' {
		return "$." + a
	}
	return "$" + a
}

// finish is the common tail of the editing subcommands: print a diff under
// -n, otherwise write the result to the target.
func finish(cfg *MainConfig, cc *cli.Context, before, after *doc.Tree, file string, dryRun, backup bool) error {
	if dryRun {
		// uncolored rendering; the diff gets its own coloring
		lines, err := textdiff.Trees(before, after,
			encode.EncodeFormat(cfg.outFormat()), encode.Preserve(true))
		if err != nil {
			return err
		}
		return textdiff.Render(cc.Out, lines, cfg.coloredOut(cc.Out))
	}
	if file == "-" {
		opts := append(cfg.encOpts(cc.Out), encode.Preserve(true))
		return encode.EncodeTree(after, cc.Out, opts...)
	}
	fileOpts := append(cfg.encOpts(nil), encode.Preserve(true))
	return encode.WriteFile(after, file, backup, fileOpts...)
}
