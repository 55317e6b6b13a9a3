package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-edit/encode"
	"github.com/signadot/tony-edit/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Gops  bool `cli:"name=gops desc='start a gops diagnostics agent'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) outFormat() format.Format {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) coloredOut(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig

	Paths bool `cli:"name=p desc='print match paths instead of values'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	DryRun bool `cli:"name=n desc='print a diff instead of writing'"`
	Backup bool `cli:"name=b desc='keep a .bak of the previous contents'"`

	Set *cli.Command
}

type DelConfig struct {
	*MainConfig

	DryRun bool `cli:"name=n desc='print a diff instead of writing'"`
	Backup bool `cli:"name=b desc='keep a .bak of the previous contents'"`

	Del *cli.Command
}

type InsConfig struct {
	*MainConfig

	Key    string `cli:"name=k desc='object key to insert under'"`
	At     int    `cli:"name=at desc='insert position (default append)'"`
	DryRun bool   `cli:"name=n desc='print a diff instead of writing'"`
	Backup bool   `cli:"name=b desc='keep a .bak of the previous contents'"`

	Ins *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	DryRun bool `cli:"name=n desc='print a diff instead of writing'"`
	Backup bool `cli:"name=b desc='keep a .bak of the previous contents'"`

	Patch *cli.Command
}
