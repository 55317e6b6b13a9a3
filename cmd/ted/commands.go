package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, {
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ted").
		WithSynopsis("ted [opts] command [opts]").
		WithDescription("ted reads, queries, and edits structured documents in place.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tedMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			DelCommand(cfg),
			InsCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg))
}

func tedMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get [-p] <query> [files]").
		WithDescription("evaluate a query and print the matches").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithAliases("s").
		WithSynopsis("set [-n] [-b] <query> <value> [file]").
		WithDescription("replace every query match with a value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func DelCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DelConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("del").
		WithAliases("d", "rm").
		WithSynopsis("del [-n] [-b] <query> [file]").
		WithDescription("delete every query match").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
	cfg.Del = cmd
	return cmd
}

func InsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InsConfig{MainConfig: mainCfg, At: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("ins").
		WithAliases("i").
		WithSynopsis("ins [-k key] [-at idx] <query> <value> [file]").
		WithDescription("insert a value into every matched container").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ins(cfg, cc, args)
		})
	cfg.Ins = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithSynopsis("diff <fileA> <fileB>").
		WithDescription("diff the canonical renderings of two documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch [-n] [-b] <patchfile> [file]").
		WithDescription("apply an RFC 6902 patch").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
