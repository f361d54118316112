package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "cjdiff").
		WithSynopsis("cjdiff [opts] command [opts]").
		WithDescription("cjdiff compares and patches CityJSON documents city object by city object.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cjMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			PatchCommand(cfg),
			NormalizeCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "timeout",
		Description: "bound the matching of each pair of arrays, e.g. 500ms",
		Type:        cli.NamedFuncOpt(cfg.mkTimeout(), "(duration)"),
	})

	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [opts] a.city.json b.city.json").
		WithDescription("show the differences between two CityJSON documents and optionally save them as a delta. " +
			"Exits 0 when the documents do not differ, 1 when they do and 2 on error.").
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
		WithAliases("p", "pa").
		WithOpts(opts...).
		WithSynopsis("patch [opts] source.city.json delta.json").
		WithDescription("apply a delta produced by diff -o to the source document").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func NormalizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NormalizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("normalize").
		WithAliases("n", "norm").
		WithOpts(opts...).
		WithSynopsis("normalize [opts] doc.city.json").
		WithDescription("write the document with every boundary replaced by rounded coordinates, " +
			"or with -fingerprints the fingerprint of each city object").
		WithRun(func(cc *cli.Context, args []string) error {
			return normalize(cfg, cc, args)
		})
	cfg.Normalize = cmd
	return cmd
}

func (cfg *DiffConfig) mkTimeout() cli.FuncOpt {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = d
		return d, nil
	}
}
