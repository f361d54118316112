package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/cjdiff"
	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
	"github.com/signadot/cjdiff/render"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	res, err := diffFiles(cfg, cc, args[0], args[1])
	if err != nil {
		return failed(err)
	}
	if res.Empty() {
		return nil
	}
	return cli.ExitCodeErr(1)
}

func diffFiles(cfg *DiffConfig, cc *cli.Context, a, b string) (*cjdiff.Result, error) {
	if cfg.Reverse {
		a, b = b, a
	}
	opts := &cjdiff.Options{
		Slow:            cfg.Slow,
		IgnoreOrder:     cfg.IgnoreOrder,
		IncludeVertices: cfg.IncludeVertices,
		MaxEntityDiffs:  cfg.Max,
		Workers:         cfg.Workers,
		DiffTimeout:     cfg.Timeout,
	}
	if cfg.Filter != "" {
		f, err := cityjson.CompileFilter(cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts.Filter = f
	}
	src, err := readDoc(cc, a)
	if err != nil {
		return nil, err
	}
	dst, err := readDoc(cc, b)
	if err != nil {
		return nil, err
	}
	mode := "fast"
	if cfg.Slow {
		mode = "slow"
	}
	theLog.Info("comparing", "a", a, "b", b, "mode", mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := cjdiff.Diff(ctx, src, dst, opts)
	if err != nil {
		return nil, err
	}
	if res.VerticesOnly() {
		theLog.Warn("city objects differ only in vertex coordinates, use -vertices to include them in the delta",
			"changed", len(res.ChangeSet.Changed))
	}
	if !res.Complete() {
		theLog.Warn("too many changed objects, delta is incomplete",
			"diffed", len(res.Entities), "skipped", len(res.Truncated))
	}
	switch {
	case cfg.Quiet:
	case cfg.YAML:
		if err := encode.EncodeYAML(res.Artifact().ToIR(), cc.Out); err != nil {
			return nil, err
		}
	default:
		p := render.New(cc.Out, render.WithColors(cfg.colors(cc.Out)))
		if err := p.Result(res); err != nil {
			return nil, err
		}
	}
	if cfg.Out != "" {
		if err := writeDelta(cfg, cc, res); err != nil {
			return nil, err
		}
		theLog.Info("wrote delta", "file", cfg.Out, "operations", res.Delta.Len())
	}
	return res, nil
}

func writeDelta(cfg *DiffConfig, cc *cli.Context, res *cjdiff.Result) error {
	var out *ir.Node
	if cfg.JSONPatch {
		p, err := libdiff.ToJSONPatch(res.Delta)
		if err != nil {
			return err
		}
		out = p
	} else {
		out = res.Artifact().ToIR()
	}
	return writeDoc(cc.Out, cfg.Out, out, cfg.encodeOpts()...)
}
