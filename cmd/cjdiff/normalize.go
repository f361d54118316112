package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/cjdiff/changeset"
	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/ir"
)

func normalize(cfg *NormalizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Normalize.Parse(cc, args)
	if err != nil {
		cfg.Normalize.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: normalize requires 1 argument, got %v", cli.ErrUsage, args)
	}
	return failed(normalizeFile(cfg, cc, args[0]))
}

func normalizeFile(cfg *NormalizeConfig, cc *cli.Context, path string) error {
	raw, err := readDoc(cc, path)
	if err != nil {
		return err
	}
	doc, err := cityjson.Load(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	var res *ir.Node
	if cfg.Fingerprints {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fps, err := changeset.Compute(ctx, doc, cfg.Workers)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		kvs := make([]ir.KeyVal, 0, len(fps))
		for _, id := range doc.IDs() {
			kvs = append(kvs, ir.KeyVal{Key: id, Val: ir.FromString(fps[id].String())})
		}
		res = ir.FromKeyVals(kvs)
	} else {
		res, err = cityjson.NormalizeDocument(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return writeDoc(cc.Out, cfg.Out, res, cfg.encodeOpts()...)
}
