package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/cjdiff"
	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
	"github.com/signadot/cjdiff/render"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a source document and a delta", cli.ErrUsage)
	}
	return failed(patchFiles(cfg, cc, args[0], args[1]))
}

func patchFiles(cfg *PatchConfig, cc *cli.Context, source, delta string) error {
	src, err := readDoc(cc, source)
	if err != nil {
		return err
	}
	dn, err := readDoc(cc, delta)
	if err != nil {
		return err
	}
	var res *ir.Node
	if dn.Type == ir.ArrayType {
		res, err = patchJSON(cfg, src, dn)
	} else {
		res, err = patchArtifact(cfg, cc, source, delta, src, dn)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", source, err)
	}
	theLog.Info("patched", "source", source, "delta", delta,
		"objects", len(ir.Get(res, "CityObjects").Fields))
	return writeDoc(cc.Out, cfg.Out, res, cfg.encodeOpts()...)
}

// patchJSON applies an RFC 6902 JSON Patch, as written by diff -jsonpatch.
func patchJSON(cfg *PatchConfig, src, p *ir.Node) (*ir.Node, error) {
	if cfg.Reverse {
		return nil, fmt.Errorf("%w: a JSON Patch cannot be reversed", cli.ErrUsage)
	}
	if _, err := cityjson.Load(src); err != nil {
		return nil, err
	}
	theLog.Info("applying JSON Patch", "operations", len(p.Values))
	return libdiff.ApplyJSONPatch(src, p)
}

func patchArtifact(cfg *PatchConfig, cc *cli.Context, source, delta string, src, dn *ir.Node) (*ir.Node, error) {
	art, err := cjdiff.ArtifactFromIR(dn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", delta, err)
	}
	if len(art.Truncated) != 0 {
		theLog.Warn("delta is incomplete", "skipped", art.Truncated)
	}
	if cfg.Reverse {
		art.Delta = libdiff.Reverse(art.Delta)
	}
	if cfg.Verbose {
		out := cfg.Out
		if out == "" {
			out = "-"
		}
		p := render.New(cc.Err, render.WithColors(cfg.colors(cc.Err)))
		if err := p.Delta(source, out, art.Delta); err != nil {
			return nil, err
		}
	}
	theLog.Info("applying delta", "operations", art.Delta.Len())
	return cjdiff.PatchArtifact(src, art)
}
