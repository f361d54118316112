package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/parse"
)

func cjMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
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

// failed logs err and turns it into exit status 2, leaving usage errors
// alone.
func failed(err error) error {
	if err == nil || errors.Is(err, cli.ErrUsage) {
		return err
	}
	theLog.Error(err.Error())
	return cli.ExitCodeErr(2)
}

// readDoc parses the JSON document at path, or on standard input when
// path is "-".
func readDoc(cc *cli.Context, path string) (*ir.Node, error) {
	if path != "-" {
		return parse.ParseFile(path)
	}
	d, err := io.ReadAll(cc.In)
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	res, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return res, nil
}

// writeDoc writes node as indented JSON to path, or to w when path is
// empty or "-".
func writeDoc(w io.Writer, path string, node *ir.Node, opts ...encode.EncodeOption) error {
	if path != "" && path != "-" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := encode.Encode(node, w, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return nil
}
