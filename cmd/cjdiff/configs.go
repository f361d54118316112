package main

import (
	"io"
	"os"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/render"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='color the output'"`
	Gops   bool `cli:"name=gops desc='start a gops agent for diagnostics'"`
	Indent int  `cli:"name=indent desc='spaces per level in written JSON (default 2)'"`

	Main *cli.Command
}

// colors returns the colors to render with on w: always when -color is
// given, never when -color=false is, otherwise when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *render.Colors {
	if cfg.Color {
		return render.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return nil
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return render.NewColors()
	}
	return nil
}

// encodeOpts returns the options for writing JSON documents.
func (cfg *MainConfig) encodeOpts() []encode.EncodeOption {
	if cfg.Indent > 0 {
		return []encode.EncodeOption{encode.EncodeIndent(cfg.Indent)}
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Reverse         bool   `cli:"name=r desc='swap the two documents'"`
	Slow            bool   `cli:"name=s desc='diff the whole documents without fingerprinting'"`
	Out             string `cli:"name=o desc='write the delta to this file'"`
	IgnoreOrder     bool   `cli:"name=ignoreOrder desc='compare arrays as multisets'"`
	Max             int    `cli:"name=max desc='diff at most this many changed city objects (0 for all)'"`
	Workers         int    `cli:"name=j desc='number of concurrent workers'"`
	IncludeVertices bool   `cli:"name=vertices desc='include the vertex table in the delta'"`
	Filter          string `cli:"name=filter desc='only compare city objects matching this expression'"`
	JSONPatch       bool   `cli:"name=jsonpatch desc='write the delta as an RFC 6902 JSON Patch'"`
	Quiet           bool   `cli:"name=q desc='do not print the differences'"`
	YAML            bool   `cli:"name=yaml desc='print the delta as YAML instead of the rendered differences'"`
	Timeout         time.Duration

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Out     string `cli:"name=o desc='write the patched document to this file (default stdout)'"`
	Reverse bool   `cli:"name=r desc='apply the delta reversed'"`
	Verbose bool   `cli:"name=v desc='print the applied operations to stderr'"`

	Patch *cli.Command
}

type NormalizeConfig struct {
	*MainConfig
	Out          string `cli:"name=o desc='write the result to this file (default stdout)'"`
	Fingerprints bool   `cli:"name=fingerprints desc='write the fingerprint of each city object instead'"`
	Workers      int    `cli:"name=j desc='number of concurrent workers'"`

	Normalize *cli.Command
}
