package render

import (
	"strings"

	"github.com/fatih/color"
)

// Colors holds the formatting functions for each part of the output.
type Colors struct {
	Header  func(string, ...any) string
	Hunk    func(string, ...any) string
	Changed func(string, ...any) string
	Deleted func(string, ...any) string
	Added   func(string, ...any) string
}

// NewColors returns colors which are emitted regardless of whether the
// output is a terminal.
func NewColors() *Colors {
	c := &Colors{
		Header:  sprint(color.New(color.Bold)),
		Hunk:    sprint(color.New(color.FgCyan)),
		Changed: sprint(color.New(color.FgYellow)),
		Deleted: sprint(color.New(color.FgRed)),
		Added:   sprint(color.New(color.FgGreen)),
	}
	return c
}

func sprint(c *color.Color) func(string, ...any) string {
	c.EnableColor()
	f := c.SprintfFunc()
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func plain(v string, _ ...any) string { return v }

func noColors() *Colors {
	return &Colors{
		Header:  plain,
		Hunk:    plain,
		Changed: plain,
		Deleted: plain,
		Added:   plain,
	}
}
