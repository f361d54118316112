package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Normalize bool
	Diff      bool
	Patch     bool
	Pipeline  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Normalize = boolEnv("CJDIFF_DEBUG_NORMALIZE")
	d.Diff = boolEnv("CJDIFF_DEBUG_DIFF")
	d.Patch = boolEnv("CJDIFF_DEBUG_PATCH")
	d.Pipeline = boolEnv("CJDIFF_DEBUG_PIPELINE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Normalize() bool {
	return d.Normalize
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Pipeline() bool {
	return d.Pipeline
}
