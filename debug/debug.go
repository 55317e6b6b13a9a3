// Package debug holds env-gated debug switches and logging helpers.
// Set TEDIT_DEBUG_<AREA>=1 to enable an area.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Query   bool
	Eval    bool
	History bool
	Patch   bool
	Encode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Query = boolEnv("TEDIT_DEBUG_QUERY")
	d.Eval = boolEnv("TEDIT_DEBUG_EVAL")
	d.History = boolEnv("TEDIT_DEBUG_HISTORY")
	d.Patch = boolEnv("TEDIT_DEBUG_PATCH")
	d.Encode = boolEnv("TEDIT_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Query() bool {
	return d.Query
}
func Eval() bool {
	return d.Eval
}
func History() bool {
	return d.History
}
func Patch() bool {
	return d.Patch
}
func Encode() bool {
	return d.Encode
}
