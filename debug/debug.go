package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Edit  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("CONFDOC_DEBUG_PARSE")
	d.Edit = boolEnv("CONFDOC_DEBUG_EDIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Edit() bool {
	return d.Edit
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
