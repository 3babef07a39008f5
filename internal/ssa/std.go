package ssa

import (
	"go/build"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/ssa"
)

// stdSrc is the standard library source directory with a trailing
// separator, or empty when GOROOT is unknown.
var stdSrc = stdRoot(build.Default.GOROOT)

func stdRoot(goroot string) string {
	if goroot == "" {
		return ""
	}
	return filepath.Join(goroot, "src") + string(filepath.Separator)
}

// InStd reports whether filename is a standard library source file.
func InStd(filename string) bool {
	return stdSrc != "" && strings.HasPrefix(filename, stdSrc)
}

// Standard reports whether fn is declared in the standard library.
// Standard functions are leaves: they fail only when named as sinks.
func Standard(fn *ssa.Function) bool {
	if fn.Prog == nil || !fn.Pos().IsValid() {
		return false
	}
	return InStd(fn.Prog.Fset.Position(fn.Pos()).Filename)
}
