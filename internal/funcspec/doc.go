// Package funcspec provides function specification parsing and display names.
//
// # Overview
//
// Every function node carries a display name. For declared functions the
// display name is the canonical specification string built by this package,
// so that sink names given on the command line compare equal to node names.
//
// # Specification Format
//
// A function specification has the format:
//
//	pkg/path.FuncName           # Package-level function
//	pkg/path.TypeName.Method    # Method on type (pointer or value receiver)
//	panic                       # Builtin
//
// Examples:
//
//	log.Fatal
//	log.Logger.Fatalf
//	os.Exit
//
// # Parsing
//
// Use [Parse] to create a Spec from a string:
//
//	spec := funcspec.Parse("log.Logger.Fatal")
//	// spec.PkgPath  = "log"
//	// spec.TypeName = "Logger"
//	// spec.FuncName = "Fatal"
//
// [ParseList] splits a comma-separated flag value and drops duplicates.
//
// # Display Names
//
// Use [FromFunc] and [Spec.String] to name a types.Func:
//
//	funcspec.FromFunc(obj).String() // "log.Logger.Fatal"
//
// [Spec.Matches] compares a types.Func against a parsed specification.
package funcspec
