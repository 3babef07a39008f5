// Package internal runs the panicreach pipeline over one compiled unit.
//
// # Pipeline
//
// [Run] executes the stages strictly in order:
//
//	fnindex.Index      function nodes and lazily resolved bodies
//	      |
//	callgraph.Builder  expand every candidate, then canonicalize
//	      |
//	detect.Policy      resolve sinks by display name, filter entries
//	      |
//	localize.Localize  witness spans per (entry, sink)
//
// No reachability query runs before the graph is complete.
//
// # Status
//
// The [Result] carries a [Status] derived from the [Mode] alone:
// [StatusContinue] when running inside a build driver and [StatusStop] when
// running standalone. Findings are advisory and never change it.
package internal
