// Command panicreach reports functions that can reach panic, log.Fatal,
// os.Exit or another failure sink.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/panicreach"
)

func main() {
	singlechecker.Main(panicreach.Analyzer)
}
