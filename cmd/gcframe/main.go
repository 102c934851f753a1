// Command gcframe is a static analysis tool for verifying GC frame
// discipline in Julia embedding code.
//
// Usage:
//
//	gcframe ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which gcframe) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/jlgo/gcframe"
)

func main() {
	singlechecker.Main(gcframe.Analyzer)
}
