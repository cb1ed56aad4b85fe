// Command orgchart-layout ingests a box document and prints its computed
// layout geometry as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/boxlayout/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
