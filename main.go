package main

import (
	_ "embed"
	"os"

	"github.com/msalah0e/semnet/cmd"
)

//go:embed data/semantic_network.json
var sampleGraph []byte

func main() {
	cmd.SetSampleGraph(sampleGraph)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
