// main is the entry point for the spans CLI.
package main

import (
	"github.com/huangsam/spans/cmd"
	"github.com/huangsam/spans/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
