package main

import (
	"fmt"
	"os"

	"fintrack/currency-format/cmd/batch"
	"fintrack/currency-format/cmd/format"
	"fintrack/currency-format/cmd/list"
	"fintrack/currency-format/cmd/root"
	"fintrack/currency-format/cmd/settings"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(format.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(settings.Cmd)
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
