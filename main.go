package main

import (
	"os"

	"github.com/shahzaibarshad0008-spec/l7700monitor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
