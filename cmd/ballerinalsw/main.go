package main

import (
	"fmt"
	"os"

	"github.com/ballerina-platform/ballerinalsw/cmd/ballerinalsw/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
