package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// stdout stays reserved for rendered output
		fmt.Fprintf(os.Stderr, "j2: %v\n", err)
		os.Exit(1)
	}
}
