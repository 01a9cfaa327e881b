package main

import (
	"fmt"
	"os"

	"github.com/retrokit/retrogen/cmd/retrogen"
	"github.com/retrokit/retrogen/pkg/style"
)

func main() {
	rootCmd := retrogen.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
