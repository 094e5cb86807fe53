package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forgectl",
	Short: "Fantasy Forge API server CLI",
	Long:  `forgectl manages the Fantasy Forge API server, its database, and its users.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
