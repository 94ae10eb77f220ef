// Command atsmatch scores a resume file against a job description from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atsmatch",
		Short: "Match a resume against a job description",
		Long:  "atsmatch scores a resume against a job description, reports section gaps and projects the score after the recommended fixes.",
	}
	root.AddCommand(newAnalyzeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the atsmatch version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atsmatch %s\n", version)
		},
	}
}

// loadEnv reads .env files into the environment so flag defaults can come
// from them. Variables already set win.
func loadEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

func main() {
	loadEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
