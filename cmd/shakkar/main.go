// The shakkar CLI. Mirrors the plain server binary but with cobra's help,
// completion and flag plumbing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shakkar",
	Short: "Shakkar storefront CLI",
	Long:  "Shakkar is the cookie-shop storefront. Use this CLI to run and inspect it.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(routeListCmd)
}
