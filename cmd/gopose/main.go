package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopose/version"
)

var rootCmd = &cobra.Command{
	Use:   "gopose",
	Short: "A CLI tool for slicing 3D meshes into printable pose templates",
	Long: `gopose slices 3D mesh files (STL, OBJ, PLY) at the Z=0 plane and arranges
the resulting cross-section outlines on a standard page. The arrangement can be
exported as a printable PDF template together with a JSON file of per-object
placement matrices.`,
	Version: version.String(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
