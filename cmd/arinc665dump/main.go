// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Command arinc665dump decompiles ARINC 665 Media Set directories and
// prints a summary of the reconstructed model: a thin cobra front-end over
// the library, not a replacement for it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "arinc665dump",
		Short: "A Media Set decompiler and verifier",
		Long:  "Decompiles and verifies ARINC 665 Media Sets, built for inspection and integration testing.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	decompileCmd := &cobra.Command{
		Use:   "decompile <dir>...",
		Short: "Decompile a Media Set and print a JSON summary",
		Long:  "Reads one medium-directory per positional argument, in medium order, and prints a JSON summary of the resulting MediaSet.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDecompile,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <dir>...",
		Short: "Decompile a Media Set with integrity checking forced on",
		Long:  "Like decompile, but forces CheckFileIntegrity on and exits non-zero on any verification failure.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runVerify,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(versionCmd, decompileCmd, verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
