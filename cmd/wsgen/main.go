// Copyright 2025 The WordSolve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Command wsgen builds and inspects WordSolve indices.

	wsgen clean words.txt -o cleaned.txt --exclude bad_words.txt
	wsgen build words.txt -o sorted_uniques.json
	wsgen build words.txt -o sorted_uniques.msgpack
	wsgen inspect sorted_uniques.json
	wsgen inspect sorted_uniques.json ael
	wsgen solve sorted_uniques.json leapt --group

The word list has one word per line. Words are lowercased and stripped of
accents; anything that is not 3 to 7 letters, is excluded, or repeats an
earlier word is dropped.
*/
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "wsgen",
		Short:         "Build and inspect WordSolve indices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Toggle debug logging")

	root.AddCommand(
		newCleanCmd(),
		newBuildCmd(),
		newInspectCmd(),
		newSolveCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
