package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/letters"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "inspect INDEX [SIGNATURE]",
		Short: "Print index statistics or one signature's bucket",
		Long: `Print index statistics, or with a signature, its bucket and the
signatures that extend it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := dictionary.Load(args[0], dictionary.FormatUnknown)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				printIndexStats(out, ix)
				return nil
			}
			// accept the letters in any order
			signature, _ := letters.Normalize(args[1])
			return printSignature(out, ix, signature, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum extending signatures to list")
	return cmd
}

func printIndexStats(w io.Writer, ix *dictionary.Index) {
	s := ix.Stats()
	fmt.Fprintf(w, "index:      %s\n", ix.Source())
	fmt.Fprintf(w, "signatures: %s\n", humanize.Comma(int64(s.Signatures)))
	fmt.Fprintf(w, "words:      %s\n", humanize.Comma(int64(s.Words)))
	fmt.Fprintf(w, "largest:    %s (%s words)\n", s.LargestKey, humanize.Comma(int64(s.LargestBucket)))
	for n := letters.MinSignature; n <= letters.MaxSignature; n++ {
		fmt.Fprintf(w, "  %d letters: %s\n", n, humanize.Comma(int64(s.KeysByLength[n])))
	}
}

func printSignature(w io.Writer, ix *dictionary.Index, signature string, limit int) error {
	entries := ix.Lookup(signature)
	if entries == nil {
		fmt.Fprintf(w, "%s: no words\n", signature)
	} else {
		words := make([]string, len(entries))
		for i, e := range entries {
			words[i] = e.Word
		}
		fmt.Fprintf(w, "%s: %s\n", signature, strings.Join(words, " "))
	}

	var extending []string
	err := ix.VisitPrefix(signature, func(key string, _ []dictionary.Entry) error {
		if key != signature {
			extending = append(extending, key)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(extending) == 0 {
		return nil
	}
	slices.Sort(extending)
	fmt.Fprintf(w, "%s signatures extend %s:\n", humanize.Comma(int64(len(extending))), signature)
	if limit > 0 && len(extending) > limit {
		extending = extending[:limit]
	}
	for _, key := range extending {
		fmt.Fprintf(w, "  %s (%d)\n", key, len(ix.Lookup(key)))
	}
	return nil
}

func newSolveCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "solve INDEX LETTERS",
		Short: "Solve one set of letters against an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := dictionary.Load(args[0], dictionary.FormatUnknown)
			if err != nil {
				return err
			}
			matches := solver.New(ix).Solve(args[1])
			out := cmd.OutOrStdout()
			if !group {
				fmt.Fprintln(out, strings.Join(matches, "\n"))
				return nil
			}
			g := solver.GroupByLength(matches)
			for _, n := range g.Lengths() {
				fmt.Fprintf(out, "%d: %s\n", n, strings.Join(g.Words(n), " "))
			}
			fmt.Fprintf(out, "%s words from %d letters (%d distinct)\n",
				humanize.Comma(int64(g.Total())), utf8.RuneCountInString(args[1]), utils.DistinctLetters(args[1]))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group words by length")
	return cmd
}
