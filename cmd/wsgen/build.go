package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// listOptions are the word list filters shared by clean and build.
type listOptions struct {
	exclude string
	minLen  int
	maxLen  int
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.exclude, "exclude", "", "File of words to leave out, one per line")
	cmd.Flags().IntVar(&o.minLen, "min", dictionary.DefaultMinWordLength, "Shortest word to keep")
	cmd.Flags().IntVar(&o.maxLen, "max", dictionary.DefaultMaxWordLength, "Longest word to keep (at most 7)")
}

func (o *listOptions) builderOptions() ([]dictionary.BuilderOption, error) {
	opts := []dictionary.BuilderOption{dictionary.WithWordLength(o.minLen, o.maxLen)}
	if o.exclude == "" {
		return opts, nil
	}
	f, err := os.Open(o.exclude)
	if err != nil {
		return nil, fmt.Errorf("opening exclusion list: %w", err)
	}
	defer f.Close()
	words, err := dictionary.ReadExclusions(f)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d excluded words from %s", len(words), o.exclude)
	return append(opts, dictionary.WithExclusions(words)), nil
}

func printStats(w io.Writer, stats dictionary.BuildStats) {
	fmt.Fprintf(w, "accepted %s, invalid %s, excluded %s, duplicate %s, single letter %s\n",
		humanize.Comma(int64(stats.Accepted)),
		humanize.Comma(int64(stats.Invalid)),
		humanize.Comma(int64(stats.Excluded)),
		humanize.Comma(int64(stats.Duplicate)),
		humanize.Comma(int64(stats.SingleLetter)))
}

func newCleanCmd() *cobra.Command {
	var opts listOptions
	var output string
	cmd := &cobra.Command{
		Use:   "clean WORDLIST",
		Short: "Normalize and filter a word list",
		Long: `Normalize and filter a word list, writing the words an index built
from it would contain, one per line, in their original order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bopts, err := opts.builderOptions()
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			words, stats, err := dictionary.CleanWords(in, bopts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			w := bufio.NewWriter(out)
			for _, word := range words {
				fmt.Fprintln(w, word)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printStats(cmd.ErrOrStderr(), stats)
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newBuildCmd() *cobra.Command {
	var opts listOptions
	var output, format string
	cmd := &cobra.Command{
		Use:   "build WORDLIST",
		Short: "Build a signature index from a word list",
		Long: `Build a signature index from a word list.

The output format follows the file extension (.json, .msgpack, .mpk)
unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ff, err := outputFormat(output, format)
			if err != nil {
				return err
			}
			bopts, err := opts.builderOptions()
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			b := dictionary.NewBuilder(bopts...)
			if _, err := b.AddFrom(in); err != nil {
				return err
			}
			ix, err := b.Build()
			if err != nil {
				return err
			}
			if err := ix.Save(output, ff); err != nil {
				return err
			}

			printStats(cmd.ErrOrStderr(), b.Stats())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s signatures, %s words\n",
				output, humanize.Comma(int64(ix.Len())), humanize.Comma(int64(ix.WordCount())))
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "sorted_uniques.json", "Index file to write")
	cmd.Flags().StringVar(&format, "format", "", "Index format: "+dictionary.FormatNames()+" (default: from extension)")
	return cmd
}

// outputFormat picks the index format from the flag, or else the extension.
func outputFormat(output, format string) (dictionary.FileFormat, error) {
	ff, err := dictionary.ParseFormat(format)
	if err != nil || ff != dictionary.FormatUnknown {
		return ff, err
	}
	if ff, err := dictionary.ParseFormat(strings.TrimPrefix(filepath.Ext(output), ".")); err == nil && ff != dictionary.FormatUnknown {
		return ff, nil
	}
	return dictionary.FormatUnknown, fmt.Errorf("%w: cannot tell format of %s, use --format", dictionary.ErrUnknownFormat, output)
}
