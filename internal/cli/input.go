// Package cli handles cmd line input and solving for DBG and testing various features
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/metrics"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
)

const metricsSource = "cli"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// InputHandler reads letters from the terminal and prints every word they
// spell, grouped by length. By default input is sanitized the way a game
// board would: non-letters dropped, case and accents folded, and at most the
// solver's maximum letters kept.
type InputHandler struct {
	solver       *solver.Solver
	noFilter     bool
	showTiming   bool
	historyFile  string
	requestCount int
	logger       *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(s *solver.Solver, noFilter, showTiming bool, historyFile string) *InputHandler {
	return NewInputHandlerWithOutput(s, noFilter, showTiming, historyFile, os.Stderr)
}

// NewInputHandlerWithOutput is NewInputHandler printing to out.
func NewInputHandlerWithOutput(s *solver.Solver, noFilter, showTiming bool, historyFile string, out io.Writer) *InputHandler {
	return &InputHandler{
		solver:      s,
		noFilter:    noFilter,
		showTiming:  showTiming,
		historyFile: historyFile,
		logger:      logger.NewWithConfig(out, "", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop. It reads lines until EOF or "exit";
// Ctrl+C clears the current line.
func (h *InputHandler) Start() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     h.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	h.logger.Print("WordSolve CLI [BETA]")
	h.logger.Printf("type %d to %d letters and press Enter (Ctrl+D to exit):",
		h.solver.MinLetters(), h.solver.MaxLetters())

	for {
		line, err := rl.Readline()
		switch {
		case err == nil:
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			h.farewell()
			return nil
		default:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			h.farewell()
			return nil
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) farewell() {
	h.logger.Printf("exiting after %d lookups", h.requestCount)
}

// handleInput solves a single line and prints the grouped words.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	metrics.RecordRequest(metricsSource, "solve")

	input := line
	if !h.noFilter {
		input = utils.SanitizeLetters(line, h.solver.MaxLetters())
		if input != line {
			log.Debugf("Sanitized %q -> %q", line, input)
		}
	} else {
		log.Debug("Input filtering disabled - solving raw input")
	}

	n := utf8.RuneCountInString(input)
	if n < h.solver.MinLetters() {
		metrics.RecordSolve(metricsSource, metrics.StatusTooShort, 0, 0)
		h.logger.Warnf("Need at least %d letters, got %d: '%s'", h.solver.MinLetters(), n, input)
		return
	}

	start := time.Now()
	matches, err := h.solver.Query(input)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSolve(metricsSource, metrics.StatusInvalid, elapsed, 0)
		h.logger.Errorf("Cannot solve '%s': %v", input, err)
		return
	}
	metrics.RecordSolve(metricsSource, metrics.StatusOK, elapsed, len(matches))
	log.Debugf("Took [ %v ] for letters '%s'", elapsed, input)

	if len(matches) == 0 {
		h.logger.Warnf("No words found for letters: '%s'", input)
		return
	}

	groups := solver.GroupByLength(matches)
	h.logger.Printf("Found %s words for '%s':", humanize.Comma(int64(groups.Total())), input)
	for _, length := range groups.Lengths() {
		words := groups.Words(length)
		header := headerStyle.Render(fmt.Sprintf("%d letters (%s)", length, humanize.Comma(int64(len(words)))))
		h.logger.Print(header)
		h.logger.Print("  " + wordStyle.Render(strings.Join(words, " ")))
	}
	if h.showTiming {
		h.logger.Printf("solved in %v", elapsed)
	}
}
