package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/metrics"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const metricsSource = "server"

// Server handles the IPC for word solving
type Server struct {
	index        *dictionary.Index
	solver       *solver.Solver
	fileConfig   *config.Config // what the config file holds
	overrides    config.Overrides
	config       *config.Config // fileConfig with overrides applied
	configPath   string
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	writer       *bufio.Writer
	requestCount int
	logger       *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithOverrides layers command line values over the config file. They
// survive config reloads and are never saved.
func WithOverrides(o config.Overrides) Option {
	return func(s *Server) { s.overrides = o }
}

// NewServer creates a new solve server using stdin/stdout for IPC.
// cfg is the config as read from configPath. An empty configPath disables
// reloading and persisting config changes.
func NewServer(index *dictionary.Index, cfg *config.Config, configPath string, opts ...Option) *Server {
	return NewServerWithIO(index, cfg, configPath, os.Stdin, os.Stdout, opts...)
}

// NewServerWithIO is NewServer over arbitrary streams.
func NewServerWithIO(index *dictionary.Index, cfg *config.Config, configPath string, r io.Reader, w io.Writer, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	s := &Server{
		index:      index,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:    msgpack.NewEncoder(writer),
		writer:     writer,
		logger:     logger.New("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyConfig(cfg)
	metrics.SetIndexSize(index.Len(), index.WordCount())
	return s
}

// applyConfig swaps in the file config cfg, layers the overrides on top and
// rebuilds the solver with the resulting limits.
func (s *Server) applyConfig(cfg *config.Config) {
	s.fileConfig = cfg
	s.config = s.overrides.Apply(cfg)
	s.solver = solver.New(s.index,
		solver.WithMinLetters(s.config.Server.MinLetters),
		solver.WithMaxLetters(s.config.Server.MaxLetters),
	)
}

// Start writes the ready message and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server",
		"signatures", s.index.Len(),
		"words", s.index.WordCount(),
		"minLetters", s.config.Server.MinLetters,
		"maxLetters", s.config.Server.MaxLetters)

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		// Read a whole message first so a malformed one can be answered
		// without losing our place in the stream.
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading from stdin: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Warnf("Invalid request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches one decoded request on its action.
func (s *Server) handleRequest(req Request) {
	s.requestCount++
	if every := s.config.Server.ReloadEvery; every > 0 && s.requestCount%every == 0 {
		s.reloadConfig()
	}

	action := req.Action
	if action == "" {
		action = ActionSolve
	}
	metrics.RecordRequest(metricsSource, action)

	switch action {
	case ActionSolve:
		s.handleSolve(req)
	case ActionInfo:
		s.handleInfo(req)
	case ActionHealth:
		_ = s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionConfig:
		s.handleConfig(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 404)
	}
}

func (s *Server) handleSolve(req Request) {
	if req.Letters == "" {
		s.sendError(req.ID, "missing 'l' parameter", 400)
		return
	}

	input := req.Letters
	if s.config.Server.EnableFilter {
		input = utils.SanitizeLetters(input, s.config.Server.MaxLetters)
	}

	start := time.Now()
	matches, err := s.solver.Query(input)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSolve(metricsSource, metrics.StatusInvalid, elapsed, 0)
		s.logger.Debug("Rejected letters", "id", req.ID, "letters", req.Letters, "err", err)
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	status := metrics.StatusOK
	if utf8.RuneCountInString(input) < s.solver.MinLetters() {
		status = metrics.StatusTooShort
	}
	metrics.RecordSolve(metricsSource, status, elapsed, len(matches))

	resp := SolveResponse{
		ID:        req.ID,
		Words:     []string(matches),
		Count:     len(matches),
		TimeTaken: elapsed.Microseconds(),
	}
	if resp.Words == nil {
		resp.Words = []string{}
	}
	if req.Group {
		resp.Groups = solver.GroupByLength(matches).Map()
	}
	s.logger.Debugf("Solved %q -> %d words in %v", input, resp.Count, elapsed)
	_ = s.send(resp)
}

func (s *Server) handleInfo(req Request) {
	_ = s.send(InfoResponse{
		ID:           req.ID,
		Status:       "ok",
		Index:        s.index.Source(),
		Signatures:   s.index.Len(),
		Words:        s.index.WordCount(),
		MinLetters:   s.config.Server.MinLetters,
		MaxLetters:   s.config.Server.MaxLetters,
		EnableFilter: s.config.Server.EnableFilter,
	})
}

func (s *Server) handleConfig(req Request) {
	resp := ConfigResponse{ID: req.ID, Status: "ok"}
	// Only file values are saved; explicitly set values win over flags.
	s.overrides.Release(req.MinLetters, req.MaxLetters, req.EnableFilter)
	if err := s.fileConfig.Update(s.configPath, req.MinLetters, req.MaxLetters, req.EnableFilter); err != nil {
		s.logger.Errorf("Failed to save config: %v", err)
		resp.Status = "error"
		resp.Error = err.Error()
	}
	s.applyConfig(s.fileConfig)

	resp.MinLetters = s.config.Server.MinLetters
	resp.MaxLetters = s.config.Server.MaxLetters
	resp.EnableFilter = s.config.Server.EnableFilter
	_ = s.send(resp)
}

// reloadConfig re-reads the config file, keeping the current one on failure.
func (s *Server) reloadConfig() {
	if s.configPath == "" {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.logger.Warnf("Config reload failed, keeping current settings: %v", err)
		return
	}
	s.applyConfig(cfg)
	s.logger.Debugf("Reloaded config from %s after %d requests", s.configPath, s.requestCount)
}

// send encodes one response and flushes it.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
		return err
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	_ = s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
