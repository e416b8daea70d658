package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/hsnserve/internal/logger"
	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/config"
	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Reloader loads a fresh table for the reload action.
type Reloader func() (*codes.Table, error)

// Server handles the IPC for code lookups
type Server struct {
	svc      *lookup.Service
	cfg      *config.Config
	source   string
	reload   Reloader
	dec      *msgpack.Decoder
	writer   *bufio.Writer
	enc      *msgpack.Encoder
	logger   *log.Logger
	requests int
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin/stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.dec = msgpack.NewDecoder(bufio.NewReader(r))
		s.writer = bufio.NewWriter(w)
		s.enc = msgpack.NewEncoder(s.writer)
	}
}

// WithReloader enables the reload action.
func WithReloader(source string, reload Reloader) Option {
	return func(s *Server) {
		s.source = source
		s.reload = reload
	}
}

// NewServer creates a new lookup server using stdin/stdout for IPC
func NewServer(svc *lookup.Service, cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		svc:    svc,
		cfg:    cfg,
		logger: logger.New("ipc"),
	}
	WithIO(os.Stdin, os.Stdout)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start sends the ready status and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Reading request stream: %v", err)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest decodes one message and dispatches it by action
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	s.requests++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid request", 400)
		return
	}
	if s.cfg.Server.LogRequests {
		s.logger.Info("request", "id", req.ID, "action", req.Action, "q", req.Query)
	}

	switch req.Action {
	case ActionValidate:
		if s.checkQuery(req) {
			s.handleValidate(req)
		}
	case ActionSearch:
		if s.checkQuery(req) {
			s.handleSearch(req)
		}
	case ActionInfo:
		s.sendInfo(req.ID, "ok", s.svc.Table())
	case ActionReload:
		s.handleReload(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

// checkQuery rejects oversized queries before any work is done.
func (s *Server) checkQuery(req Request) bool {
	if limit := s.cfg.Server.MaxQueryLen; utf8.RuneCountInString(req.Query) > limit {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", limit), 400)
		return false
	}
	return true
}

func (s *Server) handleValidate(req Request) {
	start := time.Now()
	out := s.svc.Validate(req.Query)
	resp := ValidationResponse{
		ID:      req.ID,
		Valid:   out.IsValid(),
		Kind:    string(out.Kind()),
		Code:    out.Code(),
		Message: out.Message(),
	}
	switch o := out.(type) {
	case lookup.Valid:
		match := o.Match
		resp.Match = &match
		resp.Parents = o.Parents
	case lookup.NotFound:
		resp.Suggestions = o.Suggestions
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	s.send(resp)
}

func (s *Server) handleSearch(req Request) {
	start := time.Now()
	results := s.svc.Search(req.Query)
	if results == nil {
		results = []codes.Record{}
	}
	s.send(SearchResponse{
		ID:        req.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleReload(req Request) {
	if s.reload == nil {
		s.sendError(req.ID, "reload not available", 501)
		return
	}
	table, err := s.reload()
	if err != nil {
		s.logger.Error("reload failed", "err", err)
		s.sendError(req.ID, fmt.Sprintf("reload failed: %v", err), 500)
		return
	}
	if _, err := s.svc.Swap(table); err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	s.sendInfo(req.ID, "reloaded", table)
}

func (s *Server) sendInfo(id, status string, table *codes.Table) {
	stats := table.Stats()
	s.send(InfoResponse{
		ID:         id,
		Status:     status,
		Source:     s.source,
		Records:    stats.Records,
		Duplicates: stats.Duplicates,
		ByLength:   stats.ByLength,
	})
}

// send encodes a response and flushes it to the client.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Marshaling response: %v", err)
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
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
