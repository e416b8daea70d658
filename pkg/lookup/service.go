/*
Package lookup sequences the code checks and the description search behind a
single request/response surface.

A request is either a code to validate or a text query. Code mode runs
Format, then Exists, then Hierarchy for a match or Suggestions for a miss.
Text mode runs the description search. Each request gets a fresh Response;
the service keeps no per-request state.

	svc, err := lookup.NewService(table)
	resp := svc.Handle("99541100", true)
	if v, ok := resp.Outcome.(lookup.Valid); ok {
		fmt.Println(v.Match.Description, len(v.Parents))
	}

The table can be replaced at runtime with Swap. Requests already running
finish against the table they started with.
*/
package lookup

import (
	"sync/atomic"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/search"
	"github.com/bastiangx/hsnserve/pkg/validate"
	"github.com/charmbracelet/log"
)

// Response carries exactly one of Outcome (code mode) or Results (text mode).
type Response struct {
	Query    string
	CodeMode bool
	Outcome  Outcome
	Results  []codes.Record
}

// Service answers validation and search requests against the current table.
type Service struct {
	table  atomic.Pointer[codes.Table]
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request tracing.
// Default is the charm default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = log.Default()
		}
		s.logger = logger
	}
}

// NewService creates a service over table.
func NewService(table *codes.Table, opts ...Option) (*Service, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	s := &Service{logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.table.Store(table)
	return s, nil
}

// Table returns the table requests currently run against.
func (s *Service) Table() *codes.Table {
	return s.table.Load()
}

// Swap replaces the table and returns the previous one.
func (s *Service) Swap(table *codes.Table) (*codes.Table, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	old := s.table.Swap(table)
	s.logger.Debug("code table swapped", "old", old.Len(), "new", table.Len())
	return old, nil
}

// Handle runs one request. In code mode input is validated as a code,
// otherwise it is used as a description query.
func (s *Service) Handle(input string, codeMode bool) Response {
	resp := Response{Query: input, CodeMode: codeMode}
	if codeMode {
		resp.Outcome = s.Validate(input)
		return resp
	}
	resp.Results = s.Search(input)
	return resp
}

// Validate checks code against the current table.
func (s *Service) Validate(code string) Outcome {
	return validateCode(code, s.table.Load(), s.logger)
}

// Search ranks the current table against a description query.
func (s *Service) Search(query string) []codes.Record {
	results := search.ByDescription(query, s.table.Load())
	s.logger.Debug("description search", "query", query, "results", len(results))
	return results
}

func validateCode(code string, table *codes.Table, logger *log.Logger) Outcome {
	format := validate.Format(code)
	if !format.IsValid {
		logger.Debug("code rejected", "code", code, "reason", format.Message)
		return FormatInvalid{Input: code, Reason: format.Message}
	}

	exists := validate.Exists(code, table)
	if !exists.Exists {
		suggestions := validate.Suggestions(code, table)
		logger.Debug("code not found", "code", code, "suggestions", len(suggestions))
		return NotFound{Input: code, Suggestions: suggestions}
	}

	// The hierarchy verdict is informational; a present code stays valid
	// even when none of its ancestors are in the table.
	hierarchy := validate.Hierarchy(code, table)
	if !hierarchy.IsValid {
		logger.Debug("code has no ancestors in table", "code", code)
	}
	return Valid{Input: code, Match: *exists.Match, Parents: hierarchy.Parents}
}
