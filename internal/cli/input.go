// Package cli provides an interactive prompt for validating codes and
// searching descriptions, mainly for testing and debugging a code table.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/charmbracelet/log"
)

// Prompt commands. Anything else is a lookup in the current mode.
const (
	cmdCode  = ":code"
	cmdText  = ":text"
	cmdStats = ":stats"
	cmdHelp  = ":help"
	cmdQuit  = ":q"
)

// InputHandler reads lines from its input and answers each one as a code
// validation or a description search, depending on the current mode.
type InputHandler struct {
	svc          *lookup.Service
	source       string
	in           io.Reader
	out          io.Writer
	render       *Renderer
	codeMode     bool
	requestCount int
}

// Option configures an InputHandler.
type Option func(*InputHandler)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(h *InputHandler) {
		h.in = in
		h.out = out
	}
}

// WithSource names the table file shown by :stats.
func WithSource(source string) Option {
	return func(h *InputHandler) {
		h.source = source
	}
}

// NewInputHandler creates a prompt over svc starting in code or text mode.
func NewInputHandler(svc *lookup.Service, codeMode, color bool, opts ...Option) *InputHandler {
	h := &InputHandler{
		svc:      svc,
		in:       os.Stdin,
		out:      os.Stdout,
		codeMode: codeMode,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.render = NewRenderer(h.out, color)
	return h
}

// Start runs the prompt loop until the input ends or :q is entered.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "hsnserve CLI")
	fmt.Fprintln(h.out, "enter a code or a description query (:help for commands, Ctrl+C to exit)")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprintf(h.out, "%s> ", h.mode())
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == cmdQuit || line == ":quit" {
			return nil
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) mode() string {
	if h.codeMode {
		return "code"
	}
	return "text"
}

// handleInput runs prompt commands or a single lookup.
func (h *InputHandler) handleInput(line string) {
	switch line {
	case cmdCode:
		h.codeMode = true
		fmt.Fprintln(h.out, "mode: code")
		return
	case cmdText:
		h.codeMode = false
		fmt.Fprintln(h.out, "mode: text")
		return
	case cmdStats:
		h.render.Stats(h.source, h.svc.Table().Stats())
		return
	case cmdHelp:
		fmt.Fprintln(h.out, "  :code   validate codes")
		fmt.Fprintln(h.out, "  :text   search descriptions")
		fmt.Fprintln(h.out, "  :stats  show table summary")
		fmt.Fprintln(h.out, "  :q      quit")
		return
	}

	h.requestCount++
	start := time.Now()
	resp := h.svc.Handle(line, h.codeMode)
	log.Debugf("Took [ %v ] for %s request %d %q", time.Since(start), h.mode(), h.requestCount, line)

	if resp.CodeMode {
		h.render.Outcome(resp.Outcome)
		return
	}
	h.render.Results(line, resp.Results)
}
