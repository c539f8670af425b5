package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is printed before each line.
const Prompt = "hoard> "

// Sender sends one request and returns the server reply.
type Sender interface {
	Do(ctx context.Context, request string) (string, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	sender    Sender
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory replaces the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a REPL sending requests through sender.
func New(sender Sender, opts ...Option) *REPL {
	r := &REPL{
		sender:    sender,
		input:     strings.NewReader(""),
		output:    io.Discard,
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the loop and returns on EOF, .exit or ctx cancellation.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: save history: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(r.input)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.output, Prompt)

		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.history.Add(line)

		if strings.HasPrefix(line, ".") {
			if done := r.local(line); done {
				return nil
			}
			continue
		}

		reply, err := r.sender.Do(ctx, line)
		if err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
			continue
		}
		fmt.Fprintln(r.output, reply)
	}
}

// local runs a dot command and reports whether the loop should stop.
func (r *REPL) local(line string) bool {
	switch strings.Fields(line)[0] {
	case ".exit", ".quit":
		return true
	case ".help":
		fmt.Fprintln(r.output, "commands: "+strings.Join(r.completer.Commands(), " "))
		fmt.Fprintln(r.output, "local: .help .history .exit")
	case ".history":
		for i, e := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
		}
	default:
		fmt.Fprintf(r.output, "unknown local command %s\n", line)
	}
	return false
}
