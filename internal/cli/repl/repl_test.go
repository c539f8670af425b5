package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeSender struct {
	requests []string
	reply    string
	err      error
}

func (f *fakeSender) Do(_ context.Context, request string) (string, error) {
	f.requests = append(f.requests, request)
	return f.reply, f.err
}

func TestREPL_Exit(t *testing.T) {
	for _, in := range []string{".exit\n", ".quit\n", ""} {
		out := &bytes.Buffer{}
		r := New(&fakeSender{}, WithIO(strings.NewReader(in), out))
		if err := r.Run(context.Background()); err != nil {
			t.Errorf("Run(%q) error = %v", in, err)
		}
	}
}

func TestREPL_SendsLines(t *testing.T) {
	sender := &fakeSender{reply: "NIL"}
	out := &bytes.Buffer{}
	r := New(sender, WithIO(strings.NewReader("GET a\n\n  DELETE b  \n"), out))

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(sender.requests) != 2 || sender.requests[0] != "GET a" || sender.requests[1] != "DELETE b" {
		t.Errorf("requests = %q", sender.requests)
	}
	if strings.Count(out.String(), "NIL") != 2 {
		t.Errorf("output = %q", out.String())
	}
}

func TestREPL_SendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	out := &bytes.Buffer{}
	r := New(sender, WithIO(strings.NewReader("GET a\n"), out))

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(error) connection refused") {
		t.Errorf("output = %q", out.String())
	}
}

func TestREPL_LocalCommands(t *testing.T) {
	sender := &fakeSender{}
	out := &bytes.Buffer{}
	h := NewHistory("")
	r := New(sender, WithIO(strings.NewReader(".help\nFLUSH\n.history\n.bogus\n.exit\nGET never\n"), out), WithHistory(h))

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "MSET") {
		t.Error(".help should list commands")
	}
	if !strings.Contains(s, "2  FLUSH") {
		t.Errorf(".history output missing: %q", s)
	}
	if !strings.Contains(s, "unknown local command .bogus") {
		t.Error("unknown dot command not reported")
	}
	if len(sender.requests) != 1 {
		t.Errorf("requests = %q, want only FLUSH", sender.requests)
	}
}

func TestREPL_CancelledContext(t *testing.T) {
	sender := &fakeSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(sender, WithIO(strings.NewReader("GET a\n"), &bytes.Buffer{}))
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.requests) != 0 {
		t.Errorf("requests sent after cancel: %q", sender.requests)
	}
}
