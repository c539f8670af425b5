package connection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/hoard-go/internal/core/service"
	"github.com/yndnr/hoard-go/internal/server/hoardserver"
	"github.com/yndnr/hoard-go/internal/storage/memory"
	"github.com/yndnr/hoard-go/pkg/value"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewKVService(memory.New(), service.Limits{})
	srv := hoardserver.New(nil, hoardserver.NewHandler(svc, nil, log), nil, log)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx, ln)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return NewClient(ln.Addr().String(), 2*time.Second)
}

func TestClient_SetGet(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	v := value.Map(map[string]value.Value{
		"n": value.Int(42),
		"s": value.Text("hi"),
	})
	if err := c.Set(ctx, "k", v); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Equal(v) {
		t.Errorf("Get() = %v, want %v", got, v)
	}
}

func TestClient_NotFound(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := c.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestClient_DeleteFlush(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", value.Int(1))
	_ = c.Set(ctx, "b", value.Int(2))

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Flush(ctx); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
	if _, err := c.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Flush error = %v", err)
	}
}

func TestClient_MSetMGet(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	err := c.MSet(ctx, []Pair{
		{Key: "x", Value: value.Float(0.5)},
		{Key: "y", Value: value.Null()},
	})
	if err != nil {
		t.Fatalf("MSet() error = %v", err)
	}

	long := strings.Repeat("l", 1025)
	res, err := c.MGet(ctx, "x", long, "nope", "y")
	if err != nil {
		t.Fatalf("MGet() error = %v", err)
	}
	if len(res) != 4 {
		t.Fatalf("MGet() returned %d results", len(res))
	}
	if !res[0].Value.Equal(value.Float(0.5)) {
		t.Errorf("res[0] = %v", res[0].Value)
	}
	var se *ServerError
	if !errors.As(res[1].Err, &se) || se.Reply != "Error: Key too long" {
		t.Errorf("res[1].Err = %v", res[1].Err)
	}
	if !errors.Is(res[2].Err, ErrNotFound) {
		t.Errorf("res[2].Err = %v", res[2].Err)
	}
	if !res[3].Value.IsNull() {
		t.Errorf("res[3] = %v", res[3].Value)
	}
}

func TestClient_ServerErrors(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	var se *ServerError
	if err := c.Set(ctx, strings.Repeat("k", 1025), value.Int(1)); !errors.As(err, &se) {
		t.Errorf("Set(long key) error = %v, want ServerError", err)
	}
	if _, err := c.MGet(ctx); !errors.As(err, &se) || se.Reply != "Error: Invalid number of arguments" {
		t.Errorf("MGet() error = %v", err)
	}

	reply, err := c.Do(ctx, "FOO")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "ERROR: Unknown command" {
		t.Errorf("Do(FOO) = %q", reply)
	}
}

func TestClient_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := NewClient(addr, time.Second).Do(context.Background(), "GET a"); err == nil {
		t.Error("Do() against a closed port should fail")
	}
}

func TestParseMGet(t *testing.T) {
	one, _ := value.EncodeString(value.Int(1))

	tests := []struct {
		name    string
		keys    []string
		reply   string
		wantErr bool
	}{
		{"values and nil", []string{"a", "b"}, one + " NIL", false},
		{"key too long in middle", []string{"a", "b", "c"}, one + " Error: Key too long NIL", false},
		{"too few items", []string{"a", "b"}, one, true},
		{"too many items", []string{"a"}, one + " " + one, true},
		{"undecodable", []string{"a"}, "@@", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseMGet(tt.keys, tt.reply)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMGet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(res) != len(tt.keys) {
				t.Errorf("len = %d, want %d", len(res), len(tt.keys))
			}
		})
	}
}
