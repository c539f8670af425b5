package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/yndnr/hoard-go/pkg/value"
)

// DefaultTimeout bounds a whole request/response exchange.
const DefaultTimeout = 10 * time.Second

// maxReply caps the bytes read for one reply.
const maxReply = 64 << 20

// Reply literals understood by the client.
const (
	replyNil         = "NIL"
	replyKeyTooLong  = "Error: Key too long"
	replyErrorPrefix = "Error: "
	replyUnknown     = "ERROR: Unknown command"
)

// ErrNotFound is returned when the server answers NIL.
var ErrNotFound = errors.New("key not found")

// ServerError is an error literal returned by the server.
type ServerError struct {
	Reply string
}

func (e *ServerError) Error() string {
	return "server: " + e.Reply
}

// asServerError returns a ServerError when reply is an error literal.
func asServerError(reply string) error {
	if strings.HasPrefix(reply, replyErrorPrefix) || reply == replyUnknown {
		return &ServerError{Reply: reply}
	}
	return nil
}

// Client talks to a Hoard server.
type Client struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewClient creates a client for addr. A zero timeout means DefaultTimeout.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{addr: addr, timeout: timeout}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends request verbatim and returns the raw reply.
func (c *Client) Do(ctx context.Context, request string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, request); err != nil {
		return "", fmt.Errorf("write request: %w", err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}

	reply, err := io.ReadAll(io.LimitReader(conn, maxReply))
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return string(reply), nil
}

// Command sends name and args joined by single spaces.
func (c *Client) Command(ctx context.Context, name string, args ...string) (string, error) {
	return c.Do(ctx, strings.Join(append([]string{name}, args...), " "))
}

// GetRaw returns the encoded value stored at key.
func (c *Client) GetRaw(ctx context.Context, key string) (string, error) {
	reply, err := c.Command(ctx, "GET", key)
	if err != nil {
		return "", err
	}
	if reply == replyNil {
		return "", ErrNotFound
	}
	if err := asServerError(reply); err != nil {
		return "", err
	}
	return reply, nil
}

// Get returns the decoded value stored at key.
func (c *Client) Get(ctx context.Context, key string) (value.Value, error) {
	raw, err := c.GetRaw(ctx, key)
	if err != nil {
		return value.Value{}, err
	}
	v, err := value.DecodeString(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("decode reply: %w", err)
	}
	return v, nil
}

// Set stores v at key.
func (c *Client) Set(ctx context.Context, key string, v value.Value) error {
	enc, err := value.EncodeString(v)
	if err != nil {
		return err
	}
	return c.expect(ctx, "Ok!", "SET", key, enc)
}

// Delete removes key, returning ErrNotFound when it was absent.
func (c *Client) Delete(ctx context.Context, key string) error {
	reply, err := c.Command(ctx, "DELETE", key)
	if err != nil {
		return err
	}
	if reply == replyNil {
		return ErrNotFound
	}
	return c.check(reply, "Ok!")
}

// Flush removes every entry.
func (c *Client) Flush(ctx context.Context) error {
	return c.expect(ctx, "OK", "FLUSH")
}

// Pair is one key/value for MSet.
type Pair struct {
	Key   string
	Value value.Value
}

// MSet stores pairs in order.
func (c *Client) MSet(ctx context.Context, pairs []Pair) error {
	args := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		enc, err := value.EncodeString(p.Value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Key, err)
		}
		args = append(args, p.Key, enc)
	}
	return c.expect(ctx, "Ok", "MSET", args...)
}

// Result is one element of an MGet reply.
type Result struct {
	Key   string
	Raw   string
	Value value.Value
	Err   error
}

// MGet looks up keys in order.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]Result, error) {
	reply, err := c.Command(ctx, "MGET", keys...)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(reply, replyErrorPrefix) && !strings.HasPrefix(reply, replyKeyTooLong) {
		return nil, &ServerError{Reply: reply}
	}
	return ParseMGet(keys, reply)
}

// ParseMGet splits an MGET reply into per-key results.
func ParseMGet(keys []string, reply string) ([]Result, error) {
	tooLong := strings.Fields(replyKeyTooLong)
	fields := strings.Fields(reply)
	results := make([]Result, 0, len(keys))

	for i := 0; i < len(fields); i++ {
		if len(results) == len(keys) {
			return nil, fmt.Errorf("mget reply has more items than the %d keys requested", len(keys))
		}
		r := Result{Key: keys[len(results)]}
		switch {
		case fields[i] == replyNil:
			r.Err = ErrNotFound
		case i+len(tooLong) <= len(fields) && slices.Equal(fields[i:i+len(tooLong)], tooLong):
			r.Err = &ServerError{Reply: replyKeyTooLong}
			i += len(tooLong) - 1
		default:
			r.Raw = fields[i]
			v, err := value.DecodeString(fields[i])
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", r.Key, err)
			}
			r.Value = v
		}
		results = append(results, r)
	}
	if len(results) != len(keys) {
		return nil, fmt.Errorf("mget reply has %d items for %d keys", len(results), len(keys))
	}
	return results, nil
}

func (c *Client) expect(ctx context.Context, want, name string, args ...string) error {
	reply, err := c.Command(ctx, name, args...)
	if err != nil {
		return err
	}
	return c.check(reply, want)
}

func (c *Client) check(reply, want string) error {
	if reply == want {
		return nil
	}
	if err := asServerError(reply); err != nil {
		return err
	}
	return fmt.Errorf("unexpected reply %q", reply)
}
