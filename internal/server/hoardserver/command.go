package hoardserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yndnr/hoard-go/internal/core/domain"
	"github.com/yndnr/hoard-go/internal/core/service"
	"github.com/yndnr/hoard-go/internal/telemetry/logger"
	"github.com/yndnr/hoard-go/internal/telemetry/metric"
)

// Replies sent to clients. None of them carries a terminator.
const (
	ReplySetOK           = "Ok!"
	ReplyMSetOK          = "Ok"
	ReplyFlushOK         = "OK"
	ReplyNil             = "NIL"
	ReplyUnknownCommand  = "ERROR: Unknown command"
	ReplyInvalidArgCount = "Error: Invalid number of arguments"
	ReplyKeyTooLong      = "Error: Key too long"
	ReplyUnsupportedType = "Error: Unsupported data type"
	ReplyValueTooLarge   = "Error: Value too large"
	ReplyInvalidFormat   = "Error: Invalid data format"
)

// Metric labels.
const (
	unknownCommandLabel = "UNKNOWN"
	resultOK            = "ok"
	resultNil           = "nil"
)

// errorReplies maps domain errors to the reply literal and metric label.
var errorReplies = []struct {
	err    error
	reply  string
	result string
}{
	{domain.ErrKeyNotFound, ReplyNil, resultNil},
	{domain.ErrInvalidArgCount, ReplyInvalidArgCount, "invalid_args"},
	{domain.ErrKeyTooLong, ReplyKeyTooLong, "key_too_long"},
	{domain.ErrUnsupportedType, ReplyUnsupportedType, "unsupported_type"},
	{domain.ErrValueTooLarge, ReplyValueTooLarge, "value_too_large"},
	{domain.ErrInvalidDataFormat, ReplyInvalidFormat, "invalid_data_format"},
	{domain.ErrUnknownCommand, ReplyUnknownCommand, "unknown_command"},
}

// replyFor returns the literal reply and metric label for err.
func replyFor(err error) (reply, result string, known bool) {
	for _, e := range errorReplies {
		if errors.Is(err, e.err) {
			return e.reply, e.result, true
		}
	}
	return ReplyInvalidFormat, "internal", false
}

type commandFunc func(h *Handler, args []string) (string, error)

var commands = map[string]commandFunc{
	"GET":    (*Handler).handleGet,
	"SET":    (*Handler).handleSet,
	"DELETE": (*Handler).handleDelete,
	"FLUSH":  (*Handler).handleFlush,
	"MGET":   (*Handler).handleMGet,
	"MSET":   (*Handler).handleMSet,
}

// Handler turns one request into one reply.
type Handler struct {
	svc     *service.KVService
	metrics *metric.Registry
	logger  *slog.Logger
}

// NewHandler creates a Handler. A nil metrics registry gets a private one.
func NewHandler(svc *service.KVService, metrics *metric.Registry, log *slog.Logger) *Handler {
	if metrics == nil {
		metrics = metric.NewRegistry()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, metrics: metrics, logger: log}
}

// Handle parses and executes request and returns the reply. It never fails:
// protocol, validation and codec errors become reply literals.
func (h *Handler) Handle(ctx context.Context, request []byte) string {
	start := time.Now()

	name, args, ok := Parse(string(request))
	fn, found := commands[name]
	if !ok || !found {
		h.record(ctx, unknownCommandLabel, "unknown_command", domain.ErrUnknownCommand, start, request)
		return ReplyUnknownCommand
	}

	reply, err := fn(h, args)
	result := resultOK
	if err != nil {
		var known bool
		reply, result, known = replyFor(err)
		if !known {
			h.logger.ErrorContext(ctx, "unexpected command error",
				"conn_id", logger.ConnIDFromContext(ctx), "command", name,
				"code", domain.GetErrorCode(err), "error", err)
		}
	}
	h.record(ctx, name, result, err, start, request)
	return reply
}

func (h *Handler) record(ctx context.Context, name, result string, err error, start time.Time, request []byte) {
	elapsed := time.Since(start)
	h.metrics.RecordCommand(name, result, elapsed)

	attrs := []any{
		"conn_id", logger.ConnIDFromContext(ctx),
		"command", name,
		"result", result,
		"request", request,
		"duration", elapsed,
	}
	if code := domain.GetErrorCode(err); code != "" {
		attrs = append(attrs, "code", code)
	}
	h.logger.DebugContext(ctx, "command handled", attrs...)
}

func (h *Handler) handleGet(args []string) (string, error) {
	if len(args) != 1 {
		return "", domain.ErrInvalidArgCount
	}
	enc, err := h.svc.Get(args[0])
	if err != nil {
		return "", err
	}
	return string(enc), nil
}

func (h *Handler) handleSet(args []string) (string, error) {
	if len(args) != 2 {
		return "", domain.ErrInvalidArgCount
	}
	if err := h.svc.Set(args[0], args[1]); err != nil {
		return "", err
	}
	return ReplySetOK, nil
}

func (h *Handler) handleDelete(args []string) (string, error) {
	if len(args) != 1 {
		return "", domain.ErrInvalidArgCount
	}
	if err := h.svc.Delete(args[0]); err != nil {
		return "", err
	}
	return ReplySetOK, nil
}

func (h *Handler) handleFlush(_ []string) (string, error) {
	h.svc.Flush()
	return ReplyFlushOK, nil
}

func (h *Handler) handleMGet(args []string) (string, error) {
	if len(args) == 0 {
		return "", domain.ErrInvalidArgCount
	}
	results := h.svc.MGet(args)
	parts := make([]string, len(results))
	for i, r := range results {
		if r.Err != nil {
			parts[i], _, _ = replyFor(r.Err)
			continue
		}
		parts[i] = string(r.Encoded)
	}
	return strings.Join(parts, " "), nil
}

func (h *Handler) handleMSet(args []string) (string, error) {
	if len(args)%2 != 0 {
		return "", domain.ErrInvalidArgCount
	}
	pairs := make([]service.KeyToken, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, service.KeyToken{Key: args[i], Token: args[i+1]})
	}
	if err := h.svc.MSet(pairs); err != nil {
		return "", err
	}
	return ReplyMSetOK, nil
}
