package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// payloadKeys are attribute names whose values carry client data.
var payloadKeys = map[string]struct{}{
	"value":    {},
	"payload":  {},
	"request":  {},
	"response": {},
}

// IsPayloadKey reports whether attributes named key are summarised.
func IsPayloadKey(key string) bool {
	_, ok := payloadKeys[strings.ToLower(key)]
	return ok
}

// Summarize returns the placeholder logged in place of a payload of n bytes.
func Summarize(n int) string {
	return "<" + strconv.Itoa(n) + " bytes>"
}

func summarizePayload(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = summarizePayload(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		if IsPayloadKey(a.Key) {
			return slog.String(a.Key, Summarize(len(a.Value.String())))
		}
	case slog.KindAny:
		if !IsPayloadKey(a.Key) {
			return a
		}
		switch v := a.Value.Any().(type) {
		case []byte:
			return slog.String(a.Key, Summarize(len(v)))
		case []string:
			n := 0
			for _, s := range v {
				n += len(s)
			}
			return slog.String(a.Key, Summarize(n))
		}
	}
	return a
}
