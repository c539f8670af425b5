package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/hoard-go/internal/core/service"
	"github.com/yndnr/hoard-go/internal/storage/memory"
	"github.com/yndnr/hoard-go/pkg/value"
)

// EntryCounts are the store sizes benchmarks preload.
var EntryCounts = []int{1000, 10000, 100000}

// newKey returns a unique lower-case key.
func newKey() string {
	return "k-" + strings.ToLower(ulid.Make().String())
}

// sampleValue returns a small map value similar to a cached record.
func sampleValue(i int) value.Value {
	return value.Map(map[string]value.Value{
		"id":    value.Int(int64(i)),
		"name":  value.Text(fmt.Sprintf("user-%d", i)),
		"score": value.Float(float64(i) / 3),
		"tags":  value.List(value.Text("a"), value.Text("b")),
	})
}

// payload returns a Bytes value of n bytes.
func payload(n int) value.Value {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return value.Bytes(b)
}

func mustToken(b *testing.B, v value.Value) string {
	b.Helper()
	tok, err := value.EncodeString(v)
	if err != nil {
		b.Fatal(err)
	}
	return tok
}

// prefill stores count entries and returns their keys.
func prefill(b *testing.B, svc *service.KVService, count int) []string {
	b.Helper()
	keys := make([]string, count)
	for i := range keys {
		keys[i] = newKey()
		if err := svc.Set(keys[i], mustToken(b, sampleValue(i))); err != nil {
			b.Fatal(err)
		}
	}
	return keys
}

func newService() *service.KVService {
	return service.NewKVService(memory.New(), service.Limits{})
}

// reportMemory reports heap usage as a custom metric.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/1024/1024, prefix+"_heap_MB")
}
