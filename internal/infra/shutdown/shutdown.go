package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler runs shutdown hooks.
type Handler struct {
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []func(context.Context) error

	done chan struct{}
	once sync.Once
}

// NewHandler creates a handler whose hooks get timeout to finish.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Wait blocks until a termination signal arrives or ctx is done, then runs
// the hooks. The returned error joins every hook failure.
func (h *Handler) Wait(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, h.signals...)
	defer stop()
	<-sigCtx.Done()

	return h.Run()
}

// Run executes the hooks immediately. Only the first call runs them.
func (h *Handler) Run() error {
	var err error
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := append([]func(context.Context) error(nil), h.hooks...)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if herr := hooks[i](ctx); herr != nil {
				errs = append(errs, herr)
			}
		}
		err = errors.Join(errs...)
		close(h.done)
	})
	return err
}

// Done is closed once the hooks have run.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
