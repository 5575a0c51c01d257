package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/utils/errutil"
)

// Group dispatches handlers asynchronously and lets the caller wait for all of
// them, e.g. before a CLI process exits. The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// Dispatch executes handler in a new goroutine tracked by g. The handler gets
// a background context carrying the logger of ctx, so cancelling ctx does not
// stop it. Returned errors and panics are logged.
func (g *Group) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	g.wg.Add(1)
	run(newBackgroundContext(ctx), handler, g.wg.Done)
}

// Wait blocks until every dispatched handler has returned
func (g *Group) Wait() {
	g.wg.Wait()
}

func run(ctx context.Context, handler func(ctx context.Context) error, done func()) {
	go func() {
		defer done()
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(ctx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
			}
		}()

		if err := handler(ctx); err != nil {
			errutil.Handle(ctx, "error in async handler", goerr.Wrap(err, "async handler failed"))
		}
	}()
}

// newBackgroundContext creates a new background context preserving the ctxlog logger
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
