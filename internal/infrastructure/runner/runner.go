package runner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Runner runs the long-lived parts of the server side by side. The first one
// to fail cancels the context handed to the others.
type Runner struct {
	g   *errgroup.Group
	ctx context.Context
}

func New(ctx context.Context) *Runner {
	g, ctx := errgroup.WithContext(ctx)

	return &Runner{
		g:   g,
		ctx: ctx,
	}
}

func (r *Runner) Context() context.Context {
	return r.ctx
}

// Go starts f under name. f must return once ctx is done.
func (r *Runner) Go(name string, f func(ctx context.Context) error) {
	r.g.Go(func() error {
		slog.DebugContext(r.ctx, "starting", "component", name)

		if err := f(r.ctx); err != nil {
			slog.ErrorContext(r.ctx, "component stopped with error", "component", name, "error", err)
			return fmt.Errorf("%s: %w", name, err)
		}

		slog.DebugContext(r.ctx, "component stopped", "component", name)
		return nil
	})
}

func (r *Runner) Wait() error {
	return r.g.Wait()
}
