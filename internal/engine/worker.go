package engine

import (
	"context"
	"time"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Request asks a Worker to place one box. Placed must be a copy the caller
// no longer mutates; the worker reads it from another goroutine.
type Request struct {
	Seq       int
	Box       model.BoxDimensions
	Placed    []model.PlacedBox
	Container model.ContainerSpec
}

// Response answers the Request with the same Seq.
type Response struct {
	Seq       int
	Placement model.PlacedBox
	Err       error
}

// Worker serves placement requests off the caller's goroutine.
type Worker struct {
	engine *Engine
	budget time.Duration // per request, 0 = unlimited
}

func NewWorker(engine *Engine, budget time.Duration) *Worker {
	return &Worker{engine: engine, budget: budget}
}

// Serve handles requests in order until the channel is closed or ctx is done.
// The returned channel is closed when the worker stops.
func (w *Worker) Serve(ctx context.Context, requests <-chan Request) <-chan Response {
	out := make(chan Response)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case req, ok := <-requests:
				if !ok {
					return
				}
				resp := w.handle(ctx, req)
				select {
				case out <- resp:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (w *Worker) handle(ctx context.Context, req Request) Response {
	if w.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.budget)
		defer cancel()
	}
	p, err := w.engine.PlaceNextContext(ctx, req.Box, req.Placed, req.Container)
	return Response{Seq: req.Seq, Placement: p, Err: err}
}
