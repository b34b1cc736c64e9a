// Package batch runs the extraction pipeline over many inputs concurrently.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shahar-caura/textuml/internal/diagram"
)

// Processor is the subset of *diagram.Processor used by Run.
type Processor interface {
	Process(ctx context.Context, text string) diagram.Result
}

// Input is one named text to process.
type Input struct {
	Name string
	Text string
}

// Output pairs an Input name with its result. Err is set instead of Result
// when the input was never processed because ctx was cancelled.
type Output struct {
	Name   string
	Result diagram.Result
	Err    error
}

// Failed reports whether the output carries no diagram.
func (o Output) Failed() bool {
	if o.Err != nil {
		return true
	}
	_, ok := o.Result.(*diagram.Success)
	return !ok
}

// Run processes inputs with at most workers concurrent calls and returns the
// outputs in input order.
func Run(ctx context.Context, p Processor, inputs []Input, workers int, logger *slog.Logger) []Output {
	if workers < 1 {
		workers = 1
	}

	outputs := make([]Output, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			outputs[i] = Output{Name: in.Name, Err: err}
			continue
		}
		select {
		case <-ctx.Done():
			outputs[i] = Output{Name: in.Name, Err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			logger.Debug("processing input", "name", in.Name)
			outputs[i] = Output{Name: in.Name, Result: p.Process(ctx, in.Text)}
		}(i, in)
	}
	wg.Wait()

	return outputs
}
