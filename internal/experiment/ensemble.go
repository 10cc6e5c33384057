package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/repulse/internal/trace"
)

// Ensemble runs set-up experiments concurrently. Each experiment owns its
// page and animator, so runs share nothing.
type Ensemble struct {
	exps []*Experiment
}

func NewEnsemble(exps ...*Experiment) *Ensemble {
	return &Ensemble{exps: exps}
}

// Run returns results in the order the experiments were given, or the first
// error by that order.
func (e *Ensemble) Run(ctx context.Context) ([]*trace.Result, error) {
	results := make([]*trace.Result, len(e.exps))
	errs := make([]error, len(e.exps))

	var wg sync.WaitGroup
	for i, exp := range e.exps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = exp.Run(ctx)
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
