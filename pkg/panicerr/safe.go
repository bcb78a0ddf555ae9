package panicerr

import (
	"context"

	"github.com/sourcegraph/conc/panics"
)

// Call runs fn and returns a recovered panic as an error.
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var (
		catcher panics.Catcher
		result  T
		err     error
	)
	catcher.Try(func() {
		result, err = fn(ctx)
	})
	if err != nil {
		return result, err
	}
	if rerr := catcher.Recovered().AsError(); rerr != nil {
		var zero T
		return zero, rerr
	}
	return result, nil
}
