package async

import (
	"context"
	"sync"
)

// Gather runs every task in its own goroutine and returns the results in
// task order once all of them returned. Tasks receive ctx and are
// expected to honour its cancellation.
func Gather[T any](ctx context.Context, tasks ...func(context.Context) T) []T {
	results := make([]T, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = task(ctx)
		}()
	}
	wg.Wait()

	return results
}
