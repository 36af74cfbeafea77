package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/furnex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request to a shop passes at once", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		begin := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "mebel.example.ru"))
		assert.Less(t, time.Since(begin), 50*time.Millisecond)
	})

	t.Run("spaces out requests to the same shop", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "mebel.example.ru"))

		begin := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "mebel.example.ru"))
		assert.GreaterOrEqual(t, time.Since(begin), 80*time.Millisecond)
	})

	t.Run("shops do not share a budget", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "mebel.example.ru"))

		begin := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "sofas.example.com"))
		assert.Less(t, time.Since(begin), 50*time.Millisecond)
	})

	t.Run("gives up when the context expires", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "mebel.example.ru"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "mebel.example.ru"))
	})

	t.Run("safe for concurrent workers", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(200)

		var wg sync.WaitGroup
		errs := make([]error, 6)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				host := "a.example.com"
				if i%2 == 1 {
					host = "b.example.com"
				}
				errs[i] = limiter.Wait(context.Background(), host)
			}()
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})
}
