package gtfs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentFeedAccess(t *testing.T) {
	loader := &StaticLoader{Tables: &Tables{
		Routes: []Route{{RouteID: "R1", Type: 700}},
		Stops:  []Stop{{StopID: "S1"}, {StopID: "S2"}},
	}}
	manager, err := InitGTFSManager(context.Background(), Config{}, loader, nil)
	require.NoError(t, err)
	defer manager.Shutdown()

	t.Run("Concurrent reads should not cause data races", func(t *testing.T) {
		var wg sync.WaitGroup
		numGoroutines := 100
		results := make([]int, numGoroutines)

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					results[index] = len(manager.Feed().Stops())
					time.Sleep(time.Microsecond)
				}
			}(i)
		}

		wg.Wait()

		for i := 0; i < numGoroutines; i++ {
			assert.Equal(t, 2, results[i], "Should see both stops")
		}
	})

	t.Run("Reads during reloads always see a complete feed", func(t *testing.T) {
		var wg sync.WaitGroup
		done := make(chan struct{})

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-done:
						return
					default:
						feed := manager.Feed()
						_, ok := feed.Route("R1")
						assert.True(t, ok)
						assert.Len(t, feed.Stops(), 2)
					}
				}
			}()
		}

		for i := 0; i < 20; i++ {
			require.NoError(t, manager.Reload(context.Background()))
		}
		close(done)
		wg.Wait()
	})
}
