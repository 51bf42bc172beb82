package pipeline

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/backmassage/mediaconv/internal/convert"
	"github.com/backmassage/mediaconv/internal/logging"
)

// workerCount resolves the --jobs value: 0 means one worker per logical
// CPU. The result is at least 1 and at most units.
func workerCount(ctx context.Context, jobs, units int) int {
	n := jobs
	if n == 0 {
		c, err := cpu.CountsWithContext(ctx, true)
		if err != nil || c < 1 {
			c = 1
		}
		n = c
	}
	if n > units {
		n = units
	}
	if n < 1 {
		n = 1
	}
	return n
}

// runParallel converts units on jobs workers. Units are handed out in
// order; dispatch stops when ctx is cancelled and running conversions are
// waited for.
func runParallel(ctx context.Context, conv *convert.Converter, units []Unit, jobs int, log *logging.Logger, stats *RunStats) {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		next = make(chan int)
	)
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				r := conv.Convert(ctx, units[i].Path)
				mu.Lock()
				stats.Record(r)
				mu.Unlock()
			}
		}()
	}

feed:
	for i, u := range units {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		mu.Lock()
		stats.Current = i + 1
		mu.Unlock()
		log.Info("[%d/%d] %s", i+1, len(units), filepath.Base(u.Path))
		select {
		case <-ctx.Done():
			log.Warn("Interrupted")
			break feed
		case next <- i:
		}
	}
	close(next)
	wg.Wait()
}
