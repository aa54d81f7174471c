package rfdepth

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// forEach runs work(i) for i in [0, n) on at most cfg.Workers goroutines.
// Each call must write only its own output slot. A panic in one call is
// logged and reported through fail(i); the other calls are unaffected.
func forEach(cfg Config, n int, name func(i int) string, work, fail func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))

	for i := 0; i < n; i++ {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					cfg.Logger.Warn("event processing failed",
						zap.Int("event", i),
						zap.String("name", name(i)),
						zap.String("panic", fmt.Sprint(r)))
					fail(i)
				}
			}()
			work(i)
			return nil
		})
	}
	_ = g.Wait()
}
