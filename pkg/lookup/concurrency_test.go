package lookup

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/stretchr/testify/assert"
)

var concurrentInputs = []struct {
	input    string
	codeMode bool
}{
	{"99", true}, {"9954", true}, {"99541100", true}, {"1234", true}, {"12a4", true},
	{"construction", false}, {"residential buildings", false}, {"s", false},
}

func TestHandle_ConcurrentWithSwaps(t *testing.T) {
	configs := []struct {
		workers    int
		iterations int
	}{
		{workers: 1, iterations: 400},
		{workers: 4, iterations: 100},
		{workers: 8, iterations: 50},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterations), func(t *testing.T) {
			full := exampleTable()
			svc := newTestService(t, full)

			var wg sync.WaitGroup
			errs := make(chan string, cfg.workers*cfg.iterations)
			for w := 0; w < cfg.workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < cfg.iterations; i++ {
						req := concurrentInputs[i%len(concurrentInputs)]
						resp := svc.Handle(req.input, req.codeMode)
						if req.codeMode && (resp.Outcome == nil || resp.Results != nil) {
							errs <- fmt.Sprintf("code request %q: outcome=%v results=%d", req.input, resp.Outcome, len(resp.Results))
						}
						if !req.codeMode && resp.Outcome != nil {
							errs <- fmt.Sprintf("text request %q carried an outcome", req.input)
						}
						if len(resp.Results) > 10 {
							errs <- fmt.Sprintf("request %q returned %d results", req.input, len(resp.Results))
						}
					}
				}()
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					if i%2 == 0 {
						_, _ = svc.Swap(codes.Empty())
					} else {
						_, _ = svc.Swap(full)
					}
				}
			}()

			wg.Wait()
			close(errs)
			for e := range errs {
				t.Error(e)
			}
			assert.NotNil(t, svc.Table())
		})
	}
}
