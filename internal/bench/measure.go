package bench

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

var sampleInterval = time.Second

// Warmup runs op numberOfRuns times and then forces two garbage collections so that the timed loop
// starts from a settled heap.
func Warmup(ctx context.Context, numberOfRuns int, op func(i int) error) error {
	for i := 0; i < numberOfRuns; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op(i); err != nil {
			return errors.Wrap(err, "warmup")
		}
	}
	CollectGarbage()
	return nil
}

func CollectGarbage() {
	runtime.GC()
	runtime.GC()
}

// Measure runs op ops times and reports the elapsed wall clock time. Every operation is also
// recorded in a metrics timer, whose rates are sampled once per second while the loop runs.
func Measure(ctx context.Context, name string, ops int, op func(i int) error) (Result, error) {
	timer := metrics.NewTimer()
	defer timer.Stop()

	s := newSampler(timer)
	s.start(name)

	startTime := time.Now()
	var err error
	for i := 0; i < ops; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		opStart := time.Now()
		if err = op(i); err != nil {
			err = errors.Wrapf(err, "%s: operation %d", name, i)
			break
		}
		timer.UpdateSince(opStart)
	}
	elapsed := time.Since(startTime)

	samples := s.stop()
	if err != nil {
		return Result{}, err
	}

	snapshot := timer.Snapshot()
	ps := snapshot.Percentiles([]float64{0.5, 0.95, 0.99})
	res := Result{
		Name:       name,
		Operations: ops,
		Elapsed:    elapsed,
		Latency: Latency{
			Mean: time.Duration(snapshot.Mean()),
			P50:  time.Duration(ps[0]),
			P95:  time.Duration(ps[1]),
			P99:  time.Duration(ps[2]),
		},
		Samples: samples,
	}
	log.WithFields(log.Fields{
		"case": name,
		"ops":  ops,
		"mean": res.Latency.Mean,
		"p50":  res.Latency.P50,
		"p95":  res.Latency.P95,
		"p99":  res.Latency.P99,
	}).Info("Measurement finished")
	return res, nil
}

// sampler records the timer's rates on a ticker.
type sampler struct {
	timer metrics.Timer

	mu      sync.Mutex
	records [][]string

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

func newSampler(timer metrics.Timer) *sampler {
	return &sampler{timer: timer, done: make(chan struct{})}
}

func (s *sampler) start(name string) {
	s.ticker = time.NewTicker(sampleInterval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				record := s.record()
				log.Debugf("%s: Timestamp: %s, Operation Count: %s, Mean Rate: %s ops/sec, m1_rate: %s",
					name, record[0], record[1], record[2], record[3])
				s.mu.Lock()
				s.records = append(s.records, record)
				s.mu.Unlock()
			}
		}
	}()
}

// stop halts the ticker, appends the final record and returns everything sampled.
func (s *sampler) stop() [][]string {
	s.ticker.Stop()
	close(s.done)
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, s.record())
	return s.records
}

func (s *sampler) record() []string {
	return []string{
		fmt.Sprintf("%d", time.Now().Unix()),
		fmt.Sprintf("%d", s.timer.Count()),
		fmt.Sprintf("%.6f", s.timer.RateMean()),
		fmt.Sprintf("%.6f", s.timer.Rate1()),
		fmt.Sprintf("%.6f", s.timer.Rate5()),
		fmt.Sprintf("%.6f", s.timer.Rate15()),
	}
}
