package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Collection is the part of a driver collection the suite needs for setUp and tearDown.
type Collection interface {
	Drop(ctx context.Context) error
}

// Case is a named benchmark run against a collection of type C. Cases of the same Group share a
// collection named after the group.
type Case[C Collection] struct {
	Name  string
	Group string
	Run   func(ctx context.Context, collection C, config TestingConfig) ([]Result, error)
}

// Select returns the cases with the given names, matched case-insensitively, in the order they
// appear in all. No names selects every case.
func Select[C Collection](all []Case[C], names []string) ([]Case[C], error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			wanted[n] = true
		}
	}
	if len(wanted) == 0 {
		return all, nil
	}

	var selected []Case[C]
	for _, c := range all {
		key := strings.ToLower(c.Name)
		if wanted[key] {
			selected = append(selected, c)
			delete(wanted, key)
		}
	}
	for n := range wanted {
		return nil, errors.Errorf("unknown benchmark %q", n)
	}
	return selected, nil
}

// RunSuite runs every trial of every selected case on a collection from newCollection, wrapped in
// setUp and tearDown. It stops at the first failing case and returns the results collected so far.
func RunSuite[C Collection](ctx context.Context, selected []Case[C], config TestingConfig,
	newCollection func(group string) C, dropDatabase func(ctx context.Context) error) ([]Result, error) {
	var all []Result
	for _, c := range selected {
		trials := make(map[string][]Result)
		var order []string
		for trial := 1; trial <= config.TrialCount(); trial++ {
			log.WithFields(log.Fields{"benchmark": c.Name, "trial": trial}).Info("Starting benchmark")

			results, err := runCase(ctx, c, newCollection(c.Group), config, dropDatabase)
			if config.TrialCount() > 1 {
				for i := range results {
					results[i].Trial = trial
				}
			}
			all = append(all, results...)
			for _, r := range results {
				if _, ok := trials[r.Name]; !ok {
					order = append(order, r.Name)
				}
				trials[r.Name] = append(trials[r.Name], r)
			}
			if err != nil {
				return all, errors.Wrapf(err, "benchmark %s failed", c.Name)
			}
		}

		if config.TrialCount() > 1 {
			out := config.Output()
			fmt.Fprintln(out)
			for _, name := range order {
				s, err := Summarize(name, trials[name])
				if err != nil {
					return all, err
				}
				s.Print(out)
			}
		}
	}
	return all, nil
}

// runCase drops the collection, runs the case and tears down. TearDown runs even when the case
// fails or the context was cancelled, and its errors are only logged.
func runCase[C Collection](ctx context.Context, c Case[C], collection C, config TestingConfig,
	dropDatabase func(ctx context.Context) error) ([]Result, error) {
	if err := collection.Drop(ctx); err != nil {
		return nil, errors.Wrap(err, "setUp: failed to drop collection")
	}

	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		if err := collection.Drop(cleanupCtx); err != nil {
			log.WithError(err).Errorf("tearDown %s: failed to drop collection", c.Name)
		}
		if err := dropDatabase(cleanupCtx); err != nil {
			log.WithError(err).Errorf("tearDown %s: failed to drop database", c.Name)
		}
	}()

	return c.Run(ctx, collection, config)
}
