// Package parallel runs independent checks under a bounded worker limit.
package parallel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Run is given a limit below 1.
const DefaultConcurrency = 4

// Result holds the outcome of one task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Summary string
	Elapsed time.Duration
}

// Task is a named unit of work. Fn should honour ctx cancellation.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

// Progress is called once per finished task. Calls are serialized.
type Progress func(Result)

// Run executes tasks with at most concurrency in flight and returns the
// results in submission order. A failing task never stops the others;
// a cancelled ctx marks the tasks that had not started as failed.
func Run(ctx context.Context, tasks []Task, concurrency int, progress Progress) []Result {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()

			var (
				summary string
				err     error
			)
			if cerr := gctx.Err(); cerr != nil {
				err = cerr
			} else {
				summary, err = task.Fn(gctx)
			}

			r := Result{Name: task.Name, OK: err == nil, Err: err, Summary: summary, Elapsed: time.Since(start)}

			mu.Lock()
			results[i] = r
			if progress != nil {
				progress(r)
			}
			mu.Unlock()

			return nil // collect, don't fail the group
		})
	}

	_ = g.Wait()
	return results
}

// Failed counts the results that did not succeed.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}

// TruncateLines splits text into lines and returns at most n lines.
func TruncateLines(s string, n int) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= n {
		return lines
	}
	out := lines[:n]
	out = append(out, fmt.Sprintf("... (%d more lines)", len(lines)-n))
	return out
}
