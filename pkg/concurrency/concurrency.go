package concurrency

import (
	"sync"
)

const (
	// DefaultMax default max
	DefaultMax = 256
)

// DefaultGoLimit default go limit, max:256
var DefaultGoLimit = NewGoLimit(DefaultMax)

// GoLimit go limit
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = 1
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add add num, blocks while the limit is reached
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done remove num
func (g *GoLimit) Done() {
	<-g.ch
}

// AwaitWithLimit runs tasks concurrently, at most limit at a time, and
// returns once all of them finished
func AwaitWithLimit(limit *GoLimit, tasks ...func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		limit.Add()
		wg.Add(1)

		go func(task func()) {
			defer wg.Done()
			defer limit.Done()

			task()
		}(task)
	}

	wg.Wait()
}

// AwaitWithDefaultLimit AwaitWithLimit with DefaultGoLimit
func AwaitWithDefaultLimit(tasks ...func()) {
	AwaitWithLimit(DefaultGoLimit, tasks...)
}
