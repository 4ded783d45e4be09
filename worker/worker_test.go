package worker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseJobSkipsOverlappingRuns(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	job := &BaseJob{}
	job.OnWork = func() error {
		calls++
		close(started)
		<-release
		return errors.New("done")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()

	<-started
	assert.True(t, job.IsRunning())
	job.Run()

	close(release)
	wg.Wait()

	assert.False(t, job.IsRunning())
	assert.Equal(t, 1, calls)
}
