package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCollectsEveryResult(t *testing.T) {
	jobs := make([]int, 100)
	for i := range jobs {
		jobs[i] = i
	}

	got := Run(4, jobs, func(job int) int {
		return job * job
	})

	sort.Ints(got)
	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestRunNoJobs(t *testing.T) {
	got := Run(3, []int{}, func(job int) int { return job })
	assert.Empty(t, got)
}

func TestWorkerPoolClampsWorkers(t *testing.T) {
	wp := NewWorkerPool[int, int](0, 2)
	assert.Equal(t, 1, wp.numWorkers)
	wp.Start(func(job int) int { return job + 1 })
	wp.AddJob(1)
	wp.AddJob(2)
	wp.Close()
	wp.Wait()

	sum := 0
	for r := range wp.CollectResults() {
		sum += r
	}
	assert.Equal(t, 5, sum)
}
