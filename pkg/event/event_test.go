package event_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"autonuoma/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	defer event.Flush()

	var got []string
	event.Listen("booking.made", func(payload interface{}) {
		got = append(got, "first:"+payload.(string))
	})
	event.Listen("booking.made", func(payload interface{}) {
		got = append(got, "second:"+payload.(string))
	})

	event.Fire("booking.made", "r-1")

	assert.Equal(t, []string{"first:r-1", "second:r-1"}, got)
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	defer event.Flush()

	event.Fire("nobody.listens", nil)
}

func TestFireAsyncRunsConcurrently(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	count := 0

	handler := func(interface{}) {
		mu.Lock()
		count++
		mu.Unlock()
		wg.Done()
	}
	event.Listen("booking.made", handler)
	event.Listen("booking.made", handler)

	event.FireAsync("booking.made", nil)
	wg.Wait()

	assert.Equal(t, 2, count)
}
