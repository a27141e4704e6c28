package answer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellStartsIdle(t *testing.T) {
	assert.Equal(t, "", NewCell().Get())
	var zero Cell
	assert.Equal(t, "", zero.Get())
}

func TestCellLastWriteWins(t *testing.T) {
	c := NewCell()
	c.Set(Loading)
	c.Set("first")
	c.Set("second")
	assert.Equal(t, "second", c.Get())
}

func TestCellObservers(t *testing.T) {
	c := NewCell()
	var seen []string
	unsubscribe := c.Subscribe(func(v string) { seen = append(seen, v) })

	c.Set(Loading)
	c.Set("answer")
	unsubscribe()
	c.Set("ignored")

	assert.Equal(t, []string{Loading, "answer"}, seen)
}

func TestZeroCellSubscribe(t *testing.T) {
	var c Cell
	var got string
	c.Subscribe(func(v string) { got = v })
	c.Set("x")
	assert.Equal(t, "x", got)
}

func TestCellConcurrentWriters(t *testing.T) {
	c := NewCell()
	var mu sync.Mutex
	var last string
	c.Subscribe(func(v string) {
		mu.Lock()
		last = v
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set("v")
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, c.Get(), last, "observers see the value Get reports")
}
