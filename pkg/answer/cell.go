// Package answer holds the answer currently on display.
package answer

import "sync"

// Loading is shown while a request is in flight
const Loading = "loading..."

// Cell is an observable string. Last write wins. The zero value is ready to use.
type Cell struct {
	mu        sync.Mutex
	value     string
	nextID    int
	observers map[int]func(string)
	notify    sync.Mutex
}

// NewCell returns a cell holding the empty idle value
func NewCell() *Cell {
	return &Cell{observers: make(map[int]func(string))}
}

// Get returns the current value
func (c *Cell) Get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and notifies observers in write order
func (c *Cell) Set(v string) {
	// notify serialises writers so observers see values in the same order as Get does
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	c.value = v
	observers := make([]func(string), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// Subscribe registers fn for every later write. The returned func removes it.
// fn runs on the writer's goroutine and must not call Set.
func (c *Cell) Subscribe(fn func(string)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.observers == nil {
		c.observers = make(map[int]func(string))
	}
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}
