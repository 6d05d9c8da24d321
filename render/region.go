// Package render turns lookup results into the content of the two display
// regions: current weather and the forecast list.
package render

import (
	"sync"
)

// Region is a display area whose whole content is replaced on every write
type Region interface {
	Replace(content string)
	Clear()
	Content() string
}

// Buffer is an in-memory Region safe for concurrent writers. The last
// write to complete wins.
type Buffer struct {
	mutex   sync.RWMutex
	content string
	version uint64
}

// Replace overwrites the region content
func (b *Buffer) Replace(content string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.content = content
	b.version++
}

// Clear empties the region
func (b *Buffer) Clear() {
	b.Replace("")
}

// Content returns the current region content
func (b *Buffer) Content() string {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.content
}

// Version counts writes, so callers can tell whether a region changed
func (b *Buffer) Version() uint64 {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.version
}

// Page holds the current-weather and forecast regions
type Page struct {
	Current  *Buffer
	Forecast *Buffer
}

// NewPage creates a page with two empty regions
func NewPage() *Page {
	return &Page{Current: &Buffer{}, Forecast: &Buffer{}}
}

// Snapshot returns the content of both regions
func (p *Page) Snapshot() (current, forecast string) {
	return p.Current.Content(), p.Forecast.Content()
}

var _ Region = (*Buffer)(nil)
