package mocks

import (
	"fmt"

	"github.com/mcoot/rpsmatch-go/internal/dependencies/identity"
)

// MockGenerator is a mock implementation of identity.Generator for testing
type MockGenerator struct {
	// Results is a queue of ids to return from NewID
	Results []string
	index   int
	serial  int
}

// Ensure MockGenerator implements Generator
var _ identity.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// NewID returns the next queued id; once the queue is exhausted it falls
// back to a deterministic serial id
func (g *MockGenerator) NewID() string {
	if g.index < len(g.Results) {
		id := g.Results[g.index]
		g.index++
		return id
	}
	g.serial++
	return fmt.Sprintf("id-%d", g.serial)
}

// QueueIDs adds ids to the result queue
func (g *MockGenerator) QueueIDs(ids ...string) {
	g.Results = append(g.Results, ids...)
}
