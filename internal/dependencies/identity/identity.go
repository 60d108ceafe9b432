package identity

import "github.com/google/uuid"

// Generator produces opaque unique identifiers. It can be mocked so tests
// get deterministic player and room ids.
type Generator interface {
	NewID() string
}

// UUIDGenerator implements Generator using random UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUIDv4 string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
