// Package idgen provides ID generation utilities
package idgen

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/cobblemon-transporter/internal/pkg/idgen Generator,QuadGenerator

// Generator generates unique string identifiers
type Generator interface {
	Generate() string
}

// QuadGenerator generates creature UUIDs in their native form: four
// signed 32-bit integers, most significant first.
type QuadGenerator interface {
	GenerateQuad() [4]int32
}

// ULIDGenerator generates lexically sortable ULIDs
type ULIDGenerator struct {
	mu      sync.Mutex
	clock   clock.Clock
	entropy *rand.Rand
}

// NewULID creates a ULID generator reading time from clk
func NewULID(clk clock.Clock) *ULIDGenerator {
	return &ULIDGenerator{
		clock:   clk,
		entropy: rand.New(rand.NewSource(clk.Now().UnixNano())), // #nosec G404
	}
}

// Generate creates a new ULID string
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy).String()
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// RandomQuadGenerator derives quads from version 4 UUIDs, which is the
// layout the game itself writes.
type RandomQuadGenerator struct{}

// NewRandomQuad returns the production quad generator
func NewRandomQuad() *RandomQuadGenerator {
	return &RandomQuadGenerator{}
}

// GenerateQuad creates a fresh creature UUID
func (g *RandomQuadGenerator) GenerateQuad() [4]int32 {
	return QuadFromUUID(uuid.New())
}

// QuadFromUUID splits a UUID into its four big-endian 32-bit words
func QuadFromUUID(id uuid.UUID) [4]int32 {
	var quad [4]int32
	for i := range quad {
		quad[i] = int32(binary.BigEndian.Uint32(id[i*4 : i*4+4])) // #nosec G115
	}
	return quad
}

// UUIDFromQuad joins four 32-bit words back into a UUID
func UUIDFromQuad(quad [4]int32) uuid.UUID {
	var id uuid.UUID
	for i, word := range quad {
		binary.BigEndian.PutUint32(id[i*4:i*4+4], uint32(word)) // #nosec G115
	}
	return id
}

// SequentialQuadGenerator yields {0, 0, 0, n} for n = 1, 2, ...
type SequentialQuadGenerator struct {
	counter int32
}

// GenerateQuad returns the next quad in sequence
func (g *SequentialQuadGenerator) GenerateQuad() [4]int32 {
	return [4]int32{0, 0, 0, atomic.AddInt32(&g.counter, 1)}
}
