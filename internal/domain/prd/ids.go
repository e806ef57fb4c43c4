package prd

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIDPrefix starts every generated PRD ID.
const DefaultIDPrefix = "PRD"

// SequenceGenerator produces IDs of the form PRD-<unix millis>-<counter>.
// The counter is monotonic per generator, so IDs stay unique even when the
// clock stalls or repeats.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	now    func() time.Time
	seq    uint64
}

// NewSequenceGenerator creates a generator. A nil clock uses time.Now.
func NewSequenceGenerator(prefix string, now func() time.Time) *SequenceGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &SequenceGenerator{prefix: prefix, now: now}
}

// NextID returns the next identifier.
func (g *SequenceGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	return fmt.Sprintf("%s-%d-%04d", g.prefix, g.now().UnixMilli(), g.seq)
}

// UUIDGenerator produces IDs of the form PRD-<uuid>.
type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator creates a random UUID based generator.
func NewUUIDGenerator(prefix string) *UUIDGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &UUIDGenerator{prefix: prefix}
}

// NextID returns a new random identifier.
func (g *UUIDGenerator) NextID() string {
	return g.prefix + "-" + uuid.NewString()
}

// NewIDGenerator returns the generator for a configured strategy name.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "sequence":
		return NewSequenceGenerator(DefaultIDPrefix, nil), nil
	case "uuid":
		return NewUUIDGenerator(DefaultIDPrefix), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
