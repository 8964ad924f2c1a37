package localstore

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

var (
	_ Backend = (*MemoryBackend)(nil)
	_ Backend = (*EphemeralBackend)(nil)
)

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryBackend) Keys(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error { return nil }

// EphemeralBackend stands in when no persistent storage is available. Reads
// find nothing, so every collection resolves to its seed, and writes are
// dropped.
type EphemeralBackend struct {
	lg *zap.Logger
}

// NewEphemeralBackend returns an EphemeralBackend.
func NewEphemeralBackend(lg *zap.Logger) *EphemeralBackend {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &EphemeralBackend{lg: lg}
}

func (e *EphemeralBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (e *EphemeralBackend) Put(_ context.Context, key string, value []byte) error {
	e.lg.Debug("Dropping write without persistent storage",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
	)
	return nil
}

func (e *EphemeralBackend) Keys(context.Context) ([]string, error) { return nil, nil }

func (e *EphemeralBackend) Ping(context.Context) error { return nil }

func (e *EphemeralBackend) Close() error { return nil }
