package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.GenerateString()
		require.Len(t, id, 26)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateSortable(t *testing.T) {
	gen := NewGenerator()

	prev := gen.GenerateString()
	for i := 0; i < 100; i++ {
		next := gen.GenerateString()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{RequestPrefix, SpanPrefix, OperationPrefix} {
		t.Run(prefix, func(t *testing.T) {
			id := gen.GenerateWithPrefix(prefix)
			assert.True(t, strings.HasPrefix(id, prefix+"_"))
			assert.True(t, IsValid(id))
		})
	}
}

func TestTypedIDs(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewRequestID().String(), "req_"))
	assert.True(t, strings.HasPrefix(NewSpanID().String(), "span_"))
	assert.True(t, strings.HasPrefix(NewOperationID().String(), "op_"))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"bare ulid", NewGenerator().GenerateString(), true},
		{"prefixed", string(NewRequestID()), true},
		{"empty", "", false},
		{"garbage", "not-an-id", false},
		{"bad prefix body", "req_123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.id))
		})
	}
}

func TestTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64)))
	gen.now = func() time.Time { return fixed }

	ts, err := Timestamp(gen.GenerateWithPrefix(OperationPrefix))
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixed))

	_, err = Timestamp("op_nope")
	assert.Error(t, err)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.GenerateString()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}
