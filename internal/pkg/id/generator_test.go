package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobID(t *testing.T) {
	got := NewJobID()
	require.True(t, strings.HasPrefix(got, "job_"))
	assertHexSuffix(t, got, "job_")
}

func TestNewReservationID(t *testing.T) {
	got := NewReservationID()
	require.True(t, strings.HasPrefix(got, "rsv_"))
	assertHexSuffix(t, got, "rsv_")
}

func TestNewUUID(t *testing.T) {
	got := NewUUID()
	assert.True(t, ValidateUUID(got))
	assert.False(t, ValidateUUID("job_0011aabbccdd"))
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{}, 2000)
	for i := 0; i < 1000; i++ {
		seen[NewJobID()] = struct{}{}
		seen[NewReservationID()] = struct{}{}
	}
	assert.Len(t, seen, 2000)
}

func assertHexSuffix(t *testing.T, got, prefix string) {
	t.Helper()
	suffix := strings.TrimPrefix(got, prefix)
	require.Len(t, suffix, shortIDLength)
	for _, r := range suffix {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

// BenchmarkNewJobID benchmarks job ID generation
func BenchmarkNewJobID(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewJobID()
	}
}

// BenchmarkNewJobIDParallel benchmarks job ID generation concurrently
func BenchmarkNewJobIDParallel(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = NewJobID()
		}
	})
}
