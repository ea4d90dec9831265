package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.RowsRead.WithLabelValues("bom").Add(12)
	r.AmbiguousRows.Inc()
	r.ExpandedEntries.Add(2)
	r.DecodeFailures.WithLabelValues("unrecognized").Inc()

	assert.Equal(t, 12.0, testutil.ToFloat64(r.RowsRead.WithLabelValues("bom")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AmbiguousRows))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ExpandedEntries))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.UnmatchedSubNames))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.DecodeFailures.WithLabelValues("unrecognized")))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()

	first.AmbiguousRows.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(second.AmbiguousRows))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ExpandedEntries.Add(3)

	path := filepath.Join(t.TempDir(), "bomforge.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bomforge_expanded_entries_total 3")
}
