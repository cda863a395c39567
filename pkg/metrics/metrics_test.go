// pkg/metrics/metrics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test counter recording and textfile export

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.RecordDownload(ResultOK, 1024, time.Second)
	r.RecordDownload(ResultFailed, 0, time.Millisecond)
	r.RecordDownload(ResultOK, 1024, time.Second)
	r.RecordCacheHit()
	r.RecordVerifyFailure()
	r.RecordBuild(KindPrimary, true, time.Second)
	r.RecordBuild(KindSecondary, false, time.Second)
	r.RecordContractViolation()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.DownloadsTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.DownloadsTotal.WithLabelValues(ResultFailed)))
	assert.Equal(t, 2048.0, testutil.ToFloat64(r.DownloadBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.VerifyFailuresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BuildsTotal.WithLabelValues(KindPrimary, ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BuildsTotal.WithLabelValues(KindSecondary, ResultFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ContractViolations))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.RecordDownload(ResultOK, 1, time.Second)
		r.RecordCacheHit()
		r.RecordVerifyFailure()
		r.RecordBuild(KindPrimary, true, time.Second)
		r.RecordContractViolation()
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.RecordCacheHit()

	path := filepath.Join(t.TempDir(), "arcbuilder.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "arcbuilder_cache_hits_total 1")
}

func TestRecorder_WriteTextfileEmptyPath(t *testing.T) {
	r := New()
	assert.NoError(t, r.WriteTextfile(""))
}
