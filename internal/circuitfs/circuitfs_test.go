package circuitfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *CircuitFS {
	t.Helper()
	return New(t.TempDir())
}

func TestPathLayout(t *testing.T) {
	fs := newTestFS(t)
	jobID := "550e8400-e29b-41d4-a716-446655440000"
	root := filepath.Join(fs.Root(), jobID)

	got, err := fs.JobRoot(jobID)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = fs.MetaPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "meta.json"), got)

	got, err = fs.JobYAMLPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "input", "job.yaml"), got)

	got, err = fs.ProgramPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "input", "program.eigen.py"), got)

	got, err = fs.CompiledAQOPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "compiled", "circuit.aqo.json"), got)

	got, err = fs.CountsPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "results", "counts.json"), got)

	got, err = fs.MetadataPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "results", "metadata.json"), got)

	got, err = fs.ErrorPath(jobID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "results", "error.json"), got)
}

func TestEnsureJobLayout(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, fs.EnsureJobLayout("job-1"))

	for _, sub := range []string{"input", "compiled", "results", "logs"} {
		info, err := os.Stat(filepath.Join(fs.Root(), "job-1", sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestAtomicWriteReplacesExistingFile(t *testing.T) {
	fs := newTestFS(t)
	jobID := "job-1"
	require.NoError(t, fs.EnsureJobLayout(jobID))

	countsPath, err := fs.CountsPath(jobID)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(countsPath, []byte("old"), 0o644))

	require.NoError(t, fs.StoreResultsBundle(jobID, []byte("new"), []byte("meta")))

	data, err := os.ReadFile(countsPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)

	// No temp files left behind in the results directory.
	resultsDir, err := fs.ResultsDir(jobID)
	require.NoError(t, err)
	entries, err := os.ReadDir(resultsDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestStoreAndLoadRoundtrip(t *testing.T) {
	fs := newTestFS(t)
	jobID := "job-2"

	require.NoError(t, fs.StoreSourceBundle(jobID, "apiVersion: eigen.os/v0.1\n", []byte("print('hi')")))
	require.NoError(t, fs.StoreCompiledAQO(jobID, []byte(`{"version":"0.1"}`)))
	require.NoError(t, fs.StoreResultsBundle(jobID, []byte(`{"counts":{}}`), []byte(`{"meta":true}`)))
	require.NoError(t, fs.StoreErrorDetails(jobID, []byte(`{"error":"boom"}`)))

	src, err := fs.LoadSourceBundle(jobID)
	require.NoError(t, err)
	assert.Contains(t, src.JobYAML, "apiVersion")
	assert.Equal(t, []byte("print('hi')"), src.Program)

	aqo, err := fs.LoadCompiledAQO(jobID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":"0.1"}`), aqo)

	res, err := fs.LoadResultsBundle(jobID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"counts":{}}`), res.CountsJSON)
	assert.Equal(t, []byte(`{"meta":true}`), res.MetadataJSON)

	errJSON, err := fs.LoadErrorDetails(jobID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"error":"boom"}`), errJSON)
}

func TestLoadMissingArtifact(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.LoadResultsBundle("job-3")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fs.LoadCompiledAQO("job-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidJobIDRejected(t *testing.T) {
	fs := newTestFS(t)

	for _, jobID := range []string{"", "../evil", "a/b", `a\b`, "trailing.."} {
		err := fs.EnsureJobLayout(jobID)
		assert.ErrorIs(t, err, ErrInvalidJobID, "job id %q", jobID)

		_, err = fs.JobRoot(jobID)
		assert.ErrorIs(t, err, ErrInvalidJobID, "job id %q", jobID)
	}
}

func TestAppendLogLine(t *testing.T) {
	fs := newTestFS(t)
	jobID := "job-4"

	require.NoError(t, fs.AppendLogLine(jobID, "kernel", "compiling"))
	require.NoError(t, fs.AppendLogLine(jobID, "kernel", "running"))

	logsDir, err := fs.LogsDir(jobID)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(logsDir, "kernel.log"))
	require.NoError(t, err)
	assert.Equal(t, "compiling\nrunning\n", string(data))
}
