// Package circuitfs implements the local-filesystem artifact store for
// job bundles.
//
// Every job owns one directory under the store root:
//
//	<root>/<job_id>/meta.json
//	<root>/<job_id>/input/job.yaml
//	<root>/<job_id>/input/program.eigen.py
//	<root>/<job_id>/compiled/circuit.aqo.json
//	<root>/<job_id>/results/counts.json
//	<root>/<job_id>/results/metadata.json
//	<root>/<job_id>/results/error.json
//	<root>/<job_id>/logs/<name>.log
//
// Result files are hot-read by the APIs, so all writes go through an
// atomic same-directory rename. Log appends are best-effort and not
// atomic; they exist for debugging, not for the result contract.
package circuitfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the production filesystem root for the store. Local
// development and tests should override it with a temp directory.
const DefaultRoot = "/var/lib/eigen/circuit_fs"

var (
	// ErrNotFound reports a missing artifact.
	ErrNotFound = errors.New("artifact not found")
	// ErrInvalidJobID reports a job id unusable as a directory name.
	ErrInvalidJobID = errors.New("invalid job_id")
)

// SourceBundle holds the input artifacts stored for a job.
type SourceBundle struct {
	JobYAML string
	Program []byte
}

// ResultsBundle holds the result artifacts stored for a job.
type ResultsBundle struct {
	CountsJSON   []byte
	MetadataJSON []byte
}

// CircuitFS stores job artifacts under a local filesystem root.
type CircuitFS struct {
	root string
}

// New creates a store with the provided root directory.
func New(root string) *CircuitFS {
	return &CircuitFS{root: root}
}

// NewDefault creates a store rooted at DefaultRoot.
func NewDefault() *CircuitFS {
	return New(DefaultRoot)
}

// Root returns the configured store root.
func (c *CircuitFS) Root() string {
	return c.root
}

// JobRoot returns <root>/<job_id>.
func (c *CircuitFS) JobRoot(jobID string) (string, error) {
	if err := validateJobID(jobID); err != nil {
		return "", err
	}
	return filepath.Join(c.root, jobID), nil
}

// InputDir returns <root>/<job_id>/input.
func (c *CircuitFS) InputDir(jobID string) (string, error) {
	return c.jobSubdir(jobID, "input")
}

// CompiledDir returns <root>/<job_id>/compiled.
func (c *CircuitFS) CompiledDir(jobID string) (string, error) {
	return c.jobSubdir(jobID, "compiled")
}

// ResultsDir returns <root>/<job_id>/results.
func (c *CircuitFS) ResultsDir(jobID string) (string, error) {
	return c.jobSubdir(jobID, "results")
}

// LogsDir returns <root>/<job_id>/logs.
func (c *CircuitFS) LogsDir(jobID string) (string, error) {
	return c.jobSubdir(jobID, "logs")
}

// MetaPath returns <root>/<job_id>/meta.json.
func (c *CircuitFS) MetaPath(jobID string) (string, error) {
	root, err := c.JobRoot(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "meta.json"), nil
}

// JobYAMLPath returns <root>/<job_id>/input/job.yaml.
func (c *CircuitFS) JobYAMLPath(jobID string) (string, error) {
	dir, err := c.InputDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "job.yaml"), nil
}

// ProgramPath returns <root>/<job_id>/input/program.eigen.py.
func (c *CircuitFS) ProgramPath(jobID string) (string, error) {
	dir, err := c.InputDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "program.eigen.py"), nil
}

// CompiledAQOPath returns <root>/<job_id>/compiled/circuit.aqo.json.
func (c *CircuitFS) CompiledAQOPath(jobID string) (string, error) {
	dir, err := c.CompiledDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "circuit.aqo.json"), nil
}

// CountsPath returns <root>/<job_id>/results/counts.json.
func (c *CircuitFS) CountsPath(jobID string) (string, error) {
	dir, err := c.ResultsDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "counts.json"), nil
}

// MetadataPath returns <root>/<job_id>/results/metadata.json.
func (c *CircuitFS) MetadataPath(jobID string) (string, error) {
	dir, err := c.ResultsDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "metadata.json"), nil
}

// ErrorPath returns <root>/<job_id>/results/error.json.
func (c *CircuitFS) ErrorPath(jobID string) (string, error) {
	dir, err := c.ResultsDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "error.json"), nil
}

// EnsureJobLayout creates the canonical directory layout for a job.
func (c *CircuitFS) EnsureJobLayout(jobID string) error {
	root, err := c.JobRoot(jobID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	for _, sub := range []string{"input", "compiled", "results", "logs"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// StoreSourceBundle stores input/job.yaml and input/program.eigen.py.
func (c *CircuitFS) StoreSourceBundle(jobID, jobYAML string, program []byte) error {
	if err := c.EnsureJobLayout(jobID); err != nil {
		return err
	}
	yamlPath, err := c.JobYAMLPath(jobID)
	if err != nil {
		return err
	}
	if err := atomicWrite(yamlPath, []byte(jobYAML)); err != nil {
		return err
	}
	programPath, err := c.ProgramPath(jobID)
	if err != nil {
		return err
	}
	return atomicWrite(programPath, program)
}

// LoadSourceBundle loads input/job.yaml and input/program.eigen.py.
func (c *CircuitFS) LoadSourceBundle(jobID string) (SourceBundle, error) {
	yamlPath, err := c.JobYAMLPath(jobID)
	if err != nil {
		return SourceBundle{}, err
	}
	jobYAML, err := readNotFound(yamlPath)
	if err != nil {
		return SourceBundle{}, err
	}
	programPath, err := c.ProgramPath(jobID)
	if err != nil {
		return SourceBundle{}, err
	}
	program, err := readNotFound(programPath)
	if err != nil {
		return SourceBundle{}, err
	}
	return SourceBundle{JobYAML: string(jobYAML), Program: program}, nil
}

// StoreCompiledAQO stores compiled/circuit.aqo.json.
func (c *CircuitFS) StoreCompiledAQO(jobID string, aqoJSON []byte) error {
	if err := c.EnsureJobLayout(jobID); err != nil {
		return err
	}
	path, err := c.CompiledAQOPath(jobID)
	if err != nil {
		return err
	}
	return atomicWrite(path, aqoJSON)
}

// LoadCompiledAQO loads compiled/circuit.aqo.json.
func (c *CircuitFS) LoadCompiledAQO(jobID string) ([]byte, error) {
	path, err := c.CompiledAQOPath(jobID)
	if err != nil {
		return nil, err
	}
	return readNotFound(path)
}

// StoreResultsBundle stores results/counts.json and results/metadata.json.
func (c *CircuitFS) StoreResultsBundle(jobID string, countsJSON, metadataJSON []byte) error {
	if err := c.EnsureJobLayout(jobID); err != nil {
		return err
	}
	countsPath, err := c.CountsPath(jobID)
	if err != nil {
		return err
	}
	if err := atomicWrite(countsPath, countsJSON); err != nil {
		return err
	}
	metadataPath, err := c.MetadataPath(jobID)
	if err != nil {
		return err
	}
	return atomicWrite(metadataPath, metadataJSON)
}

// LoadResultsBundle loads results/counts.json and results/metadata.json.
func (c *CircuitFS) LoadResultsBundle(jobID string) (ResultsBundle, error) {
	countsPath, err := c.CountsPath(jobID)
	if err != nil {
		return ResultsBundle{}, err
	}
	counts, err := readNotFound(countsPath)
	if err != nil {
		return ResultsBundle{}, err
	}
	metadataPath, err := c.MetadataPath(jobID)
	if err != nil {
		return ResultsBundle{}, err
	}
	metadata, err := readNotFound(metadataPath)
	if err != nil {
		return ResultsBundle{}, err
	}
	return ResultsBundle{CountsJSON: counts, MetadataJSON: metadata}, nil
}

// StoreErrorDetails stores results/error.json. The artifact is stable and
// machine-readable so public APIs can reference it as error_details_ref.
func (c *CircuitFS) StoreErrorDetails(jobID string, errorJSON []byte) error {
	if err := c.EnsureJobLayout(jobID); err != nil {
		return err
	}
	path, err := c.ErrorPath(jobID)
	if err != nil {
		return err
	}
	return atomicWrite(path, errorJSON)
}

// LoadErrorDetails loads results/error.json.
func (c *CircuitFS) LoadErrorDetails(jobID string) ([]byte, error) {
	path, err := c.ErrorPath(jobID)
	if err != nil {
		return nil, err
	}
	return readNotFound(path)
}

// AppendLogLine appends a line to logs/<name>.log. Best-effort append,
// not atomic.
func (c *CircuitFS) AppendLogLine(jobID, logName, line string) error {
	if err := c.EnsureJobLayout(jobID); err != nil {
		return err
	}
	dir, err := c.LogsDir(jobID)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, logName+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, line)
	return err
}

func (c *CircuitFS) jobSubdir(jobID, name string) (string, error) {
	root, err := c.JobRoot(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// validateJobID allows UUIDs and simple test ids while rejecting anything
// that could traverse outside the job directory.
func validateJobID(jobID string) error {
	if jobID == "" || strings.ContainsAny(jobID, `/\`) || strings.Contains(jobID, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidJobID, jobID)
	}
	return nil
}

// atomicWrite writes bytes to a temp file in the target directory and
// renames it over the destination. Rename within one directory is atomic
// on the filesystems the store supports.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func readNotFound(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}
