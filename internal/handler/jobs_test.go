package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
)

func TestSubmitJob(t *testing.T) {
	app := newPublicTestApp()

	t.Run("empty request reports every missing field", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_ARGUMENT", body.Error.Code)
		assert.Equal(t, "validation failed", body.Error.Message)
		assert.ElementsMatch(t, []string{"name", "target", "program"}, violationFieldList(body))
	})

	t.Run("missing program variant only", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{"name":"bell-pair","target":"sim:local"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, "program", body.Error.Violations[0].Field)
		assert.Equal(t, "oneof program is required", body.Error.Violations[0].Description)
	})

	t.Run("two program variants rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{
			"name": "bell-pair",
			"target": "sim:local",
			"qasm": {"source": "OPENQASM 3;", "version": "3.0"},
			"aqo_ref": {"qfs_ref": "qfs://jobs/abc/compiled"}
		}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, "program", body.Error.Violations[0].Field)
		assert.Equal(t, "exactly one program variant must be set", body.Error.Violations[0].Description)
	})

	t.Run("nested variant fields are dotted", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{
			"name": "bell-pair",
			"target": "sim:local",
			"eigen_lang": {"entrypoint": "", "source": ""}
		}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.ElementsMatch(t,
			[]string{"eigen_lang.entrypoint", "eigen_lang.source"},
			violationFieldList(body))
	})

	t.Run("malformed body aborts before validation", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_ARGUMENT", body.Error.Code)
		assert.Equal(t, "invalid request body", body.Error.Message)
		assert.Empty(t, body.Error.Violations)
	})

	t.Run("valid submission is acknowledged", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/submit", `{
			"name": "bell-pair",
			"target": "sim:local",
			"eigen_lang": {"entrypoint": "main", "source": "h q[0]; cx q[0], q[1];"}
		}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.JobResponse
		decodeJSON(t, resp, &body)
		assert.Regexp(t, `^job_[0-9a-f]{12}$`, body.JobID)
		assert.Equal(t, domain.JobStateQueued, body.Status.State)
		assert.Equal(t, "accepted (stub)", body.Status.Message)
	})

	t.Run("request id header is echoed and fresh per call", func(t *testing.T) {
		first := postJSON(t, app, "/v1/jobs/submit", `{}`)
		second := postJSON(t, app, "/v1/jobs/submit", `{}`)

		firstID := first.Header.Get("X-Request-ID")
		secondID := second.Header.Get("X-Request-ID")
		assert.NotEmpty(t, firstID)
		assert.NotEmpty(t, secondID)
		assert.NotEqual(t, firstID, secondID)
	})
}

func TestGetJobStatus(t *testing.T) {
	app := newPublicTestApp()

	t.Run("missing job id rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/status", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, "job_id", body.Error.Violations[0].Field)
		assert.Equal(t, "field is required", body.Error.Violations[0].Description)
	})

	t.Run("returns the placeholder status", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/status", `{"job_id":"job_0123456789ab"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.JobStatusResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, "job_0123456789ab", body.Status.JobID)
		assert.Equal(t, domain.JobStateQueued, body.Status.State)
		assert.Equal(t, "stub status", body.Status.Message)
	})
}

func TestCancelJob(t *testing.T) {
	app := newPublicTestApp()

	t.Run("missing job id rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/cancel", `{"job_id":""}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("cancellation always accepted", func(t *testing.T) {
		resp := postJSON(t, app, "/v1/jobs/cancel", `{"job_id":"job_0123456789ab"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.CancelJobResponse
		decodeJSON(t, resp, &body)
		assert.True(t, body.Accepted)
	})
}

func TestGetJobResults(t *testing.T) {
	app := newPublicTestApp()

	resp := postJSON(t, app, "/v1/jobs/results", `{"job_id":"job_0123456789ab"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.JobResultsResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "job_0123456789ab", body.JobID)
	assert.Equal(t, domain.JobStateDone, body.State)
	assert.Equal(t, map[string]int64{"00": 512, "11": 512}, body.Counts)
	assert.Equal(t, map[string]string{"stub": "true"}, body.Metadata)
	assert.False(t, body.CompletedAt.IsZero())
}

// readSSEUpdates parses job_update events out of an SSE body.
func readSSEUpdates(t *testing.T, resp *http.Response) []domain.JobUpdate {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var updates []domain.JobUpdate
	for _, block := range strings.Split(string(raw), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		require.Equal(t, "event: job_update", lines[0], "unexpected SSE block: %q", block)
		require.True(t, strings.HasPrefix(lines[1], "data: "))

		var update domain.JobUpdate
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &update))
		updates = append(updates, update)
	}
	return updates
}

func TestStreamJobUpdates(t *testing.T) {
	app := newPublicTestApp()

	t.Run("missing job id rejected before streaming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/stream", nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, "job_id", body.Error.Violations[0].Field)
	})

	t.Run("streams the two-event sequence", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/stream?job_id=job_0123456789ab", nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		updates := readSSEUpdates(t, resp)
		require.Len(t, updates, 2)

		assert.Equal(t, "job_0123456789ab", updates[0].JobID)
		assert.Equal(t, domain.JobStateQueued, updates[0].State)
		assert.Equal(t, 0.0, updates[0].Progress)
		assert.Equal(t, "queued (stub)", updates[0].Message)
		assert.Equal(t, int64(1), updates[0].EventSeq)

		assert.Equal(t, domain.JobStateDone, updates[1].State)
		assert.Equal(t, 1.0, updates[1].Progress)
		assert.Equal(t, "done (stub)", updates[1].Message)
		assert.Equal(t, int64(2), updates[1].EventSeq)
	})

	t.Run("resumes numbering after last_event_seq", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/stream?job_id=job_0123456789ab&last_event_seq=4", nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)

		updates := readSSEUpdates(t, resp)
		require.Len(t, updates, 2)
		assert.Equal(t, int64(5), updates[0].EventSeq)
		assert.Equal(t, int64(6), updates[1].EventSeq)
	})
}
