package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanmoais/project-management-platform/internal/rest"
)

type silentNotifier struct{}

func (silentNotifier) Error(string) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := rest.NewClient(srv.URL, rest.WithNotifier(silentNotifier{}))
	require.NoError(t, err)
	return client
}

func TestListEnvironments(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"code": 200, "data": {
			"total": 2,
			"rows": [
				{"env_id": 1, "project_name": "demo", "env_name": "staging", "env_type": "test", "env_url": "https://staging.example.com", "status": "active"},
				{"env_id": 2, "project_name": "demo", "env_name": "prod", "env_type": "production", "env_url": "https://example.com", "status": "active"}
			]
		}}`)
	})

	page, err := ListEnvironments(client)(context.Background(), url.Values{"page": {"1"}})
	require.NoError(t, err)

	assert.Equal(t, "/api/environment/list", gotPath)
	assert.Equal(t, "1", gotQuery.Get("page"))
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, int64(1), page.Rows[0].EnvID)
	assert.Equal(t, "staging", page.Rows[0].EnvName)
	assert.Equal(t, "https://example.com", page.Rows[1].EnvURL)
}

func TestEnvironmentMutations(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		io.WriteString(w, `{"code": 200, "msg": "ok"}`)
	})

	ctx := context.Background()
	env := Environment{ProjectName: "demo", EnvName: "staging"}

	require.NoError(t, AddEnvironment(ctx, client, env))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/environment/add", gotPath)

	require.NoError(t, UpdateEnvironment(ctx, client, env))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/environment/update", gotPath)

	require.NoError(t, DeleteEnvironment(ctx, client, 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/environment/delete/7", gotPath)
}

func TestGenerateReportFilename(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="quality-report.docx"`)
		w.Write([]byte("doc-bytes"))
	})

	doc, filename, err := GenerateReport(context.Background(), client, map[string]string{"package": "demo"})
	require.NoError(t, err)
	assert.Equal(t, []byte("doc-bytes"), doc)
	assert.Equal(t, "quality-report.docx", filename)
}

func TestGenerateReportWithoutDisposition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("doc-bytes"))
	})

	_, filename, err := GenerateReport(context.Background(), client, nil)
	require.NoError(t, err)
	assert.Empty(t, filename)
}
