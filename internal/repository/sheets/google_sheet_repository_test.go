package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/poultrydash/internal/config"
)

type recordedCall struct {
	method string
	path   string
	values [][]interface{}
}

func newTestRepo(t *testing.T) (*GoogleSheetRepository, func() []recordedCall) {
	t.Helper()

	var (
		mu    sync.Mutex
		calls []recordedCall
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{method: r.Method, path: r.URL.Path}
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		call.values = body.Values

		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-1"},
		nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	return repo, func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func TestAppendRows(t *testing.T) {
	repo, calls := newTestRepo(t)

	err := repo.AppendRows(context.Background(), "Reports!A:F", [][]interface{}{{"2025-03-05", "Batch 1", 5}})
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.True(t, strings.HasSuffix(got[0].path, ":append"), got[0].path)
	assert.Contains(t, got[0].path, "sheet-1")
	require.Len(t, got[0].values, 1)
	assert.Equal(t, "Batch 1", got[0].values[0][1])
}

func TestAppendRowsSkipsEmpty(t *testing.T) {
	repo, calls := newTestRepo(t)

	require.NoError(t, repo.AppendRows(context.Background(), "Reports!A:F", nil))
	assert.Empty(t, calls())
	assert.Error(t, repo.AppendRows(context.Background(), "", [][]interface{}{{1}}))
}

func TestReplaceRange(t *testing.T) {
	repo, calls := newTestRepo(t)

	err := repo.ReplaceRange(context.Background(), "History!A:F", [][]interface{}{{"Batch"}, {"Batch 1"}})
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 2)
	assert.True(t, strings.HasSuffix(got[0].path, ":clear"), got[0].path)
	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Len(t, got[1].values, 2)
}
