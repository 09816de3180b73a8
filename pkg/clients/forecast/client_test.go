package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrydash/internal/config"
	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

func TestForecastSendsBearerAndDecodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-feed-forecast/b-1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"batchName": "Batch 1",
			"forecast": []map[string]any{
				{"day": 1, "feedType": "Booster", "targetKilos": 0.6},
				{"day": 2, "feedType": "Booster", "targetKilos": 0.7},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(config.ForecastConfig{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})

	got, err := client.Forecast(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Batch 1", got.BatchName)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, models.ForecastEntry{Day: 2, FeedType: models.FeedBooster, TargetKilos: 0.7}, got.Entries[1])
}

func TestForecastErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/get-feed-forecast/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Batch not found"}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer srv.Close()

	client := NewClient(config.ForecastConfig{BaseURL: srv.URL})

	_, err := client.Forecast(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrBatchNotFound)

	_, err = client.Forecast(context.Background(), "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}
