package halprice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleBulletin = `{
  "BultenTarihi": "2025-06-02",
  "HalFiyatListesi": [
    {"MalAdi": "DOMATES", "Birim": "KG", "OrtalamaUcret": 32.5, "AsgariUcret": 30, "AzamiUcret": 35, "MalTipAdi": "SEBZE"},
    {"MalAdi": "ÇİLEK", "Birim": "KG", "OrtalamaUcret": "45,50", "AsgariUcret": null, "AzamiUcret": "oops", "MalTipAdi": "MEYVE"}
  ]
}`

func TestFetchDay(t *testing.T) {
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBulletin))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	day := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	bulletin, err := client.FetchDay(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, "/2025-06-02", gotPath.Load())
	require.Equal(t, "2025-06-02", bulletin.BulletinDate)
	require.Len(t, bulletin.Records, 2)

	domates := bulletin.Records[0]
	require.Equal(t, "DOMATES", domates.Name)
	require.Equal(t, "KG", domates.Unit)
	require.InDelta(t, 32.5, float64(domates.Average), 1e-9)
	require.InDelta(t, 30.0, float64(domates.Min), 1e-9)
	require.InDelta(t, 35.0, float64(domates.Max), 1e-9)
	require.Equal(t, "SEBZE", domates.Kind)

	// Comma-decimal string, null and garbage all decode without error.
	cilek := bulletin.Records[1]
	require.InDelta(t, 45.5, float64(cilek.Average), 1e-9)
	require.InDelta(t, 0.0, float64(cilek.Min), 1e-9)
	require.InDelta(t, 0.0, float64(cilek.Max), 1e-9)
}

func TestFetchDay_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleBulletin))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(2))
	bulletin, err := client.FetchDay(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, bulletin.Records, 2)
	require.Equal(t, int32(2), calls.Load())
}

func TestFetchDay_StatusErrorAfterBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(1))
	_, err := client.FetchDay(context.Background(), time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "http status 404")
	require.Equal(t, int32(2), calls.Load(), "one retry after the initial attempt")
}

func TestFetchDay_MalformedBodyFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"BultenTarihi": 12`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(2))
	_, err := client.FetchDay(context.Background(), time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode bulletin")
	require.Equal(t, int32(1), calls.Load(), "parse failures are not retried")
}

func TestFetchDay_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(2))
	_, err := client.FetchDay(ctx, time.Now())
	require.Error(t, err)
}

func TestFlexFloat_Decode(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected float64
	}{
		{"number", `{"OrtalamaUcret": 12.5}`, 12.5},
		{"dot string", `{"OrtalamaUcret": "12.50"}`, 12.5},
		{"comma string", `{"OrtalamaUcret": "12,50"}`, 12.5},
		{"null", `{"OrtalamaUcret": null}`, 0},
		{"garbage string", `{"OrtalamaUcret": "n/a"}`, 0},
		{"missing", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec RawRecord
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &rec))
			require.InDelta(t, tt.expected, float64(rec.Average), 1e-9)
		})
	}
}
