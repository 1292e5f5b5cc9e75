package halprice

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
)

// This test uses go-vcr to record/replay a real FetchDay call against the
// municipal feed. It skips by default if the cassette is absent and
// RECORD_CASSETTES != 1.
func TestClient_FetchDay_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "halfeed_day.yaml")
	if _, err := os.Stat(cassette); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		// Ensure parent directory exists for recording
		err := os.MkdirAll(filepath.Dir(cassette), 0o755)
		assert.NoError(t, err, "mkdir cassettes dir should succeed")
	}

	r, err := recorder.New(cassette)
	assert.NoError(t, err, "recorder.New should not error")
	assert.NotNil(t, r, "recorder should not be nil")
	defer func() { _ = r.Stop() }()

	httpClient := &http.Client{Transport: r}
	client := NewClient(WithHTTPClient(httpClient))
	ctx := context.Background()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bulletin, err := client.FetchDay(ctx, day)
	assert.NoError(t, err, "FetchDay should not error")
	assert.NotNil(t, bulletin, "bulletin should not be nil")
	assert.NotEmpty(t, bulletin.Records, "bulletin should carry price records")
}
