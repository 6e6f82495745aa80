package integration

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentDonations fires many donation requests at once while the
// first attempt is held at its approval receipt. Exactly one must be
// accepted; the rest are refused without touching the wallet.
func TestConcurrentDonations(t *testing.T) {
	gate := make(chan struct{})
	app := newTestApp(t, appOptions{gate: gate})
	defer app.close()
	app.connect(t)

	const concurrency = 20
	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
		busy     atomic.Int32
		other    atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			resp := app.call(t, http.MethodPost, "/api/v1/donations", map[string]string{"amount": "1"}, true)
			switch {
			case resp.status == http.StatusAccepted:
				accepted.Add(1)
			case resp.status == http.StatusConflict && resp.body["error_code"] == "DON_001":
				busy.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(concurrency-1), busy.Load())
	assert.Zero(t, other.Load())
	require.Eventually(t, func() bool { return app.chain.sent.Load() == 1 }, 2*time.Second, 5*time.Millisecond,
		"the accepted attempt submits its approval")

	close(gate)
	require.Equal(t, "SUCCEEDED", app.waitForAttempt(t)["state"])
	assert.Equal(t, 1, app.chain.donationCount(1))
	assert.Equal(t, int64(2), app.chain.sent.Load(), "only the accepted attempt reached the wallet")

	// The lifecycle is free again once the attempt is terminal.
	resp := app.call(t, http.MethodPost, "/api/v1/donations", map[string]string{"amount": "2"}, true)
	assert.Equal(t, http.StatusAccepted, resp.status)
	require.Equal(t, "SUCCEEDED", app.waitForAttempt(t)["state"])
	assert.Equal(t, 2, app.chain.donationCount(1))
}

// TestConcurrentReads checks that parallel listings all see the same merged view.
func TestConcurrentReads(t *testing.T) {
	app := newTestApp(t, appOptions{})
	defer app.close()

	const concurrency = 25
	var wg sync.WaitGroup
	results := make([]apiResponse, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = app.call(t, http.MethodGet, "/api/v1/events", nil, false)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, http.StatusOK, r.status)
		list := r.body["data"].([]interface{})
		require.Len(t, list, 4)
		assert.Equal(t, "chain", list[0].(map[string]interface{})["origin"])
	}
}
