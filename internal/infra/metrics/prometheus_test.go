package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveRemoteCall("list_transactions", 200, 30*time.Millisecond)
	r.ObserveRemoteCall("list_transactions", 200, 10*time.Millisecond)
	r.ObserveRemoteCall("create_transaction", 0, time.Second)
	r.RecordLoad("transactions", "succeeded")
	r.RecordLoad("transactions", "stale")
	r.RecordMutation("create", true)
	r.RecordMutation("create", false)
	r.RecordMutation("create", false)
	r.SetSnapshotVersion(42)

	t.Run("counters", func(t *testing.T) {
		assert.Equal(t, 2.0, testutil.ToFloat64(r.remoteCalls.WithLabelValues("list_transactions", "200")))
		assert.Equal(t, 1.0, testutil.ToFloat64(r.remoteCalls.WithLabelValues("create_transaction", "0")))
		assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("transactions", "stale")))
		assert.Equal(t, 2.0, testutil.ToFloat64(r.mutations.WithLabelValues("create", "failed")))
		assert.Equal(t, 1.0, testutil.ToFloat64(r.mutations.WithLabelValues("create", "succeeded")))
	})

	t.Run("gauge", func(t *testing.T) {
		assert.Equal(t, 42.0, testutil.ToFloat64(r.snapshotVersion))
	})

	t.Run("handler exposes the registry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, "finance_client_snapshot_version 42"))
		assert.True(t, strings.Contains(body, `finance_client_store_loads_total{outcome="succeeded",resource="transactions"} 1`))
		assert.True(t, strings.Contains(body, "go_goroutines"))
	})
}
