package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/metrics"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	assert.NotNil(t, m)
	assert.NotNil(t, m.LoginAttempts)
	assert.NotNil(t, m.SyncRecords)
	assert.NotNil(t, m.DatabaseConnections)
}

func TestRecordLoginAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordLoginAttempt("success")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	m.RecordLoginAttempt("failure")
	m.RecordLoginAttempt("failure")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
}

func TestRecordRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordRegistration()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationTotal))
}

func TestRecordSync(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.RecordSyncPush("success", 3, 20*time.Millisecond)
	m.RecordSyncPush("failure", 1, time.Millisecond)
	m.RecordSyncRecord("clients", "inserted")
	m.RecordSyncRecord("clients", "inserted")
	m.RecordSyncRecord("sales", "updated")
	m.RecordSyncPull("success")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncPushes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncPushes.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues("clients", "inserted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues("sales", "updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncPulls.WithLabelValues("success")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SyncPushDuration))
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.RecordHTTPRequest("GET", "/health", 200)
	m.RecordHTTPRequest("POST", "/sync/all", 418)
	m.RecordHTTPRequest("POST", "/sync/all", 502)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/sync/all", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/sync/all", "5xx")))
}

func TestSecurityAndSystemMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.RecordRateLimitHit("/auth/login")
	m.RecordInvalidToken()
	m.RecordUnlistedOrigin()
	m.UpdateDatabaseConnections(4)
	m.IncrementActiveConnections()
	m.IncrementActiveConnections()
	m.DecrementActiveConnections()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits.WithLabelValues("/auth/login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidTokens))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CORSRejects))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DatabaseConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
}
