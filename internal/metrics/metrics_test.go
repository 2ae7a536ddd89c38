package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(ProxyRequestsTotal.WithLabelValues("/api/test", "200"))
	bytesBefore := testutil.ToFloat64(ProxyResponseBytes.WithLabelValues("/api/test"))

	RecordRequest("/api/test", 200, 10*time.Millisecond, 512)
	RecordRequest("/api/test", 200, 10*time.Millisecond, 0)

	if got := testutil.ToFloat64(ProxyRequestsTotal.WithLabelValues("/api/test", "200")) - before; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ProxyResponseBytes.WithLabelValues("/api/test")) - bytesBefore; got != 512 {
		t.Errorf("bytes delta = %v, want 512", got)
	}
}

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamErrorsTotal.WithLabelValues("test", "status"))
	RecordUpstream("test", time.Millisecond, "")
	RecordUpstream("test", time.Millisecond, "status")
	if got := testutil.ToFloat64(UpstreamErrorsTotal.WithLabelValues("test", "status")) - before; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}
}
