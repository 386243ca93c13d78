package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordEnrich(t *testing.T) {
	okBefore := testutil.ToFloat64(EnrichResults.WithLabelValues("ok"))
	phBefore := testutil.ToFloat64(EnrichResults.WithLabelValues("placeholder"))

	RecordEnrich(false)
	RecordEnrich(true)
	RecordEnrich(true)

	if got := testutil.ToFloat64(EnrichResults.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(EnrichResults.WithLabelValues("placeholder")) - phBefore; got != 2 {
		t.Errorf("placeholder delta = %v, want 2", got)
	}
}

func TestRecordTMDBRequest(t *testing.T) {
	RecordTMDBRequest("search", 20*time.Millisecond, nil)
	RecordTMDBRequest("details", time.Second, errors.New("boom"))

	if n := testutil.CollectAndCount(TMDBRequestDuration); n < 2 {
		t.Errorf("series = %d, want >= 2", n)
	}
}
