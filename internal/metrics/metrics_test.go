package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/joseph-ayodele/event-circulars/constants"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOutcome(constants.OutcomeOK)
	m.ObserveOutcome(constants.OutcomeOK)
	m.ObserveOutcome(constants.OutcomeMalformed)
	m.ObserveEventType("Technical Workshop")
	m.ObserveEventType("Not Provided")
	m.ObserveStage(StageExtract, 250*time.Millisecond)
	m.ObserveResponse("generate", 200)

	if got := testutil.ToFloat64(m.generateTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok = %v", got)
	}
	if got := testutil.ToFloat64(m.generateTotal.WithLabelValues("malformed_output")); got != 1 {
		t.Errorf("malformed = %v", got)
	}
	if got := testutil.ToFloat64(m.eventTypeTotal.WithLabelValues("Workshop")); got != 1 {
		t.Errorf("Workshop = %v", got)
	}
	if got := testutil.ToFloat64(m.eventTypeTotal.WithLabelValues("Other")); got != 1 {
		t.Errorf("Other = %v", got)
	}
	if n := testutil.CollectAndCount(m.stageDuration); n != 1 {
		t.Errorf("stage series = %d", n)
	}

	expected := `
# HELP circulars_http_responses_total HTTP responses by route and status code
# TYPE circulars_http_responses_total counter
circulars_http_responses_total{code="200",route="generate"} 1
`
	if err := testutil.CollectAndCompare(m.httpResponses, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveOutcome(constants.OutcomeOK)
	m.ObserveStage(StageRender, time.Second)
	m.ObserveEventType("Seminar")
	m.ObserveResponse("health", 200)
	if m.Handler() == nil {
		t.Error("nil handler")
	}
}
