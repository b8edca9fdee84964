package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if err := Register(prometheus.NewRegistry()); err != nil {
		t.Fatalf("register with fresh registry: %v", err)
	}
}

func TestCountersMove(t *testing.T) {
	before := testutil.ToFloat64(botStarts.WithLabelValues("quiz"))
	BotStarted("quiz")
	after := testutil.ToFloat64(botStarts.WithLabelValues("quiz"))
	if after != before+1 {
		t.Fatalf("starts counter: before=%v after=%v", before, after)
	}

	gBefore := testutil.ToFloat64(botStops.WithLabelValues("graceful"))
	fBefore := testutil.ToFloat64(botStops.WithLabelValues("forced"))
	BotStopped(false)
	BotStopped(true)
	if testutil.ToFloat64(botStops.WithLabelValues("graceful")) != gBefore+1 {
		t.Fatalf("graceful stop counter did not move")
	}
	if testutil.ToFloat64(botStops.WithLabelValues("forced")) != fBefore+1 {
		t.Fatalf("forced stop counter did not move")
	}

	SetActiveBots(3)
	if testutil.ToFloat64(activeBots) != 3 {
		t.Fatalf("active gauge = %v, want 3", testutil.ToFloat64(activeBots))
	}
	SetActiveBots(0)

	// Histograms only need to not panic here.
	ObserveProvision(120 * time.Millisecond)
	ObserveGeneration("summary", 80*time.Millisecond)
}
