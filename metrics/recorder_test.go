package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveUpdate(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	r := NewRecorder(reg)

	r.ObserveUpdate("one_shot", true, 3)
	r.ObserveUpdate("one_shot", true, 2)
	r.ObserveUpdate("ball_ball", false, 0)

	if got := testutil.ToFloat64(r.updates.WithLabelValues("one_shot", "true")); got != 2 {
		t.Errorf("one_shot updates = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.updates.WithLabelValues("ball_ball", "false")); got != 1 {
		t.Errorf("ball_ball declined updates = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.contacts); got != 5 {
		t.Errorf("contacts = %v, want 5", got)
	}
}

func TestRecorder_ObserveStep(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	r := NewRecorder(reg)

	r.ObserveStep(4, 9)
	r.ObserveStep(2, 5)

	expected := `
# HELP narrowphase_tracked_pairs Shape pairs owning a contact generator.
# TYPE narrowphase_tracked_pairs gauge
narrowphase_tracked_pairs 2
# HELP narrowphase_contact_ids_in_use Contact ids currently allocated.
# TYPE narrowphase_contact_ids_in_use gauge
narrowphase_contact_ids_in_use 5
# HELP narrowphase_steps_total Collision steps run.
# TYPE narrowphase_steps_total counter
narrowphase_steps_total 2
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"narrowphase_tracked_pairs", "narrowphase_contact_ids_in_use", "narrowphase_steps_total")
	if err != nil {
		t.Error(err)
	}
}

func TestRecorder_ObserveManifold(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	r := NewRecorder(reg)

	r.ObserveManifold(0.02)
	r.ObserveManifold(-0.05)

	if got := testutil.CollectAndCount(r.depths); got != 1 {
		t.Errorf("CollectAndCount = %d, want 1 histogram", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, family := range families {
		if family.GetName() != "narrowphase_manifold_max_depth" {
			continue
		}
		h := family.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 2 {
			t.Errorf("sample count = %d, want 2", h.GetSampleCount())
		}
		if math.Abs(h.GetSampleSum()+0.03) > 1e-12 {
			t.Errorf("sample sum = %v, want -0.03", h.GetSampleSum())
		}
		return
	}
	t.Error("narrowphase_manifold_max_depth not gathered")
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.ObserveUpdate("one_shot", true, 1)
	r.ObserveManifold(0.1)
	r.ObserveStep(1, 1)
}

func TestNewRecorder_Unregistered(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveStep(1, 2)

	if got := testutil.ToFloat64(r.idsInUse); got != 2 {
		t.Errorf("ids in use = %v, want 2", got)
	}
}
