package rebate

/*

go test -run 'TestEvaluate_|TestBuildOverview|TestBuildBreakdown' -v ./internal/rebate -count=1

*/

import (
	"math"
	"reflect"
	"testing"

	"github.com/Werneck0live/painel-rebate/internal/models"
)

func tiers(pairs ...[2]float64) []models.SlabTier {
	out := make([]models.SlabTier, 0, len(pairs))
	labels := []string{"SLAB A", "SLAB B", "SLAB C", "SLAB D", "SLAB E"}
	for i, p := range pairs {
		out = append(out, models.SlabTier{Label: labels[i], Threshold: p[0], RebatePercent: p[1]})
	}
	return out
}

func TestEvaluate_NoActiveTiers(t *testing.T) {
	res := Evaluate(tiers([2]float64{0, 2}, [2]float64{-10, 5}), 1000)
	if len(res.Tiers) != 0 {
		t.Fatalf("tiers: want empty, got %d", len(res.Tiers))
	}
	if res.EffectivePercent != 0 || res.EffectiveValue != 0 {
		t.Fatalf("effective: want 0/0, got %v/%v", res.EffectivePercent, res.EffectiveValue)
	}

	res = Evaluate(nil, 1000)
	if len(res.Tiers) != 0 || res.EffectiveValue != 0 {
		t.Fatalf("nil tiers: %#v", res)
	}
}

// Caso central: faixa posterior com threshold MENOR sobrepõe a anterior
// quando ambas foram atingidas. A ordem configurada manda, não o valor.
func TestEvaluate_LastAchievedWins_NonMonotonic(t *testing.T) {
	ts := tiers([2]float64{100, 2}, [2]float64{50, 5})

	res := Evaluate(ts, 120)
	if !res.Tiers[0].Achieved || !res.Tiers[1].Achieved {
		t.Fatalf("both tiers should be achieved: %#v", res.Tiers)
	}
	if res.EffectivePercent != 5 {
		t.Fatalf("effective percent: want 5 (last in sequence), got %v", res.EffectivePercent)
	}
	if res.EffectiveValue != 120*0.05 {
		t.Fatalf("effective value: want %v got %v", 120*0.05, res.EffectiveValue)
	}
}

func TestEvaluate_PartialAchievement(t *testing.T) {
	ts := tiers([2]float64{100, 2}, [2]float64{50, 5})

	res := Evaluate(ts, 60)
	if res.Tiers[0].Achieved {
		t.Fatalf("tier 1 (100) should be pending at purchase=60")
	}
	if !res.Tiers[1].Achieved {
		t.Fatalf("tier 2 (50) should be achieved at purchase=60")
	}
	if res.Tiers[0].Remaining != 40 {
		t.Fatalf("remaining tier 1: want 40 got %v", res.Tiers[0].Remaining)
	}
	if res.Tiers[1].Remaining != 0 {
		t.Fatalf("remaining tier 2: want 0 got %v", res.Tiers[1].Remaining)
	}
	if res.EffectivePercent != 5 {
		t.Fatalf("effective percent: want 5 got %v", res.EffectivePercent)
	}
	if res.Tiers[0].RebateValue != 0 {
		t.Fatalf("pending tier must not carry rebate value: %v", res.Tiers[0].RebateValue)
	}
}

func TestEvaluate_RemainingNeverNegative(t *testing.T) {
	ts := tiers([2]float64{100, 2}, [2]float64{500, 3}, [2]float64{50, 5})
	for _, purchase := range []float64{0, 49, 50, 120, 1000} {
		res := Evaluate(ts, purchase)
		for _, tr := range res.Tiers {
			if tr.Remaining < 0 {
				t.Fatalf("purchase=%v tier=%s remaining=%v", purchase, tr.Label, tr.Remaining)
			}
			want := math.Max(0, tr.Threshold-purchase)
			if tr.Remaining != want {
				t.Fatalf("purchase=%v tier=%s remaining want=%v got=%v", purchase, tr.Label, want, tr.Remaining)
			}
		}
	}
}

func TestEvaluate_BadPurchaseFailsSoft(t *testing.T) {
	ts := tiers([2]float64{100, 2})
	for _, purchase := range []float64{-1, math.NaN(), math.Inf(1)} {
		res := Evaluate(ts, purchase)
		if res.EffectiveValue != 0 {
			t.Fatalf("purchase=%v effective value: want 0 got %v", purchase, res.EffectiveValue)
		}
		if res.Tiers[0].Remaining != 100 {
			t.Fatalf("purchase=%v remaining: want 100 got %v", purchase, res.Tiers[0].Remaining)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ts := tiers([2]float64{100, 2}, [2]float64{50, 5}, [2]float64{0, 9})
	a := Evaluate(ts, 120)
	b := Evaluate(ts, 120)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ:\n%#v\n%#v", a, b)
	}
}

func TestBuildOverview(t *testing.T) {
	suppliers := []models.Supplier{
		{
			Name: "ACME", BaseTarget: 1000, PriorPurchase: 800, CurrentPurchase: 120,
			Slabs: tiers([2]float64{100, 2}, [2]float64{50, 5}),
		},
		{
			Name: "Beta", BaseTarget: 500, CurrentPurchase: 40,
			Slabs: tiers([2]float64{100, 2}),
		},
	}

	ov := BuildOverview(suppliers)
	if ov.TotalBaseTarget != 1500 || ov.TotalCurrentPurchase != 160 {
		t.Fatalf("totals: %#v", ov)
	}
	if ov.GapToTarget != 1340 {
		t.Fatalf("gap: want 1340 got %v", ov.GapToTarget)
	}
	if ov.TotalRebate != 120*0.05 {
		t.Fatalf("rebate: want %v got %v", 120*0.05, ov.TotalRebate)
	}
	if ov.AchievedSlabs != 2 || ov.PendingSlabs != 1 {
		t.Fatalf("slab counts: %#v", ov)
	}
}

func TestBuildBreakdown(t *testing.T) {
	suppliers := []models.Supplier{
		{Name: "ACME", CurrentPurchase: 60, Slabs: tiers([2]float64{100, 2}, [2]float64{50, 5}, [2]float64{0, 9})},
	}
	rows := BuildBreakdown(suppliers)
	if len(rows) != 2 {
		t.Fatalf("inactive tier must not produce a row: got %d rows", len(rows))
	}
	if rows[0].Status != StatusPending || rows[1].Status != StatusAchieved {
		t.Fatalf("statuses: %#v", rows)
	}
	if rows[0].Remaining != 40 || rows[1].RebateValue != 60*0.05 {
		t.Fatalf("values: %#v", rows)
	}
}
