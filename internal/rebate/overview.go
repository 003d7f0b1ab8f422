package rebate

import "github.com/Werneck0live/painel-rebate/internal/models"

// Overview são os cards de KPI do painel de fornecedores.
type Overview struct {
	TotalBaseTarget      float64 `json:"total_base_target"`
	TotalPriorPurchase   float64 `json:"total_prior_purchase"`
	TotalCurrentPurchase float64 `json:"total_current_purchase"`
	GapToTarget          float64 `json:"gap_to_target"`
	TotalRebate          float64 `json:"total_rebate"`
	AchievedSlabs        int     `json:"achieved_slabs"`
	PendingSlabs         int     `json:"pending_slabs"`
}

// BreakdownRow é uma linha da tabela de progresso de faixas (um fornecedor
// pode gerar até 5 linhas, uma por faixa ativa).
type BreakdownRow struct {
	Supplier        string  `json:"supplier"`
	Slab            string  `json:"slab"`
	Threshold       float64 `json:"threshold"`
	CurrentPurchase float64 `json:"current_purchase"`
	Remaining       float64 `json:"remaining"`
	RebatePercent   float64 `json:"rebate_percent"`
	RebateValue     float64 `json:"rebate_value"`
	Status          string  `json:"status"`
}

func BuildOverview(suppliers []models.Supplier) Overview {
	var ov Overview
	for _, s := range suppliers {
		ov.TotalBaseTarget += s.BaseTarget
		ov.TotalPriorPurchase += s.PriorPurchase
		ov.TotalCurrentPurchase += s.CurrentPurchase

		res := Evaluate(s.Slabs, s.CurrentPurchase)
		ov.TotalRebate += res.EffectiveValue
		for _, ts := range res.Tiers {
			if ts.Achieved {
				ov.AchievedSlabs++
			} else {
				ov.PendingSlabs++
			}
		}
	}
	ov.GapToTarget = ov.TotalBaseTarget - ov.TotalCurrentPurchase
	return ov
}

func BuildBreakdown(suppliers []models.Supplier) []BreakdownRow {
	rows := []BreakdownRow{}
	for _, s := range suppliers {
		res := Evaluate(s.Slabs, s.CurrentPurchase)
		for _, ts := range res.Tiers {
			rows = append(rows, BreakdownRow{
				Supplier:        s.Name,
				Slab:            ts.Label,
				Threshold:       ts.Threshold,
				CurrentPurchase: s.CurrentPurchase,
				Remaining:       ts.Remaining,
				RebatePercent:   ts.RebatePercent,
				RebateValue:     ts.RebateValue,
				Status:          ts.Status,
			})
		}
	}
	return rows
}
