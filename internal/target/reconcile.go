package target

import (
	"math"

	"github.com/Werneck0live/painel-rebate/internal/utils"
)

const (
	StatusExcellent   = "Excellent"
	StatusGood        = "Good"
	StatusNeedsImprov = "Needs Improvement"
)

// Row é uma linha da tabela meta x realizado de uma loja em um mês.
type Row struct {
	Outlet             string  `json:"outlet"`
	Month              string  `json:"month"`
	TargetSales        float64 `json:"target_sales"`
	AchievedSales      float64 `json:"achieved_sales"`
	Gap                float64 `json:"gap"`
	AchievementPercent float64 `json:"achievement_percent"`
	Status             string  `json:"status"`
	Estimated          bool    `json:"estimated"` // realizado projetado, não apurado
	TargetProfit       float64 `json:"target_profit"`
	AchievedProfit     float64 `json:"achieved_profit"`
}

// Reconcile calcula gap, % de atingimento e status de uma meta.
//
// Para mês futuro sem realizado, projeta o realizado a partir do ratio de
// atingimento do período anterior (ex.: % de janeiro aplicado sobre a meta
// de fevereiro) e marca a linha como Estimated. A projeção é só para
// planejamento, nunca substitui apuração real.
func Reconcile(targetAmount, achievedAmount, priorRatio float64, future bool) Row {
	r := Row{TargetSales: targetAmount, AchievedSales: achievedAmount}

	if achievedAmount < 0 || math.IsNaN(achievedAmount) {
		r.AchievedSales = 0
	}
	if future && r.AchievedSales == 0 && priorRatio > 0 {
		r.AchievedSales = targetAmount * priorRatio
		r.Estimated = true
	}

	r.Gap = targetAmount - r.AchievedSales
	if targetAmount > 0 {
		r.AchievementPercent = utils.Round1(r.AchievedSales / targetAmount * 100)
	}
	r.Status = Classify(r.AchievementPercent)
	return r
}

// Classify aplica as bandas de status (limites inferiores inclusivos).
func Classify(pct float64) string {
	switch {
	case pct >= 95:
		return StatusExcellent
	case pct >= 85:
		return StatusGood
	default:
		return StatusNeedsImprov
	}
}
