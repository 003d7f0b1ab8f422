package rebate

import (
	"math"

	"github.com/Werneck0live/painel-rebate/internal/models"
)

const (
	StatusAchieved = "Achieved"
	StatusPending  = "Pending"
)

// TierStatus é o resultado de uma faixa individual.
type TierStatus struct {
	Label         string  `json:"label"`
	Threshold     float64 `json:"threshold"`
	Remaining     float64 `json:"remaining"`
	RebatePercent float64 `json:"rebate_percent"`
	RebateValue   float64 `json:"rebate_value"` // só > 0 quando a faixa foi atingida
	Achieved      bool    `json:"achieved"`
	Status        string  `json:"status"`
}

type Result struct {
	Tiers            []TierStatus `json:"tiers"`
	EffectivePercent float64      `json:"effective_percent"`
	EffectiveValue   float64      `json:"effective_value"`
}

// Evaluate resolve o rebate progressivo de um fornecedor.
//
// Regras (mesmas da planilha de origem):
//   - faixa com threshold <= 0 está inativa e fica fora do resultado;
//   - remaining = max(0, threshold - compra);
//   - o percentual efetivo é o da ÚLTIMA faixa atingida NA ORDEM em que as
//     faixas foram configuradas, não a de maior threshold. Se a planilha
//     listar (100, 2%) antes de (50, 5%) e a compra for 120, vale 5%.
//     Não reordene as faixas aqui.
//
// Compra ausente/inválida vira 0: o painel precisa renderizar a linha mesmo
// com dado parcial, então nunca retornamos erro.
func Evaluate(tiers []models.SlabTier, purchase float64) Result {
	if purchase < 0 || math.IsNaN(purchase) || math.IsInf(purchase, 0) {
		purchase = 0
	}

	res := Result{Tiers: []TierStatus{}}
	for _, t := range tiers {
		if t.Threshold <= 0 {
			continue
		}

		achieved := purchase >= t.Threshold
		ts := TierStatus{
			Label:         t.Label,
			Threshold:     t.Threshold,
			Remaining:     math.Max(0, t.Threshold-purchase),
			RebatePercent: t.RebatePercent,
			Achieved:      achieved,
			Status:        StatusPending,
		}
		if achieved {
			ts.Status = StatusAchieved
			ts.RebateValue = purchase * (t.RebatePercent / 100)
			// última atingida na sequência ganha
			res.EffectivePercent = t.RebatePercent
		}
		res.Tiers = append(res.Tiers, ts)
	}

	res.EffectiveValue = purchase * (res.EffectivePercent / 100)
	return res
}
