package handlers

// Só os campos do contrato; o resultado do cálculo de rebate nunca vem do
// cliente, é derivado no servidor.
type SlabTierDTO struct {
	Label         string  `json:"label"`
	Threshold     float64 `json:"threshold"`
	RebatePercent float64 `json:"rebate_percent"`
}

type SupplierCreateDTO struct {
	Name            string        `json:"name"`
	BaseTarget      float64       `json:"base_target"`
	PriorPurchase   float64       `json:"prior_purchase"`
	CurrentPurchase float64       `json:"current_purchase"`
	Slabs           []SlabTierDTO `json:"slabs"`
}
