package models

import "time"

// SlabTier é uma faixa progressiva de rebate: atingiu o volume mínimo de
// compra (Threshold), libera o percentual. Threshold <= 0 significa faixa
// não configurada na planilha (ignorada por completo no cálculo).
type SlabTier struct {
	Label         string  `bson:"label" json:"label"`
	Threshold     float64 `bson:"threshold" json:"threshold"`
	RebatePercent float64 `bson:"rebate_percent" json:"rebate_percent"`
}

type Supplier struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name"`
	BaseTarget      float64    `bson:"base_target" json:"base_target"`
	PriorPurchase   float64    `bson:"prior_purchase" json:"prior_purchase"`     // acumulado do período anterior
	CurrentPurchase float64    `bson:"current_purchase" json:"current_purchase"` // acumulado do período corrente
	Slabs           []SlabTier `bson:"slabs" json:"slabs"`                       // ordem definida pela planilha, até 5 faixas
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}
