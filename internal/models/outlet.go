package models

import "time"

type EntryKind string

const (
	EntryTarget   EntryKind = "target"
	EntryAchieved EntryKind = "achieved"
)

// OutletEntry é uma linha da planilha de metas: meta OU realizado de uma
// loja em um mês. Linhas "DAILY" da planilha nem viram entry (descartadas
// no loader).
type OutletEntry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Outlet    string    `bson:"outlet" json:"outlet"`
	Month     string    `bson:"month" json:"month"` // JAN, FEB, MAR...
	Kind      EntryKind `bson:"kind" json:"kind"`
	Seq       int       `bson:"seq" json:"-"` // ordem da linha na planilha; o merge meta x realizado preserva essa ordem
	Sales     float64   `bson:"sales" json:"sales"`
	Profit    float64   `bson:"profit" json:"profit"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
