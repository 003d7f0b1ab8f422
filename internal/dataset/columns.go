package dataset

// Vínculo explícito entre categorias do relatório e colunas da planilha.
// Nada de lookup em estado global: quem chama o loader passa (ou usa o
// default, que espelha as planilhas originais do comercial).

type SlabColumns struct {
	Label     string
	Threshold string
	Percent   string
}

type SupplierColumns struct {
	Supplier        string
	BaseTarget      string
	PriorPurchase   string
	CurrentPurchase string
	Slabs           []SlabColumns
}

type TargetColumns struct {
	Outlet string
	Main   string
	Sales  string
	Profit string
}

func DefaultSupplierColumns() SupplierColumns {
	return SupplierColumns{
		Supplier:        "supplier",
		BaseTarget:      "BASE TARGET",
		PriorPurchase:   "2025 TOTEL PURCHASE", // "TOTEL" mesmo, typo vem da planilha
		CurrentPurchase: "2026 TOTEL PURCHASE",
		Slabs: []SlabColumns{
			{Label: "SLAB A", Threshold: "SLAB A", Percent: "SLAB A ACHIEVE PAYABLE AMOUNT%"},
			{Label: "SLAB B", Threshold: "SLAB B", Percent: "SLAB B ACHIEVE PAYABLE AMOUNT%"},
			{Label: "SLAB C", Threshold: "SLAB C", Percent: "SLAB C ACHIEVE PAYABLE AMOUNT%"},
			{Label: "SLAB D", Threshold: "SLAB D", Percent: "SLAB D ACHIEVE PAYABLE AMOUNT%"},
			{Label: "SLAB E", Threshold: "SLAB E", Percent: "SLAB E ACHIEVE PAYABLE AMOUNT%"},
		},
	}
}

func DefaultTargetColumns() TargetColumns {
	return TargetColumns{
		Outlet: "OUTLET",
		Main:   "MAIN",
		Sales:  "Total Sales",
		Profit: "Total Profit",
	}
}
