package target

import (
	"sort"

	"github.com/Werneck0live/painel-rebate/internal/models"
	"github.com/Werneck0live/painel-rebate/internal/utils"
)

// Meses que ainda não têm apuração fechada e podem receber projeção a
// partir do ratio de janeiro. Mesma regra da planilha de origem.
var futureMonths = map[string]bool{"FEB": true, "MAR": true}

type Summary struct {
	TotalTarget    float64 `json:"total_target"`
	TotalAchieved  float64 `json:"total_achieved"`
	TotalGap       float64 `json:"total_gap"`
	AveragePercent float64 `json:"average_percent"`
	Top            []Row   `json:"top"`
	Bottom         []Row   `json:"bottom"`
}

type monthKey struct {
	outlet string
	month  string
}

// BuildRows casa as linhas de meta com as de realizado (outlet+mês), na
// ordem em que as metas aparecem no dataset. Meta sem realizado entra com
// realizado 0; realizado sem meta é descartado (mesmo comportamento do
// left-join da origem).
func BuildRows(entries []models.OutletEntry) []Row {
	achieved := map[monthKey]models.OutletEntry{}
	for _, e := range entries {
		if e.Kind == models.EntryAchieved {
			achieved[monthKey{e.Outlet, e.Month}] = e
		}
	}

	// ratio de janeiro por loja, calculado sobre o % já arredondado para
	// reproduzir exatamente os números da planilha
	janRatio := map[string]float64{}
	for _, e := range entries {
		if e.Kind != models.EntryTarget || e.Month != "JAN" || e.Sales <= 0 {
			continue
		}
		got := achieved[monthKey{e.Outlet, "JAN"}]
		janRatio[e.Outlet] = utils.Round1(got.Sales/e.Sales*100) / 100
	}

	rows := []Row{}
	for _, e := range entries {
		if e.Kind != models.EntryTarget {
			continue
		}
		got := achieved[monthKey{e.Outlet, e.Month}]
		r := Reconcile(e.Sales, got.Sales, janRatio[e.Outlet], futureMonths[e.Month])
		r.Outlet = e.Outlet
		r.Month = e.Month
		r.TargetProfit = e.Profit
		r.AchievedProfit = got.Profit
		rows = append(rows, r)
	}
	return rows
}

// BuildSummary monta os KPIs e os destaques (3 melhores / 3 piores por %).
func BuildSummary(rows []Row) Summary {
	s := Summary{Top: []Row{}, Bottom: []Row{}}
	for _, r := range rows {
		s.TotalTarget += r.TargetSales
		s.TotalAchieved += r.AchievedSales
		s.TotalGap += r.Gap
		s.AveragePercent += r.AchievementPercent
	}
	if len(rows) > 0 {
		s.AveragePercent = utils.Round1(s.AveragePercent / float64(len(rows)))
	}

	ranked := make([]Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AchievementPercent > ranked[j].AchievementPercent
	})
	n := len(ranked)
	for i := 0; i < n && i < 3; i++ {
		s.Top = append(s.Top, ranked[i])
	}
	for i := n - 1; i >= 0 && len(s.Bottom) < 3; i-- {
		s.Bottom = append(s.Bottom, ranked[i])
	}
	return s
}
