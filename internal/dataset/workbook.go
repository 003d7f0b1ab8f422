package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Werneck0live/painel-rebate/internal/models"
	"github.com/Werneck0live/painel-rebate/internal/utils"
)

var ErrEmptyWorkbook = errors.New("workbook has no data rows")

// sheetRows abre o xlsx e devolve as linhas da primeira aba. Só planilha
// ilegível vira erro; célula ruim é tratada linha a linha (fail soft).
func sheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}
	return rows, nil
}

// headerIndex mapeia nome de coluna (com TrimSpace, planilha vem com
// espaço sobrando no header) para índice. Coluna ausente simplesmente não
// entra no mapa; o caller trata como valor 0 / faixa inativa.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func amount(row []string, idx map[string]int, col string) float64 {
	return utils.ParseAmount(cell(row, idx, col))
}

// ParseSupplierWorkbook lê a planilha de rebate de fornecedores.
func ParseSupplierWorkbook(r io.Reader, cfg SupplierColumns) ([]models.Supplier, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	idx := headerIndex(rows[0])

	suppliers := []models.Supplier{}
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, idx, cfg.Supplier))
		if name == "" {
			continue
		}

		s := models.Supplier{
			Name:            name,
			BaseTarget:      amount(row, idx, cfg.BaseTarget),
			PriorPurchase:   amount(row, idx, cfg.PriorPurchase),
			CurrentPurchase: amount(row, idx, cfg.CurrentPurchase),
		}
		for _, sc := range cfg.Slabs {
			// coluna ausente -> threshold 0 -> faixa inativa, de propósito
			s.Slabs = append(s.Slabs, models.SlabTier{
				Label:         sc.Label,
				Threshold:     amount(row, idx, sc.Threshold),
				RebatePercent: amount(row, idx, sc.Percent),
			})
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

// ParseTargetWorkbook lê a planilha de metas por loja. A coluna MAIN diz o
// tipo da linha ("JAN TARGET", "JAN ACHIEVED", "JAN DAILY TARGET"...); o mês
// é o primeiro token.
func ParseTargetWorkbook(r io.Reader, cfg TargetColumns) ([]models.OutletEntry, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	idx := headerIndex(rows[0])

	entries := []models.OutletEntry{}
	for _, row := range rows[1:] {
		outlet := strings.TrimSpace(cell(row, idx, cfg.Outlet))
		main := strings.TrimSpace(cell(row, idx, cfg.Main))
		if outlet == "" || main == "" {
			continue
		}
		kind, ok := detectKind(main)
		if !ok {
			continue
		}
		entries = append(entries, models.OutletEntry{
			Outlet: outlet,
			Month:  monthOf(main),
			Kind:   kind,
			Sales:  amount(row, idx, cfg.Sales),
			Profit: amount(row, idx, cfg.Profit),
		})
	}
	return entries, nil
}

// detectKind reproduz a regra da origem: TARGET/ACHIEVED valem, linha
// DAILY é ignorada.
func detectKind(main string) (models.EntryKind, bool) {
	up := strings.ToUpper(main)
	if strings.Contains(up, "DAILY") {
		return "", false
	}
	if strings.Contains(up, "TARGET") {
		return models.EntryTarget, true
	}
	if strings.Contains(up, "ACHIEVED") {
		return models.EntryAchieved, true
	}
	return "", false
}

func monthOf(main string) string {
	fields := strings.Fields(strings.ToUpper(main))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
