package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Werneck0live/painel-rebate/internal/models"
	"github.com/Werneck0live/painel-rebate/internal/repository"
)

//go:embed seeds/suppliers.json
var suppliersJSON []byte

//go:embed seeds/outlet_entries.json
var entriesJSON []byte

type supplierSeed struct {
	Name            string  `json:"name"`
	BaseTarget      float64 `json:"base_target"`
	PriorPurchase   float64 `json:"prior_purchase"`
	CurrentPurchase float64 `json:"current_purchase"`
	Slabs           []struct {
		Label         string  `json:"label"`
		Threshold     float64 `json:"threshold"`
		RebatePercent float64 `json:"rebate_percent"`
	} `json:"slabs"`
}

type entrySeed struct {
	Outlet string  `json:"outlet"`
	Month  string  `json:"month"`
	Kind   string  `json:"kind"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// Idempotente: cria se não existir; se já existir, ignora.
func SeedSuppliers(ctx context.Context, repo *repository.SupplierRepository, log *slog.Logger) error {
	var items []supplierSeed
	if err := json.Unmarshal(suppliersJSON, &items); err != nil {
		return err
	}

	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			log.Warn("seed_skip_empty_supplier")
			continue
		}

		s := models.Supplier{
			Name:            name,
			BaseTarget:      it.BaseTarget,
			PriorPurchase:   it.PriorPurchase,
			CurrentPurchase: it.CurrentPurchase,
		}
		for _, t := range it.Slabs {
			s.Slabs = append(s.Slabs, models.SlabTier{
				Label:         t.Label,
				Threshold:     t.Threshold,
				RebatePercent: t.RebatePercent,
			})
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, &s)
		cancel()

		if err != nil {
			if errors.Is(err, repository.ErrDuplicateSupplier) {
				log.Info("seed_supplier_exists", "supplier", name)
				continue
			}
			return err
		}
		log.Info("seed_supplier_created", "supplier", name)
	}

	log.Info("seed_suppliers_done", "count", len(items))
	return nil
}

func SeedOutletEntries(ctx context.Context, repo *repository.PerformanceRepository, log *slog.Logger) error {
	var items []entrySeed
	if err := json.Unmarshal(entriesJSON, &items); err != nil {
		return err
	}

	for i, it := range items {
		kind := models.EntryKind(strings.ToLower(it.Kind))
		if kind != models.EntryTarget && kind != models.EntryAchieved {
			log.Warn("seed_skip_unknown_kind", "kind", it.Kind)
			continue
		}

		e := models.OutletEntry{
			Outlet: strings.TrimSpace(it.Outlet),
			Month:  strings.ToUpper(strings.TrimSpace(it.Month)),
			Kind:   kind,
			Seq:    i,
			Sales:  it.Sales,
			Profit: it.Profit,
		}

		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, &e)
		cancel()

		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				log.Info("seed_entry_exists", "outlet", e.Outlet, "month", e.Month, "kind", string(e.Kind))
				continue
			}
			return err
		}
		log.Info("seed_entry_created", "outlet", e.Outlet, "month", e.Month, "kind", string(e.Kind))
	}

	log.Info("seed_entries_done", "count", len(items))
	return nil
}
