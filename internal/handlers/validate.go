package handlers

import (
	"errors"
	"fmt"
)

const maxSlabs = 5

func validateCreateDTO(d SupplierCreateDTO) error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.BaseTarget < 0 || d.PriorPurchase < 0 || d.CurrentPurchase < 0 {
		return errors.New("amounts must be >= 0")
	}
	if len(d.Slabs) > maxSlabs {
		return fmt.Errorf("at most %d slabs are supported", maxSlabs)
	}
	for i, s := range d.Slabs {
		// threshold <= 0 é permitido (faixa inativa); percentual negativo não
		if s.RebatePercent < 0 {
			return fmt.Errorf("slab %d: rebate_percent must be >= 0", i+1)
		}
		if s.RebatePercent > 100 {
			return fmt.Errorf("slab %d: rebate_percent must be <= 100", i+1)
		}
	}
	return nil
}
