package shipment

import "github.com/jgayfer/solidus/internal/core/domain/model/kernel"

// Amount accessors. All of these derive from the current field values on every
// call; nothing is cached across mutations, so a changed adjustment or tax
// field is reflected immediately.

// Total returns the shipment cost plus the sum of all adjustments.
func (s *Shipment) Total() kernel.Money {
	total := s.cost
	for _, adj := range s.adjustments {
		total = total.Add(adj.Amount())
	}
	return total
}

// TotalBeforeTax returns the shipment cost plus the sum of eligible non-tax
// adjustments.
func (s *Shipment) TotalBeforeTax() kernel.Money {
	total := s.cost
	for _, adj := range s.adjustments {
		if adj.IsTax() || !adj.Eligible() {
			continue
		}
		total = total.Add(adj.Amount())
	}
	return total
}

// TotalExcludingVAT returns the pre-tax total less the tax already included in
// the cost.
func (s *Shipment) TotalExcludingVAT() kernel.Money {
	return s.TotalBeforeTax().Sub(s.includedTaxTotal)
}

// TaxTotal returns included plus additional tax. The two fields are mutually
// exclusive in practice but both are summed.
func (s *Shipment) TaxTotal() kernel.Money {
	return s.includedTaxTotal.Add(s.additionalTaxTotal)
}

// ItemCost returns the summed total of each distinct line item represented in
// the shipment.
func (s *Shipment) ItemCost() kernel.Money {
	seen := make(map[string]bool)
	total := kernel.ZeroMoney()
	for _, unit := range s.units {
		key := unit.LineItem().ID().String()
		if seen[key] {
			continue
		}
		seen[key] = true
		total = total.Add(unit.LineItem().Total())
	}
	return total
}

// TotalWithItems returns the shipment total plus the item cost.
func (s *Shipment) TotalWithItems() kernel.Money {
	return s.Total().Add(s.ItemCost())
}
