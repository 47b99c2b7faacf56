package shipment

import (
	"sort"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
)

// ManifestItem aggregates a shipment's inventory units by variant and line
// item, carrying a per-unit-state quantity breakdown. The manifest drives
// stocking side effects (restock on cancel, unstock on resume and finalize)
// and rate estimation, which needs to match on-hand against backordered stock.
type ManifestItem struct {
	variantID  kernel.UUID
	lineItemID kernel.UUID
	states     map[UnitState]int
	quantity   int
}

// VariantID returns the product variant the item groups.
func (m ManifestItem) VariantID() kernel.UUID {
	return m.variantID
}

// LineItemID returns the order line the item groups.
func (m ManifestItem) LineItemID() kernel.UUID {
	return m.lineItemID
}

// Quantity returns the total number of units in the group.
func (m ManifestItem) Quantity() int {
	return m.quantity
}

// QuantityIn returns the number of units in the group with the given per-unit state.
func (m ManifestItem) QuantityIn(state UnitState) int {
	return m.states[state]
}

// States returns a copy of the per-unit-state quantity breakdown.
func (m ManifestItem) States() map[UnitState]int {
	states := make(map[UnitState]int, len(m.states))
	for state, qty := range m.states {
		states[state] = qty
	}
	return states
}

// BuildManifest derives the normalized manifest from a set of inventory units.
// Units are grouped by (variant, line item); groups are ordered by variant ID
// then line item ID so the result is deterministic. The build has no side
// effects.
func BuildManifest(units []*InventoryUnit) []ManifestItem {
	type groupKey struct {
		variantID  string
		lineItemID string
	}

	groups := make(map[groupKey]*ManifestItem)
	for _, unit := range units {
		key := groupKey{
			variantID:  unit.VariantID().String(),
			lineItemID: unit.LineItem().ID().String(),
		}

		item, ok := groups[key]
		if !ok {
			item = &ManifestItem{
				variantID:  unit.VariantID(),
				lineItemID: unit.LineItem().ID(),
				states:     make(map[UnitState]int),
			}
			groups[key] = item
		}

		item.states[unit.State()]++
		item.quantity++
	}

	manifest := make([]ManifestItem, 0, len(groups))
	for _, item := range groups {
		manifest = append(manifest, *item)
	}

	sort.Slice(manifest, func(i, j int) bool {
		if manifest[i].variantID.String() != manifest[j].variantID.String() {
			return manifest[i].variantID.String() < manifest[j].variantID.String()
		}
		return manifest[i].lineItemID.String() < manifest[j].lineItemID.String()
	})

	return manifest
}
