// Package shipment provides the domain model for shipment lifecycle management
// in the fulfillment service. It implements the Shipment aggregate root with
// its state machine, inventory units, shipping-rate selection and monetary
// totals.
//
// The package includes:
//   - Shipment: The aggregate root managing identity, lifecycle and invariants
//   - State: A state machine over pending, ready, shipped and canceled
//   - InventoryUnit: One unit of one variant, with its own fulfillment state
//   - ShippingRate: A quote tying a shipping method to a cost
//   - StateChange: The append-only transition audit record
//   - ManifestItem: The normalized per-variant breakdown driving stock hooks
//
// Key business rules:
//   - Transitions consult live order facts and per-unit inventory states;
//     eligibility is never cached
//   - Shipped is sticky: ShippedAt is set once and never cleared
//   - At most one shipping rate is selected; the selection drives the cost
//   - Shipped and canceled shipments cannot be deleted
//
// Stocking side effects (restock on cancel, unstock on resume and finalize)
// are sequenced by the application layer from the StateChange a transition
// returns, inside the same transaction as the state write.
package shipment
