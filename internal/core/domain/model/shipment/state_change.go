package shipment

import (
	"time"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
)

// StateChangeSubjectType identifies the aggregate kind a StateChange belongs to
// in the shared audit ledger.
const StateChangeSubjectType = "shipment"

// StateChange is an immutable audit record of one shipment state transition.
// Exactly one record is appended per transition that actually changes the
// state; records are never mutated or deleted.
type StateChange struct {
	id         kernel.UUID
	from       State
	to         State
	occurredAt time.Time
}

// newStateChange records a transition between two distinct states at the given time.
func newStateChange(from, to State, occurredAt time.Time) StateChange {
	return StateChange{
		id:         kernel.NewUUID(),
		from:       from,
		to:         to,
		occurredAt: occurredAt,
	}
}

// RestoreStateChange reconstructs a StateChange from persistence.
func RestoreStateChange(id kernel.UUID, from, to State, occurredAt time.Time) StateChange {
	return StateChange{
		id:         id,
		from:       from,
		to:         to,
		occurredAt: occurredAt,
	}
}

// ID returns the record's unique identifier.
func (c StateChange) ID() kernel.UUID {
	return c.id
}

// From returns the state the shipment left.
func (c StateChange) From() State {
	return c.from
}

// To returns the state the shipment entered.
func (c StateChange) To() State {
	return c.to
}

// OccurredAt returns when the transition happened.
func (c StateChange) OccurredAt() time.Time {
	return c.occurredAt
}

// IsZero reports whether this is the zero record, returned by operations that
// did not change state.
func (c StateChange) IsZero() bool {
	return c == StateChange{}
}
