package battle

// Outcome is a game event carrying its source and target metadata (§3). The
// engine calls this type Trigger in prose; Outcome is the Go type name to
// avoid colliding with the "trigger" verb used throughout the dispatcher.
//
// AfflictingFood is addressed indirectly through AfflictingPet.Item rather
// than its own weak handle: a pet holds at most one food, so "the food that
// afflicted this event" is always "whatever AfflictingPet currently holds",
// which is already a defined no-op once the pet is gone (arena.get).
type Outcome struct {
	Status         Status
	Position       Position
	AffectedTeam   Target // which side (relative to the queue holder) AffectedPet lives on
	AffectedPet    PetID  // weak: may be stale, see arena.get
	AfflictingTeam Target // which side (relative to the queue holder) AfflictingPet lives on
	AfflictingPet  PetID
	AfflictingFoodName EntityName

	// consumed is read by unconsumedKnockOut when choosing which queue
	// drains first (KnockOut priority in trigger_all_effects). Only the
	// popped copy of a KnockOut is ever marked, so every KnockOut still in a
	// queue counts as unconsumed.
	consumed bool
}
