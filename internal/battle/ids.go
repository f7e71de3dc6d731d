package battle

import "github.com/google/uuid"

// PetID is a generational-index handle into a Team's pet arena. Faint-then-
// replace bumps Gen so stale handles held by in-flight triggers become a
// defined no-op on dereference rather than dangling (§5, Design Notes).
type PetID struct {
	Index uint32
	Gen    uint32
}

// Zero reports whether this is the unset handle.
func (id PetID) Zero() bool {
	return id.Index == 0 && id.Gen == 0
}

// RecordID is a stable external identifier for a pet, independent of its
// in-process arena slot. Each Pet carries one (Pet.Record, minted anew for
// summoned copies); TeamSnapshot's PetSnap and the History ring buffer do
// not store it.
type RecordID string

// NewRecordID mints a fresh external identifier for a newly-created pet.
func NewRecordID() RecordID {
	return RecordID(uuid.NewString())
}

// arenaSlot is one generational slot in a team's pet arena.
type arenaSlot struct {
	pet  *Pet
	gen  uint32
	live bool
}

// arena owns the strong references to every pet a team has ever held,
// living or fainted. Teams, effects, and triggers address pets only through
// PetID; only the arena holds the *Pet itself.
type arena struct {
	slots []arenaSlot
}

func newArena() *arena {
	return &arena{slots: make([]arenaSlot, 0, 16)}
}

// insert stores pet in a fresh slot and returns its handle.
func (a *arena) insert(pet *Pet) PetID {
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, arenaSlot{pet: pet, gen: 1, live: true})
	return PetID{Index: idx, Gen: 1}
}

// replace bumps the generation at idx and installs a new pet, invalidating
// every outstanding PetID that pointed at the old occupant. Used by
// Transform and Whale evolution.
func (a *arena) replace(idx uint32, pet *Pet) PetID {
	s := &a.slots[idx]
	s.gen++
	s.pet = pet
	s.live = true
	return PetID{Index: idx, Gen: s.gen}
}

// retire marks a slot dead without bumping the generation: the pet is still
// addressable (fainted pets remain dereferenceable per §3) but is no longer
// "live" for arena bookkeeping purposes.
func (a *arena) retire(idx uint32) {
	if idx < uint32(len(a.slots)) {
		a.slots[idx].live = false
	}
}

// get dereferences id. A stale or out-of-range id returns (nil, false) — the
// defined no-op required by §5 for weak references to fainted pets.
func (a *arena) get(id PetID) (*Pet, bool) {
	if id.Zero() || id.Index >= uint32(len(a.slots)) {
		return nil, false
	}
	s := a.slots[id.Index]
	if s.gen != id.Gen || s.pet == nil {
		return nil, false
	}
	return s.pet, true
}
