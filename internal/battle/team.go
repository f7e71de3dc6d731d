package battle

import (
	"math/rand"
)

// FightOutcome is the user-visible result of a fight() call. A battle never
// surfaces as an error (§7).
type FightOutcome uint8

const (
	FightNone FightOutcome = iota
	FightWin
	FightLoss
	FightDraw
)

// Team is a player's five ordered pets plus the bookkeeping the dispatcher
// needs to drive them (§3). friends preserves positional slots; a zero
// PetID marks an empty slot used by shop move/transform logic.
type Team struct {
	Name    string
	MaxSize int

	arena *arena

	friends []PetID // length MaxSize, positional
	fainted []PetID
	sold    []PetID

	storedFriends []PetID // snapshot for Restore()

	triggers []Outcome

	Shop *Shop

	History *History

	Counters map[string]int
	Toys     []Toy

	Seed int64
	rng  *rand.Rand

	Catalog Catalog

	CurrTurn  int
	currPhase int

	currentPet PetID // set by the dispatcher while resolving one pet's effects
}

// NewTeam builds a team from already-constructed pets, placed front-to-back
// starting at slot 0. pets may be fewer than maxSize; remaining slots are
// empty.
func NewTeam(name string, pets []*Pet, maxSize int, seed int64, catalog Catalog) *Team {
	t := &Team{
		Name:     name,
		MaxSize:  maxSize,
		arena:    newArena(),
		friends:  make([]PetID, maxSize),
		Counters: make(map[string]int),
		Seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		History:  newHistory(),
		Catalog:  catalog,
	}
	for i, p := range pets {
		if i >= maxSize {
			break
		}
		p.TeamName = name
		p.Position = i
		p.Seed = seed
		id := t.arena.insert(p)
		t.friends[i] = id
	}
	t.snapshotStored()
	return t
}

func (t *Team) SetSeed(seed int64) {
	t.Seed = seed
	t.rng = rand.New(rand.NewSource(seed))
}

func (t *Team) SetName(name string) {
	t.Name = name
	for _, id := range t.friends {
		if p, ok := t.arena.get(id); ok {
			p.TeamName = name
		}
	}
}

// pet dereferences id against this team's arena; a stale/empty id returns
// (nil, false), the defined no-op for weak references (§5).
func (t *Team) pet(id PetID) (*Pet, bool) {
	if t == nil {
		return nil, false
	}
	return t.arena.get(id)
}

// livingPetsInOrder returns the non-fainted occupants of friends, in slot
// order, skipping empty slots.
func (t *Team) livingPetsInOrder() []*Pet {
	out := make([]*Pet, 0, t.MaxSize)
	for _, id := range t.friends {
		if id.Zero() {
			continue
		}
		if p, ok := t.pet(id); ok && !p.Fainted() {
			out = append(out, p)
		}
	}
	return out
}

// livingIDsInOrder mirrors livingPetsInOrder but returns handles, used by
// the target resolver and dispatcher which need to re-address pets after
// mutation.
func (t *Team) livingIDsInOrder() []PetID {
	out := make([]PetID, 0, t.MaxSize)
	for _, id := range t.friends {
		if id.Zero() {
			continue
		}
		if p, ok := t.pet(id); ok && !p.Fainted() {
			out = append(out, id)
		}
	}
	return out
}

// CountAlive returns the number of living pets (§8 invariant: |living| <=
// max_size).
func (t *Team) CountAlive() int {
	return len(t.livingPetsInOrder())
}

// Fainted returns the pets that have fainted this battle, in faint order
// (viewer.rs parity, SPEC_FULL.md §C.3).
func (t *Team) Fainted() []*Pet {
	out := make([]*Pet, 0, len(t.fainted))
	for _, id := range t.fainted {
		if p, ok := t.pet(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Sold returns the pets sold this shop phase (viewer.rs parity).
func (t *Team) Sold() []*Pet {
	out := make([]*Pet, 0, len(t.sold))
	for _, id := range t.sold {
		if p, ok := t.pet(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// reindexPositions rewrites every occupied slot's Position field to match
// its index, the invariant every friends mutation must restore (§3, §4.7).
func (t *Team) reindexPositions() {
	for i, id := range t.friends {
		if p, ok := t.pet(id); ok {
			p.Position = i
		}
	}
}

// ClearTeam removes fainted pets from friends. retainEmpty controls whether
// vacated slots stay as explicit holes (true) or the remaining pets are
// compacted forward (false) — the two modes the source's clear_team
// ambiguously conflates (Design Notes Open Question); call sites document
// which they need. The combat loop (§4.5 step 1) calls this with
// retainEmpty=false so attackers always face the new front pet; no shop
// or executor code calls it, and only the team tests use
// retainEmpty=true.
func (t *Team) ClearTeam(retainEmpty bool) {
	next := make([]PetID, t.MaxSize)
	w := 0
	for i, id := range t.friends {
		if id.Zero() {
			continue
		}
		p, ok := t.pet(id)
		if !ok {
			continue
		}
		if p.Fainted() {
			t.fainted = append(t.fainted, id)
			t.arena.retire(id.Index)
			continue
		}
		if retainEmpty {
			next[i] = id
		} else {
			next[w] = id
			w++
		}
	}
	t.friends = next
	t.reindexPositions()
}

// Restore returns friends to a structural clone of storedFriends (§8
// round-trip property). Fainted/sold history is untouched; Restore is used
// between shop visits, not mid-battle.
func (t *Team) Restore() {
	t.friends = append([]PetID(nil), t.storedFriends...)
	t.reindexPositions()
}

func (t *Team) snapshotStored() {
	t.storedFriends = append([]PetID(nil), t.friends...)
}

// enqueue appends trigger to this team's FIFO and records it in History.
func (t *Team) enqueue(o Outcome) {
	t.triggers = append(t.triggers, o)
	t.History.record(o)
}

func (t *Team) popTrigger() (Outcome, bool) {
	if len(t.triggers) == 0 {
		return Outcome{}, false
	}
	o := t.triggers[0]
	t.triggers = t.triggers[1:]
	return o, true
}

// --- Team API slot mechanics (§4.7) ---

// AddPet inserts pet at pos, rejecting if the living count is already at
// MaxSize. Padding with empty slots and re-enqueuing Summoned/
// AnyFriendSummoned/AnyEnemySummoned triggers is the caller's
// responsibility (dispatch/executor call sites do this so the opponent
// team reference is available); AddPet itself only performs the slot
// mutation and returns the new handle.
func (t *Team) AddPet(pet *Pet, pos int) (PetID, error) {
	if t.CountAlive() >= t.MaxSize {
		return PetID{}, newErr(ErrFallibleAction, "team is full")
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= t.MaxSize {
		pos = t.MaxSize - 1
	}
	pet.TeamName = t.Name
	pet.Seed = t.Seed
	id := t.arena.insert(pet)

	// pos is a genuine insertion point only if a living pet currently
	// occupies it (e.g. buying ahead of an existing teammate). An empty
	// slot or one still holding a fainted-but-uncleared pet (mid-battle
	// summon replacing the pet that just triggered it) is a direct fill:
	// shifting in that case would push a living pet further back off a
	// stale reference instead of the pet actually meant to move.
	live := false
	if !t.friends[pos].Zero() {
		if occupant, ok := t.pet(t.friends[pos]); ok && !occupant.Fainted() {
			live = true
		}
	}
	if live {
		// Shift occupants at/after pos back by one, dropping off the end if
		// the last slot is occupied (callers must have checked CountAlive
		// first, so this only ever displaces an empty trailing slot).
		for i := t.MaxSize - 1; i > pos; i-- {
			t.friends[i] = t.friends[i-1]
		}
	}
	t.friends[pos] = id
	t.reindexPositions()
	return id, nil
}

// PushPet moves the pet at pos by a signed number of slots, per §4.7.
func (t *Team) PushPet(pos, by int) (PetID, error) {
	if pos < 0 || pos >= t.MaxSize || t.friends[pos].Zero() {
		return PetID{}, newErr(ErrInvalidPetAction, "no pet at position to push")
	}
	id := t.friends[pos]
	dest := clampInt(pos+by, 0, t.MaxSize-1)
	if dest == pos {
		return id, nil
	}
	// Remove then reinsert, shifting the intervening slots.
	t.friends[pos] = PetID{}
	if dest < pos {
		for i := pos; i > dest; i-- {
			t.friends[i] = t.friends[i-1]
		}
	} else {
		for i := pos; i < dest; i++ {
			t.friends[i] = t.friends[i+1]
		}
	}
	t.friends[dest] = id
	t.reindexPositions()
	return id, nil
}

// swapPets exchanges the slot contents at a and b (§4.7).
func (t *Team) swapPets(a, b int) {
	t.friends[a], t.friends[b] = t.friends[b], t.friends[a]
	t.reindexPositions()
}

// swapStats exchanges only the Stats field of the pets at a and b (§4.7).
func (t *Team) swapStats(a, b int) {
	pa, okA := t.pet(t.friends[a])
	pb, okB := t.pet(t.friends[b])
	if !okA || !okB {
		return
	}
	pa.Stats, pb.Stats = pb.Stats, pa.Stats
}

// --- viewer queries (§6) ---

func (t *Team) First() *Pet {
	living := t.livingPetsInOrder()
	if len(living) == 0 {
		return nil
	}
	return living[0]
}

func (t *Team) Last() *Pet {
	living := t.livingPetsInOrder()
	if len(living) == 0 {
		return nil
	}
	return living[len(living)-1]
}

func (t *Team) Nth(n int) *Pet {
	living := t.livingPetsInOrder()
	if n < 0 || n >= len(living) {
		return nil
	}
	return living[n]
}

// Any returns one random living pet matching cond, drawn with the team's
// seeded RNG (§4.2 Any).
func (t *Team) Any(cond Condition, ctx evalCtx) *Pet {
	matches := t.All(cond, ctx)
	if len(matches) == 0 {
		return nil
	}
	return matches[t.rng.Intn(len(matches))]
}

// All returns every living pet matching cond, in position order (§4.2
// All).
func (t *Team) All(cond Condition, ctx evalCtx) []*Pet {
	ctx.team = t
	out := make([]*Pet, 0)
	for _, p := range t.livingPetsInOrder() {
		ok, err := cond.matches(p, ctx)
		if err == nil && ok {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) GetPetsByCond(cond Condition, ctx evalCtx) []*Pet {
	return t.All(cond, ctx)
}

func (t *Team) GetPetsByPos(positions []int) []*Pet {
	out := make([]*Pet, 0, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= t.MaxSize {
			continue
		}
		if p, ok := t.pet(t.friends[pos]); ok {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) GetPetsByEffect(trigger Status) []*Pet {
	out := make([]*Pet, 0)
	for _, p := range t.livingPetsInOrder() {
		for _, eff := range p.Effects {
			if eff.Trigger.Status == trigger {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
