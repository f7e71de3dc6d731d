package battle

// TeamSnapshot is the serializable form of a Team (§6 Persisted
// snapshot): shop, history, and the transient current-pet cursor are
// intentionally omitted and reconstructed by the caller on load.
type TeamSnapshot struct {
	Name          string     `json:"name"`
	Friends       []PetSnap  `json:"friends"`
	Fainted       []PetSnap  `json:"fainted"`
	Sold          []PetSnap  `json:"sold"`
	MaxSize       int        `json:"max_size"`
	Triggers      []Outcome  `json:"triggers"`
	StoredFriends []PetSnap  `json:"stored_friends"`
	Seed          int64      `json:"seed"`
}

// PetSnap is the serializable form of one pet, addressed by value rather
// than by the in-process arena handle (PetID is meaningless outside this
// process).
type PetSnap struct {
	Name     EntityName `json:"name"`
	Stats    Stats      `json:"stats"`
	Tier     int        `json:"tier"`
	Level    int        `json:"level"`
	Exp      int        `json:"exp"`
	Position int        `json:"position"`
	Item     *EntityName `json:"item,omitempty"`
}

func petSnap(p *Pet) PetSnap {
	snap := PetSnap{Name: p.Name, Stats: p.Stats, Tier: p.Tier, Level: p.Level, Exp: p.Exp, Position: p.Position}
	if p.Item != nil {
		snap.Item = &p.Item.Name
	}
	return snap
}

// Snapshot captures t's persisted fields (§6). Slots empty in friends are
// omitted rather than represented as zero-value PetSnaps: the slot's
// absence is reconstructed on load by load order, not by an explicit
// hole marker, since a snapshot only needs to round-trip living pets.
func (t *Team) Snapshot() TeamSnapshot {
	snap := TeamSnapshot{
		Name:     t.Name,
		MaxSize:  t.MaxSize,
		Triggers: append([]Outcome(nil), t.triggers...),
		Seed:     t.Seed,
	}
	for _, id := range t.friends {
		if p, ok := t.pet(id); ok {
			snap.Friends = append(snap.Friends, petSnap(p))
		}
	}
	for _, id := range t.fainted {
		if p, ok := t.pet(id); ok {
			snap.Fainted = append(snap.Fainted, petSnap(p))
		}
	}
	for _, id := range t.sold {
		if p, ok := t.pet(id); ok {
			snap.Sold = append(snap.Sold, petSnap(p))
		}
	}
	for _, id := range t.storedFriends {
		if p, ok := t.pet(id); ok {
			snap.StoredFriends = append(snap.StoredFriends, petSnap(p))
		}
	}
	return snap
}

// LoadTeam reconstructs a Team from a snapshot and catalog, placing
// friends front-to-back (§6: shop/history are rebuilt fresh, never
// carried in the snapshot).
func LoadTeam(snap TeamSnapshot, catalog Catalog) (*Team, error) {
	pets := make([]*Pet, 0, len(snap.Friends))
	for _, ps := range snap.Friends {
		effects, err := catalog.PetEffects(ps.Name, ps.Level)
		if err != nil {
			return nil, wrapErr(ErrQueryFailure, "load team: pet effects lookup failed", err)
		}
		rec, err := catalog.PetRecord(ps.Name, ps.Level)
		if err != nil {
			return nil, wrapErr(ErrQueryFailure, "load team: pet record lookup failed", err)
		}
		p := NewPet(ps.Name, rec.Tier, ps.Stats, cloneEffects(effects), snap.Seed)
		p.Level = ps.Level
		p.Exp = ps.Exp
		pets = append(pets, p)
	}
	team := NewTeam(snap.Name, pets, snap.MaxSize, snap.Seed, catalog)
	team.triggers = append([]Outcome(nil), snap.Triggers...)
	return team, nil
}
