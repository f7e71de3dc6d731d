package battle

// Level thresholds for exp (§3 Pet invariants): 0-1 -> lvl 1, 2-4 -> lvl 2,
// 5 -> lvl 3.
const MaxExp = 5

// Pet is an ordered creature on a team (§3). Stats is the current, possibly
// battle-modified value; BaseStats is the catalog value used by actions
// that reference "current vs. base" (e.g. Copy's absolute-with-fallback
// rule).
type Pet struct {
	Record    RecordID
	Name      EntityName
	TeamName  string
	Stats     Stats
	BaseStats Stats
	Tier      int
	Level     int
	Exp       int
	Position  int
	Item      *Food
	Effects   []Effect
	Seed      int64
}

// NewPet constructs a level-1 pet from catalog-provided base stats.
func NewPet(name EntityName, tier int, stats Stats, effects []Effect, seed int64) *Pet {
	p := &Pet{
		Record:    NewRecordID(),
		Name:      name,
		Stats:     stats,
		BaseStats: stats,
		Tier:      tier,
		Level:     1,
		Effects:   effects,
		Seed:      seed,
	}
	for i := range p.Effects {
		p.Effects[i].Owner = PetID{} // NewTeam and AddPet leave it zero; the dispatcher tracks the owner by handle
	}
	return p
}

// Fainted reports whether the pet has reached 0 health (§3).
func (p *Pet) Fainted() bool {
	return p.Stats.Health <= 0
}

// ApplyStats adds delta to the pet's current stats, clamping to the shared
// [MinStat, MaxStat] range (§3 Stats).
func (p *Pet) ApplyStats(delta Stats) {
	p.Stats = p.Stats.Add(delta).Clamp()
}

// SetStats overwrites the pet's current stats outright (Action::Set has no
// health-0 guard, unlike Add/Remove).
func (p *Pet) SetStats(s Stats) {
	p.Stats = s.Clamp()
}

// levelForExp computes the level implied by an exp value (§3 invariant).
func levelForExp(exp int) int {
	switch {
	case exp >= 5:
		return 3
	case exp >= 2:
		return 2
	default:
		return 1
	}
}

// AddExperience adds n exp (clamped to MaxExp) and reports whether the
// level changed, for the caller to enqueue AnyLevelup (§4.3 Experience).
func (p *Pet) AddExperience(n int) (leveledUp bool) {
	before := p.Level
	p.Exp += n
	if p.Exp > MaxExp {
		p.Exp = MaxExp
	}
	p.Level = levelForExp(p.Exp)
	return p.Level != before
}
