package battle

import "math/rand"

// ShopState is Open or Closed (§3).
type ShopState uint8

const (
	ShopClosed ShopState = iota
	ShopOpen
)

// ShopItemState is Normal or Frozen (§3).
type ShopItemState uint8

const (
	ItemNormal ShopItemState = iota
	ItemFrozen
)

// ShopItemKind discriminates a ShopItem's payload.
type ShopItemKind uint8

const (
	ShopItemPet ShopItemKind = iota
	ShopItemFood
)

// ShopItem is one slot in the shop's pet or food row (§3).
type ShopItem struct {
	Kind  ShopItemKind
	Pet   *Pet
	Food  *Food
	State ShopItemState
	Cost  int
	Pos   int
}

const (
	maxShopPets  = 6
	maxShopFoods = 4
)

// tempStat records one temp-effect stat change applied while the shop was
// open, so CloseShop can reverse it by re-subtracting rather than
// restoring from a snapshot (SPEC_FULL.md §C.4, grounded on
// team_effect_apply.rs's Shop::temp_stats).
type tempStat struct {
	pet   PetID
	stats Stats
}

// Shop is the between-round store a team interacts with (§3).
type Shop struct {
	team    *Team
	catalog Catalog

	State     ShopState
	Tier      int
	Coins     int
	FreeRolls int
	PermStats Stats

	tempStats []tempStat

	Pets  []ShopItem
	Foods []ShopItem

	Packs []Pack

	Seed       int64
	rng        *rand.Rand
	SavedCoins int

	prevTier int
}

// NewShop builds a closed shop for team, backed by catalog for stock
// generation.
func NewShop(team *Team, catalog Catalog, seed int64) *Shop {
	return &Shop{
		team:    team,
		catalog: catalog,
		State:   ShopClosed,
		Tier:    1,
		Seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		Packs:   []Pack{PackTurtle},
	}
}

func (s *Shop) SetShopSeed(seed int64) {
	s.Seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Shop) SetShopPacks(packs []Pack) { s.Packs = packs }

func (s *Shop) SetShopTier(tier int) { s.Tier = clampInt(tier, 1, 6) }

func (s *Shop) ShopTier() int { return s.Tier }

func (s *Shop) Gold() int { return s.Coins }

// tierForTurn implements the turn-to-tier function (§6):
// tier = clamp(ceil(turn/2), 1, 6).
func tierForTurn(turn int) int {
	tier := (turn + 1) / 2
	return clampInt(tier, 1, 6)
}

// OpenShop opens the shop, recomputes the tier from the team's current
// turn, and rolls fresh stock. A ShopTierUp trigger fires exactly once
// whenever the computed tier exceeds the previous one (§6, §8 scenario 6).
func (s *Shop) OpenShop() error {
	if s.State == ShopOpen {
		return nil
	}
	s.State = ShopOpen
	s.prevTier = s.Tier
	newTier := tierForTurn(s.team.CurrTurn)
	if newTier > s.prevTier {
		s.Tier = newTier
		s.team.enqueue(Outcome{Status: StatusShopTierUp, AffectedTeam: TargetFriend})
	} else {
		s.Tier = newTier
	}
	s.Coins = defaultShopGold + s.SavedCoins
	s.SavedCoins = 0
	s.FreeRolls = 0
	return s.rollShop(true)
}

const defaultShopGold = 10

// CloseShop closes the shop, reverses every recorded temp stat change, and
// advances the team's turn counter (§8 round-trip property:
// open_shop();close_shop() with no user action == advancing curr_turn by
// one and resetting temp_stats).
func (s *Shop) CloseShop() error {
	if s.State == ShopClosed {
		return nil
	}
	for _, ts := range s.tempStats {
		if p, ok := s.team.pet(ts.pet); ok {
			p.ApplyStats(ts.stats.Invert())
		}
	}
	s.tempStats = s.tempStats[:0]
	s.removeTempEffects()
	s.State = ShopClosed
	s.team.CurrTurn++
	return nil
}

// removeTempEffects drops every Effect with Temp == true from every pet in
// the team's slots (§3); CloseShop calls it when the shop closes.
func (s *Shop) removeTempEffects() {
	for _, id := range s.team.friends {
		p, ok := s.team.pet(id)
		if !ok {
			continue
		}
		kept := p.Effects[:0]
		for _, eff := range p.Effects {
			if !eff.Temp {
				kept = append(kept, eff)
			}
		}
		p.Effects = kept
	}
}

// recordTempStat stores a reversible stat change for an effect applied
// while the shop is open (§4.3 Add, "if effect.temp and shop is open").
func (s *Shop) recordTempStat(pet PetID, stats Stats) {
	s.tempStats = append(s.tempStats, tempStat{pet: pet, stats: stats})
}

func (s *Shop) isFrozen(p *Pet) bool {
	for _, item := range s.Pets {
		if item.Pet == p && item.State == ItemFrozen {
			return true
		}
	}
	return false
}

// rollShop regenerates unfrozen stock from the catalog: frozen items are
// kept on every roll and every non-frozen slot is refilled. initial only
// decides whether a StatusRoll trigger is enqueued (true on open, so no
// trigger; false on a paid reroll or ReplaceShop).
func (s *Shop) rollShop(initial bool) error {
	keptPets := make([]ShopItem, 0, maxShopPets)
	keptFoods := make([]ShopItem, 0, maxShopFoods)
	for _, item := range s.Pets {
		if item.State == ItemFrozen {
			keptPets = append(keptPets, item)
		}
	}
	for _, item := range s.Foods {
		if item.State == ItemFrozen {
			keptFoods = append(keptFoods, item)
		}
	}

	petRecords, err := s.catalog.QueryPets(PetFilter{MaxTier: s.Tier, Packs: s.Packs})
	if err != nil {
		return wrapErr(ErrQueryFailure, "query shop pets", err)
	}
	foodRecords, err := s.catalog.QueryFoods(FoodFilter{MaxTier: s.Tier, Packs: s.Packs})
	if err != nil {
		return wrapErr(ErrQueryFailure, "query shop foods", err)
	}

	for len(keptPets) < maxShopPets && len(petRecords) > 0 {
		rec := petRecords[s.rng.Intn(len(petRecords))]
		effects, err := s.catalog.PetEffects(rec.Name, 1)
		if err != nil {
			return wrapErr(ErrQueryFailure, "load pet effects", err)
		}
		pet := NewPet(rec.Name, rec.Tier, rec.Stats, cloneEffects(effects), s.Seed)
		keptPets = append(keptPets, ShopItem{Kind: ShopItemPet, Pet: pet, Cost: defaultPetCost, Pos: len(keptPets)})
	}
	for len(keptFoods) < maxShopFoods && len(foodRecords) > 0 {
		rec := foodRecords[s.rng.Intn(len(foodRecords))]
		ability, err := s.catalog.FoodAbility(rec.Name)
		if err != nil {
			return wrapErr(ErrQueryFailure, "load food ability", err)
		}
		food := &Food{Name: rec.Name, Cost: rec.Cost, Holdable: rec.Holdable, IsAilment: rec.IsAilment, Ability: ability}
		keptFoods = appendFoodSlot(keptFoods, ShopItem{Kind: ShopItemFood, Food: food, Cost: rec.Cost, Pos: len(keptFoods)}, &s.Pets)
	}

	reindexShopItems(keptPets)
	reindexShopItems(keptFoods)
	s.Pets = keptPets
	s.Foods = keptFoods
	if !initial {
		s.team.enqueue(Outcome{Status: StatusRoll, AffectedTeam: TargetFriend})
	}
	return nil
}

const defaultPetCost = 3

func reindexShopItems(items []ShopItem) {
	for i := range items {
		items[i].Pos = i
	}
}

// appendFoodSlot appends a food slot, popping the rightmost pet slot from
// *pets when foods are already full (§3 Shop invariant, preserved as
// written even though it reads as a quirk of the source's slot layout).
func appendFoodSlot(foods []ShopItem, item ShopItem, pets *[]ShopItem) []ShopItem {
	if len(foods) >= maxShopFoods && len(*pets) > 0 {
		*pets = (*pets)[:len(*pets)-1]
	}
	return append(foods, item)
}

func cloneEffects(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone()
	}
	return out
}

// RollShop is a paid reroll: consumes a free roll if available, else
// deducts gold, then regenerates stock (non-frozen slots only) and
// enqueues StatusRoll.
func (s *Shop) RollShop() error {
	if s.State != ShopOpen {
		return newErr(ErrInvalidShopAction, "cannot roll a closed shop")
	}
	const rollCost = 1
	if s.FreeRolls > 0 {
		s.FreeRolls--
	} else {
		if s.Coins < rollCost {
			return newErr(ErrInvalidShopAction, "insufficient coins to roll")
		}
		s.Coins -= rollCost
	}
	recordShopTransaction("roll")
	return s.rollShop(false)
}

// FreeRoll grants n free rerolls (Action::FreeRoll, shop-only).
func (s *Shop) FreeRoll(n int) {
	s.FreeRolls += n
}

// FreezeShop toggles the Frozen state of the item at pos (§6).
func (s *Shop) FreezeShop(pos int, kind ShopItemKind) error {
	items := s.itemsFor(kind)
	if pos < 0 || pos >= len(items) {
		return newErr(ErrInvalidShopAction, "freeze: position out of range")
	}
	if items[pos].State == ItemFrozen {
		items[pos].State = ItemNormal
	} else {
		items[pos].State = ItemFrozen
	}
	recordShopTransaction("freeze")
	return nil
}

func (s *Shop) itemsFor(kind ShopItemKind) []ShopItem {
	if kind == ShopItemPet {
		return s.Pets
	}
	return s.Foods
}

// AlterGold adds delta coins, saturating at 0 (shop-only action).
func (s *Shop) AlterGold(delta int) {
	s.Coins += delta
	if s.Coins < 0 {
		s.Coins = 0
	}
}

// SaveGold moves n coins into SavedCoins, unavailable for spending this
// visit but restored next open (shop-only action).
func (s *Shop) SaveGold(n int) {
	if n > s.Coins {
		n = s.Coins
	}
	s.Coins -= n
	s.SavedCoins += n
}

// Discount reduces the cost of every shop item by pct percent (shop-only
// action).
func (s *Shop) Discount(pct int) {
	for i := range s.Pets {
		s.Pets[i].Cost = s.Pets[i].Cost - s.Pets[i].Cost*pct/100
	}
	for i := range s.Foods {
		s.Foods[i].Cost = s.Foods[i].Cost - s.Foods[i].Cost*pct/100
	}
}

// AlterCost changes the cost of the item at pos by delta (shop-only
// action).
func (s *Shop) AlterCost(kind ShopItemKind, pos, delta int) error {
	items := s.itemsFor(kind)
	if pos < 0 || pos >= len(items) {
		return newErr(ErrInvalidShopAction, "alter cost: position out of range")
	}
	items[pos].Cost += delta
	if items[pos].Cost < 0 {
		items[pos].Cost = 0
	}
	return nil
}

// ClearShop empties both rows (shop-only action).
func (s *Shop) ClearShop() {
	s.Pets = nil
	s.Foods = nil
}

// AddShopPet inserts pet directly into the shop's pet row (shop-only
// action).
func (s *Shop) AddShopPet(pet *Pet) {
	if len(s.Pets) >= maxShopPets {
		s.Pets = s.Pets[:len(s.Pets)-1]
	}
	s.Pets = append(s.Pets, ShopItem{Kind: ShopItemPet, Pet: pet, Cost: defaultPetCost, Pos: len(s.Pets)})
}

// AddShopFood inserts food directly into the shop's food row (shop-only
// action).
func (s *Shop) AddShopFood(food *Food) {
	s.Foods = appendFoodSlot(s.Foods, ShopItem{Kind: ShopItemFood, Food: food, Cost: food.Cost, Pos: len(s.Foods)}, &s.Pets)
}

// AddShopStats (shop-only action) permanently buffs every pet bought from
// now on by stats — accumulated in PermStats, which Buy adds to each pet
// at purchase time.
func (s *Shop) AddShopStats(stats Stats) {
	s.PermStats = s.PermStats.Add(stats)
}

// Buy purchases the item at fromPos of the given kind. Pets are inserted
// at toPos via AddPet; Buy never merges with a same-name pet there —
// callers wanting a merge use MovePets after Buy.
// Foods either attach to the pet at toPos (holdable) or fire their ability
// immediately (non-holdable), per §3.
func (s *Shop) Buy(fromPos int, kind ShopItemKind, toPos int) error {
	if s.State != ShopOpen {
		return newErr(ErrInvalidShopAction, "cannot buy from a closed shop")
	}
	items := s.itemsFor(kind)
	if fromPos < 0 || fromPos >= len(items) {
		return newErr(ErrInvalidShopAction, "buy: position out of range")
	}
	item := items[fromPos]
	if s.Coins < item.Cost {
		return newErr(ErrInvalidShopAction, "insufficient coins")
	}

	switch kind {
	case ShopItemPet:
		if s.team.CountAlive() >= s.team.MaxSize {
			return newErr(ErrInvalidShopAction, "team is full")
		}
		s.Coins -= item.Cost
		s.removeShopItem(kind, fromPos)
		pet := item.Pet
		pet.Stats = pet.Stats.Add(s.PermStats).Clamp()
		id, err := s.team.AddPet(pet, toPos)
		if err != nil {
			return err
		}
		s.team.enqueue(Outcome{Status: StatusSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
		s.team.enqueue(Outcome{Status: StatusAnySelfSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
		s.team.enqueue(Outcome{Status: StatusAnyFriendSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
		s.team.enqueue(Outcome{Status: StatusBought, AffectedTeam: TargetFriend, AffectedPet: id})
		s.team.enqueue(Outcome{Status: StatusAnyPetBought, AffectedTeam: TargetFriend, AffectedPet: id})
		recordShopTransaction("buy_pet")
		return nil

	case ShopItemFood:
		s.Coins -= item.Cost
		s.removeShopItem(kind, fromPos)
		food := item.Food
		if food.Holdable {
			if toPos < 0 || toPos >= s.team.MaxSize || s.team.friends[toPos].Zero() {
				return newErr(ErrInvalidShopAction, "buy: no pet at target position to hold food")
			}
			petID := s.team.friends[toPos]
			pet, _ := s.team.pet(petID)
			pet.Item = food
			s.team.enqueue(Outcome{Status: StatusAteFood, AffectedTeam: TargetFriend, AffectedPet: petID})
			s.team.enqueue(Outcome{Status: StatusAnyFoodEaten, AffectedTeam: TargetFriend, AffectedPet: petID})
		} else {
			s.team.enqueue(Outcome{Status: StatusBattleFoodEffect, AffectedTeam: TargetFriend})
		}
		s.team.enqueue(Outcome{Status: StatusAnyFoodBought, AffectedTeam: TargetFriend})
		recordShopTransaction("buy_food")
		return nil
	}
	return nil
}

func (s *Shop) removeShopItem(kind ShopItemKind, pos int) {
	if kind == ShopItemPet {
		s.Pets = append(s.Pets[:pos], s.Pets[pos+1:]...)
		reindexShopItems(s.Pets)
		return
	}
	s.Foods = append(s.Foods[:pos], s.Foods[pos+1:]...)
	reindexShopItems(s.Foods)
}

// Sell removes the pet at pos from the team, refunds its level in coins,
// and enqueues Sold/AnyPetSold (§6).
func (s *Shop) Sell(pos int) error {
	if s.State != ShopOpen {
		return newErr(ErrInvalidShopAction, "cannot sell to a closed shop")
	}
	if pos < 0 || pos >= s.team.MaxSize || s.team.friends[pos].Zero() {
		return newErr(ErrInvalidShopAction, "sell: no pet at position")
	}
	id := s.team.friends[pos]
	pet, _ := s.team.pet(id)
	s.Coins += pet.Level
	s.team.sold = append(s.team.sold, id)
	s.team.friends[pos] = PetID{}
	s.team.reindexPositions()
	s.team.enqueue(Outcome{Status: StatusSold, AffectedTeam: TargetFriend, AffectedPet: id})
	s.team.enqueue(Outcome{Status: StatusAnyPetSold, AffectedTeam: TargetFriend, AffectedPet: id})
	recordShopTransaction("sell")
	return nil
}

// MovePets relocates the pet at from to to; if merge is true and to already
// holds a pet of the same species, the two combine (the pet at to absorbs
// the moved pet's exp plus one and its stats, and the from slot is
// emptied) rather than swapping slots.
func (s *Shop) MovePets(from, to int, merge bool) error {
	if from < 0 || from >= s.team.MaxSize || s.team.friends[from].Zero() {
		return newErr(ErrInvalidShopAction, "move: no pet at source position")
	}
	if to < 0 || to >= s.team.MaxSize {
		return newErr(ErrInvalidShopAction, "move: destination out of range")
	}
	fromID := s.team.friends[from]
	toID := s.team.friends[to]
	if toID.Zero() {
		s.team.friends[to] = fromID
		s.team.friends[from] = PetID{}
		s.team.reindexPositions()
		recordShopTransaction("move")
		return nil
	}
	if !merge {
		s.team.swapPets(from, to)
		recordShopTransaction("move")
		return nil
	}
	fromPet, _ := s.team.pet(fromID)
	toPet, _ := s.team.pet(toID)
	if fromPet.Name != toPet.Name {
		return newErr(ErrInvalidShopAction, "move: merge requires matching species")
	}
	leveledUp := toPet.AddExperience(fromPet.Exp + 1)
	toPet.Stats = toPet.Stats.Add(fromPet.Stats).Clamp()
	s.team.friends[from] = PetID{}
	s.team.reindexPositions()
	if leveledUp {
		s.team.enqueue(Outcome{Status: StatusLevelUp, AffectedTeam: TargetFriend, AffectedPet: toID})
		s.team.enqueue(Outcome{Status: StatusAnyLevelup, AffectedTeam: TargetFriend, AffectedPet: toID})
	}
	recordShopTransaction("merge")
	return nil
}

// ReplaceShop discards all unfrozen stock and rolls fresh (§6).
func (s *Shop) ReplaceShop() error {
	return s.rollShop(false)
}
