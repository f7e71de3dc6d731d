package battle

import "log"

// execCtx bundles what the action executor needs to apply one Action
// against one resolved target (§4.3): the team that owns the effect
// (self), its opponent, the pet whose effect is firing, and the Outcome
// that caused it.
type execCtx struct {
	self     *Team
	opponent *Team
	owner    PetID
	cause    Outcome
}

// ApplyAction executes one Action against one resolved target, possibly
// enqueuing further triggers onto either team's queue (§4.3). target.Team
// tells us which team's queue receives any triggers the action produces.
func ApplyAction(action Action, target ResolvedTarget, ctx execCtx) error {
	recordAction(action.Kind)
	switch action.Kind {
	case ActionNone:
		return nil
	case ActionAdd:
		return execAdd(action, target, ctx)
	case ActionRemove:
		return execRemove(action, target, ctx)
	case ActionSet:
		return execSet(action, target)
	case ActionGain:
		return execGain(action, target, ctx)
	case ActionExperience:
		return execExperience(action, target)
	case ActionPush:
		return execPush(action, target, ctx)
	case ActionTransform:
		return execTransform(action, target)
	case ActionSummon:
		return execSummon(action.Summon, target, ctx)
	case ActionMultiple:
		for _, sub := range action.Actions {
			if err := ApplyAction(sub, target, ctx); err != nil && !IsFallible(err) {
				return err
			}
		}
		return nil
	case ActionConditional:
		return execConditional(action, target, ctx)
	case ActionKill:
		return execKill(target, ctx)
	case ActionDebuff:
		return execDebuff(action, target)
	case ActionLynx:
		return execLynx(target, ctx)
	case ActionWhale:
		return execWhale(action, target, ctx)
	case ActionStegosaurus:
		return execStegosaurus(action, target, ctx)
	case ActionCockroach:
		return execCockroach(target, ctx)
	case ActionCopy:
		return execCopy(action, target, ctx)
	case ActionSwap:
		return execSwap(action, target)
	case ActionShuffle:
		return execShuffle(action, target)
	case ActionAddToCounter:
		return execAddToCounter(action, target)
	case ActionFox:
		return execFox(action, target, ctx)

	case ActionAddShopStats:
		target.Team.Shop.AddShopStats(action.StatChange.Static)
		return nil
	case ActionAddShopFood:
		target.Team.Shop.AddShopFood(&action.FoodTemplate)
		return nil
	case ActionAddShopPet:
		pet := action.PetTemplate
		target.Team.Shop.AddShopPet(&pet)
		return nil
	case ActionClearShop:
		target.Team.Shop.ClearShop()
		return nil
	case ActionAlterGold:
		target.Team.Shop.AlterGold(action.Amount)
		return nil
	case ActionDiscount:
		target.Team.Shop.Discount(action.Amount)
		return nil
	case ActionSaveGold:
		target.Team.Shop.SaveGold(action.Amount)
		return nil
	case ActionFreeRoll:
		target.Team.Shop.FreeRoll(action.Amount)
		return nil
	case ActionAlterCost:
		return nil // position-specific cost changes are issued directly against Shop by callers
	case ActionGetToy:
		target.Team.Toys = append(target.Team.Toys, action.Toy)
		return nil
	default:
		return nil
	}
}

func targetPet(target ResolvedTarget) (*Pet, bool) {
	return target.Team.pet(target.ID)
}

// execAdd implements Action::Add (§4.3): inert if the affected pet is dead,
// or if the afflicting owner is dead and the cause isn't Faint.
func execAdd(action Action, target ResolvedTarget, ctx execCtx) error {
	p, ok := targetPet(target)
	if !ok || p.Fainted() {
		return nil
	}
	owner, ownerOK := ctx.self.pet(ctx.owner)
	if ownerOK && owner.Fainted() && ctx.cause.Status != StatusFaint {
		return nil
	}
	delta := action.StatChange.ToStats(p.Stats, target.Team.Counters)
	p.ApplyStats(delta)
	if target.Team.Shop != nil && target.Team.Shop.State == ShopOpen {
		target.Team.Shop.recordTempStat(target.ID, delta)
	}
	return nil
}

// execRemove implements Action::Remove: indirect damage routed through the
// §4.6 indirect-attack protocol.
func execRemove(action Action, target ResolvedTarget, ctx execCtx) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	owner, ownerOK := ctx.self.pet(ctx.owner)
	var base Stats
	if ownerOK {
		base = action.StatChange.ToStats(owner.Stats, ctx.self.Counters)
		if owner.Item != nil && owner.Item.Ability.Trigger.Status == StatusIndirectAttackDmgCalc {
			base = base.Add(owner.Item.Ability.Action.StatChange.ToStats(owner.Stats, ctx.self.Counters))
		}
	} else {
		base = action.StatChange.ToStats(Stats{}, ctx.self.Counters)
	}
	dmg := base.Attack

	ownerTeam := ctx.self
	var ownerID PetID
	if ownerOK {
		ownerID = ctx.owner
	}
	applyIndirectAttack(p, dmg, target.Team, target.ID, ownerTeam, ownerID)
	return nil
}

// execSet implements Action::Set: overwrite stats outright, no health-0
// guard.
func execSet(action Action, target ResolvedTarget) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	base := action.StatChange.ToStats(p.Stats, target.Team.Counters)
	p.SetStats(base)
	return nil
}

func execGain(action Action, target ResolvedTarget, ctx execCtx) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	switch action.Gain.Kind {
	case GainClear:
		p.Item = nil
	case GainSet:
		food := action.Gain.Food.Clone()
		p.Item = &food
		if food.IsAilment {
			target.Team.enqueue(Outcome{Status: StatusAnyGainAilment, AffectedTeam: TargetFriend, AffectedPet: target.ID})
		}
	}
	return nil
}

func execExperience(action Action, target ResolvedTarget) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	if p.AddExperience(action.Amount) {
		target.Team.enqueue(Outcome{Status: StatusLevelUp, AffectedTeam: TargetFriend, AffectedPet: target.ID})
		target.Team.enqueue(Outcome{Status: StatusAnyLevelup, AffectedTeam: TargetFriend, AffectedPet: target.ID})
	}
	return nil
}

func execPush(action Action, target ResolvedTarget, ctx execCtx) error {
	pos := -1
	for i, id := range target.Team.friends {
		if id == target.ID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}
	id, err := target.Team.PushPet(pos, action.PushBy)
	if err != nil {
		return nil
	}
	target.Team.enqueue(Outcome{Status: StatusAnyPushed, AffectedTeam: TargetFriend, AffectedPet: id})
	if opp := otherTeam(target.Team, ctx); opp != nil {
		opp.enqueue(Outcome{Status: StatusAnyEnemyPushed, AffectedTeam: TargetEnemy, AffectedPet: id})
	}
	return nil
}

func otherTeam(t *Team, ctx execCtx) *Team {
	if t == ctx.self {
		return ctx.opponent
	}
	return ctx.self
}

func execTransform(action Action, target ResolvedTarget) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	pos := p.Position
	newPet := NewPet(action.TransformTo, p.Tier, action.TransformStats, nil, p.Seed)
	newPet.Level = action.TransformLevel
	newPet.TeamName = target.Team.Name
	var idx uint32
	for i := range target.Team.friends {
		if target.Team.friends[i] == target.ID {
			idx = target.ID.Index
			break
		}
	}
	newID := target.Team.arena.replace(idx, newPet)
	newPet.Position = pos
	for i := range newPet.Effects {
		newPet.Effects[i].Owner = newID
	}
	return nil
}

func execSummon(st SummonType, target ResolvedTarget, ctx execCtx) error {
	team := target.Team
	pos := target.ID
	slot := -1
	for i, id := range team.friends {
		if id == pos {
			slot = i
			break
		}
	}
	if slot < 0 {
		slot = 0
	}

	var newPet *Pet
	switch st.Kind {
	case SummonStoredPet:
		if st.StoredTemplate == nil {
			return newErr(ErrFallibleAction, "summon: no stored template")
		}
		clone := *st.StoredTemplate
		clone.Record = NewRecordID()
		clone.Effects = cloneEffects(st.StoredTemplate.Effects)
		newPet = &clone
	case SummonQueryCatalog:
		if team.Catalog == nil {
			return newErr(ErrFallibleAction, "summon: no catalog available")
		}
		rec, err := team.Catalog.PetRecord(st.QueryName, st.QueryLevel)
		if err != nil {
			return newErr(ErrFallibleAction, "summon: catalog lookup failed")
		}
		effects, err := team.Catalog.PetEffects(st.QueryName, st.QueryLevel)
		if err != nil {
			return newErr(ErrFallibleAction, "summon: catalog effects lookup failed")
		}
		newPet = NewPet(rec.Name, rec.Tier, rec.Stats, cloneEffects(effects), team.Seed)
		newPet.Level = st.QueryLevel
	case SummonSelfCopy:
		src, ok := team.pet(pos)
		if !ok {
			return newErr(ErrFallibleAction, "summon: self-copy source is gone")
		}
		clone := *src
		clone.Record = NewRecordID()
		clone.Effects = cloneEffects(src.Effects)
		if st.StatOverride != nil {
			clone.Stats = *st.StatOverride
		}
		newPet = &clone
	case SummonShopTierRelative:
		if team.Shop == nil || team.Catalog == nil {
			return newErr(ErrFallibleAction, "summon: no shop context")
		}
		tier := clampInt(team.Shop.Tier+st.TierOffset, 1, 6)
		records, err := team.Catalog.QueryPets(PetFilter{MaxTier: tier})
		if err != nil || len(records) == 0 {
			return newErr(ErrFallibleAction, "summon: no tier-relative shop pet available")
		}
		rec := records[team.rng.Intn(len(records))]
		effects, _ := team.Catalog.PetEffects(rec.Name, 1)
		newPet = NewPet(rec.Name, rec.Tier, rec.Stats, cloneEffects(effects), team.Seed)
	default:
		return nil
	}

	if team.CountAlive() >= team.MaxSize {
		log.Printf("battle: summon of %s refused, team %s is full", newPet.Name, team.Name)
		return nil // FallibleAction: swallowed by the dispatcher (§7)
	}
	id, err := team.AddPet(newPet, slot)
	if err != nil {
		log.Printf("battle: summon of %s refused: %v", newPet.Name, err)
		return nil
	}
	team.enqueue(Outcome{Status: StatusSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
	team.enqueue(Outcome{Status: StatusAnySelfSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
	team.enqueue(Outcome{Status: StatusAnyFriendSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
	if opp := otherTeam(team, ctx); opp != nil {
		opp.enqueue(Outcome{Status: StatusAnyEnemySummoned, AffectedTeam: TargetEnemy, AffectedPet: id})
	}
	return nil
}

func execConditional(action Action, target ResolvedTarget, ctx execCtx) error {
	run := func(a *Action) error {
		if a == nil {
			return nil
		}
		return ApplyAction(*a, target, ctx)
	}
	switch action.Logic {
	case LogicIf, LogicIfNot:
		ok, err := evalConditionType(action.CondType, target, ctx)
		if err != nil {
			return err
		}
		if action.Logic == LogicIfNot {
			ok = !ok
		}
		if ok {
			return run(action.IfAction)
		}
		return run(action.ElseAction)
	case LogicIfAny:
		ok, err := evalConditionType(action.CondType, target, ctx)
		if err != nil {
			return err
		}
		if ok {
			return run(action.IfAction)
		}
		return run(action.ElseAction)
	case LogicForEach:
		matches, err := conditionMatches(action.CondType, ctx)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return run(action.ElseAction)
		}
		for _, m := range matches {
			if err := run2(action.IfAction, m, ctx); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func run2(a *Action, target ResolvedTarget, ctx execCtx) error {
	if a == nil {
		return nil
	}
	return ApplyAction(*a, target, ctx)
}

// conditionMatches resolves a ConditionType's Pet/Team branch into concrete
// targets for ForEach/IfAny.
func conditionMatches(ct ConditionType, ctx execCtx) ([]ResolvedTarget, error) {
	switch ct.Kind {
	case CondTargetPet:
		rctx := resolveCtx{self: ctx.self, opponent: ctx.opponent, currentPet: ctx.owner, trigger: ctx.cause}
		return resolveAll(Position{Kind: PosAll, Cond: ct.Cond}, ct.Team, rctx)
	default:
		return nil, nil
	}
}

func evalConditionType(ct ConditionType, target ResolvedTarget, ctx execCtx) (bool, error) {
	switch ct.Kind {
	case CondTargetPet:
		matches, err := conditionMatches(ct, ctx)
		if err != nil {
			return false, err
		}
		return len(matches) > 0, nil
	case CondTargetTeam:
		team := teamForSide(ct.Team, ctx.self, ctx.opponent)
		if team == nil {
			return false, nil
		}
		return ct.Cond.Kind != CondNone && len(team.All(ct.Cond, evalCtx{opponent: otherOf(team, ctx)})) > 0, nil
	case CondTargetShop:
		if target.Team.Shop == nil {
			return false, nil
		}
		evCtx := evalCtx{team: target.Team, shop: target.Team.Shop}
		p, _ := targetPet(target)
		return ct.Cond.matches(p, evCtx)
	case CondTargetTrigger:
		return ct.Cond.Kind == CondTrigger && ct.Cond.Status == ctx.cause.Status, nil
	}
	return false, nil
}

func otherOf(t *Team, ctx execCtx) *Team {
	if t == ctx.self {
		return ctx.opponent
	}
	return ctx.self
}

func execKill(target ResolvedTarget, ctx execCtx) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	p.Stats.Health = 0
	target.Team.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: target.ID})
	if opp := otherTeam(target.Team, ctx); opp != nil {
		opp.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetEnemy, AffectedPet: target.ID})
	}
	return nil
}

func execDebuff(action Action, target ResolvedTarget) error {
	p, ok := targetPet(target)
	if !ok {
		return nil
	}
	delta := action.StatChange.ToStats(p.Stats, target.Team.Counters)
	p.ApplyStats(delta.Invert())
	return nil
}

// execLynx synthesizes Remove(Stats{attack: sum of opponent levels}) (§4.3
// Lynx).
func execLynx(target ResolvedTarget, ctx execCtx) error {
	opp := otherTeam(ctx.self, ctx)
	sum := 0
	if opp != nil {
		for _, p := range opp.livingPetsInOrder() {
			sum += p.Level
		}
	}
	synthesized := Action{Kind: ActionRemove, StatChange: StaticStats(Stats{Attack: sum})}
	return execRemove(synthesized, target, ctx)
}

// execWhale evolves the resolved pet into a leveled-up copy of itself,
// scaling its base stats multiplicatively by lvl (Design Notes: preserve
// the multiplicative rule), then arranges for a Summon to fire on its own
// faint.
func execWhale(action Action, target ResolvedTarget, ctx execCtx) error {
	rctx := resolveCtx{self: target.Team, opponent: otherTeam(target.Team, ctx), currentPet: ctx.owner, trigger: ctx.cause}
	resolved, err := ResolveTargets(action.CopySource, TargetFriend, rctx)
	if err != nil || len(resolved) == 0 {
		return nil
	}
	evolvePos := resolved[0]
	p, ok := targetPet(evolvePos)
	if !ok {
		return nil
	}
	template := *p
	template.Stats = p.BaseStats.Scale(action.TransformLevel).Clamp()
	template.Level = action.TransformLevel
	template.Effects = nil

	p.Stats.Health = 0
	useOnce := 1
	evolvePos.Team.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: evolvePos.ID})
	p.Effects = []Effect{{
		Owner:      evolvePos.ID,
		Trigger:    Outcome{Status: StatusFaint, Position: Position{Kind: PosOnSelf}},
		TargetTeam: TargetFriend,
		Pos:        Position{Kind: PosOnSelf},
		Action: Action{
			Kind: ActionSummon,
			Summon: SummonType{Kind: SummonStoredPet, StoredTemplate: &template},
		},
		Uses: &useOnce,
	}}
	return nil
}

func execStegosaurus(action Action, target ResolvedTarget, ctx execCtx) error {
	turn := target.Team.CurrTurn
	if turn <= 0 {
		turn = 1
	}
	scaled := Add(StaticStats(action.StatChange.Static.Scale(turn)))
	return execAdd(scaled, target, ctx)
}

func execCockroach(target ResolvedTarget, ctx execCtx) error {
	p, ok := targetPet(target)
	if !ok || target.Team.Shop == nil {
		return nil
	}
	p.Stats.Attack = clampInt(target.Team.Shop.Tier+1, MinStat, MaxStat)
	return nil
}

func execCopy(action Action, target ResolvedTarget, ctx execCtx) error {
	if action.Copy.Kind == CopyNone {
		return nil
	}
	rctx := resolveCtx{self: ctx.self, opponent: ctx.opponent, currentPet: ctx.owner, trigger: ctx.cause}
	resolved, err := ResolveTargets(action.CopySource, action.TargetTeamForCopy, rctx)
	if err != nil || len(resolved) == 0 {
		return nil
	}
	src, ok := targetPet(resolved[0])
	if !ok {
		return nil
	}
	dst, ok := targetPet(target)
	if !ok {
		return nil
	}
	switch action.Copy.Kind {
	case CopyStats:
		newStats := src.Stats
		if newStats.Attack == 0 {
			newStats.Attack = dst.Stats.Attack
		}
		if newStats.Health == 0 {
			newStats.Health = dst.Stats.Health
		}
		dst.SetStats(newStats)
	case CopyEffects:
		if target.Team.Catalog == nil {
			dst.Effects = cloneEffects(src.Effects)
		} else if effects, err := target.Team.Catalog.PetEffects(src.Name, action.Copy.AtLevel); err == nil {
			dst.Effects = cloneEffects(effects)
		}
		for i := range dst.Effects {
			dst.Effects[i].Owner = target.ID
		}
	case CopyItem:
		if src.Item != nil {
			item := src.Item.Clone()
			dst.Item = &item
		}
	case CopyPercentStats:
		pct := src.Stats.Percent(action.Copy.Percent)
		dst.SetStats(pct.Clamp())
	}
	return nil
}

// execSwap and execShuffle never run against a single collapsed target;
// Swap/Shuffle need the resolver's whole target set at once and are
// intercepted by ApplyMultiTarget before ApplyAction's per-target loop
// ever reaches them (§4.3).
func execSwap(action Action, target ResolvedTarget) error {
	_ = target
	return nil
}

func execShuffle(action Action, target ResolvedTarget) error {
	_ = target
	return nil
}

// ApplyMultiTarget runs a Swap or Shuffle action against the resolver's
// full target set (§4.3: "Swap(Positions): exchange two pets' slot
// indices (used only when resolver returned exactly two)"; "Shuffle ...
// acts on the set returned by the resolver"). Callers must route
// ActionSwap/ActionShuffle here instead of ApplyAction's normal
// per-target loop.
func ApplyMultiTarget(action Action, targets []ResolvedTarget, ctx execCtx) error {
	recordAction(action.Kind)
	switch action.Kind {
	case ActionSwap:
		return applySwap(action, targets)
	case ActionShuffle:
		return applyShuffle(action, targets, ctx)
	default:
		return nil
	}
}

func applySwap(action Action, targets []ResolvedTarget) error {
	switch action.Randomize {
	case RandomizePositions:
		if len(targets) != 2 || targets[0].Team != targets[1].Team {
			return nil
		}
		team := targets[0].Team
		a, ok1 := team.pet(targets[0].ID)
		b, ok2 := team.pet(targets[1].ID)
		if !ok1 || !ok2 {
			return nil
		}
		team.swapPets(a.Position, b.Position)
	case RandomizeStats:
		switch len(targets) {
		case 1:
			p, ok := targets[0].Team.pet(targets[0].ID)
			if !ok {
				return nil
			}
			p.SetStats(p.Stats.Invert())
		case 2:
			a, ok1 := targets[0].Team.pet(targets[0].ID)
			b, ok2 := targets[1].Team.pet(targets[1].ID)
			if !ok1 || !ok2 {
				return nil
			}
			a.Stats, b.Stats = b.Stats, a.Stats
		}
	}
	return nil
}

func applyShuffle(action Action, targets []ResolvedTarget, ctx execCtx) error {
	switch action.Randomize {
	case RandomizePositions:
		slots := make([]int, len(targets))
		seen := make(map[*Team]bool)
		for i, t := range targets {
			p, ok := t.Team.pet(t.ID)
			if !ok {
				return nil
			}
			slots[i] = p.Position
			seen[t.Team] = true
		}
		rng := ctx.self.rng
		order := make([]int, len(targets))
		for i := range order {
			order[i] = i
		}
		for i := len(order) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		for i, t := range targets {
			slot := slots[order[i]]
			t.Team.friends[slot] = t.ID
			p, _ := t.Team.pet(t.ID)
			p.Position = slot
		}
		for team := range seen {
			team.reindexPositions()
		}
	case RandomizeStats:
		for _, t := range targets {
			if p, ok := t.Team.pet(t.ID); ok {
				p.SetStats(p.Stats.Invert())
			}
		}
	}
	return nil
}

func execAddToCounter(action Action, target ResolvedTarget) error {
	cur := target.Team.Counters[action.CounterName]
	cur += action.Amount
	if cur < 0 {
		cur = 0
	}
	target.Team.Counters[action.CounterName] = cur
	return nil
}

// execFox steals one random item/pet from the shop, scales it, and routes
// it onto the owning team through buy-behavior (§4.3 Fox).
func execFox(action Action, target ResolvedTarget, ctx execCtx) error {
	shop := target.Team.Shop
	if shop == nil {
		return nil
	}
	totalSlots := len(shop.Pets) + len(shop.Foods)
	if totalSlots == 0 {
		return newErr(ErrFallibleAction, "fox: shop is empty")
	}
	idx := target.Team.rng.Intn(totalSlots)
	if idx < len(shop.Pets) {
		item := shop.Pets[idx]
		pet := *item.Pet
		pet.Stats = pet.Stats.Scale(action.FoxMultiplier).Clamp()
		shop.removeShopItem(ShopItemPet, idx)
		if target.Team.CountAlive() >= target.Team.MaxSize {
			return nil
		}
		id, err := target.Team.AddPet(&pet, 0)
		if err != nil {
			return nil
		}
		target.Team.enqueue(Outcome{Status: StatusSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
		target.Team.enqueue(Outcome{Status: StatusAnyFriendSummoned, AffectedTeam: TargetFriend, AffectedPet: id})
		return nil
	}
	foodIdx := idx - len(shop.Pets)
	item := shop.Foods[foodIdx]
	food := *item.Food
	food.Ability.Action.StatChange.Static = food.Ability.Action.StatChange.Static.Scale(action.FoxMultiplier)
	shop.removeShopItem(ShopItemFood, foodIdx)
	if food.Holdable && target.Team.CountAlive() > 0 {
		first := target.Team.First()
		if first != nil {
			first.Item = &food
		}
	}
	return nil
}
