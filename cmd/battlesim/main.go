package main

import (
	"log"
	"math/rand"
	"os"

	"battlesim/internal/api"
	"battlesim/internal/battle"
	"battlesim/internal/catalog"
	"battlesim/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("⚔️ ================================")
	log.Println("⚔️  BATTLESIM - DETERMINISTIC CORE")
	log.Println("⚔️ ================================")

	appConfig := config.Load()
	log.Printf("🎲 Config: seed=%d max_team_size=%d starting_gold=%d reroll_cost=%d",
		appConfig.Engine.DefaultSeed, appConfig.Engine.MaxTeamSize,
		appConfig.Shop.StartingGold, appConfig.Shop.RerollCost)

	if appConfig.Metrics.Enabled {
		api.StartMetricsServer(appConfig.Metrics.Addr)
	} else {
		log.Println("📊 Metrics server disabled")
	}

	cat := catalog.New()

	leftSeed := appConfig.Engine.DefaultSeed
	rightSeed := appConfig.Engine.DefaultSeed + 1

	left := buildDemoTeam(cat, "left", leftSeed, appConfig.Engine.MaxTeamSize)
	right := buildDemoTeam(cat, "right", rightSeed, appConfig.Engine.MaxTeamSize)

	log.Printf("🐾 %s fields %d pets, %s fields %d pets", left.Name, left.CountAlive(), right.Name, right.CountAlive())

	const maxRounds = 50 // a healthy fight always resolves in a handful of exchanges
	b := battle.NewBattle(left, right)
	for round := 1; round <= maxRounds; round++ {
		outcome, err := b.Fight()
		if err != nil {
			log.Fatalf("❌ fight round %d failed: %v", round, err)
		}
		log.Printf("⚔️ round %d: %d vs %d alive", round, left.CountAlive(), right.CountAlive())
		if outcome != battle.FightNone {
			log.Printf("🏆 battle over after %d rounds: %s", round, fightOutcomeLabel(outcome))
			break
		}
	}

	os.Exit(0)
}

// buildDemoTeam assembles a small roster straight from the catalog, the
// way a round's opening lineup would be populated before the first fight.
func buildDemoTeam(cat *catalog.Static, name string, seed int64, maxSize int) *battle.Team {
	rng := rand.New(rand.NewSource(seed))
	records, err := cat.QueryPets(battle.PetFilter{MaxTier: 3, Packs: []battle.Pack{battle.PackTurtle}})
	if err != nil {
		log.Fatalf("❌ query pets for %s: %v", name, err)
	}
	if len(records) == 0 {
		log.Fatalf("❌ catalog returned no pets for %s", name)
	}

	pets := make([]*battle.Pet, 0, maxSize)
	for i := 0; i < maxSize && i < len(records); i++ {
		rec := records[rng.Intn(len(records))]
		effects, err := cat.PetEffects(rec.Name, 1)
		if err != nil {
			log.Fatalf("❌ load effects for %s: %v", rec.Name, err)
		}
		pets = append(pets, battle.NewPet(rec.Name, rec.Tier, rec.Stats, effects, seed))
	}

	team := battle.NewTeam(name, pets, maxSize, seed, cat)
	team.Shop = battle.NewShop(team, cat, seed+100)
	return team
}

func fightOutcomeLabel(o battle.FightOutcome) string {
	switch o {
	case battle.FightWin:
		return "left wins"
	case battle.FightLoss:
		return "right wins"
	case battle.FightDraw:
		return "draw"
	default:
		return "undecided"
	}
}
