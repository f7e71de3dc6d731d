// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all engine and shop settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"strings"

	"battlesim/internal/battle"
)

// =============================================================================
// ENGINE CONFIGURATION
// =============================================================================

// EngineConfig controls the deterministic core's seeding and team-size
// bounds.
type EngineConfig struct {
	DefaultSeed      int64 // seed used when a caller doesn't supply its own
	MaxTeamSize      int   // Team.MaxSize when not specified by the caller
	BuildActionGraph bool  // read from the environment; nothing passes it to History.EnableGraph
}

// DefaultEngine returns the default engine configuration.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		DefaultSeed:      0,
		MaxTeamSize:      5,
		BuildActionGraph: false,
	}
}

// EngineFromEnv returns engine configuration with environment variable
// overrides.
func EngineFromEnv() EngineConfig {
	cfg := DefaultEngine()

	if seed := getEnvInt64("BATTLESIM_SEED", 0); seed != 0 {
		cfg.DefaultSeed = seed
	}
	if size := getEnvInt("BATTLESIM_MAX_TEAM_SIZE", 0); size > 0 {
		cfg.MaxTeamSize = size
	}
	if os.Getenv("BATTLESIM_BUILD_ACTION_GRAPH") == "true" {
		cfg.BuildActionGraph = true
	}

	return cfg
}

// =============================================================================
// SHOP CONFIGURATION
// =============================================================================

// ShopConfig holds the shop settings read from the environment.
// battle.Shop does not read it: it uses its own starting gold (10), reroll
// cost (1) and default pack (PackTurtle).
type ShopConfig struct {
	StartingGold int
	RerollCost   int
	Packs        []battle.Pack
}

// DefaultShop returns the default shop configuration.
func DefaultShop() ShopConfig {
	return ShopConfig{
		StartingGold: 10,
		RerollCost:   1,
		Packs:        []battle.Pack{battle.PackTurtle},
	}
}

// ShopFromEnv returns shop configuration with environment variable
// overrides.
func ShopFromEnv() ShopConfig {
	cfg := DefaultShop()

	if gold := getEnvInt("BATTLESIM_STARTING_GOLD", 0); gold > 0 {
		cfg.StartingGold = gold
	}
	if cost := getEnvInt("BATTLESIM_REROLL_COST", 0); cost > 0 {
		cfg.RerollCost = cost
	}
	if packs := getEnvPacks("BATTLESIM_PACKS"); packs != nil {
		cfg.Packs = packs
	}

	return cfg
}

// =============================================================================
// METRICS CONFIGURATION
// =============================================================================

// MetricsConfig controls the optional Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// DefaultMetrics returns the default metrics configuration.
func DefaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled: true,
		Addr:    ":9090",
	}
}

// MetricsFromEnv returns metrics configuration with environment variable
// overrides.
func MetricsFromEnv() MetricsConfig {
	cfg := DefaultMetrics()

	if os.Getenv("BATTLESIM_METRICS_DISABLED") == "true" {
		cfg.Enabled = false
	}
	if addr := os.Getenv("BATTLESIM_METRICS_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Engine  EngineConfig
	Shop    ShopConfig
	Metrics MetricsConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Engine:  EngineFromEnv(),
		Shop:    ShopFromEnv(),
		Metrics: MetricsFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvPacks(key string) []battle.Pack {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	packs := make([]battle.Pack, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			packs = append(packs, battle.Pack(p))
		}
	}
	return packs
}
