package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/progression"
	"github.com/osse101/QuickCooking_Go/internal/stage"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultGame_MatchesPackageDefaults(t *testing.T) {
	g, err := DefaultGame()
	require.NoError(t, err)

	opts, err := g.SessionOptions()
	require.NoError(t, err)

	assert.Equal(t, progression.DefaultOptions(), opts.Progression)

	want := stage.DefaultOptions()
	got := opts.Stage
	assert.NotEmpty(t, got.MealMessages)
	want.MealMessages, got.MealMessages = nil, nil
	assert.Equal(t, want, got)
}

func TestLoadGame_OverlaysFile(t *testing.T) {
	path := writeFile(t, `
rewards:
  mode: per_loop
progression:
  initial_categories: [dairy, grain]
cooking:
  max_pieces: 12
`)

	g, err := LoadGame(path)
	require.NoError(t, err)

	assert.Equal(t, "per_loop", g.Rewards.Mode)
	assert.Equal(t, 100.0, g.Rewards.LoopReward, "unset keys keep defaults")
	assert.Equal(t, 12, g.Cooking.MaxPieces)
	assert.Equal(t, 3.0, g.Cooking.CookSeconds)

	opts, err := g.SessionOptions()
	require.NoError(t, err)
	assert.Equal(t, []domain.FoodCategory{domain.CategoryDairy, domain.CategoryGrain}, opts.Progression.InitialCategories)
	assert.Equal(t, domain.RewardPerLoop, opts.Stage.RewardMode)
}

func TestLoadGame_EmptyPathUsesDefaults(t *testing.T) {
	g, err := LoadGame("")
	require.NoError(t, err)
	assert.Equal(t, "per_stage", g.Rewards.Mode)
}

func TestLoadGame_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown reward mode", "rewards:\n  mode: sometimes\n"},
		{"unknown category", "progression:\n  initial_categories: [candy]\n"},
		{"growth below one", "progression:\n  growth_factor: 0.5\n"},
		{"gate above pool", "selection:\n  pool_slots: 2\n  min_ingredients: 3\n"},
		{"gate above capacity", "selection:\n  min_ingredients: 6\ninventory:\n  capacity: 5\n"},
		{"inverted board", "preparation:\n  board:\n    min: {x: 1, y: 1}\n    max: {x: 0, y: 0}\n"},
		{"blank meal message", "meal:\n  messages: ['']\n"},
		{"not yaml", "rewards: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGame(writeFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadGame_MissingFile(t *testing.T) {
	_, err := LoadGame(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read game config")
}
