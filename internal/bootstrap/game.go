package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/config"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

// Game is the loaded catalog and the session tuning built from it
type Game struct {
	Catalog *catalog.Catalog
	Options session.Options
}

// LoadGame loads the balance config and the ingredient catalog, falling back
// to the embedded copies when no path is configured, and checks that every
// initially unlocked category has ingredients to offer.
func LoadGame(ctx context.Context, cfg *config.Config) (*Game, error) {
	slog.Info(LogMsgLoadingGameConfig,
		"game_config", cfg.GameConfigPath,
		"catalog", cfg.CatalogPath)

	gameCfg, err := config.LoadGame(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadGame, err)
	}

	opts, err := gameCfg.SessionOptions()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidGameConfig, err)
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.FromFile(ctx, cfg.CatalogPath)
	} else {
		cat, err = catalog.Default(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	for _, c := range opts.Progression.InitialCategories {
		if cat.CountOf(c) == 0 {
			return nil, fmt.Errorf("%s: "+ErrMsgEmptyCategory, ErrMsgInvalidGameConfig, c)
		}
	}

	slog.Info(LogMsgGameLoaded,
		"ingredients", cat.Len(),
		"reward_mode", opts.Stage.RewardMode,
		"pool_slots", opts.Stage.PoolSlots,
		"inventory_capacity", opts.Stage.InventoryCapacity)

	return &Game{Catalog: cat, Options: opts}, nil
}
