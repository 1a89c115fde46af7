package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/config"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        "text",
		Environment:      "dev",
		Version:          "test",
		SessionCacheSize: 16,
		SessionTTL:       time.Minute,
		EventMaxRetries:  1,
		EventRetryDelay:  time.Millisecond,
		DeadLetterPath:   filepath.Join(dir, "dl", "deadletter.jsonl"),
	}
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00"))
	assert.Contains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-12_00-00-00"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestCleanupLogs_BelowLimit(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("a%d.log", i)), nil, 0o644))
	}

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer

	f, err := setupLogger(cfg, &buf)

	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Contains(t, buf.String(), LogMsgLoggingInitialized)
}

func TestSetupLogger_WritesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	f, err := setupLogger(cfg, &buf)
	require.NoError(t, err)
	require.NotNil(t, f)
	t.Cleanup(func() { _ = f.Close() })

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingService)
	assert.Equal(t, cfg.LogDir, filepath.Dir(f.Name()))
}

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	cfg := testConfig(t)

	bus, pub, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Shutdown(context.Background()) })

	assert.NotNil(t, bus)
	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
	assert.NoError(t, pub.CheckHealth(context.Background()))
}

func TestRegisterEventHandlers_Delivers(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus}))

	for _, e := range []event.Event{
		event.NewLoopCompletedEvent(1, []domain.IngredientID{"apple"}),
		event.NewInvariantViolationEvent("ledger", "broken"),
	} {
		assert.NoError(t, bus.Publish(context.Background(), e))
	}
}

func TestLoadGame_Defaults(t *testing.T) {
	cfg := testConfig(t)

	game, err := LoadGame(context.Background(), cfg)

	require.NoError(t, err)
	assert.Positive(t, game.Catalog.Len())
	assert.Equal(t, []domain.FoodCategory{domain.CategoryFruit}, game.Options.Progression.InitialCategories)
	assert.Equal(t, domain.RewardPerStage, game.Options.Stage.RewardMode)
}

func TestLoadGame_MissingFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.GameConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadGame(context.Background(), cfg)
	assert.ErrorContains(t, err, ErrMsgFailedLoadGame)

	cfg = testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")

	_, err = LoadGame(context.Background(), cfg)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestLoadGame_InitialCategoryWithoutIngredients(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "dairy.json")
	catalogJSON := `{"version":"1.0","ingredients":[{"id":"cheese","category":"dairy"}]}`
	require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(catalogJSON), 0o644))

	_, err := LoadGame(context.Background(), cfg)

	assert.ErrorContains(t, err, "no ingredients in initial category fruit")
}

type capture struct {
	events []event.Event
}

func (c *capture) Publish(_ context.Context, e event.Event) error {
	c.events = append(c.events, e)
	return nil
}

func TestGracefulShutdown_ClosesSessionsThenPublisher(t *testing.T) {
	cfg := testConfig(t)
	game, err := LoadGame(context.Background(), cfg)
	require.NoError(t, err)

	bus, pub, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	rec := &capture{}
	bus.Subscribe(event.SessionEnded, func(ctx context.Context, e event.Event) error {
		return rec.Publish(ctx, e)
	})

	manager := session.NewManager(game.Catalog, pub, nil, game.Options, cfg.SessionCacheSize, cfg.SessionTTL, nil)
	_, err = manager.Create(context.Background(), nil)
	require.NoError(t, err)

	GracefulShutdown(context.Background(), ShutdownComponents{
		Sessions:           manager,
		ResilientPublisher: pub,
	})

	assert.Equal(t, 0, manager.Len())
	require.Len(t, rec.events, 1)
	assert.ErrorIs(t, pub.CheckHealth(context.Background()), event.ErrPublisherClosed)
}
