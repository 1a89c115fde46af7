package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/QuickCooking_Go/configs"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/validation"
)

// Config represents the JSON catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Ingredients []Def `json:"ingredients"`
}

// Def represents a single ingredient definition in the JSON
type Def struct {
	ID          string         `json:"id"`
	Category    string         `json:"category"`
	DisplayName string         `json:"display_name,omitempty"`
	Sprites     domain.Sprites `json:"sprites"`
	CookSeconds float64        `json:"cook_seconds,omitempty"`
}

// Loader handles loading and validating catalog files
type Loader interface {
	Load(path string) (*Config, error)
	LoadBytes(data []byte, source string) (*Config, error)
	Validate(config *Config) error
	Build(ctx context.Context, config *Config) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
	titler          cases.Caser
}

// NewLoader creates a Loader that validates against the embedded schema
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewFSSchemaValidator(configs.Files),
		titler:          cases.Title(language.English),
	}
}

// Load reads, schema-validates and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFileFailed, err)
	}
	return l.LoadBytes(data, path)
}

// LoadBytes schema-validates and parses catalog JSON. source names the data in errors.
func (l *catalogLoader) LoadBytes(data []byte, source string) (*Config, error) {
	if err := l.schemaValidator.ValidateBytes(data, configs.IngredientsSchemaFile); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, source, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	return &config, nil
}

// Validate checks semantic rules the schema cannot express
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Ingredients) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoIngredients)
	}

	seen := make(map[string]bool, len(config.Ingredients))
	for i, def := range config.Ingredients {
		if def.ID == "" {
			return fmt.Errorf(ErrFmtEmptyID, ErrInvalidConfig, i)
		}
		if seen[def.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateIngredient, def.ID)
		}
		seen[def.ID] = true

		if _, err := domain.ParseCategory(def.Category); err != nil {
			return fmt.Errorf(ErrFmtUnknownCategory, ErrInvalidConfig, def.ID, def.Category)
		}
		if def.CookSeconds < 0 {
			return fmt.Errorf(ErrFmtNegativeCookSeconds, ErrInvalidConfig, def.ID)
		}
	}

	return nil
}

// Build validates config and converts it into a Catalog
func (l *catalogLoader) Build(ctx context.Context, config *Config) (*Catalog, error) {
	if err := l.Validate(config); err != nil {
		return nil, err
	}

	ingredients := make([]domain.Ingredient, 0, len(config.Ingredients))
	for _, def := range config.Ingredients {
		category, _ := domain.ParseCategory(def.Category)

		name := def.DisplayName
		if name == "" {
			name = l.titler.String(strings.ReplaceAll(def.ID, "_", " "))
		}

		ingredients = append(ingredients, domain.Ingredient{
			ID:          domain.IngredientID(def.ID),
			Category:    category,
			DisplayName: name,
			Sprites:     def.Sprites,
			CookSeconds: def.CookSeconds,
		})
	}

	cat, err := New(ingredients)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"version", config.Version,
		"ingredients", cat.Len(),
		"categories", len(cat.Categories()))

	return cat, nil
}

// FromFile loads, validates and builds a catalog from path
func FromFile(ctx context.Context, path string) (*Catalog, error) {
	l := NewLoader()
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, config)
}

// Default builds the catalog compiled into the binary
func Default(ctx context.Context) (*Catalog, error) {
	data, err := configs.Files.ReadFile(configs.IngredientsFile)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFileFailed, err)
	}

	l := NewLoader()
	config, err := l.LoadBytes(data, embeddedSource)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, config)
}
