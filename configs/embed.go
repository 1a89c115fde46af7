// Package configs holds the default content and tuning compiled into the binary.
package configs

import "embed"

// Files contains the default ingredient catalog, its schema, and game tuning
//
//go:embed ingredients.json game.yaml schemas/*.json
var Files embed.FS

const (
	// IngredientsFile is the default catalog path inside Files
	IngredientsFile = "ingredients.json"
	// IngredientsSchemaFile is the catalog schema path inside Files
	IngredientsSchemaFile = "schemas/ingredients.schema.json"
	// GameFile is the default tuning path inside Files
	GameFile = "game.yaml"
)
