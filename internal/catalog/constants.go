package catalog

// File operation error messages
const (
	ErrMsgReadCatalogFileFailed = "failed to read ingredient catalog file: %w"
	ErrMsgParseCatalogFailed    = "failed to parse ingredient catalog: %w"
	ErrMsgSchemaFailed          = "schema validation failed for %s: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil           = "config is nil"
	ErrMsgNoIngredients       = "no ingredients defined"
	ErrFmtEmptyID             = "%w: ingredient at index %d has empty id"
	ErrFmtUnknownCategory     = "%w: ingredient '%s' has unknown category '%s'"
	ErrFmtNegativeCookSeconds = "%w: ingredient '%s' has negative cook_seconds"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Ingredient catalog loaded"
)

// embeddedSource labels the built-in catalog in errors and logs
const embeddedSource = "embedded:ingredients.json"
