package world

import "world-manager/feature/world/models"

// Validation policies for documents with missing fields.
const (
	PolicyLenient = "lenient"
	PolicyStrict  = "strict"
)

// Config holds configuration for the world feature.
type Config struct {
	// Validation selects how missing document fields are handled:
	// lenient fills defaults, strict rejects the record.
	Validation string `mapstructure:"validation" default:"lenient"`
	// RoomsDoc is the document holding rooms (and embedded exits).
	RoomsDoc string `mapstructure:"rooms_doc" default:"rooms.json"`
	// ExitsDoc is the document holding standalone exits, if the world
	// authors them separately from rooms.
	ExitsDoc string `mapstructure:"exits_doc" default:"exits.json"`
	// ArchetypesDoc is the document holding archetypes.
	ArchetypesDoc string `mapstructure:"archetypes_doc" default:"archetypes.json"`
	// PrototypesDoc is the document holding item prototypes.
	PrototypesDoc string `mapstructure:"prototypes_doc" default:"prototypes.json"`
}

// IsValidPolicy checks if the configured validation policy is valid.
func (c Config) IsValidPolicy() bool {
	return c.Validation == PolicyLenient || c.Validation == PolicyStrict
}

// Policy returns the record-level policy for the configured validation mode.
func (c Config) Policy() models.Policy {
	return models.Policy{Strict: c.Validation == PolicyStrict}
}
