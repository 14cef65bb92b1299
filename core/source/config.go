package source

// Supported document source modes.
const (
	ModeFile   = "file"
	ModeBucket = "bucket"
)

// Config holds configuration for the world document source.
type Config struct {
	// Mode selects where documents are read from: file or bucket.
	Mode string `mapstructure:"mode" default:"file"`
	// Dir is the local directory holding world documents (file mode).
	Dir string `mapstructure:"dir" default:"gamedata"`
	// Prefix is the object key prefix for world documents (bucket mode).
	Prefix string `mapstructure:"prefix" default:"world/"`
}

// IsValidMode reports whether the configured mode is supported.
func (c Config) IsValidMode() bool {
	return c.Mode == ModeFile || c.Mode == ModeBucket
}
