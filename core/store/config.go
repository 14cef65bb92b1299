package store

// Config holds configuration for the backing table store.
type Config struct {
	// Region is the AWS region hosting the tables.
	Region string `mapstructure:"region" default:"us-east-1"`
	// Endpoint overrides the service endpoint (e.g. a local DynamoDB).
	// Empty means the regional AWS endpoint.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for static credentials.
	// Empty means the default credential chain.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for static credentials.
	SecretKey string `mapstructure:"secret_key" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// TableRooms is the table holding room records.
	TableRooms string `mapstructure:"table_rooms" default:"rooms"`
	// TableExits is the table holding exit records.
	TableExits string `mapstructure:"table_exits" default:"exits"`
	// TableArchetypes is the table holding archetype records.
	TableArchetypes string `mapstructure:"table_archetypes" default:"archetypes"`
	// TablePrototypes is the table holding item prototype records.
	TablePrototypes string `mapstructure:"table_prototypes" default:"prototypes"`
	// TableItems is the table holding instantiated item records.
	TableItems string `mapstructure:"table_items" default:"items"`
}

// Tables bundles the table names a component operates on.
type Tables struct {
	Rooms      string
	Exits      string
	Archetypes string
	Prototypes string
	Items      string
}

// Tables returns the configured table names.
func (c Config) Tables() Tables {
	return Tables{
		Rooms:      c.TableRooms,
		Exits:      c.TableExits,
		Archetypes: c.TableArchetypes,
		Prototypes: c.TablePrototypes,
		Items:      c.TableItems,
	}
}

// All returns the table names in display order.
func (t Tables) All() []string {
	return []string{t.Rooms, t.Exits, t.Archetypes, t.Prototypes, t.Items}
}
