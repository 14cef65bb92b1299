// Package config provides configuration management for the world manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags on the
// section configs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Store: world table endpoint, credentials and table names
//   - Storage: S3/MinIO credentials and bucket settings
//   - Source: where world documents are read from (local dir or bucket)
//   - World: validation policy and document names
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
