// Package config provides configuration management for shortcut-sync.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section and every key
// can be overridden by its upper-cased, underscore-joined environment variable.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Library: semicolon-separated roots (LIBRARY_ROOTS) and executable extension
//   - Steam: installation root (STEAM_ROOT) and optional account (STEAM_USER_ID)
//   - SteamGridDB: API key (STEAMGRIDDB_API_KEY), base URL and timeout
//   - Log: level, format and optional rotating log file
//   - Storage: S3/MinIO settings for snapshots
//
// # Remembered Inputs
//
// Save writes the library roots, Steam root and API key back into the .env file so the
// next run does not need them on the command line.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
