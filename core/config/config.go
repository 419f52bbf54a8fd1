package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"shortcut-sync/core/library"
	"shortcut-sync/core/logger"
	"shortcut-sync/core/provider"
	"shortcut-sync/core/steam"
	"shortcut-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Library holds the library roots to scan.
	Library library.Config `mapstructure:"library"`
	// Steam holds the Steam installation location.
	Steam steam.Config `mapstructure:"steam"`
	// SteamGridDB holds the artwork provider credentials.
	SteamGridDB provider.Config `mapstructure:"steamgriddb"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// Keys of the inputs a sync needs.
const (
	KeyLibraryRoots = "library.roots"
	KeySteamRoot    = "steam.root"
	KeyAPIKey       = "steamgriddb.api_key"
)

// ValidationError lists required settings that are empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath(path))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LIBRARY_ROOTS -> library.roots)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the inputs a sync cannot run without.
func (c *Config) Validate() error {
	return c.Require(KeyLibraryRoots, KeySteamRoot, KeyAPIKey)
}

// Require returns a *ValidationError naming every key in keys whose value is blank.
func (c *Config) Require(keys ...string) error {
	values := map[string]string{
		KeyLibraryRoots: strings.Join(c.Library.RootList(), ";"),
		KeySteamRoot:    c.Steam.Root,
		KeyAPIKey:       c.SteamGridDB.APIKey,
	}

	var missing []string
	for _, key := range keys {
		if strings.TrimSpace(values[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Save remembers the user inputs of cfg in the .env file under path, keeping any other
// variables already stored there.
func Save(path string, cfg *Config) error {
	file := envPath(path)

	values, err := godotenv.Read(file)
	if errors.Is(err, os.ErrNotExist) {
		values = map[string]string{}
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	values[envKey(KeyLibraryRoots)] = cfg.Library.Roots
	values[envKey(KeySteamRoot)] = cfg.Steam.Root
	values[envKey(KeyAPIKey)] = cfg.SteamGridDB.APIKey
	if cfg.Steam.UserID != "" {
		values[envKey("steam.user_id")] = cfg.Steam.UserID
	}

	if err := godotenv.Write(values, file); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

func envPath(path string) string {
	if path == "." || path == "" {
		return ".env"
	}
	return path + "/.env"
}

// envKey maps a viper key to its environment variable name.
func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
