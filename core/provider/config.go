package provider

// Config holds configuration for the SteamGridDB client.
type Config struct {
	// APIKey is the bearer credential issued by SteamGridDB.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://www.steamgriddb.com/api/v2"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
