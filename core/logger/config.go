package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is the console encoding: console or json.
	Format string `mapstructure:"format" default:"console"`
	// File, when set, also writes JSON logs to a rotating file.
	File string `mapstructure:"file" default:""`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb" default:"10"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `mapstructure:"max_backups" default:"3"`
	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `mapstructure:"max_age_days" default:"28"`
}
