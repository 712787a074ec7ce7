// Package config loads dutyflow settings from a TOML file.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]. Unknown keys are rejected so that typos do not silently
// fall back to defaults.
//
//	[solver]
//	parallelism = 8
//
//	[weights.status]
//	SELRES = 20000
//
//	[[weights.rotation]]
//	below = 0
//	penalty = 25000
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
)

// DefaultFile is the file name looked up in the working directory.
const DefaultFile = "dutyflow.toml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Workspace store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config is the full set of settings.
type Config struct {
	Weights cost.Weights `toml:"weights"`
	Solver  Solver       `toml:"solver"`
	Cache   Cache        `toml:"cache"`
	Store   Store        `toml:"store"`
	Server  Server       `toml:"server"`
	Log     Log          `toml:"log"`
}

// Solver bounds solve effort.
type Solver struct {
	// MaxIterations caps augmentations per solve; 0 uses the source capacity.
	MaxIterations int `toml:"max_iterations"`
	// Parallelism bounds concurrent what-if solves.
	Parallelism int `toml:"parallelism"`
}

// Cache selects where solved plans are kept.
type Cache struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
	// SweepInterval is how often the memory backend drops expired plans
	// while serving; 0 disables the sweep.
	SweepInterval time.Duration `toml:"sweep_interval"`
}

// Store selects where workspaces are saved.
type Store struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	SQLitePath    string        `toml:"sqlite_path"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	// RequestTimeout bounds handler time per request; 0 is unbounded.
	RequestTimeout time.Duration `toml:"request_timeout"`
	// MaxWhatIfDates caps the dates of one what-if request; 0 uses the
	// server default.
	MaxWhatIfDates int `toml:"max_whatif_dates"`
}

// Log configures the server's rotating log file. An empty File logs to stderr.
type Log struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Weights: cost.DefaultWeights(),
		Solver:  Solver{Parallelism: 4},
		Cache: Cache{
			Backend:       CacheFile,
			TTL:           24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Store: Store{
			Backend:       StoreFile,
			MongoDatabase: "dutyflow",
			TTL:           30 * 24 * time.Hour,
		},
		Server: Server{
			Addr:           ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   2 * time.Minute,
			RequestTimeout: 90 * time.Second,
		},
		Log: Log{
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadDefaultFile loads DefaultFile from the working directory when it
// exists, and returns the defaults otherwise.
func LoadDefaultFile() (Config, error) {
	if _, err := os.Stat(DefaultFile); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(DefaultFile)
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Solver.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.max_iterations cannot be negative")
	}
	if c.Solver.Parallelism < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.parallelism cannot be negative")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Cache.SweepInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.sweep_interval cannot be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout cannot be negative")
	}
	if c.Server.MaxWhatIfDates < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_whatif_dates cannot be negative")
	}

	switch c.Store.Backend {
	case StoreFile, StoreSQLite:
	case StoreMongo:
		if err := errors.ValidateURL(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
		if c.Store.MongoDatabase == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_database is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}
