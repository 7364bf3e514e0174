package common

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// DefaultConfigPath is read when no explicit config file is given.
const DefaultConfigPath = "./nativedb.yml"

var ErrUnknownGame = errors.New("unknown game")

// Game describes one upstream native database.
type Game struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
	Format      Format `yaml:"format" json:"format"`
}

type GenerateDefaults struct {
	Vectorize   bool             `yaml:"vectorize"`
	Naming      NamingConvention `yaml:"naming"`
	InvokeToken string           `yaml:"invoke"`
	Sanitize    bool             `yaml:"sanitize"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	LookupDebounce time.Duration `yaml:"lookupDebounce"`
}

type Config struct {
	Product      string           `yaml:"product"`
	OutputDir    string           `yaml:"outputDir"`
	FetchTimeout time.Duration    `yaml:"fetchTimeout"`
	Games        []Game           `yaml:"games"`
	Generate     GenerateDefaults `yaml:"generate"`
	Server       ServerConfig     `yaml:"server"`
}

// DefaultConfig returns the built-in game registry and generation defaults.
func DefaultConfig() *Config {
	return &Config{
		Product:      "Vey's",
		OutputDir:    ".",
		FetchTimeout: 30 * time.Second,
		Games: []Game{
			{
				ID:          "gta5",
				Name:        "GTA V",
				Description: "Grand Theft Auto V Natives",
				URL:         "https://raw.githubusercontent.com/alloc8or/gta5-nativedb-data/master/natives.json",
				Format:      FormatJSON,
			},
			{
				ID:          "rdr2",
				Name:        "RDR 2",
				Description: "Red Dead Redemption 2 Natives",
				URL:         "https://raw.githubusercontent.com/alloc8or/rdr3-nativedb-data/master/natives.json",
				Format:      FormatJSON,
			},
			{
				ID:          "rdr",
				Name:        "RDR",
				Description: "Red Dead Redemption Natives",
				URL:         "https://raw.githubusercontent.com/K3rhos/RDR-PC-Natives-DB/main/Natives.h",
				Format:      FormatHeader,
			},
			{
				ID:          "mp3",
				Name:        "Max Payne 3",
				Description: "Max Payne 3 Natives",
				URL:         "https://raw.githubusercontent.com/alloc8or/mp3-nativedb-data/master/natives.json",
				Format:      FormatJSON,
			},
			{
				ID:          "gta4",
				Name:        "GTA IV",
				Description: "Grand Theft Auto IV Natives",
				URL:         "https://raw.githubusercontent.com/ThirteenAG/GTAIV.EFLC.FusionFix/master/source/natives.ixx",
				Format:      FormatEnumClass,
			},
		},
		Generate: GenerateDefaults{
			Naming:      NamingDefault,
			InvokeToken: "Invoke",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			LookupDebounce: 500 * time.Millisecond,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path tries
// DefaultConfigPath and silently falls back to the defaults when it is absent.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides settings from NATIVEDB_* environment variables. Invalid
// values are reported through logger and ignored.
func (c *Config) ApplyEnv(logger Logger) {
	if logger == nil {
		logger = DiscardLogger
	}
	if raw := os.Getenv("NATIVEDB_ADDR"); raw != "" {
		c.Server.Addr = raw
	}
	if raw := os.Getenv("NATIVEDB_FETCH_TIMEOUT"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			c.FetchTimeout = value
		} else {
			logger.Printf("invalid NATIVEDB_FETCH_TIMEOUT=%q: %v", raw, err)
		}
	}
}

// Game resolves a game by id, case-insensitively.
func (c *Config) Game(id string) (Game, error) {
	for _, g := range c.Games {
		if strings.EqualFold(g.ID, id) {
			return g, nil
		}
	}
	return Game{}, fmt.Errorf("%w: %q", ErrUnknownGame, id)
}

// GenerationOptions seeds generation options from the configured defaults.
func (c *Config) GenerationOptions() GenerationOptions {
	return GenerationOptions{
		Vectorize:           c.Generate.Vectorize,
		NamingConvention:    c.Generate.Naming,
		InvokeToken:         c.Generate.InvokeToken,
		Product:             c.Product,
		SanitizeIdentifiers: c.Generate.Sanitize,
	}
}

func (c *Config) validate() error {
	seen := make(map[string]struct{}, len(c.Games))
	for i := range c.Games {
		g := &c.Games[i]
		if strings.TrimSpace(g.ID) == "" {
			return fmt.Errorf("game #%d: missing id", i)
		}
		key := strings.ToLower(g.ID)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate game id %q", g.ID)
		}
		seen[key] = struct{}{}

		format, err := ParseFormat(string(g.Format))
		if err != nil {
			return fmt.Errorf("game %s: %w", g.ID, err)
		}
		g.Format = format
	}

	naming, err := ParseNamingConvention(string(c.Generate.Naming))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	c.Generate.Naming = naming
	return nil
}
