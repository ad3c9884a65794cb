package config

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DbDriverMysql    = "mysql"
	DbDriverPostgres = "postgres"
	DbDriverSqlite   = "sqlite3"

	// Env var overriding the gas payer key of the config file.
	EnvDelegatorKey = "THORTX_DELEGATOR_KEY"
)

type Db struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Schema   string `toml:"schema"`
	InMemory bool   `toml:"in_memory"`
}

type Chain struct {
	Chain                string `toml:"chain"`
	NodeUrl              string `toml:"node_url"`
	ChainTag             int    `toml:"chain_tag"`
	Expiration           uint32 `toml:"expiration"`
	PollInterval         int    `toml:"poll_interval"` // in milliseconds
	MaxFeePerGas         string `toml:"max_fee_per_gas"`
	MaxPriorityFeePerGas string `toml:"max_priority_fee_per_gas"`
}

type Thortx struct {
	Db Db `toml:"db"`

	ServerPort   int    `toml:"server_port"`
	DelegatorUrl string `toml:"delegator_url"`
	DelegatorKey string `toml:"delegator_key"`
	Mnemonic     string `toml:"mnemonic"`

	Chain Chain `toml:"chain"`
}

func Default() Thortx {
	return Thortx{
		Db: Db{
			Driver: DbDriverSqlite,
			Schema: "thortx",
		},
		ServerPort: 25456,
		Chain: Chain{
			Chain:                "thor-testnet",
			NodeUrl:              "http://localhost:8669",
			ChainTag:             -1,
			Expiration:           720,
			PollInterval:         10_000,
			MaxFeePerGas:         "10000000000000",
			MaxPriorityFeePerGas: "0",
		},
	}
}

// Load reads a toml config on top of the defaults. Variables of a .env file in the working
// directory are loaded into the environment first; THORTX_DELEGATOR_KEY wins over the file.
func Load(path string) (Thortx, error) {
	cfg := Default()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, err
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
		}
	}

	if key := os.Getenv(EnvDelegatorKey); key != "" {
		cfg.DelegatorKey = key
	}

	return cfg, cfg.Validate()
}

func (cfg Thortx) Validate() error {
	switch cfg.Db.Driver {
	case DbDriverMysql, DbDriverPostgres, DbDriverSqlite:
	default:
		return fmt.Errorf("unknown db driver %q", cfg.Db.Driver)
	}

	if cfg.Chain.NodeUrl == "" {
		return fmt.Errorf("chain node_url cannot be empty")
	}

	if cfg.Chain.ChainTag > 255 {
		return fmt.Errorf("invalid chain tag %d", cfg.Chain.ChainTag)
	}

	return nil
}

// Write renders cfg with the config template into path.
func Write(path string, cfg Thortx) error {
	tmpl, err := template.New("thortx").Parse(ThortxConfigTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0600)
}
