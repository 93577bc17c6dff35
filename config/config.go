package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and treated as immutable afterwards; tests build Config values directly.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Account  AccountConfig  `mapstructure:"account"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Chains   []ChainConfig  `mapstructure:"chains"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// VaultConfig holds the server-side symmetric key protecting vaulted signing keys.
type VaultConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256-GCM
}

// AuthConfig drives the sign-in challenge flow.
type AuthConfig struct {
	Domain   string        `mapstructure:"domain"`    // e.g. "pay.example.com"
	NonceTTL time.Duration `mapstructure:"nonce_ttl"` // challenge lifetime
}

// AccountConfig holds the counterfactual account factory constants.
// FactoryAddress and InitCodeHash must be present in release mode; address
// derivation is undefined without them.
type AccountConfig struct {
	FactoryAddress string `mapstructure:"factory_address"` // 0x-prefixed
	InitCodeHash   string `mapstructure:"init_code_hash"`  // 32-byte hex
}

type RelayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PollerConfig bounds bundle status polling. A transaction whose bundle has
// not reached a terminal relay state after MaxAttempts polls spaced Interval
// apart is failed with a timeout code.
type PollerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// ChainConfig describes one supported chain.
type ChainConfig struct {
	ChainID   int64    `mapstructure:"chain_id"`
	Forwarder string   `mapstructure:"forwarder"` // trusted forwarder (EIP-712 verifying contract)
	RPCURLs   []string `mapstructure:"rpc_urls"`  // read fallback endpoints, priority order
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Chain returns the configuration for chainID, or nil if unsupported.
func (c *Config) Chain(chainID int64) *ChainConfig {
	for i := range c.Chains {
		if c.Chains[i].ChainID == chainID {
			return &c.Chains[i]
		}
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SRG_ (Stablecoin Relay
// Gateway). Nested keys use underscore: SRG_DATABASE_HOST, SRG_VAULT_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "relay_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "stablecoin-relay-gateway")
	v.SetDefault("vault.key", "")
	v.SetDefault("auth.domain", "localhost")
	v.SetDefault("auth.nonce_ttl", "5m")
	v.SetDefault("account.factory_address", "")
	v.SetDefault("account.init_code_hash", "")
	v.SetDefault("relay.base_url", "")
	v.SetDefault("relay.api_key", "")
	v.SetDefault("relay.timeout", "10s")
	v.SetDefault("poller.interval", "5s")
	v.SetDefault("poller.max_attempts", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SRG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SRG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate fails fast on configuration the core cannot run without.
// In release mode every cryptographic constant is mandatory; in debug/test
// mode only structural checks apply so local runs stay convenient.
func (c *Config) Validate() error {
	for _, ch := range c.Chains {
		if ch.ChainID <= 0 {
			return fmt.Errorf("chain entry with invalid chain_id %d", ch.ChainID)
		}
		if ch.Forwarder == "" {
			return fmt.Errorf("chain %d: missing forwarder address", ch.ChainID)
		}
	}
	if c.Poller.Interval <= 0 || c.Poller.MaxAttempts <= 0 {
		return fmt.Errorf("poller interval and max_attempts must be positive")
	}

	if c.Server.Mode != "release" {
		return nil
	}

	if c.Vault.Key == "" {
		return fmt.Errorf("vault.key is required in release mode")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in release mode")
	}
	if c.Account.FactoryAddress == "" {
		return fmt.Errorf("account.factory_address is required in release mode")
	}
	if c.Account.InitCodeHash == "" {
		return fmt.Errorf("account.init_code_hash is required in release mode")
	}
	if c.Relay.BaseURL == "" {
		return fmt.Errorf("relay.base_url is required in release mode")
	}
	if len(c.Chains) == 0 {
		return fmt.Errorf("at least one chain must be configured in release mode")
	}
	return nil
}
