package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Baseline BaselineConfig `mapstructure:"baseline"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Chains   ChainsConfig   `mapstructure:"chains"`
	Donation DonationConfig `mapstructure:"donation"`
	Reads    ReadsConfig    `mapstructure:"reads"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// AuthConfig protects mutating control-API routes. An empty secret disables auth.
type AuthConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
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

// Baseline sources.
const (
	BaselineSourceSeed     = "seed"
	BaselineSourcePostgres = "postgres"
)

// BaselineConfig selects where locally known event data comes from.
type BaselineConfig struct {
	Source string `mapstructure:"source"` // seed, postgres
	// DisplayDecimals scales the seed's human amounts into smallest units.
	DisplayDecimals uint8 `mapstructure:"display_decimals"`
}

// WalletConfig configures the local signing wallet. An empty key means no provider.
type WalletConfig struct {
	PrivateKey   string        `mapstructure:"private_key"` // hex, with or without 0x
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ChainConfig describes one network and the contracts the client uses on it.
type ChainConfig struct {
	ID               uint64 `mapstructure:"id"`
	Name             string `mapstructure:"name"`
	RPCURL           string `mapstructure:"rpc_url"`
	ExplorerURL      string `mapstructure:"explorer_url"`
	CurrencyName     string `mapstructure:"currency_name"`
	CurrencySymbol   string `mapstructure:"currency_symbol"`
	CurrencyDecimals uint8  `mapstructure:"currency_decimals"`
	TokenBridge      string `mapstructure:"token_bridge"`
	PaymentToken     string `mapstructure:"payment_token"`
	DonationVault    string `mapstructure:"donation_vault"`
}

type ChainsConfig struct {
	Source      ChainConfig `mapstructure:"source"`
	Target      ChainConfig `mapstructure:"target"`
	FlowerRatio int64       `mapstructure:"flower_ratio"` // fallback when the vault read fails
}

type DonationConfig struct {
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout"`
	ErrorMessageLimit   int           `mapstructure:"error_message_limit"`
}

type ReadsConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	RateLimit float64       `mapstructure:"rate_limit"` // calls per second to the target RPC
	Burst     int           `mapstructure:"burst"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: XCD_ (cross-chain donation).
// Nested keys use underscore: XCD_WALLET_PRIVATE_KEY, XCD_CHAINS_TARGET_RPC_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: XCD_REDIS_HOST -> redis.host
	v.SetEnvPrefix("XCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.expiry", "24h")
	v.SetDefault("auth.issuer", "crosschain-donation")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "donations")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("baseline.source", BaselineSourceSeed)
	v.SetDefault("baseline.display_decimals", 18)

	v.SetDefault("wallet.private_key", "")
	v.SetDefault("wallet.poll_interval", "2s")

	v.SetDefault("chains.source.id", 11155111)
	v.SetDefault("chains.source.name", "Ethereum Sepolia")
	v.SetDefault("chains.source.rpc_url", "https://ethereum-sepolia-rpc.publicnode.com")
	v.SetDefault("chains.source.explorer_url", "https://sepolia.etherscan.io")
	v.SetDefault("chains.source.currency_name", "Sepolia ETH")
	v.SetDefault("chains.source.currency_symbol", "ETH")
	v.SetDefault("chains.source.currency_decimals", 18)
	v.SetDefault("chains.source.token_bridge", "0x5fB3B402CeB562AEd0BBC93a2dAE7ec87F9587A3")
	v.SetDefault("chains.source.payment_token", "0xEabab8DA6dcfFC511579Cd1e43357B9A68842BD8")
	v.SetDefault("chains.source.donation_vault", "")

	v.SetDefault("chains.target.id", 421614)
	v.SetDefault("chains.target.name", "Arbitrum Sepolia")
	v.SetDefault("chains.target.rpc_url", "https://sepolia-rollup.arbitrum.io/rpc")
	v.SetDefault("chains.target.explorer_url", "https://sepolia.arbiscan.io")
	v.SetDefault("chains.target.currency_name", "Arbitrum Sepolia ETH")
	v.SetDefault("chains.target.currency_symbol", "ETH")
	v.SetDefault("chains.target.currency_decimals", 18)
	v.SetDefault("chains.target.token_bridge", "")
	v.SetDefault("chains.target.payment_token", "")
	v.SetDefault("chains.target.donation_vault", "0x1c6D6663B2667fE282680a8c36E05FA73ADB85f7")

	v.SetDefault("chains.flower_ratio", 100)

	v.SetDefault("donation.confirmation_timeout", "5m")
	v.SetDefault("donation.error_message_limit", 100)

	v.SetDefault("reads.timeout", "10s")
	v.SetDefault("reads.cache_ttl", "15s")
	v.SetDefault("reads.rate_limit", 5.0)
	v.SetDefault("reads.burst", 10)
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	switch c.Baseline.Source {
	case BaselineSourceSeed, BaselineSourcePostgres:
	default:
		return fmt.Errorf("baseline.source must be %q or %q, got %q",
			BaselineSourceSeed, BaselineSourcePostgres, c.Baseline.Source)
	}
	if c.Chains.Source.ID == 0 || c.Chains.Target.ID == 0 {
		return fmt.Errorf("chains.source.id and chains.target.id are required")
	}
	if c.Chains.Source.ID == c.Chains.Target.ID {
		return fmt.Errorf("source and target chains must differ (both %d)", c.Chains.Source.ID)
	}
	if c.Donation.ConfirmationTimeout <= 0 {
		return fmt.Errorf("donation.confirmation_timeout must be positive")
	}
	if c.Reads.RateLimit <= 0 || c.Reads.Burst <= 0 {
		return fmt.Errorf("reads.rate_limit and reads.burst must be positive")
	}
	return nil
}
