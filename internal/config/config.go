package config

import (
	"fmt"
	"os"

	"token_sale/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Server    ServerConfig             `yaml:"server"`
	Network   entity.NetworkDefinition `yaml:"network"`
	Sale      SaleConfig               `yaml:"sale"`
	Refresh   RefreshConfig            `yaml:"refresh"`
	Analytics AnalyticsConfig          `yaml:"analytics"`
	Wallet    WalletConfig             `yaml:"wallet"`
	RpcClient RpcClientConfig          `yaml:"rpcClient"`
	Logging   LoggingConfig            `yaml:"logging"`
	Swagger   SwaggerConfig            `yaml:"swagger"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
}

type SaleConfig struct {
	SaleAddress          string `yaml:"saleAddress"`
	PaymentTokenAddress  string `yaml:"paymentTokenAddress"`
	PaymentTokenSymbol   string `yaml:"paymentTokenSymbol"`
	PaymentTokenDecimals uint8  `yaml:"paymentTokenDecimals"`
	SaleTokenAddress     string `yaml:"saleTokenAddress"`
	SaleTokenSymbol      string `yaml:"saleTokenSymbol"`
	SaleTokenDecimals    uint8  `yaml:"saleTokenDecimals"`
	GasMarginPercent     uint64 `yaml:"gasMarginPercent"`
	MinGasLimit          uint64 `yaml:"minGasLimit"`
}

type RefreshConfig struct {
	FastIntervalMs   int  `yaml:"fastIntervalMs"`
	SlowIntervalMs   int  `yaml:"slowIntervalMs"`
	AllowancePolling bool `yaml:"allowancePolling"`
}

type AnalyticsConfig struct {
	Enabled              bool   `yaml:"enabled"`
	BaseURL              string `yaml:"baseUrl"`
	RequestTimeoutMillis int    `yaml:"requestTimeoutMs"`
}

type WalletConfig struct {
	Account string `yaml:"account"`
}

type RpcClientConfig struct {
	ConnectTimeoutMs int     `yaml:"connectTimeoutMs"`
	CallTimeoutMs    int     `yaml:"callTimeoutMs"`
	RateLimit        float64 `yaml:"rateLimit"`
	BurstLimit       int     `yaml:"burstLimit"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PaymentAsset describes the token the buyer pays with.
func (c *Config) PaymentAsset() entity.AssetInfo {
	return entity.AssetInfo{
		ChainID:  c.Network.ChainID,
		Address:  c.Sale.PaymentTokenAddress,
		Symbol:   c.Sale.PaymentTokenSymbol,
		Decimals: c.Sale.PaymentTokenDecimals,
	}
}

// SaleAsset describes the token being sold.
func (c *Config) SaleAsset() entity.AssetInfo {
	return entity.AssetInfo{
		ChainID:  c.Network.ChainID,
		Address:  c.Sale.SaleTokenAddress,
		Symbol:   c.Sale.SaleTokenSymbol,
		Decimals: c.Sale.SaleTokenDecimals,
	}
}

// LoadConfig reads and validates the configuration file, filling defaults
// for everything optional.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		logrus.Infof("Server port not set, using default 8080")
		cfg.Server.Port = "8080"
	}
	if cfg.Sale.GasMarginPercent == 0 {
		logrus.Infof("Gas margin not set, using default %d%%", entity.DefaultGasMarginPercent)
		cfg.Sale.GasMarginPercent = entity.DefaultGasMarginPercent
	}
	if cfg.Sale.MinGasLimit == 0 {
		logrus.Infof("Minimum gas limit not set, using default %d", entity.DefaultGasLimitFloor)
		cfg.Sale.MinGasLimit = entity.DefaultGasLimitFloor
	}
	if cfg.Sale.PaymentTokenSymbol == "" {
		cfg.Sale.PaymentTokenSymbol = "USDT"
	}
	if cfg.Sale.PaymentTokenDecimals == 0 {
		logrus.Infof("Payment token decimals not set, using default 6")
		cfg.Sale.PaymentTokenDecimals = 6
	}
	if cfg.Sale.SaleTokenSymbol == "" {
		cfg.Sale.SaleTokenSymbol = "ZEON"
	}
	if cfg.Sale.SaleTokenDecimals == 0 {
		logrus.Infof("Sale token decimals not set, using default 18")
		cfg.Sale.SaleTokenDecimals = 18
	}
	if cfg.Refresh.FastIntervalMs <= 0 {
		logrus.Infof("Fast refresh interval not set, using default 10000ms")
		cfg.Refresh.FastIntervalMs = 10000
	}
	if cfg.Refresh.SlowIntervalMs <= 0 {
		logrus.Infof("Slow refresh interval not set, using default 60000ms")
		cfg.Refresh.SlowIntervalMs = 60000
	}
	if cfg.RpcClient.ConnectTimeoutMs <= 0 {
		logrus.Infof("RPC connect timeout not set, using default 10000ms")
		cfg.RpcClient.ConnectTimeoutMs = 10000
	}
	if cfg.RpcClient.CallTimeoutMs <= 0 {
		logrus.Infof("RPC call timeout not set, using default 15000ms")
		cfg.RpcClient.CallTimeoutMs = 15000
	}
	if cfg.Analytics.RequestTimeoutMillis <= 0 {
		cfg.Analytics.RequestTimeoutMillis = 5000
	}
	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}

	if cfg.Sale.SaleAddress == "" {
		logrus.Warnf("Sale contract address is empty, operations will be skipped until configured")
	}
	if cfg.Sale.PaymentTokenAddress == "" {
		logrus.Warnf("Payment token address is empty, operations will be skipped until configured")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}
