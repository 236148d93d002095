package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigManager handles configuration loading, validation, and hot reloading
type ConfigManager struct {
	viper       *viper.Viper
	config      *Config
	configLock  sync.RWMutex
	validate    *validator.Validate
	watchConfig bool
	onChange    []func(config *Config)
}

// Config represents the application configuration with validation
type Config struct {
	LogLevel  string           `mapstructure:"logLevel" validate:"required,oneof=debug info warning error fatal"`
	Exchanges []ExchangeConfig `mapstructure:"exchanges" validate:"dive"`
	Cache     CacheConfig      `mapstructure:"cache"`
	HTTP      HTTPConfig       `mapstructure:"http"`
	Metrics   struct {
		Namespace string `mapstructure:"namespace"`
	} `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig captures basic logging preferences for the service
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ExchangeConfig represents exchange-specific configuration with validation
type ExchangeConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	APIKey    string `mapstructure:"apiKey" validate:"required_if=UseSecrets false"`
	APISecret string `mapstructure:"apiSecret" validate:"required_if=UseSecrets false"`
	Testnet   bool   `mapstructure:"testnet"`
	// DefaultType selects the market type assumed when neither the caller
	// nor the resolved market carries one.
	DefaultType string `mapstructure:"defaultType" validate:"omitempty,oneof=spot margin swap future"`
	// MethodTypes overrides the default market type per unified method name,
	// e.g. fetchOpenOrders: margin.
	MethodTypes map[string]string `mapstructure:"methodTypes"`
	// Account pins private calls to one venue sub-account.
	Account    string `mapstructure:"account"`
	UseSecrets bool   `mapstructure:"useSecrets"`
	// GCP Secret Manager paths
	APIKeySecretPath    string `mapstructure:"apiKeySecretPath" validate:"required_if=UseSecrets true"`
	APISecretSecretPath string `mapstructure:"apiSecretSecretPath" validate:"required_if=UseSecrets true"`
}

// CacheConfig controls the read cache in front of market data calls
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	MarketDataTTL time.Duration `mapstructure:"marketDataTTL" validate:"omitempty,gt=0"`
	MarketsTTL    time.Duration `mapstructure:"marketsTTL" validate:"omitempty,gt=0"`
	MaxSize       int           `mapstructure:"maxSize" validate:"omitempty,gte=0"`
}

// HTTPConfig controls the shared transport used by venue adapters
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" validate:"omitempty,gt=0"`
	MaxRetries    int           `mapstructure:"maxRetries" validate:"omitempty,gte=0"`
	BackoffBase   time.Duration `mapstructure:"backoffBase" validate:"omitempty,gt=0"`
	BackoffMax    time.Duration `mapstructure:"backoffMax" validate:"omitempty,gt=0"`
	RetryBudget   float64       `mapstructure:"retryBudget" validate:"omitempty,gte=0,lte=1"`
	RetryInterval time.Duration `mapstructure:"retryInterval" validate:"omitempty,gt=0"`
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(configPath string, watchConfig bool) (*ConfigManager, error) {
	v := viper.New()
	v.SetConfigType("yaml") // Set YAML as the default format for all config files

	// Set up environment variable support
	v.SetEnvPrefix("GOUNIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	loadDefaultConfig(v)

	// Load configuration from file if provided
	if configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}

		v.SetConfigFile(absPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
	}

	// Create validator
	validate := validator.New()

	// Create config manager
	cm := &ConfigManager{
		viper:       v,
		validate:    validate,
		watchConfig: watchConfig,
		onChange:    make([]func(config *Config), 0),
	}

	// Load initial configuration
	if err := cm.loadConfig(); err != nil {
		return nil, err
	}

	// Set up hot reloading if enabled
	if watchConfig {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			if err := cm.loadConfig(); err != nil {
				fmt.Printf("Error reloading configuration: %v\n", err)
				return
			}

			// Notify all registered callbacks
			cm.configLock.RLock()
			defer cm.configLock.RUnlock()
			for _, callback := range cm.onChange {
				callback(cm.config)
			}
		})
	}

	return cm, nil
}

// loadDefaultConfig loads default configuration values
func loadDefaultConfig(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.marketDataTTL", "5s")
	v.SetDefault("cache.marketsTTL", "30m")
	v.SetDefault("cache.maxSize", 10000)
	v.SetDefault("http.timeout", "12s")
	v.SetDefault("http.maxRetries", 3)
	v.SetDefault("http.backoffBase", "500ms")
	v.SetDefault("http.backoffMax", "5s")
	v.SetDefault("http.retryBudget", 0.2)
	v.SetDefault("http.retryInterval", "1m")
}

// loadConfig loads the configuration from Viper into the config struct
func (cm *ConfigManager) loadConfig() error {
	var rawConfig Config

	// Decode configuration
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:      &rawConfig,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(cm.viper.AllSettings()); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Validate configuration
	if err := cm.validate.Struct(rawConfig); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Update configuration
	cm.configLock.Lock()
	cm.config = &rawConfig
	cm.configLock.Unlock()

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	cm.configLock.RLock()
	defer cm.configLock.RUnlock()
	return cm.config
}

// GetViper returns the Viper instance
func (cm *ConfigManager) GetViper() *viper.Viper {
	return cm.viper
}

// Exchange returns the configuration block for a named exchange
func (cm *ConfigManager) Exchange(name string) (*ExchangeConfig, bool) {
	cm.configLock.RLock()
	defer cm.configLock.RUnlock()
	for i := range cm.config.Exchanges {
		if strings.EqualFold(cm.config.Exchanges[i].Name, name) {
			cfg := cm.config.Exchanges[i]
			return &cfg, true
		}
	}
	return nil, false
}

// RegisterOnChangeCallback registers a callback function to be called when the configuration changes
func (cm *ConfigManager) RegisterOnChangeCallback(callback func(config *Config)) {
	cm.configLock.Lock()
	defer cm.configLock.Unlock()
	cm.onChange = append(cm.onChange, callback)
}

// ResolveSecrets resolves secrets from GCP Secret Manager
func (cm *ConfigManager) ResolveSecrets(ctx context.Context, projectID string) error {
	// Create a client
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	cm.configLock.Lock()
	defer cm.configLock.Unlock()

	// Resolve exchange secrets
	for i, exchange := range cm.config.Exchanges {
		if exchange.UseSecrets {
			// Resolve API key
			apiKey, err := accessSecret(ctx, client, projectID, exchange.APIKeySecretPath)
			if err != nil {
				return fmt.Errorf("failed to access API key secret for exchange %s: %w", exchange.Name, err)
			}
			cm.config.Exchanges[i].APIKey = apiKey

			// Resolve API secret
			apiSecret, err := accessSecret(ctx, client, projectID, exchange.APISecretSecretPath)
			if err != nil {
				return fmt.Errorf("failed to access API secret for exchange %s: %w", exchange.Name, err)
			}
			cm.config.Exchanges[i].APISecret = apiSecret
		}
	}

	return nil
}

// accessSecret accesses a secret version from GCP Secret Manager
func accessSecret(ctx context.Context, client *secretmanager.Client, projectID, secretPath string) (string, error) {
	// Build the resource name of the secret version
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretPath)

	// Access the secret version
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	}
	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	// Return the secret payload as a string
	return string(result.Payload.Data), nil
}
