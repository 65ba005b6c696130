package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey       string        `mapstructure:"secretKey"`
	Issuer          string        `mapstructure:"issuer"`
	Audience        string        `mapstructure:"audience"`
	AccessTokenTTL  time.Duration `mapstructure:"accessTokenTTL"`
	RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTTL"`
}

// GeocoderConfig points at the Nominatim-compatible place search service.
type GeocoderConfig struct {
	BaseURL   string        `mapstructure:"baseURL"`
	UserAgent string        `mapstructure:"userAgent"`
	CacheTTL  time.Duration `mapstructure:"cacheTTL"`
}

// OverpassConfig points at the Overpass-compatible POI index.
type OverpassConfig struct {
	BaseURL      string        `mapstructure:"baseURL"`
	UserAgent    string        `mapstructure:"userAgent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RadiusMeters int           `mapstructure:"radiusMeters"`
	ElementCap   int           `mapstructure:"elementCap"`
}

type OAuthProviderConfig struct {
	Key         string `mapstructure:"key"`
	Secret      string `mapstructure:"secret"`
	CallbackURL string `mapstructure:"callbackURL"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Overpass OverpassConfig `mapstructure:"overpass"`
	OAuth    struct {
		Google OAuthProviderConfig `mapstructure:"google"`
	} `mapstructure:"oauth"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Environment overrides for secrets (TRAVELWIZ_JWT_SECRETKEY etc.)
	v.SetEnvPrefix("TRAVELWIZ")
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
