package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port              int              `json:"port"`
	JWTSecret         string           `json:"jwt_secret"`
	JWTTTLHours       int              `json:"jwt_ttl_hours"`
	SignDomain        string           `json:"sign_domain"`
	CORSOrigins       []string         `json:"cors_origins"`
	CampaignCacheSize int              `json:"campaign_cache_size"`
	ReconcileSchedule string           `json:"reconcile_schedule"`
	Database          DatabaseConfig   `json:"database"`
	Upload            UploadConfig     `json:"upload"`
	Solana            SolanaConfig     `json:"solana"`
	LogConfig         logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type UploadConfig struct {
	Endpoint         string `json:"endpoint"`
	Region           string `json:"region"`
	Bucket           string `json:"bucket"`
	SecretID         string `json:"secret_id"`
	SecretKey        string `json:"secret_key"`
	Prefix           string `json:"prefix"`
	PublicURL        string `json:"public_url"`
	PresignExpiryMin int    `json:"presign_expiry_min"`
}

type SolanaConfig struct {
	RPCEndpoint string `json:"rpc_endpoint"`
	ActionBase  string `json:"action_base"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
		return nil, fmt.Errorf("database.dsn or database.host/dbname are required")
	}
	if cfg.Upload.Bucket == "" || cfg.Upload.SecretID == "" || cfg.Upload.SecretKey == "" {
		return nil, fmt.Errorf("upload.bucket/secret_id/secret_key are required")
	}
	if cfg.Solana.RPCEndpoint == "" {
		return nil, fmt.Errorf("solana.rpc_endpoint is required")
	}
	if cfg.SignDomain == "" {
		cfg.SignDomain = "causedrop.app"
	}
	if cfg.Solana.ActionBase == "" {
		cfg.Solana.ActionBase = fmt.Sprintf("http://localhost:%d/api/v1/actions/donation", cfg.Port)
	}
	if cfg.CampaignCacheSize == 0 {
		cfg.CampaignCacheSize = 512
	}
	if cfg.ReconcileSchedule == "" {
		cfg.ReconcileSchedule = "*/5 * * * *"
	}
	if cfg.Upload.PresignExpiryMin == 0 {
		cfg.Upload.PresignExpiryMin = 15
	}
	if cfg.Upload.Region == "" {
		cfg.Upload.Region = "us-east-1"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
