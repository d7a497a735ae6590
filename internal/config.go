package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string        `mapstructure:"listenAddr"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	MappingDBPath  string        `mapstructure:"mappingDbPath"`
	Storage        StorageConfig `mapstructure:"storage"`
	Upload         UploadConfig  `mapstructure:"upload"`
}

type StorageConfig struct {
	Type        string `mapstructure:"type"`
	Endpoint    string `mapstructure:"endpoint"`
	Bucket      string `mapstructure:"bucket"`
	Region      string `mapstructure:"region"`
	AccessKey   string `mapstructure:"accessKey"`
	SecretKey   string `mapstructure:"secretKey"`
	UseSSL      bool   `mapstructure:"useSSL"`
	ExternalURL string `mapstructure:"externalUrl"`
	LocalPath   string `mapstructure:"localPath"`
}

type UploadConfig struct {
	MaxRawSizeBytes         int64 `mapstructure:"maxRawSizeBytes"`
	DisplayBound            int   `mapstructure:"displayBound"`
	ThumbnailBound          int   `mapstructure:"thumbnailBound"`
	DisplayQuality          int   `mapstructure:"displayQuality"`
	ThumbnailQualityRaw     int   `mapstructure:"thumbnailQualityRaw"`
	ThumbnailQualityRegular int   `mapstructure:"thumbnailQualityRegular"`
}

const configPath = "files/config.yaml"

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(configPath)

	viper.SetDefault("listenAddr", ":8080")
	viper.SetDefault("mappingDbPath", "files/shutterbox.db")
	viper.SetDefault("storage.type", "s3")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", true)
	viper.SetDefault("storage.localPath", "./storage")
	viper.SetDefault("upload.maxRawSizeBytes", 500*1024*1024)
	viper.SetDefault("upload.displayBound", 2048)
	viper.SetDefault("upload.thumbnailBound", 300)
	viper.SetDefault("upload.displayQuality", 85)
	viper.SetDefault("upload.thumbnailQualityRaw", 70)
	viper.SetDefault("upload.thumbnailQualityRegular", 85)

	// Credentials follow the conventional AWS environment names and
	// override whatever the config file carries.
	viper.BindEnv("storage.accessKey", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("storage.secretKey", "AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("storage.region", "AWS_REGION")
	viper.BindEnv("storage.bucket", "S3_BUCKET_NAME")

	if err := viper.ReadInConfig(); err != nil {
		// The file is optional as long as the environment supplies the
		// required settings.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Storage.Type == "s3" && config.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage.bucket (S3_BUCKET_NAME) is required for the s3 backend")
	}

	return &config, nil
}
