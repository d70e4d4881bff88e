package config

import (
	"os"
	"strconv"

	"github.com/Xushengqwer/go-common/config"
)

type SiteConfig struct {
	ZapConfig      config.ZapConfig     `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig  config.GormLogConfig `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig   config.ServerConfig  `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig   config.TracerConfig  `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	DatabaseConfig DatabaseConfig       `mapstructure:"databaseConfig" json:"databaseConfig" yaml:"databaseConfig"`
	RedisConfig    RedisConfig          `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig    KafkaConfig          `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	COSConfig      COSConfig            `mapstructure:"mediaCosConfig" json:"mediaCosConfig" yaml:"mediaCosConfig"`
	AuthConfig     AuthConfig           `mapstructure:"authConfig" json:"-" yaml:"authConfig"`
	SiteOptions    SiteOptions          `mapstructure:"siteOptions" json:"siteOptions" yaml:"siteOptions"`
	RankingConfig  RankingConfig        `mapstructure:"rankingConfig" json:"rankingConfig" yaml:"rankingConfig"`
}

// 可以通过环境变量（或 .env 文件）覆盖的敏感配置项
const (
	EnvDatabaseDriver = "FOUNDATION_DB_DRIVER"
	EnvDatabaseDSN    = "FOUNDATION_DB_DSN"
	EnvRedisAddress   = "FOUNDATION_REDIS_ADDR"
	EnvRedisPassword  = "FOUNDATION_REDIS_PASSWORD"
	EnvJWTSecret      = "FOUNDATION_JWT_SECRET"
	EnvCOSSecretID    = "FOUNDATION_COS_SECRET_ID"
	EnvCOSSecretKey   = "FOUNDATION_COS_SECRET_KEY"
	EnvTokenTTLHours  = "FOUNDATION_TOKEN_TTL_HOURS"
)

// ApplyEnvOverrides 用环境变量覆盖配置文件中的敏感项，未设置的变量不影响原值
func (c *SiteConfig) ApplyEnvOverrides() {
	overrideString(&c.DatabaseConfig.Driver, EnvDatabaseDriver)
	overrideString(&c.DatabaseConfig.Write.DSN, EnvDatabaseDSN)
	overrideString(&c.RedisConfig.Address, EnvRedisAddress)
	overrideString(&c.RedisConfig.Password, EnvRedisPassword)
	overrideString(&c.AuthConfig.JWTSecret, EnvJWTSecret)
	overrideString(&c.COSConfig.SecretID, EnvCOSSecretID)
	overrideString(&c.COSConfig.SecretKey, EnvCOSSecretKey)
	if v := os.Getenv(EnvTokenTTLHours); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			c.AuthConfig.TokenTTLHours = hours
		}
	}
}

func overrideString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}
