package config

import "time"

// AuthConfig 后台账号登录令牌配置
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret" yaml:"jwtSecret"`
	Issuer        string `mapstructure:"issuer" yaml:"issuer"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours" yaml:"tokenTTLHours"`
}

// TokenTTL 令牌有效期，未配置时返回 fallback
func (c AuthConfig) TokenTTL(fallback time.Duration) time.Duration {
	if c.TokenTTLHours <= 0 {
		return fallback
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}
