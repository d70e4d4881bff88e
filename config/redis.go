package config

// RedisConfig Redis 连接配置。Address 为空时不连接 Redis，热门文章排行随之关闭。
type RedisConfig struct {
	Address     string `mapstructure:"address" json:"address" yaml:"address"`
	Password    string `mapstructure:"password" json:"-" yaml:"password"`
	DB          int    `mapstructure:"db" json:"db" yaml:"db"`
	PoolSize    int    `mapstructure:"poolSize" json:"poolSize" yaml:"poolSize"`
	DialTimeout int    `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout"` // 秒
}
