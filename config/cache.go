package config

// RankingConfig 热门文章排行（Redis ZSet）相关配置
type RankingConfig struct {
	// CronSpec 全量重建排行的周期，robfig/cron 语法，如 "@every 10m"
	CronSpec string `mapstructure:"cronSpec" json:"cronSpec" yaml:"cronSpec"`

	// RankSize 重建时从数据库取浏览量最高的多少篇已发布文章写入 ZSet。
	// 取值越大，排行越完整，但每次重建的 ZADD 成本越高。
	RankSize int `mapstructure:"rankSize" json:"rankSize" yaml:"rankSize"`

	// PopularLimit 公开接口 /blogs/popular 默认返回的条数
	PopularLimit int `mapstructure:"popularLimit" json:"popularLimit" yaml:"popularLimit"`
}
