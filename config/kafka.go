package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	ContentEvents    string `mapstructure:"contentEvents" yaml:"contentEvents"`       // 文章发布/归档/删除
	EngagementEvents string `mapstructure:"engagementEvents" yaml:"engagementEvents"` // 公开表单提交
	AdminActions     string `mapstructure:"adminActions" yaml:"adminActions"`         // 后台批量操作（消费）
}
