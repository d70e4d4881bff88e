package config

// COSConfig 媒体文件对象存储配置。SecretID 为空时不上传图片。
type COSConfig struct {
	SecretID   string `mapstructure:"secretID" json:"-" yaml:"secretID"`
	SecretKey  string `mapstructure:"secretKey" json:"-" yaml:"secretKey"`
	BucketName string `mapstructure:"bucketName" json:"bucketName" yaml:"bucketName"`
	AppID      string `mapstructure:"appID" json:"appID" yaml:"appID"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	BaseURL    string `mapstructure:"baseURL" json:"baseURL" yaml:"baseURL"` // CDN 或自定义域名，可选
}

// Enabled 是否配置了对象存储
func (c COSConfig) Enabled() bool {
	return c.SecretID != "" && c.SecretKey != ""
}
