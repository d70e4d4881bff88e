package config

// SiteOptions 站点业务参数
type SiteOptions struct {
	// 捐赠收据编号前缀，如 AJIF-20251217-0042
	ReceiptPrefix   string `mapstructure:"receiptPrefix" json:"receiptPrefix" yaml:"receiptPrefix"`
	DefaultCurrency string `mapstructure:"defaultCurrency" json:"defaultCurrency" yaml:"defaultCurrency"`
	// 单张上传图片的大小上限（MB）
	MaxUploadSizeMB int64 `mapstructure:"maxUploadSizeMB" json:"maxUploadSizeMB" yaml:"maxUploadSizeMB"`
}
