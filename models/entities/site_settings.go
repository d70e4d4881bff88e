package entities

import "time"

// DefaultSiteName 站点设置首次创建时的默认站点名称
const DefaultSiteName = "Anila & Jawad Iqbal Foundation"

// SiteSettings 全站配置，单例：主键固定为 1，不允许删除
type SiteSettings struct {
	ID                uint   `gorm:"primaryKey"`
	SiteName          string `gorm:"type:varchar(200);not null"`
	Tagline           string `gorm:"type:varchar(300)"`
	ContactEmail      string `gorm:"type:varchar(254)"`
	ContactPhone      string `gorm:"type:varchar(20)"`
	Address           string `gorm:"type:text"`
	FacebookURL       string `gorm:"type:varchar(255)"`
	TwitterURL        string `gorm:"type:varchar(255)"`
	InstagramURL      string `gorm:"type:varchar(255)"`
	LinkedinURL       string `gorm:"type:varchar(255)"`
	YoutubeURL        string `gorm:"type:varchar(255)"`
	MetaDescription   string `gorm:"type:text"`
	MetaKeywords      string `gorm:"type:varchar(500)"`
	GoogleAnalyticsID string `gorm:"type:varchar(50)"`
	FooterText        string `gorm:"type:text"`
	UpdatedAt         time.Time
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
