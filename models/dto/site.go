package dto

import (
	"github.com/Xushengqwer/foundation_service/models/enums"
)

// ContactRequest 联系表单
type ContactRequest struct {
	Name        string            `json:"name" form:"name" binding:"required,max=200"`
	Email       string            `json:"email" form:"email" binding:"required,email,max=254"`
	Phone       string            `json:"phone" form:"phone" binding:"omitempty,max=20"`
	InquiryType enums.InquiryType `json:"inquiry_type" form:"inquiry_type" binding:"omitempty,oneof=general volunteer partnership donation other"`
	Subject     string            `json:"subject" form:"subject" binding:"required,max=200"`
	Message     string            `json:"message" form:"message" binding:"required"`
}

// TestimonialRequest 公开提交感言（multipart，可附带 image 文件）。提交后默认未审核。
type TestimonialRequest struct {
	Name            string                `form:"name" json:"name" binding:"required,max=200"`
	Organization    string                `form:"organization" json:"organization" binding:"omitempty,max=200"`
	TestimonialType enums.TestimonialType `form:"testimonial_type" json:"testimonial_type" binding:"omitempty,oneof=personal partner donor beneficiary"`
	Content         string                `form:"content" json:"content" binding:"required"`
}

// DonationRequest 公开捐赠登记。系统只记录，不发起支付；状态强制为 pending。
type DonationRequest struct {
	DonorName     string              `json:"donor_name" form:"donor_name" binding:"required,max=200"`
	DonorEmail    string              `json:"donor_email" form:"donor_email" binding:"required,email,max=254"`
	DonorPhone    string              `json:"donor_phone" form:"donor_phone" binding:"omitempty,max=20"`
	Amount        float64             `json:"amount" form:"amount" binding:"required,gt=0,lte=99999999.99"`
	Currency      string              `json:"currency" form:"currency" binding:"omitempty,len=3"`
	PaymentMethod enums.PaymentMethod `json:"payment_method" form:"payment_method" binding:"required,oneof=jazzcash easypaisa bank credit_card other"`
	Purpose       string              `json:"purpose" form:"purpose" binding:"omitempty,max=200"`
	PartnerID     *uint64             `json:"partner_id,omitempty" form:"partner_id" binding:"omitempty,gt=0"`
	TransactionID string              `json:"transaction_id" form:"transaction_id" binding:"omitempty,max=100"`
	IsRecurring   bool                `json:"is_recurring" form:"is_recurring"`
	IsAnonymous   bool                `json:"is_anonymous" form:"is_anonymous"`
}

// NewsletterSubscribeRequest 订阅邮件
type NewsletterSubscribeRequest struct {
	Email string `json:"email" form:"email" binding:"required,email,max=254"`
	Name  string `json:"name" form:"name" binding:"omitempty,max=200"`
}

// NewsletterUnsubscribeRequest 退订邮件
type NewsletterUnsubscribeRequest struct {
	Email string `json:"email" form:"email" binding:"required,email,max=254"`
}

// GalleryQuery 图库查询参数
type GalleryQuery struct {
	Category enums.GalleryCategory `form:"category" binding:"omitempty,oneof=event activity team impact other"`
	Featured *bool                 `form:"featured"`
	Limit    int                   `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// LoginRequest 后台账号登录
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// UpdateSiteSettingsRequest 更新全站设置（整体替换）
type UpdateSiteSettingsRequest struct {
	SiteName          string `json:"site_name" binding:"required,max=200"`
	Tagline           string `json:"tagline" binding:"omitempty,max=300"`
	ContactEmail      string `json:"contact_email" binding:"omitempty,email,max=254"`
	ContactPhone      string `json:"contact_phone" binding:"omitempty,max=20"`
	Address           string `json:"address"`
	FacebookURL       string `json:"facebook_url" binding:"omitempty,url,max=255"`
	TwitterURL        string `json:"twitter_url" binding:"omitempty,url,max=255"`
	InstagramURL      string `json:"instagram_url" binding:"omitempty,url,max=255"`
	LinkedinURL       string `json:"linkedin_url" binding:"omitempty,url,max=255"`
	YoutubeURL        string `json:"youtube_url" binding:"omitempty,url,max=255"`
	MetaDescription   string `json:"meta_description"`
	MetaKeywords      string `json:"meta_keywords" binding:"omitempty,max=500"`
	GoogleAnalyticsID string `json:"google_analytics_id" binding:"omitempty,max=50"`
	FooterText        string `json:"footer_text"`
}

// TestimonialFilter 已审核感言在 Repo 层的查询条件
type TestimonialFilter struct {
	Type         *enums.TestimonialType
	FeaturedOnly bool
	Limit        int
}

// GalleryFilter 图库在 Repo 层的查询条件
type GalleryFilter struct {
	Category *enums.GalleryCategory
	Featured *bool
	Limit    int
}
