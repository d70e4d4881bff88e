package vo

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
)

// PartnerVO 合作伙伴
type PartnerVO struct {
	ID               uint64   `json:"id"`
	Name             string   `json:"name"`
	Logo             string   `json:"logo"`
	Description      string   `json:"description"`
	MissionStatement string   `json:"mission_statement"`
	Website          string   `json:"website"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	FacebookURL      string   `json:"facebook_url"`
	TwitterURL       string   `json:"twitter_url"`
	InstagramURL     string   `json:"instagram_url"`
	YoutubeURL       string   `json:"youtube_url"`
	FeaturedImage    string   `json:"featured_image"`
	GalleryImages    []string `json:"gallery_images"`
}

// TestimonialVO 已审核的感言
type TestimonialVO struct {
	ID              uint64                `json:"id"`
	Name            string                `json:"name"`
	Organization    string                `json:"organization"`
	TestimonialType enums.TestimonialType `json:"testimonial_type"`
	Content         string                `json:"content"`
	Image           string                `json:"image"`
	IsFeatured      bool                  `json:"is_featured"`
}

// GalleryItemVO 图库条目
type GalleryItemVO struct {
	ID          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Category    enums.GalleryCategory `json:"category"`
	PartnerID   *uint64               `json:"partner_id"`
	BlogPostID  *uint64               `json:"blog_post_id"`
	IsFeatured  bool                  `json:"is_featured"`
}

// SiteSettingsVO 全站设置
type SiteSettingsVO struct {
	SiteName          string    `json:"site_name"`
	Tagline           string    `json:"tagline"`
	ContactEmail      string    `json:"contact_email"`
	ContactPhone      string    `json:"contact_phone"`
	Address           string    `json:"address"`
	FacebookURL       string    `json:"facebook_url"`
	TwitterURL        string    `json:"twitter_url"`
	InstagramURL      string    `json:"instagram_url"`
	LinkedinURL       string    `json:"linkedin_url"`
	YoutubeURL        string    `json:"youtube_url"`
	MetaDescription   string    `json:"meta_description"`
	MetaKeywords      string    `json:"meta_keywords"`
	GoogleAnalyticsID string    `json:"google_analytics_id"`
	FooterText        string    `json:"footer_text"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HomeVO 首页聚合数据
type HomeVO struct {
	FeaturedPosts []BlogPostVO    `json:"featured_posts"`
	Partners      []PartnerVO     `json:"partners"`
	Testimonials  []TestimonialVO `json:"testimonials"`
	Settings      SiteSettingsVO  `json:"settings"`
}

// MissionVO 使命页聚合数据
type MissionVO struct {
	Testimonials  []TestimonialVO `json:"testimonials"`
	ImpactGallery []GalleryItemVO `json:"impact_gallery"`
}

// AboutVO 关于页聚合数据
type AboutVO struct {
	Partners     []PartnerVO     `json:"partners"`
	EventGallery []GalleryItemVO `json:"event_gallery"`
}

// ContactReceiptVO 联系表单提交结果
type ContactReceiptVO struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// TestimonialReceiptVO 感言提交结果，提交后待审核
type TestimonialReceiptVO struct {
	ID         uint64 `json:"id"`
	IsApproved bool   `json:"is_approved"`
}

// DonationReceiptVO 捐赠登记结果
type DonationReceiptVO struct {
	ID            uint64              `json:"id"`
	ReceiptNumber string              `json:"receipt_number"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewsletterVO 订阅/退订结果。重复订阅时 AlreadySubscribed 为 true。
type NewsletterVO struct {
	Email             string `json:"email"`
	AlreadySubscribed bool   `json:"already_subscribed"`
}

// StaffAccountVO 后台账号
type StaffAccountVO struct {
	ID          uint64          `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	Role        enums.StaffRole `json:"role"`
}

// LoginVO 登录成功返回的令牌
type LoginVO struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   StaffAccountVO `json:"account"`
}

// DonationSummaryVO 后台统计中的最近捐赠
type DonationSummaryVO struct {
	ID            uint64              `json:"id"`
	DonorName     string              `json:"donor_name"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	ReceiptNumber string              `json:"receipt_number"`
	CreatedAt     time.Time           `json:"created_at"`
}

// MessageSummaryVO 后台统计中的最近留言
type MessageSummaryVO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Subject     string            `json:"subject"`
	InquiryType enums.InquiryType `json:"inquiry_type"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DashboardVO 后台首页统计
type DashboardVO struct {
	TotalDonations      float64             `json:"total_donations"`
	TotalPosts          int64               `json:"total_posts"`
	PendingTestimonials int64               `json:"pending_testimonials"`
	UnreadMessages      int64               `json:"unread_messages"`
	ActivePartners      int64               `json:"active_partners"`
	ActiveSubscribers   int64               `json:"active_subscribers"`
	RecentDonations     []DonationSummaryVO `json:"recent_donations"`
	RecentMessages      []MessageSummaryVO  `json:"recent_messages"`
	RecentPosts         []ManagePostVO      `json:"recent_posts"`
}

// NewPartnerVO 转换合作伙伴
func NewPartnerVO(p *entities.Partner) PartnerVO {
	images := []string(p.GalleryImages)
	if images == nil {
		images = []string{}
	}
	return PartnerVO{
		ID:               p.ID,
		Name:             p.Name,
		Logo:             p.Logo,
		Description:      p.Description,
		MissionStatement: p.MissionStatement,
		Website:          p.Website,
		Email:            p.Email,
		Phone:            p.Phone,
		FacebookURL:      p.FacebookURL,
		TwitterURL:       p.TwitterURL,
		InstagramURL:     p.InstagramURL,
		YoutubeURL:       p.YoutubeURL,
		FeaturedImage:    p.FeaturedImage,
		GalleryImages:    images,
	}
}

// MapPartners 批量转换合作伙伴
func MapPartners(ps []*entities.Partner) []PartnerVO {
	out := make([]PartnerVO, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPartnerVO(p))
	}
	return out
}

// MapTestimonials 批量转换感言
func MapTestimonials(ts []*entities.Testimonial) []TestimonialVO {
	out := make([]TestimonialVO, 0, len(ts))
	for _, t := range ts {
		out = append(out, TestimonialVO{
			ID:              t.ID,
			Name:            t.Name,
			Organization:    t.Organization,
			TestimonialType: t.TestimonialType,
			Content:         t.Content,
			Image:           t.Image,
			IsFeatured:      t.IsFeatured,
		})
	}
	return out
}

// MapGalleryItems 批量转换图库条目
func MapGalleryItems(items []*entities.GalleryItem) []GalleryItemVO {
	out := make([]GalleryItemVO, 0, len(items))
	for _, g := range items {
		out = append(out, GalleryItemVO{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Image:       g.Image,
			Category:    g.Category,
			PartnerID:   g.PartnerID,
			BlogPostID:  g.BlogPostID,
			IsFeatured:  g.IsFeatured,
		})
	}
	return out
}

// NewSiteSettingsVO 转换全站设置
func NewSiteSettingsVO(s *entities.SiteSettings) SiteSettingsVO {
	return SiteSettingsVO{
		SiteName:          s.SiteName,
		Tagline:           s.Tagline,
		ContactEmail:      s.ContactEmail,
		ContactPhone:      s.ContactPhone,
		Address:           s.Address,
		FacebookURL:       s.FacebookURL,
		TwitterURL:        s.TwitterURL,
		InstagramURL:      s.InstagramURL,
		LinkedinURL:       s.LinkedinURL,
		YoutubeURL:        s.YoutubeURL,
		MetaDescription:   s.MetaDescription,
		MetaKeywords:      s.MetaKeywords,
		GoogleAnalyticsID: s.GoogleAnalyticsID,
		FooterText:        s.FooterText,
		UpdatedAt:         s.UpdatedAt,
	}
}

// NewStaffAccountVO 转换后台账号
func NewStaffAccountVO(a *entities.StaffAccount) StaffAccountVO {
	return StaffAccountVO{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		Role:        a.Role,
	}
}
