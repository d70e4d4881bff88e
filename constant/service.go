package constant

import "time"

// 服务元信息，用于链路追踪与日志
const (
	ServiceName    = "foundation-service"
	ServiceVersion = "1.0.0"
)

// COS 对象键前缀
const (
	COSObjectKeyPrefixPostImages        = "site/posts/"
	COSObjectKeyPrefixTestimonialImages = "site/testimonials/"
)

// 公开博客列表相关常量
const (
	// BlogListingPageSize 前端分页时每页展示的文章数量
	BlogListingPageSize = 3
	// BlogListingSectionLimit 博客区与新闻区各自最多返回的条数
	BlogListingSectionLimit = 10
	// RelatedPostsLimit 详情页相关文章数量
	RelatedPostsLimit = 3
	// ExcerptFallbackLength 摘要为空时从正文截取的字符数
	ExcerptFallbackLength = 150
	// DisplayDateLayout 前端展示日期格式，例如 "Dec 17, 2025"
	DisplayDateLayout = "Jan 02, 2006"
)

// 首页/关于/使命页面聚合数量
const (
	HomeFeaturedPostsLimit    = 3
	HomePartnersLimit         = 4
	HomeTestimonialsLimit     = 3
	MissionTestimonialsLimit  = 2
	MissionImpactGalleryLimit = 3
	AboutEventGalleryLimit    = 6
)

// 后台管理相关常量
const (
	DashboardRecentItemsLimit = 5
	DefaultManagePageSize     = 20
	MaxManagePageSize         = 100
	DefaultStaffTokenTTL      = 12 * time.Hour
	AdminActionHandleTimeout  = 10 * time.Second
)

// 热门文章排行榜
const (
	DefaultPopularPostsLimit    = 5
	DefaultPopularPostsRankSize = 100
	DefaultPopularPostsCronSpec = "@every 10m"
	PopularPostsRebuildTimeout  = 2 * time.Minute
)

// 捐赠与站点默认值
const (
	DefaultDonationReceiptPrefix = "AJIF"
	DefaultDonationCurrency      = "PKR"
	DefaultKafkaConsumerGroupID  = "foundation_service_group"
)

// SiteSettingsSingletonID 站点设置单例行的固定主键
const SiteSettingsSingletonID uint = 1
