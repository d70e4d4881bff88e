package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// BlogListingResponseWrapper 对应 response.APIResponse[vo.BlogListingVO]
type BlogListingResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    BlogListingVO `json:"data"`
}

// BlogDetailResponseWrapper 对应 response.APIResponse[vo.BlogDetailVO]
type BlogDetailResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    BlogDetailVO `json:"data"`
}

// BlogPostListResponseWrapper 对应 response.APIResponse[[]vo.BlogPostVO]
type BlogPostListResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    []BlogPostVO `json:"data"`
}

// ManagePostResponseWrapper 对应 response.APIResponse[vo.ManagePostVO]
type ManagePostResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    ManagePostVO `json:"data"`
}

// ManagePostListResponseWrapper 对应 response.APIResponse[vo.ManagePostListVO]
type ManagePostListResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    ManagePostListVO `json:"data"`
}

// HomeResponseWrapper 对应 response.APIResponse[vo.HomeVO]
type HomeResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    HomeVO `json:"data"`
}

// MissionResponseWrapper 对应 response.APIResponse[vo.MissionVO]
type MissionResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    MissionVO `json:"data"`
}

// AboutResponseWrapper 对应 response.APIResponse[vo.AboutVO]
type AboutResponseWrapper struct {
	Code    int     `json:"code" example:"0"`
	Message string  `json:"message,omitempty" example:"success"`
	Data    AboutVO `json:"data"`
}

// PartnerListResponseWrapper 对应 response.APIResponse[[]vo.PartnerVO]
type PartnerListResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    []PartnerVO `json:"data"`
}

// TestimonialListResponseWrapper 对应 response.APIResponse[[]vo.TestimonialVO]
type TestimonialListResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    []TestimonialVO `json:"data"`
}

// GalleryListResponseWrapper 对应 response.APIResponse[[]vo.GalleryItemVO]
type GalleryListResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    []GalleryItemVO `json:"data"`
}

// SiteSettingsResponseWrapper 对应 response.APIResponse[vo.SiteSettingsVO]
type SiteSettingsResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    SiteSettingsVO `json:"data"`
}

// ContactReceiptResponseWrapper 对应 response.APIResponse[vo.ContactReceiptVO]
type ContactReceiptResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    ContactReceiptVO `json:"data"`
}

// TestimonialReceiptResponseWrapper 对应 response.APIResponse[vo.TestimonialReceiptVO]
type TestimonialReceiptResponseWrapper struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message,omitempty" example:"success"`
	Data    TestimonialReceiptVO `json:"data"`
}

// DonationReceiptResponseWrapper 对应 response.APIResponse[vo.DonationReceiptVO]
type DonationReceiptResponseWrapper struct {
	Code    int               `json:"code" example:"0"`
	Message string            `json:"message,omitempty" example:"success"`
	Data    DonationReceiptVO `json:"data"`
}

// NewsletterResponseWrapper 对应 response.APIResponse[vo.NewsletterVO]
type NewsletterResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    NewsletterVO `json:"data"`
}

// LoginResponseWrapper 对应 response.APIResponse[vo.LoginVO]
type LoginResponseWrapper struct {
	Code    int     `json:"code" example:"0"`
	Message string  `json:"message,omitempty" example:"success"`
	Data    LoginVO `json:"data"`
}

// DashboardResponseWrapper 对应 response.APIResponse[vo.DashboardVO]
type DashboardResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    DashboardVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}

// ValidationErrorData 参数校验失败时 data 字段的结构
type ValidationErrorData struct {
	Fields map[string]string `json:"fields"`
}

// ValidationErrorResponseWrapper 参数校验失败的响应，data.fields 为字段级错误信息
type ValidationErrorResponseWrapper struct {
	Code    int                 `json:"code" example:"40001"`
	Message string              `json:"message" example:"参数校验失败"`
	Data    ValidationErrorData `json:"data"`
}
