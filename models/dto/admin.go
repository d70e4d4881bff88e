package dto

// 后台批量操作消息中的实体类型
const (
	AdminEntityBlogPost       = "blog_post"
	AdminEntityTestimonial    = "testimonial"
	AdminEntityContactMessage = "contact_message"
	AdminEntityDonation       = "donation"
	AdminEntityPartner        = "partner"
)

// 后台批量操作消息中的动作
const (
	AdminActionPublish       = "publish"
	AdminActionArchive       = "archive"
	AdminActionDraft         = "draft"
	AdminActionFeature       = "feature"
	AdminActionUnfeature     = "unfeature"
	AdminActionApprove       = "approve"
	AdminActionUnapprove     = "unapprove"
	AdminActionMarkRead      = "mark_read"
	AdminActionMarkResponded = "mark_responded"
	AdminActionComplete      = "complete"
	AdminActionFail          = "fail"
	AdminActionRefund        = "refund"
	AdminActionDelete        = "delete"
)

// AdminActionMessage 管理后台通过 Kafka 下发的批量操作
type AdminActionMessage struct {
	EventID string   `json:"event_id"`
	Entity  string   `json:"entity"`
	Action  string   `json:"action"`
	IDs     []uint64 `json:"ids"`
	// ActorID 发起操作的后台账号，博客文章相关操作必须是发布者
	ActorID uint64 `json:"actor_id"`
}
