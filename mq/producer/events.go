package producer

import "time"

// 文章生命周期事件类型
const (
	EventPostPublished = "post.published"
	EventPostArchived  = "post.archived"
	EventPostDeleted   = "post.deleted"
)

// 公开表单事件类型
const (
	EventTestimonialSubmitted = "testimonial.submitted"
	EventContactReceived      = "contact.received"
	EventDonationRecorded     = "donation.recorded"
	EventNewsletterSubscribed = "newsletter.subscribed"
)

// PostSnapshot 事件中携带的文章快照
type PostSnapshot struct {
	ID          uint64     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ContentEvent 发往 contentEvents 主题
type ContentEvent struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Post      PostSnapshot `json:"post"`
	ActorID   uint64       `json:"actor_id,omitempty"`
}

// EngagementEvent 发往 engagementEvents 主题
type EngagementEvent struct {
	EventID   string                 `json:"event_id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	EntityID  uint64                 `json:"entity_id"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}
