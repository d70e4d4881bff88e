package enums

// PostStatus 文章发布状态
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// IsValid 判断状态值是否属于已定义的三种状态
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// PostCategory 文章分类
type PostCategory string

const (
	CategoryNews   PostCategory = "news"
	CategoryBlog   PostCategory = "blog"
	CategoryEvent  PostCategory = "event"
	CategoryUpdate PostCategory = "update"
	CategoryImpact PostCategory = "impact"
)

var categoryDisplayNames = map[PostCategory]string{
	CategoryNews:   "News",
	CategoryBlog:   "Blog",
	CategoryEvent:  "Event",
	CategoryUpdate: "Update",
	CategoryImpact: "Impact Story",
}

// IsValid 判断分类是否合法
func (c PostCategory) IsValid() bool {
	_, ok := categoryDisplayNames[c]
	return ok
}

// DisplayName 返回前端展示用的分类名称，未知分类原样返回
func (c PostCategory) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}
