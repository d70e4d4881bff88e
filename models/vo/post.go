package vo

import (
	"time"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
)

// BlogPostVO 前台展示用的文章结构，数据库文章与内置示例文章共用
type BlogPostVO struct {
	ID          uint64 `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category"`               // 展示名称，如 "Impact Story"
	CategoryKey string `json:"category_key,omitempty"` // 原始分类值，示例文章为空
	Date        string `json:"date"`
	Author      string `json:"author"`
	Image       string `json:"image"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content,omitempty"`
	ViewCount   int64  `json:"view_count"`
	IsFeatured  bool   `json:"is_featured"`
}

// BlogListingVO 博客列表页响应
// - 客户端按 PageSize 对 BlogPosts 分页，TotalPages 至少为 1
// - FromSeed 为 true 表示数据库为空，返回的是内置示例文章，此时搜索与分类参数不生效
type BlogListingVO struct {
	BlogPosts  []BlogPostVO `json:"blog_posts"`
	NewsPosts  []BlogPostVO `json:"news_posts"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Query      string       `json:"query"`
	Category   string       `json:"category"`
	FromSeed   bool         `json:"from_seed"`
}

// ExcerptOf 摘要为空时取正文前 150 个字符并追加 "..."
func ExcerptOf(excerpt, content string) string {
	if excerpt != "" {
		return excerpt
	}
	runes := []rune(content)
	if len(runes) > constant.ExcerptFallbackLength {
		runes = runes[:constant.ExcerptFallbackLength]
	}
	return string(runes) + "..."
}

// FormatDisplayDate 格式化展示日期，nil 返回空串
func FormatDisplayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constant.DisplayDateLayout)
}

// AuthorName 返回作者展示名，账号已删除时返回空串
func AuthorName(a *entities.StaffAccount) string {
	if a == nil {
		return ""
	}
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Username
}

// NewBlogPostVO 将数据库文章转换为前台结构。
// imageFor 在文章没有封面时提供兜底图片，index 为文章在当前列表中的序号。
func NewBlogPostVO(post *entities.BlogPost, index int, withContent bool, imageFor func(slug string, index int) string) BlogPostVO {
	image := post.FeaturedImage.String
	if !post.FeaturedImage.Valid || image == "" {
		image = imageFor(post.Slug, index)
	}
	date := post.PublishedAt
	if date == nil {
		date = &post.CreatedAt
	}
	v := BlogPostVO{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Category:    post.Category.DisplayName(),
		CategoryKey: string(post.Category),
		Date:        FormatDisplayDate(date),
		Author:      AuthorName(post.Author),
		Image:       image,
		Excerpt:     ExcerptOf(post.Excerpt, post.Content),
		ViewCount:   post.ViewCount,
		IsFeatured:  post.IsFeatured,
	}
	if withContent {
		v.Content = post.Content
	}
	return v
}

// MapBlogPosts 批量转换，返回空切片而不是 nil，便于前端处理
func MapBlogPosts(posts []*entities.BlogPost, imageFor func(slug string, index int) string) []BlogPostVO {
	out := make([]BlogPostVO, 0, len(posts))
	for i, p := range posts {
		if p == nil {
			continue
		}
		out = append(out, NewBlogPostVO(p, i, false, imageFor))
	}
	return out
}

// ManagePostVO 后台文章结构，包含状态与 SEO 字段
type ManagePostVO struct {
	ID              uint64             `json:"id"`
	Slug            string             `json:"slug"`
	Title           string             `json:"title"`
	Category        enums.PostCategory `json:"category"`
	Status          enums.PostStatus   `json:"status"`
	IsFeatured      bool               `json:"is_featured"`
	Excerpt         string             `json:"excerpt"`
	Content         string             `json:"content"`
	FeaturedImage   *string            `json:"featured_image"`
	MetaTitle       string             `json:"meta_title"`
	MetaDescription string             `json:"meta_description"`
	AuthorID        *uint64            `json:"author_id"`
	AuthorName      string             `json:"author_name"`
	PublishedAt     *time.Time         `json:"published_at"`
	ViewCount       int64              `json:"view_count"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ManagePostListVO 后台文章分页列表
type ManagePostListVO struct {
	Posts    []ManagePostVO `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// NewManagePostVO 转换为后台结构
func NewManagePostVO(post *entities.BlogPost) ManagePostVO {
	var image *string
	if post.FeaturedImage.Valid {
		s := post.FeaturedImage.String
		image = &s
	}
	return ManagePostVO{
		ID:              post.ID,
		Slug:            post.Slug,
		Title:           post.Title,
		Category:        post.Category,
		Status:          post.Status,
		IsFeatured:      post.IsFeatured,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		FeaturedImage:   image,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		AuthorID:        post.AuthorID,
		AuthorName:      AuthorName(post.Author),
		PublishedAt:     post.PublishedAt,
		ViewCount:       post.ViewCount,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}
