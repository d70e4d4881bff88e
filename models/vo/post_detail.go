package vo

import (
	"github.com/Xushengqwer/foundation_service/seeddata"
)

// BlogDetailVO 文章详情页响应
// - RelatedPosts 为同分类的其他已发布文章，最多 3 篇
type BlogDetailVO struct {
	Post         BlogPostVO   `json:"post"`
	RelatedPosts []BlogPostVO `json:"related_posts"`
	FromSeed     bool         `json:"from_seed"`
}

// NewSeedPostVO 将内置示例文章转换为前台结构
func NewSeedPostVO(p seeddata.Post, withContent bool) BlogPostVO {
	v := BlogPostVO{
		ID:       uint64(p.ID),
		Slug:     p.Slug,
		Title:    p.Title,
		Category: p.Category,
		Date:     p.Date,
		Author:   p.Author,
		Image:    p.Image,
		Excerpt:  ExcerptOf(p.Excerpt, p.Content),
	}
	if withContent {
		v.Content = p.Content
	}
	return v
}

// MapSeedPosts 批量转换示例文章（不含正文）
func MapSeedPosts(posts []seeddata.Post) []BlogPostVO {
	out := make([]BlogPostVO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewSeedPostVO(p, false))
	}
	return out
}
