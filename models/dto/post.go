package dto

import (
	"github.com/Xushengqwer/foundation_service/models/enums"
)

// CreatePostRequest 后台创建文章的请求数据结构
// - 支持 JSON 或 multipart/form-data；封面图通过 multipart 的 featured_image 文件字段上传
// - 请求中不接受 status / is_featured：新文章一律为草稿
type CreatePostRequest struct {
	Title           string             `json:"title" form:"title" binding:"required,max=200"`
	Slug            string             `json:"slug" form:"slug" binding:"omitempty,max=200"` // 为空时由标题生成
	Category        enums.PostCategory `json:"category" form:"category" binding:"omitempty,oneof=news blog event update impact"`
	Excerpt         string             `json:"excerpt" form:"excerpt" binding:"omitempty,max=500"`
	Content         string             `json:"content" form:"content" binding:"required"`
	MetaTitle       string             `json:"meta_title" form:"meta_title" binding:"omitempty,max=200"`
	MetaDescription string             `json:"meta_description" form:"meta_description" binding:"omitempty,max=300"`
}

// UpdatePostRequest 后台编辑文章的请求数据结构。内容字段整体替换。
// Status 和 IsFeatured 只对发布者生效，作者提交时被忽略；不传表示保持原值。
type UpdatePostRequest struct {
	Title           string             `json:"title" form:"title" binding:"required,max=200"`
	Category        enums.PostCategory `json:"category" form:"category" binding:"omitempty,oneof=news blog event update impact"`
	Excerpt         string             `json:"excerpt" form:"excerpt" binding:"omitempty,max=500"`
	Content         string             `json:"content" form:"content" binding:"required"`
	MetaTitle       string             `json:"meta_title" form:"meta_title" binding:"omitempty,max=200"`
	MetaDescription string             `json:"meta_description" form:"meta_description" binding:"omitempty,max=300"`
	Status          *enums.PostStatus  `json:"status,omitempty" form:"status" binding:"omitempty,oneof=draft published archived"`
	IsFeatured      *bool              `json:"is_featured,omitempty" form:"is_featured"`
}

// BlogListQuery 公开博客列表的查询参数
type BlogListQuery struct {
	Q        string             `form:"q" binding:"omitempty,max=200"`
	Category enums.PostCategory `form:"category" binding:"omitempty,oneof=news blog event update impact"`
}

// ManagePostListRequest 后台文章列表的查询参数
type ManagePostListRequest struct {
	Status   *enums.PostStatus `form:"status" binding:"omitempty,oneof=draft published archived"`
	Page     int               `form:"page" binding:"omitempty,gte=1"`
	PageSize int               `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// Normalize 填充分页默认值并限制每页上限
func (r *ManagePostListRequest) Normalize(defaultSize, maxSize int) {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = defaultSize
	}
	if r.PageSize > maxSize {
		r.PageSize = maxSize
	}
}

// GetOffset 计算分页偏移量
func (r *ManagePostListRequest) GetOffset() int {
	if r.Page <= 0 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}

// PublishedPostFilter 在 Service 层和 Repo 层之间传递的已发布文章查询条件
type PublishedPostFilter struct {
	// Search 对标题、正文、摘要做子串匹配
	Search string
	// Category 只返回该分类
	Category *enums.PostCategory
	// ExcludeCategory 排除该分类
	ExcludeCategory *enums.PostCategory
	FeaturedOnly    bool
	// ExcludeID 排除某篇文章（相关文章推荐使用）
	ExcludeID *uint64
	Limit     int
}

// ManagePostFilter 后台文章列表在 Repo 层的查询条件
type ManagePostFilter struct {
	// AuthorID 为 nil 表示不限作者（发布者视角）
	AuthorID *uint64
	Status   *enums.PostStatus
	Offset   int
	Limit    int
}
