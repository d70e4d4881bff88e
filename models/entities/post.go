package entities

import (
	"database/sql"
	"time"

	"github.com/Xushengqwer/foundation_service/models/enums"
)

// BlogPost 博客/新闻文章
// - 表名: blog_posts
// - 作者账号被删除时 author_id 置空，文章本身保留
type BlogPost struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// 标题，最大 200 字符
	Title string `gorm:"type:varchar(200);not null"`

	// URL 标识，唯一且非空；创建时未提供则由标题生成，创建后不再修改
	Slug string `gorm:"type:varchar(200);not null;uniqueIndex"`

	// 作者账号 ID，可为 NULL
	AuthorID *uint64       `gorm:"index"`
	Author   *StaffAccount `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`

	Category enums.PostCategory `gorm:"type:varchar(20);not null;default:blog;index"`

	// 摘要，为空时展示层从正文截取
	Excerpt string `gorm:"type:varchar(500)"`
	Content string `gorm:"type:text;not null"`

	// 封面图的对象存储路径/URL
	FeaturedImage sql.NullString `gorm:"type:varchar(1024)"`

	// SEO
	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:varchar(300)"`

	Status     enums.PostStatus `gorm:"type:varchar(20);not null;default:draft;index"`
	IsFeatured bool             `gorm:"not null"`

	// 首次进入 published 时写入，之后任何编辑都不会清空或覆盖
	PublishedAt *time.Time `gorm:"index"`

	// 浏览量，只增不减
	ViewCount int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// IsOwnedBy 判断文章作者是否为指定账号
func (p *BlogPost) IsOwnedBy(accountID uint64) bool {
	return p.AuthorID != nil && *p.AuthorID == accountID
}
