// Package workflow 实现文章发布状态机与两种角色的权限判断。
//
// 状态: draft -> published -> archived，archived 为终态。
// 发布者（publisher）可以做任何迁移与删除；作者（author）只能创建草稿并编辑自己文章的内容字段，
// 作者提交的 status / is_featured 会被静默忽略。
package workflow

import (
	"time"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// Actor 发起操作的后台账号
type Actor struct {
	AccountID uint64
	Role      enums.StaffRole
}

// IsPublisher 是否为发布者角色
func (a Actor) IsPublisher() bool {
	return a.Role == enums.RolePublisher
}

// allowedTransitions 迁移表，未列出的迁移一律拒绝
var allowedTransitions = map[enums.PostStatus]map[enums.PostStatus]bool{
	enums.PostStatusDraft: {
		enums.PostStatusPublished: true,
		enums.PostStatusArchived:  true,
	},
	enums.PostStatusPublished: {
		enums.PostStatusArchived: true,
		enums.PostStatusDraft:    true,
	},
}

// CanTransition 判断 from -> to 是否在迁移表中。from == to 不算迁移，返回 false。
func CanTransition(from, to enums.PostStatus) bool {
	return allowedTransitions[from][to]
}

// Content 文章的内容字段，作者与发布者都可以修改
type Content struct {
	Title           string
	Excerpt         string
	Content         string
	Category        enums.PostCategory
	MetaTitle       string
	MetaDescription string
	// FeaturedImage 为 nil 时保留原封面
	FeaturedImage *string
}

// Edit 一次编辑请求。Status 与 IsFeatured 为 nil 表示不修改，且只对发布者生效。
type Edit struct {
	Content    Content
	Status     *enums.PostStatus
	IsFeatured *bool
}

// StatusChange 描述一次编辑造成的状态变化
type StatusChange struct {
	From enums.PostStatus
	To   enums.PostStatus
}

// Changed 状态是否发生了变化
func (c StatusChange) Changed() bool {
	return c.From != c.To
}

// NewDraft 按创建规则初始化一篇文章：状态强制为 draft，作者为当前账号，
// 请求中携带的状态、推荐标记、发布时间、浏览量都不会被采纳。
func NewDraft(actor Actor, content Content, slug string) *entities.BlogPost {
	authorID := actor.AccountID
	post := &entities.BlogPost{
		Slug:     slug,
		AuthorID: &authorID,
		Status:   enums.PostStatusDraft,
	}
	applyContent(post, content)
	return post
}

// AuthorizeEdit 只有文章作者或发布者可以编辑
func AuthorizeEdit(actor Actor, post *entities.BlogPost) error {
	if actor.IsPublisher() || post.IsOwnedBy(actor.AccountID) {
		return nil
	}
	return myErrors.ErrPermissionDenied
}

// AuthorizeDelete 只有发布者可以删除文章
func AuthorizeDelete(actor Actor) error {
	if actor.IsPublisher() {
		return nil
	}
	return myErrors.ErrPermissionDenied
}

// ListScope 返回管理列表的作者过滤条件：发布者为 nil（全部），作者为自己的 ID
func ListScope(actor Actor) *uint64 {
	if actor.IsPublisher() {
		return nil
	}
	id := actor.AccountID
	return &id
}

// ApplyEdit 在校验全部通过后才修改 post；任何错误返回时 post 保持原样。
func ApplyEdit(actor Actor, post *entities.BlogPost, edit Edit, now time.Time) (StatusChange, error) {
	change := StatusChange{From: post.Status, To: post.Status}
	if err := AuthorizeEdit(actor, post); err != nil {
		return change, err
	}

	target := post.Status
	if actor.IsPublisher() && edit.Status != nil {
		target = *edit.Status
		if target != post.Status && !CanTransition(post.Status, target) {
			return change, myErrors.ErrInvalidTransition
		}
	}

	applyContent(post, edit.Content)
	if actor.IsPublisher() {
		if edit.IsFeatured != nil {
			post.IsFeatured = *edit.IsFeatured
		}
		moveTo(post, target, now)
	}
	change.To = post.Status
	return change, nil
}

// ChangeStatus 发布者直接修改状态（后台批量操作使用）。目标与当前相同视为成功的空操作。
func ChangeStatus(actor Actor, post *entities.BlogPost, to enums.PostStatus, now time.Time) (StatusChange, error) {
	change := StatusChange{From: post.Status, To: post.Status}
	if !actor.IsPublisher() {
		return change, myErrors.ErrPermissionDenied
	}
	if to == post.Status {
		return change, nil
	}
	if !CanTransition(post.Status, to) {
		return change, myErrors.ErrInvalidTransition
	}
	moveTo(post, to, now)
	change.To = to
	return change, nil
}

// SetFeatured 发布者修改推荐标记
func SetFeatured(actor Actor, post *entities.BlogPost, featured bool) error {
	if !actor.IsPublisher() {
		return myErrors.ErrPermissionDenied
	}
	post.IsFeatured = featured
	return nil
}

func moveTo(post *entities.BlogPost, to enums.PostStatus, now time.Time) {
	post.Status = to
	if to == enums.PostStatusPublished && post.PublishedAt == nil {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}
}

func applyContent(post *entities.BlogPost, c Content) {
	post.Title = c.Title
	post.Excerpt = c.Excerpt
	post.Content = c.Content
	post.Category = c.Category
	if post.Category == "" {
		post.Category = enums.CategoryBlog
	}
	post.MetaTitle = c.MetaTitle
	post.MetaDescription = c.MetaDescription
	if c.FeaturedImage != nil {
		post.FeaturedImage.String = *c.FeaturedImage
		post.FeaturedImage.Valid = *c.FeaturedImage != ""
	}
}
