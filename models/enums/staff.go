package enums

// StaffRole 后台账号角色。只有两种角色，不做通用 RBAC。
type StaffRole string

const (
	// RolePublisher 发布者：可以创建、编辑、删除、发布任意文章
	RolePublisher StaffRole = "publisher"
	// RoleAuthor 作者：只能创建草稿并编辑自己文章的内容字段
	RoleAuthor StaffRole = "author"
)

func (r StaffRole) IsValid() bool {
	return r == RolePublisher || r == RoleAuthor
}
