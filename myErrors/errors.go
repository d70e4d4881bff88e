package myErrors

import "errors"

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// 文章发布流程相关错误
var (
	// ErrPermissionDenied 当前操作者无权执行该操作（非作者编辑、非发布者删除等）
	ErrPermissionDenied = errors.New("workflow: permission denied")
	// ErrInvalidTransition 状态迁移不在允许的迁移表中（例如从 archived 迁出）
	ErrInvalidTransition = errors.New("workflow: invalid status transition")
	// ErrSlugTaken slug 已被其他文章占用
	ErrSlugTaken = errors.New("post: slug already taken")
	// ErrInvalidSlug 无法从标题或传入值得到非空 slug
	ErrInvalidSlug = errors.New("post: slug is empty after normalization")
)

// 表单与站点相关错误
var (
	// ErrAlreadySubscribed 邮箱已处于订阅状态
	ErrAlreadySubscribed = errors.New("newsletter: already subscribed")
	// ErrSingletonDelete 站点设置为单例记录，不允许删除
	ErrSingletonDelete = errors.New("settings: singleton row cannot be deleted")
	// ErrAssetStorageDisabled 未配置对象存储时上传图片
	ErrAssetStorageDisabled = errors.New("asset: object storage is not configured")
	// ErrUploadTooLarge 上传的图片超过大小上限
	ErrUploadTooLarge = errors.New("asset: upload exceeds size limit")
	// ErrInvalidPartner 捐赠关联的合作伙伴不存在或未启用
	ErrInvalidPartner = errors.New("donation: partner not found or inactive")
	// ErrUnsupportedAdminAction 后台批量操作的实体或动作不受支持
	ErrUnsupportedAdminAction = errors.New("admin: unsupported entity or action")
)

// 认证相关错误
var (
	// ErrInvalidCredentials 用户名或密码错误，或账号被停用
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidToken JWT 缺失、过期或签名无效
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrAccountExists 创建账号时用户名已存在
	ErrAccountExists = errors.New("auth: account already exists")
)
