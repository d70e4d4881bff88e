package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// BlogManageController 后台文章管理，所有接口都需要登录
type BlogManageController struct {
	manageService service.BlogManageService
}

// NewBlogManageController 构造函数
func NewBlogManageController(manageService service.BlogManageService) *BlogManageController {
	return &BlogManageController{manageService: manageService}
}

// ListPosts 后台文章列表
// @Summary      后台文章列表
// @Description  发布者看到全部文章，作者只看到自己的文章。
// @Tags         manage-posts (后台-文章)
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态" Enums(draft, published, archived)
// @Param        page query int false "页码，从 1 开始" minimum(1) default(1)
// @Param        page_size query int false "每页数量" minimum(1) maximum(100) default(20)
// @Success      200 {object} vo.ManagePostListResponseWrapper "文章列表"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "无效的查询参数"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/manage/posts [get]
func (ctrl *BlogManageController) ListPosts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ManagePostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	list, err := ctrl.manageService.ListPosts(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "获取文章列表")
		return
	}
	response.RespondSuccess(c, list, "文章列表获取成功")
}

// CreatePost 创建文章
// @Summary      创建文章
// @Description  新文章一律为草稿，作者为当前账号。slug 为空时由标题生成，已被占用返回 409。支持 JSON 或 multipart（featured_image 为封面图文件）。
// @Tags         manage-posts (后台-文章)
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePostRequest true "文章内容"
// @Param        featured_image formData file false "封面图"
// @Success      200 {object} vo.ManagePostResponseWrapper "文章已创建"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/manage/posts [post]
func (ctrl *BlogManageController) CreatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	post, err := ctrl.manageService.CreatePost(c.Request.Context(), actor, &req, optionalFile(c, "featured_image"))
	if err != nil {
		respondServiceError(c, err, "创建文章")
		return
	}
	response.RespondSuccess(c, post, "文章创建成功")
}

// GetPost 获取单篇文章
// @Summary      获取文章（任意状态）
// @Description  作者只能查看自己的文章。
// @Tags         manage-posts (后台-文章)
// @Produce      json
// @Security     BearerAuth
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.ManagePostResponseWrapper "文章"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的 ID"
// @Failure      403 {object} vo.BaseResponseWrapper "没有权限"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/site/manage/posts/{id} [get]
func (ctrl *BlogManageController) GetPost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := ctrl.manageService.GetPost(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "查看文章")
		return
	}
	response.RespondSuccess(c, post, "文章获取成功")
}

// UpdatePost 编辑文章
// @Summary      编辑文章
// @Description  内容字段整体替换。status / is_featured 只对发布者生效，作者提交时被忽略。非法状态迁移返回 409，文章保持不变。
// @Tags         manage-posts (后台-文章)
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path uint64 true "文章 ID"
// @Param        request body dto.UpdatePostRequest true "文章内容"
// @Param        featured_image formData file false "新的封面图"
// @Success      200 {object} vo.ManagePostResponseWrapper "文章已更新"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      403 {object} vo.BaseResponseWrapper "没有权限"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "不允许的状态变更"
// @Router       /api/v1/site/manage/posts/{id} [put]
func (ctrl *BlogManageController) UpdatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	post, err := ctrl.manageService.UpdatePost(c.Request.Context(), actor, id, &req, optionalFile(c, "featured_image"))
	if err != nil {
		respondServiceError(c, err, "编辑文章")
		return
	}
	response.RespondSuccess(c, post, "文章更新成功")
}

// DeletePost 删除文章
// @Summary      删除文章
// @Description  仅发布者可用，作者调用返回 403。
// @Tags         manage-posts (后台-文章)
// @Produce      json
// @Security     BearerAuth
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.BaseResponseWrapper "文章已删除"
// @Failure      403 {object} vo.BaseResponseWrapper "没有权限"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/site/manage/posts/{id} [delete]
func (ctrl *BlogManageController) DeletePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.manageService.DeletePost(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "删除文章")
		return
	}
	response.RespondSuccess[any](c, nil, "文章删除成功")
}

// RegisterRoutes 注册后台文章路由，group 需已挂载 StaffAuth
func (ctrl *BlogManageController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.GET("", ctrl.ListPosts)
		posts.POST("", ctrl.CreatePost)
		posts.GET("/:id", ctrl.GetPost)
		posts.PUT("/:id", ctrl.UpdatePost)
		posts.DELETE("/:id", ctrl.DeletePost)
	}
}
