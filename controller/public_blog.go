package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// BlogController 公开博客接口
type BlogController struct {
	blogService service.BlogPublicService
}

// NewBlogController 构造函数
func NewBlogController(blogService service.BlogPublicService) *BlogController {
	return &BlogController{blogService: blogService}
}

// ListBlogs 博客列表
// @Summary      博客列表 (公开)
// @Description  返回非新闻类与新闻类已发布文章各最多 10 篇。数据库中没有任何文章时返回内置示例文章 (from_seed=true)，此时搜索与分类参数不生效。
// @Tags         blogs (博客)
// @Produce      json
// @Param        q query string false "按标题、摘要、正文搜索" maxLength(200)
// @Param        category query string false "分类" Enums(news, blog, event, update, impact)
// @Success      200 {object} vo.BlogListingResponseWrapper "博客列表"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/blogs [get]
func (ctrl *BlogController) ListBlogs(c *gin.Context) {
	var query dto.BlogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	listing, err := ctrl.blogService.ListBlogs(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "获取博客列表")
		return
	}
	response.RespondSuccess(c, listing, "博客列表获取成功")
}

// LatestBlog 最新文章
// @Summary      最新发布的文章 (公开)
// @Description  返回最新发布的一篇文章及其相关文章，不增加浏览量。
// @Tags         blogs (博客)
// @Produce      json
// @Success      200 {object} vo.BlogDetailResponseWrapper "最新文章"
// @Failure      404 {object} vo.BaseResponseWrapper "还没有已发布的文章"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/blogs/latest [get]
func (ctrl *BlogController) LatestBlog(c *gin.Context) {
	detail, err := ctrl.blogService.LatestBlog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取最新文章")
		return
	}
	response.RespondSuccess(c, detail, "最新文章获取成功")
}

// PopularBlogs 热门文章
// @Summary      热门文章 (公开)
// @Description  按浏览量排序的已发布文章。
// @Tags         blogs (博客)
// @Produce      json
// @Param        limit query int false "数量，默认 5" minimum(1) maximum(50)
// @Success      200 {object} vo.BlogPostListResponseWrapper "热门文章"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的 limit"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/blogs/popular [get]
func (ctrl *BlogController) PopularBlogs(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 50 {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 limit，必须是 1-50 的整数")
			return
		}
		limit = n
	}
	posts, err := ctrl.blogService.PopularBlogs(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "获取热门文章")
		return
	}
	response.RespondSuccess(c, posts, "热门文章获取成功")
}

// GetBlogDetail 文章详情
// @Summary      文章详情 (公开)
// @Description  按 slug 获取已发布文章，每次访问浏览量加一。草稿、归档与不存在的 slug 返回 404。
// @Tags         blogs (博客)
// @Produce      json
// @Param        slug path string true "文章 slug"
// @Success      200 {object} vo.BlogDetailResponseWrapper "文章详情"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/blogs/{slug} [get]
func (ctrl *BlogController) GetBlogDetail(c *gin.Context) {
	detail, err := ctrl.blogService.GetBlogDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "获取文章详情")
		return
	}
	response.RespondSuccess(c, detail, "文章详情获取成功")
}

// RegisterRoutes 注册公开博客路由
func (ctrl *BlogController) RegisterRoutes(group *gin.RouterGroup) {
	blogs := group.Group("/blogs")
	{
		blogs.GET("", ctrl.ListBlogs)
		blogs.GET("/latest", ctrl.LatestBlog)
		blogs.GET("/popular", ctrl.PopularBlogs)
		blogs.GET("/:slug", ctrl.GetBlogDetail)
	}
}
