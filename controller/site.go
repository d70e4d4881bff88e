package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// SiteController 公开页面的聚合数据
type SiteController struct {
	contentService  service.SiteContentService
	settingsService service.SiteSettingsService
}

// NewSiteController 构造函数
func NewSiteController(contentService service.SiteContentService, settingsService service.SiteSettingsService) *SiteController {
	return &SiteController{
		contentService:  contentService,
		settingsService: settingsService,
	}
}

// Home 首页
// @Summary      首页数据 (公开)
// @Description  推荐文章最多 3 篇、合作伙伴最多 4 个、推荐感言最多 3 条，以及站点设置。
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.HomeResponseWrapper "首页数据"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/home [get]
func (ctrl *SiteController) Home(c *gin.Context) {
	home, err := ctrl.contentService.Home(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取首页数据")
		return
	}
	response.RespondSuccess(c, home, "首页数据获取成功")
}

// Mission 使命页
// @Summary      使命页数据 (公开)
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.MissionResponseWrapper "使命页数据"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/mission [get]
func (ctrl *SiteController) Mission(c *gin.Context) {
	mission, err := ctrl.contentService.Mission(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取使命页数据")
		return
	}
	response.RespondSuccess(c, mission, "使命页数据获取成功")
}

// About 关于页
// @Summary      关于页数据 (公开)
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.AboutResponseWrapper "关于页数据"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/about [get]
func (ctrl *SiteController) About(c *gin.Context) {
	about, err := ctrl.contentService.About(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取关于页数据")
		return
	}
	response.RespondSuccess(c, about, "关于页数据获取成功")
}

// Partners 合作伙伴列表
// @Summary      合作伙伴列表 (公开)
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.PartnerListResponseWrapper "启用的合作伙伴"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/partners [get]
func (ctrl *SiteController) Partners(c *gin.Context) {
	partners, err := ctrl.contentService.Partners(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取合作伙伴")
		return
	}
	response.RespondSuccess(c, partners, "合作伙伴获取成功")
}

// Testimonials 感言列表
// @Summary      已审核感言列表 (公开)
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.TestimonialListResponseWrapper "已审核的感言"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/testimonials [get]
func (ctrl *SiteController) Testimonials(c *gin.Context) {
	list, err := ctrl.contentService.Testimonials(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取感言")
		return
	}
	response.RespondSuccess(c, list, "感言获取成功")
}

// Gallery 图库
// @Summary      图库 (公开)
// @Tags         site (站点)
// @Produce      json
// @Param        category query string false "分类" Enums(event, activity, team, impact, other)
// @Param        featured query bool false "只返回推荐图片"
// @Param        limit query int false "数量上限" minimum(1) maximum(100)
// @Success      200 {object} vo.GalleryListResponseWrapper "图库条目"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/gallery [get]
func (ctrl *SiteController) Gallery(c *gin.Context) {
	var query dto.GalleryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	items, err := ctrl.contentService.Gallery(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "获取图库")
		return
	}
	response.RespondSuccess(c, items, "图库获取成功")
}

// Settings 站点设置
// @Summary      站点设置 (公开)
// @Description  返回进程内缓存的站点设置，不访问数据库。
// @Tags         site (站点)
// @Produce      json
// @Success      200 {object} vo.SiteSettingsResponseWrapper "站点设置"
// @Router       /api/v1/site/settings [get]
func (ctrl *SiteController) Settings(c *gin.Context) {
	response.RespondSuccess(c, ctrl.settingsService.Current(), "站点设置获取成功")
}

// RegisterRoutes 注册公开页面路由
func (ctrl *SiteController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/home", ctrl.Home)
	group.GET("/mission", ctrl.Mission)
	group.GET("/about", ctrl.About)
	group.GET("/partners", ctrl.Partners)
	group.GET("/testimonials", ctrl.Testimonials)
	group.GET("/gallery", ctrl.Gallery)
	group.GET("/settings", ctrl.Settings)
}
