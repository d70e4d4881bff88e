package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// DashboardController 后台首页统计与站点设置维护
type DashboardController struct {
	dashboardService service.DashboardService
	settingsService  service.SiteSettingsService
}

// NewDashboardController 构造函数
func NewDashboardController(dashboardService service.DashboardService, settingsService service.SiteSettingsService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		settingsService:  settingsService,
	}
}

// Stats 后台统计
// @Summary      后台首页统计
// @Description  已完成捐赠总额、文章数、待审核感言、未读留言、合作伙伴、订阅者，以及最近 5 条捐赠、留言与文章。
// @Tags         manage (后台)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.DashboardResponseWrapper "统计数据"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/manage/stats [get]
func (ctrl *DashboardController) Stats(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	stats, err := ctrl.dashboardService.Stats(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "获取统计数据")
		return
	}
	response.RespondSuccess(c, stats, "统计数据获取成功")
}

// UpdateSettings 更新站点设置
// @Summary      更新站点设置
// @Description  仅发布者可用。整体替换站点设置，保存成功后立即对公开接口生效。
// @Tags         manage (后台)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSiteSettingsRequest true "站点设置"
// @Success      200 {object} vo.SiteSettingsResponseWrapper "更新后的设置"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      403 {object} vo.BaseResponseWrapper "没有权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/manage/settings [put]
func (ctrl *DashboardController) UpdateSettings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateSiteSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := ctrl.settingsService.Update(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err, "更新站点设置")
		return
	}
	response.RespondSuccess(c, settings, "站点设置已更新")
}

// RegisterRoutes 注册后台统计与设置路由，group 需已挂载 StaffAuth
func (ctrl *DashboardController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/stats", ctrl.Stats)
	group.PUT("/settings", ctrl.UpdateSettings)
}
