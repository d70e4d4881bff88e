package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// AuthController 后台账号登录
type AuthController struct {
	authService service.AuthService
}

// NewAuthController 构造函数
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 后台登录
// @Summary      后台账号登录
// @Description  只有启用且具有角色的账号可以登录。返回的令牌通过 Authorization: Bearer <token> 访问 /manage 接口。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "用户名与密码"
// @Success      200 {object} vo.LoginResponseWrapper "登录成功"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      401 {object} vo.BaseResponseWrapper "用户名或密码错误"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	login, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "登录")
		return
	}
	response.RespondSuccess(c, login, "登录成功")
}

// RegisterRoutes 注册认证路由
func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/auth/login", ctrl.Login)
}
