package router

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/controller"
	"github.com/Xushengqwer/foundation_service/middleware"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Blog       *controller.BlogController
	Site       *controller.SiteController
	Forms      *controller.FormsController
	Auth       *controller.AuthController
	BlogManage *controller.BlogManageController
	Dashboard  *controller.DashboardController
}

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *appConfig.SiteConfig,
	staffAuth middleware.StaffAuthenticator,
	ctrls Controllers,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	controller.RegisterValidatorTagNames()

	// 使用 gin.New()，Recovery 与访问日志由下面的中间件负责
	router := gin.New()

	// 1. OTel，最先处理追踪上下文
	router.Use(otelgin.Middleware(constant.ServiceName))

	// 2. Panic Recovery
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))

	// 3. 访问日志，需要 TraceID
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(commonMiddleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}

	// 4. 超时控制，配置单位为秒
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 5. 网关透传的用户信息
	router.Use(commonMiddleware.UserContextMiddleware())

	logger.Debug("已注册全局中间件")

	v1 := router.Group("/api/v1/site")

	// 公开接口
	ctrls.Blog.RegisterRoutes(v1)
	ctrls.Site.RegisterRoutes(v1)
	ctrls.Forms.RegisterRoutes(v1)
	ctrls.Auth.RegisterRoutes(v1)

	// 后台接口，需要登录
	manage := v1.Group("/manage", middleware.StaffAuth(staffAuth, logger.Logger()))
	ctrls.BlogManage.RegisterRoutes(manage)
	ctrls.Dashboard.RegisterRoutes(manage)
	logger.Info("所有控制器路由已注册到 /api/v1/site 分组")

	// 访问 /swagger/index.html 查看接口文档
	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	logger.Info("Swagger UI endpoint registered at /swagger/*any")

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
