package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/controller"
	"github.com/Xushengqwer/foundation_service/dependencies"
	_ "github.com/Xushengqwer/foundation_service/docs"
	"github.com/Xushengqwer/foundation_service/mq/consumer"
	"github.com/Xushengqwer/foundation_service/mq/producer"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/foundation_service/repo/redis"
	"github.com/Xushengqwer/foundation_service/router"
	"github.com/Xushengqwer/foundation_service/seeddata"
	"github.com/Xushengqwer/foundation_service/service"
	"github.com/Xushengqwer/foundation_service/tasks"
)

// @title           Foundation Site API
// @version         1.0
// @description     基金会官网服务，提供博客、站点内容、表单提交与后台管理接口。
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// .env 只在本地开发时存在
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: 读取 .env 失败: %v", err)
	}

	// 1. 加载配置
	var cfg appConfig.SiteConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}
	cfg.ApplyEnvOverrides()
	if cfg.AuthConfig.JWTSecret == "" {
		log.Fatalf("FATAL: 未配置后台登录密钥 (authConfig.jwtSecret 或 %s)", appConfig.EnvJWTSecret)
	}

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	baseLogger := logger.Logger()
	logger.Info("Logger 初始化成功")

	// 内置示例文章有问题时直接拒绝启动
	if err := seeddata.Validate(); err != nil {
		logger.Fatal("内置示例文章数据无效", zap.Error(err))
	}

	// 3. 初始化 TracerProvider
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := sharedTracing.InitTracerProvider(
			constant.ServiceName,
			constant.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// --- 4. 初始化核心依赖 ---
	db, dbErr := dependencies.InitDatabase(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化数据库失败", zap.Error(dbErr))
	}
	logger.Info("数据库连接成功")

	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}

	cosClient, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Fatal("初始化 COS 客户端失败", zap.Error(cosErr))
	}

	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, baseLogger)
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，领域事件将不会发送")
	}

	// --- 5. 初始化数据仓库层 ---
	postRepo := mysql.NewBlogPostRepository(db, baseLogger)
	accountRepo := mysql.NewStaffAccountRepository(db, baseLogger)
	partnerRepo := mysql.NewPartnerRepository(db, baseLogger)
	testimonialRepo := mysql.NewTestimonialRepository(db, baseLogger)
	contactRepo := mysql.NewContactMessageRepository(db, baseLogger)
	donationRepo := mysql.NewDonationRepository(db, baseLogger)
	newsletterRepo := mysql.NewNewsletterRepository(db, baseLogger)
	galleryRepo := mysql.NewGalleryRepository(db, baseLogger)
	settingsRepo := mysql.NewSiteSettingsRepository(db, baseLogger)

	// 没有 Redis 时 ranking 保持为 nil 接口，热门接口回退到数据库
	var ranking redisrepo.PopularPostsRepository
	if rdb != nil {
		ranking = redisrepo.NewPopularPostsRepository(rdb, baseLogger)
	}
	logger.Debug("Repositories 初始化完成")

	// --- 6. 初始化服务层 ---
	authService := service.NewAuthService(db, accountRepo, postRepo,
		cfg.AuthConfig.JWTSecret, cfg.AuthConfig.Issuer,
		cfg.AuthConfig.TokenTTL(constant.DefaultStaffTokenTTL), baseLogger)
	settingsService := service.NewSiteSettingsService(settingsRepo, baseLogger)
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsService.Load(loadCtx); err != nil {
		loadCancel()
		logger.Fatal("加载站点设置失败", zap.Error(err))
	}
	loadCancel()

	blogPublicService := service.NewBlogPublicService(postRepo, ranking, cfg.RankingConfig.PopularLimit, baseLogger)
	blogManageService := service.NewBlogManageService(db, postRepo, galleryRepo, ranking, cosClient,
		cfg.SiteOptions.MaxUploadSizeMB, kafkaProducer, baseLogger)
	formsService := service.NewFormsService(db, contactRepo, testimonialRepo, donationRepo, partnerRepo,
		newsletterRepo, cosClient, cfg.SiteOptions, kafkaProducer, baseLogger)
	contentService := service.NewSiteContentService(blogPublicService, settingsService, partnerRepo,
		testimonialRepo, galleryRepo, baseLogger)
	dashboardService := service.NewDashboardService(postRepo, donationRepo, testimonialRepo, contactRepo,
		partnerRepo, newsletterRepo, baseLogger)
	adminActionService := service.NewAdminActionService(db, authService, blogManageService, testimonialRepo,
		contactRepo, donationRepo, partnerRepo, galleryRepo, baseLogger)
	logger.Debug("Services 初始化完成")

	// --- 7. 初始化控制器层 ---
	ctrls := router.Controllers{
		Blog:       controller.NewBlogController(blogPublicService),
		Site:       controller.NewSiteController(contentService, settingsService),
		Forms:      controller.NewFormsController(formsService),
		Auth:       controller.NewAuthController(authService),
		BlogManage: controller.NewBlogManageController(blogManageService),
		Dashboard:  controller.NewDashboardController(dashboardService, settingsService),
	}
	logger.Debug("Controllers 初始化完成")

	// --- 8. 初始化 Kafka 消费者 ---
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup
	consumerCtx, consumerCancel := context.WithCancel(context.Background())

	if len(cfg.KafkaConfig.Brokers) > 0 && cfg.KafkaConfig.Topics.AdminActions != "" {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			logger.Warn("Kafka ConsumerGroupID 未配置，使用默认值", zap.String("groupID", constant.DefaultKafkaConsumerGroupID))
			groupID = constant.DefaultKafkaConsumerGroupID
		}
		adminTopic := cfg.KafkaConfig.Topics.AdminActions
		adminConsumer, err := consumer.NewConsumer(
			&cfg.KafkaConfig,
			groupID,
			adminTopic,
			consumer.NewAdminActionHandler(baseLogger, adminActionService),
			baseLogger,
		)
		if err != nil {
			logger.Fatal("初始化后台操作 Kafka 消费者失败", zap.Error(err))
		}
		consumers = append(consumers, adminConsumer)

		logger.Info(fmt.Sprintf("准备启动 %d 个 Kafka 消费者...", len(consumers)))
		for _, c := range consumers {
			consumerWg.Add(1)
			go func(cons *consumer.Consumer) {
				defer consumerWg.Done()
				cons.Start(consumerCtx)
			}(c)
		}
	} else {
		logger.Warn("Kafka Brokers 或 adminActions topic 未配置，跳过消费者初始化")
	}

	// --- 9. 初始化定时任务 ---
	var popularTask *tasks.PopularPostsTask
	if ranking != nil {
		popularTask = tasks.NewPopularPostsTask(postRepo, ranking, cfg.RankingConfig, baseLogger)
		warmCtx, warmCancel := context.WithTimeout(context.Background(), constant.PopularPostsRebuildTimeout)
		if err := popularTask.Rebuild(warmCtx); err != nil {
			logger.Warn("启动时预热热门排行失败", zap.Error(err))
		}
		warmCancel()
		if err := popularTask.Start(); err != nil {
			logger.Fatal("启动热门排行重建任务失败", zap.Error(err))
		}
	}

	// --- 10. 设置 Gin 路由器 ---
	ginRouter := router.SetupRouter(logger, &cfg, authService, ctrls)

	// --- 11. 启动 HTTP 服务器 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
		logger.Info("HTTP 服务器已停止监听")
	}()

	// --- 12. 优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancelFunc := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancelFunc()

	// a. 停止 HTTP 服务器
	logger.Info("正在关闭 HTTP 服务器...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 停止 Kafka 消费者
	consumerCancel()
	logger.Info("等待 Kafka 消费者停止...")
	consumerWg.Wait()
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭 Kafka 消费者时出错", zap.Error(err))
		}
	}

	// c. 停止定时任务
	if popularTask != nil {
		select {
		case <-popularTask.Stop().Done():
			logger.Info("热门排行重建任务已停止")
		case <-shutdownCtx.Done():
			logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
		}
	}

	// d. 关闭生产者与 Redis
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("关闭 Redis 连接失败", zap.Error(err))
		}
	}

	logger.Info("服务已成功关闭")
}
