package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/dependencies"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/service"
)

func main() {
	// --- 0. 解析命令行参数 ---
	var configFile string
	var withDemo bool
	var demoCount int
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.BoolVar(&withDemo, "demo", true, "是否额外生成演示用的合作伙伴、感言、捐赠与订阅数据")
	flag.IntVar(&demoCount, "n", 8, "每类演示数据的条数")
	flag.Parse()

	if demoCount <= 0 {
		fmt.Println("错误: 演示数据条数必须大于 0")
		os.Exit(1)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("读取 .env 失败: %v\n", err)
	}

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		absConfigFile = configFile
	}

	// --- 1. 加载配置 ---
	var cfg appConfig.SiteConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	cfg.ApplyEnvOverrides()

	// --- 2. 初始化日志记录器 ---
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	// --- 3. 初始化数据库 ---
	db, dbErr := dependencies.InitDatabase(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化数据库失败 (Seeder)", zap.Error(dbErr))
	}
	baseLogger := logger.Logger()

	// --- 4. 初始化 Repositories 与 Service ---
	postRepo := mysql.NewBlogPostRepository(db, baseLogger)
	partnerRepo := mysql.NewPartnerRepository(db, baseLogger)
	testimonialRepo := mysql.NewTestimonialRepository(db, baseLogger)
	galleryRepo := mysql.NewGalleryRepository(db, baseLogger)
	formsService := service.NewFormsService(db,
		mysql.NewContactMessageRepository(db, baseLogger),
		testimonialRepo,
		mysql.NewDonationRepository(db, baseLogger),
		partnerRepo,
		mysql.NewNewsletterRepository(db, baseLogger),
		nil, cfg.SiteOptions, nil, baseLogger)

	s := &seeder{
		db:           db,
		posts:        postRepo,
		partners:     partnerRepo,
		testimonials: testimonialRepo,
		gallery:      galleryRepo,
		forms:        formsService,
		logger:       baseLogger,
	}

	// --- 5. 执行数据填充 ---
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	startTime := time.Now()

	imported, err := s.importSeedPosts(ctx)
	if err != nil {
		logger.Fatal("导入内置文章失败", zap.Error(err))
	}
	logger.Info("内置文章导入完成", zap.Int("新增", imported))

	if withDemo {
		if err := s.seedDemo(ctx, demoCount); err != nil {
			logger.Fatal("生成演示数据失败", zap.Error(err))
		}
	}

	fmt.Printf("数据填充完成！总耗时: %v\n", time.Since(startTime))
}
