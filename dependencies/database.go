package dependencies

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	appConfig "github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/models/entities"
)

// OpenDialector 按驱动名构造 GORM Dialector
func OpenDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", appConfig.DriverMySQL:
		return mysql.Open(dsn), nil
	case appConfig.DriverPostgres:
		return postgres.Open(dsn), nil
	case appConfig.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// InitDatabase 初始化数据库连接，配置读写分离 (如果配置了从库) 并执行自动迁移
func InitDatabase(cfg *appConfig.SiteConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	dbCfg := cfg.DatabaseConfig
	driver := dbCfg.DriverName()

	if dbCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (databaseConfig.write.dsn) 未配置")
	}
	writeDialector, err := OpenDialector(driver, dbCfg.Write.DSN)
	if err != nil {
		return nil, err
	}
	gormConfig := &gorm.Config{
		Logger: core.NewGormLogger(logger, cfg.GormLogConfig),
		// 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey，slug 查重依赖这一点
		TranslateError: true,
	}

	var db *gorm.DB
	maxRetries := 5
	retryInterval := 2 * time.Second

	logger.Info("开始连接主数据库...", zap.String("driver", driver))
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(writeDialector, gormConfig)
		if err == nil {
			var sqlDB *sql.DB
			sqlDB, err = db.DB()
			if err == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			}
		}
		logger.Warn("无法连接到主数据库，尝试重试", zap.Int("retry", i+1), zap.Int("maxRetries", maxRetries), zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		logger.Error("无法连接到主数据库", zap.Error(err))
		return nil, fmt.Errorf("无法连接到主数据库: %w", err)
	}
	logger.Info("成功连接到主数据库")

	// --- 读写分离 ---
	readReplicas := make([]gorm.Dialector, 0, len(dbCfg.Read))
	for i, replicaCfg := range dbCfg.Read {
		if replicaCfg.DSN == "" {
			logger.Warn("发现空的从库 DSN 配置，已跳过", zap.Int("index", i))
			continue
		}
		replica, err := OpenDialector(driver, replicaCfg.DSN)
		if err != nil {
			return nil, err
		}
		readReplicas = append(readReplicas, replica)
	}
	if len(readReplicas) > 0 {
		resolverConfig := dbresolver.Config{
			Sources:  []gorm.Dialector{writeDialector},
			Replicas: readReplicas,
			Policy:   dbresolver.StrictRoundRobinPolicy(),
		}
		if err := db.Use(dbresolver.Register(resolverConfig)); err != nil {
			logger.Error("配置 GORM 读写分离插件失败", zap.Error(err))
			return nil, fmt.Errorf("配置 GORM 读写分离失败: %w", err)
		}
		logger.Info("成功配置 GORM 读写分离插件", zap.Int("从库数量", len(readReplicas)))
	} else {
		logger.Info("未配置有效的从数据库，不启用读写分离")
	}

	// --- 连接池 ---
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取数据库对象: %w", err)
	}
	maxIdle, maxOpen, maxLife := poolSettings(dbCfg)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)
	logger.Info("配置数据库连接池",
		zap.Int("最大空闲连接数", maxIdle),
		zap.Int("最大打开连接数", maxOpen),
		zap.Int("连接最大生命周期(秒)", maxLife),
	)

	// --- 自动迁移 ---
	logger.Info("开始执行数据库自动迁移...")
	if err := db.AutoMigrate(entities.All()...); err != nil {
		logger.Error("数据库自动迁移失败", zap.Error(err))
		return nil, fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	logger.Info("数据库自动迁移完成")
	return db, nil
}

// poolSettings 以共享设置为基础，主库的独立设置优先
func poolSettings(c appConfig.DatabaseConfig) (maxIdle, maxOpen, maxLife int) {
	maxIdle, maxOpen, maxLife = c.SharedMaxIdleConns, c.SharedMaxOpenConns, c.SharedConnMaxLifetime
	if c.Write.MaxIdleConns != nil {
		maxIdle = *c.Write.MaxIdleConns
	}
	if c.Write.MaxOpenConns != nil {
		maxOpen = *c.Write.MaxOpenConns
	}
	if c.Write.ConnMaxLifetime != nil {
		maxLife = *c.Write.ConnMaxLifetime
	}
	if maxOpen <= 0 {
		maxOpen = 20
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	if maxLife <= 0 {
		maxLife = 3600
	}
	return maxIdle, maxOpen, maxLife
}
