// staffctl 维护后台账号：创建发布者/作者、删除账号、列出账号。
//
//	staffctl -config config/config.development.yaml create -username alice -role publisher
//	staffctl list
//	staffctl remove -id 3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/joho/godotenv"

	appConfig "github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/dependencies"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/service"
)

// EnvStaffPassword 未通过 -password 传入时从该环境变量读取密码，避免出现在 shell 历史里
const EnvStaffPassword = "FOUNDATION_STAFF_PASSWORD"

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "用法: staffctl [-config 文件] <create|remove|list> [参数]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "读取 .env 失败: %v\n", err)
	}

	var cfg appConfig.SiteConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败 (%s): %v\n", configFile, err)
		os.Exit(1)
	}
	cfg.ApplyEnvOverrides()

	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化 ZapLogger 失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	db, err := dependencies.InitDatabase(&cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化数据库失败: %v\n", err)
		os.Exit(1)
	}

	// 令牌相关参数与账号维护无关，这里只需要一个非空密钥
	secret := cfg.AuthConfig.JWTSecret
	if secret == "" {
		secret = "staffctl"
	}
	authService := service.NewAuthService(db,
		mysql.NewStaffAccountRepository(db, logger.Logger()),
		mysql.NewBlogPostRepository(db, logger.Logger()),
		secret, cfg.AuthConfig.Issuer, constant.DefaultStaffTokenTTL, logger.Logger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := run(ctx, flag.Args(), authService, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "staffctl: %v\n", err)
		os.Exit(1)
	}
}

// run 执行一个子命令
func run(ctx context.Context, args []string, auth service.AuthService, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("缺少子命令: create | remove | list")
	}
	switch args[0] {
	case "create":
		return runCreate(ctx, args[1:], auth, out)
	case "remove":
		return runRemove(ctx, args[1:], auth, out)
	case "list":
		return runList(ctx, auth, out)
	default:
		return fmt.Errorf("未知子命令: %q", args[0])
	}
}

func runCreate(ctx context.Context, args []string, auth service.AuthService, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "用户名")
	password := fs.String("password", "", "密码，留空时读取 "+EnvStaffPassword)
	role := fs.String("role", string(enums.RoleAuthor), "角色: publisher | author")
	name := fs.String("name", "", "展示名称")
	email := fs.String("email", "", "邮箱")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv(EnvStaffPassword)
	}

	account, err := auth.CreateAccount(ctx, service.NewStaffAccountInput{
		Username:    *username,
		Password:    *password,
		Role:        enums.StaffRole(strings.ToLower(*role)),
		DisplayName: *name,
		Email:       *email,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "已创建账号 #%d %s (%s)\n", account.ID, account.Username, account.Role)
	return nil
}

func runRemove(ctx context.Context, args []string, auth service.AuthService, out io.Writer) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(out)
	id := fs.Uint64("id", 0, "账号 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("必须通过 -id 指定账号")
	}
	if err := auth.RemoveAccount(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "已删除账号 #%d，其文章保留\n", *id)
	return nil
}

func runList(ctx context.Context, auth service.AuthService, out io.Writer) error {
	accounts, err := auth.ListAccounts(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tACTIVE\tLAST LOGIN")
	for _, a := range accounts {
		lastLogin := "-"
		if a.LastLoginAt != nil {
			lastLogin = a.LastLoginAt.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n", a.ID, a.Username, a.Role, a.IsActive, lastLogin)
	}
	return w.Flush()
}
