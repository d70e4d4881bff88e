package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/service"
)

func newAuth(t *testing.T) service.AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(entities.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log := zap.NewNop()
	return service.NewAuthService(db, mysql.NewStaffAccountRepository(db, log), mysql.NewBlogPostRepository(db, log),
		"secret", "", time.Hour, log)
}

func TestRun_CreateListRemove(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()
	var out bytes.Buffer

	if err := run(ctx, []string{"create", "-username", "alice", "-password", "long-password", "-role", "Publisher"}, auth, &out); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out.String(), "alice (publisher)") {
		t.Errorf("create output = %q", out.String())
	}

	t.Setenv(EnvStaffPassword, "from-env-secret")
	if err := run(ctx, []string{"create", "-username", "bob"}, auth, &out); err != nil {
		t.Fatalf("create with env password: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"list"}, auth, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	listing := out.String()
	if !strings.Contains(listing, "alice") || !strings.Contains(listing, "bob") || !strings.Contains(listing, "author") {
		t.Errorf("list output = %q", listing)
	}

	accounts, _ := auth.ListAccounts(ctx)
	for _, a := range accounts {
		if a.Username == "bob" {
			if err := run(ctx, []string{"remove", "-id", strconv.FormatUint(a.ID, 10)}, auth, &out); err != nil {
				t.Fatalf("remove: %v", err)
			}
		}
	}
	accounts, _ = auth.ListAccounts(ctx)
	if len(accounts) != 1 || accounts[0].Username != "alice" {
		t.Errorf("accounts after remove = %d", len(accounts))
	}
}

func TestRun_Errors(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()
	var out bytes.Buffer

	cases := [][]string{
		nil,
		{"rename"},
		{"remove"},
		{"create", "-username", "carol", "-password", "short"},
		{"create", "-username", "dave", "-password", "long-password", "-role", "editor"},
	}
	for _, args := range cases {
		if err := run(ctx, args, auth, &out); err == nil {
			t.Errorf("run(%v) succeeded, want error", args)
		}
	}
}
