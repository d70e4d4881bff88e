package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

type authFixture struct {
	db    *gorm.DB
	repos repos
	svc   AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := newTestDB(t)
	r := newRepos(db)
	return &authFixture{
		db:    db,
		repos: r,
		svc:   NewAuthService(db, r.accounts, r.posts, "test-secret", "foundation-test", time.Hour, nopLogger),
	}
}

func (f *authFixture) account(t *testing.T, username string, role enums.StaffRole) *entities.StaffAccount {
	t.Helper()
	account, err := f.svc.CreateAccount(context.Background(), NewStaffAccountInput{
		Username:    username,
		Password:    "correct-horse",
		Role:        role,
		DisplayName: "Display " + username,
	})
	if err != nil {
		t.Fatalf("create account %s: %v", username, err)
	}
	return account
}

func TestLogin_ParseAndResolve(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	account := f.account(t, "editor", enums.RolePublisher)

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Username: " editor ", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" || login.Account.Role != enums.RolePublisher || login.Account.ID != account.ID {
		t.Fatalf("login = %+v", login)
	}
	if !login.ExpiresAt.After(time.Now()) {
		t.Errorf("expires at %v is not in the future", login.ExpiresAt)
	}

	id, err := f.svc.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != account.ID {
		t.Errorf("subject = %d, want %d", id, account.ID)
	}

	actor, err := f.svc.ResolveActor(ctx, id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if actor.AccountID != account.ID || !actor.IsPublisher() {
		t.Errorf("actor = %+v", actor)
	}

	stored, _ := f.repos.accounts.GetByID(ctx, account.ID)
	if stored.LastLoginAt == nil {
		t.Error("last login not recorded")
	}
}

func TestLogin_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	disabled := f.account(t, "disabled", enums.RoleAuthor)
	f.account(t, "writer", enums.RoleAuthor)
	if err := f.db.Model(&entities.StaffAccount{}).Where("id = ?", disabled.ID).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}

	cases := map[string]dto.LoginRequest{
		"unknown user":     {Username: "ghost", Password: "correct-horse"},
		"wrong password":   {Username: "writer", Password: "wrong-password"},
		"inactive account": {Username: "disabled", Password: "correct-horse"},
	}
	for name, req := range cases {
		req := req
		if _, err := f.svc.Login(ctx, &req); !errors.Is(err, myErrors.ErrInvalidCredentials) {
			t.Errorf("%s: err = %v, want ErrInvalidCredentials", name, err)
		}
	}

	if _, err := f.svc.ResolveActor(ctx, disabled.ID); !errors.Is(err, myErrors.ErrInvalidToken) {
		t.Errorf("resolve inactive err = %v", err)
	}
	if _, err := f.svc.ResolveActor(ctx, 4242); !errors.Is(err, myErrors.ErrInvalidToken) {
		t.Errorf("resolve missing err = %v", err)
	}
}

func TestParseToken_RejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.account(t, "editor", enums.RoleAuthor)

	svc := f.svc.(*authService)
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	stale, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "editor", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.now = time.Now

	fresh, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "editor", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := NewAuthService(f.db, f.repos.accounts, f.repos.posts, "other-secret", "foundation-test", time.Hour, nopLogger)
	foreign, err := other.Login(ctx, &dto.LoginRequest{Username: "editor", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login with other secret: %v", err)
	}

	for name, token := range map[string]string{
		"expired":      stale.Token,
		"tampered":     fresh.Token[:len(fresh.Token)-2] + "xx",
		"wrong secret": foreign.Token,
		"garbage":      "not-a-jwt",
		"empty":        "",
	} {
		if _, err := f.svc.ParseToken(token); !errors.Is(err, myErrors.ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.account(t, "editor", enums.RoleAuthor)

	if _, err := f.svc.CreateAccount(ctx, NewStaffAccountInput{Username: "editor", Password: "long-enough", Role: enums.RoleAuthor}); !errors.Is(err, myErrors.ErrAccountExists) {
		t.Errorf("duplicate err = %v, want ErrAccountExists", err)
	}
	if _, err := f.svc.CreateAccount(ctx, NewStaffAccountInput{Username: "short", Password: "short", Role: enums.RoleAuthor}); err == nil {
		t.Error("short password accepted")
	}
	if _, err := f.svc.CreateAccount(ctx, NewStaffAccountInput{Username: "admin", Password: "long-enough", Role: "admin"}); err == nil {
		t.Error("unknown role accepted")
	}
	if _, err := f.svc.CreateAccount(ctx, NewStaffAccountInput{Username: "  ", Password: "long-enough", Role: enums.RoleAuthor}); err == nil {
		t.Error("blank username accepted")
	}
}

func TestRemoveAccount_KeepsPostsWithoutAuthor(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	account := f.account(t, "leaving", enums.RoleAuthor)

	post := &entities.BlogPost{
		Title:    "Farewell",
		Slug:     "farewell",
		Category: enums.CategoryBlog,
		Status:   enums.PostStatusDraft,
		Content:  "Goodbye",
		AuthorID: &account.ID,
	}
	if err := f.repos.posts.CreatePost(ctx, f.db, post); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.RemoveAccount(ctx, account.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := f.repos.accounts.GetByID(ctx, account.ID); !errors.Is(err, commonerrors.ErrRepoNotFound) {
		t.Errorf("account still present: %v", err)
	}
	stored, err := f.repos.posts.GetPostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("post removed with its author: %v", err)
	}
	if stored.AuthorID != nil || stored.Author != nil {
		t.Errorf("author not cleared: %v", stored.AuthorID)
	}

	accounts, err := f.svc.ListAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 0 {
		t.Errorf("accounts = %d, want 0", len(accounts))
	}
}
