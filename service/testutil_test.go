package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/repo/redis"
	"github.com/Xushengqwer/foundation_service/workflow"
)

var nopLogger = zap.NewNop()

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(entities.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// repos 测试用的全部仓储
type repos struct {
	posts        mysql.BlogPostRepository
	accounts     mysql.StaffAccountRepository
	partners     mysql.PartnerRepository
	testimonials mysql.TestimonialRepository
	contacts     mysql.ContactMessageRepository
	donations    mysql.DonationRepository
	newsletter   mysql.NewsletterRepository
	gallery      mysql.GalleryRepository
	settings     mysql.SiteSettingsRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		posts:        mysql.NewBlogPostRepository(db, nopLogger),
		accounts:     mysql.NewStaffAccountRepository(db, nopLogger),
		partners:     mysql.NewPartnerRepository(db, nopLogger),
		testimonials: mysql.NewTestimonialRepository(db, nopLogger),
		contacts:     mysql.NewContactMessageRepository(db, nopLogger),
		donations:    mysql.NewDonationRepository(db, nopLogger),
		newsletter:   mysql.NewNewsletterRepository(db, nopLogger),
		gallery:      mysql.NewGalleryRepository(db, nopLogger),
		settings:     mysql.NewSiteSettingsRepository(db, nopLogger),
	}
}

// createStaff 直接写入一个启用的账号并返回对应的 Actor
func createStaff(t *testing.T, db *gorm.DB, username string, role enums.StaffRole) workflow.Actor {
	t.Helper()
	account := &entities.StaffAccount{
		Username:     username,
		DisplayName:  strings.ToUpper(username[:1]) + username[1:],
		PasswordHash: "unused",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create staff %s: %v", username, err)
	}
	return workflow.Actor{AccountID: account.ID, Role: role}
}

// fakeRanking 内存版热门排行
type fakeRanking struct {
	mu      sync.Mutex
	scores  map[uint64]int64
	removed []uint64
}

func newFakeRanking() *fakeRanking {
	return &fakeRanking{scores: make(map[uint64]int64)}
}

func (f *fakeRanking) RecordView(_ context.Context, postID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[postID]++
	return nil
}

func (f *fakeRanking) Remove(_ context.Context, postID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scores, postID)
	f.removed = append(f.removed, postID)
	return nil
}

func (f *fakeRanking) TopIDs(_ context.Context, n int) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.scores) == 0 {
		return nil, myErrors.ErrCacheMiss
	}
	ids := make([]uint64, 0, len(f.scores))
	for id := range f.scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if f.scores[ids[i]] == f.scores[ids[j]] {
			return ids[i] > ids[j]
		}
		return f.scores[ids[i]] > f.scores[ids[j]]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

func (f *fakeRanking) Rebuild(_ context.Context, entries []redis.RankEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = make(map[uint64]int64, len(entries))
	for _, e := range entries {
		f.scores[e.PostID] = e.Views
	}
	return nil
}

// fakeCOS 记录上传与删除的对象键
type fakeCOS struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (f *fakeCOS) UploadFile(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, objectKey)
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeCOS) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// newFileHeader 构造一个真实的 multipart 文件头
func newFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func statusPtr(s enums.PostStatus) *enums.PostStatus { return &s }

func boolPtr(b bool) *bool { return &b }
