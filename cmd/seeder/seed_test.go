package main

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/foundation_service/config"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/seeddata"
	"github.com/Xushengqwer/foundation_service/service"
)

func newSeeder(t *testing.T) *seeder {
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
	partners := mysql.NewPartnerRepository(db, log)
	testimonials := mysql.NewTestimonialRepository(db, log)
	return &seeder{
		db:           db,
		posts:        mysql.NewBlogPostRepository(db, log),
		partners:     partners,
		testimonials: testimonials,
		gallery:      mysql.NewGalleryRepository(db, log),
		forms: service.NewFormsService(db, mysql.NewContactMessageRepository(db, log), testimonials,
			mysql.NewDonationRepository(db, log), partners, mysql.NewNewsletterRepository(db, log),
			nil, config.SiteOptions{}, nil, log),
		logger: log,
	}
}

func TestImportSeedPosts_Idempotent(t *testing.T) {
	s := newSeeder(t)
	ctx := context.Background()

	created, err := s.importSeedPosts(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := len(seeddata.Blog()) + len(seeddata.News())
	if created != want {
		t.Errorf("created = %d, want %d", created, want)
	}

	again, err := s.importSeedPosts(ctx)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if again != 0 {
		t.Errorf("second import created %d posts", again)
	}

	first := seeddata.Blog()[0]
	post, err := s.posts.GetPublishedBySlug(ctx, first.Slug)
	if err != nil {
		t.Fatalf("imported post not published: %v", err)
	}
	if post.Category != enums.CategoryBlog || post.PublishedAt == nil || post.PublishedAt.Year() < 2000 {
		t.Errorf("post = category %s published %v", post.Category, post.PublishedAt)
	}
}

func TestSeedToEntity_DateFallback(t *testing.T) {
	p := seeddata.Post{Slug: "x", Title: "X", Content: "c", Date: "not a date"}
	post := seedToEntity(p, enums.CategoryNews)
	if post.PublishedAt == nil || post.Status != enums.PostStatusPublished || post.FeaturedImage.Valid {
		t.Errorf("post = %+v", post)
	}

	p.Date = "Dec 5, 2025"
	post = seedToEntity(p, enums.CategoryNews)
	if post.PublishedAt.Day() != 5 || post.PublishedAt.Month() != 12 {
		t.Errorf("published at = %v", post.PublishedAt)
	}
}

func TestSeedDemo(t *testing.T) {
	s := newSeeder(t)
	if err := s.seedDemo(context.Background(), 4); err != nil {
		t.Fatalf("seedDemo: %v", err)
	}
	for _, model := range []interface{}{
		&entities.Partner{}, &entities.Testimonial{}, &entities.GalleryItem{},
		&entities.Donation{}, &entities.NewsletterSubscriber{},
	} {
		var count int64
		s.db.Model(model).Count(&count)
		if count != 4 {
			t.Errorf("%T count = %d, want 4", model, count)
		}
	}

	var withoutReceipt int64
	s.db.Model(&entities.Donation{}).Where("receipt_number IS NULL").Count(&withoutReceipt)
	if withoutReceipt != 0 {
		t.Errorf("%d donations without receipt", withoutReceipt)
	}
}
