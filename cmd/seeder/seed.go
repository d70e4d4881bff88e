package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/repo/mysql"
	"github.com/Xushengqwer/foundation_service/seeddata"
	"github.com/Xushengqwer/foundation_service/service"
)

// 内置文章里的日期形如 "Dec 5, 2025"
const seedDateLayout = "Jan 2, 2006"

type seeder struct {
	db           *gorm.DB
	posts        mysql.BlogPostRepository
	partners     mysql.PartnerRepository
	testimonials mysql.TestimonialRepository
	gallery      mysql.GalleryRepository
	forms        service.FormsService
	logger       *zap.Logger
}

// importSeedPosts 把内置示例文章写成已发布的数据库文章。已存在的 slug 跳过，可重复执行。
func (s *seeder) importSeedPosts(ctx context.Context) (int, error) {
	created := 0
	sections := []struct {
		category enums.PostCategory
		posts    []seeddata.Post
	}{
		{enums.CategoryBlog, seeddata.Blog()},
		{enums.CategoryNews, seeddata.News()},
	}
	for _, section := range sections {
		for _, p := range section.posts {
			post := seedToEntity(p, section.category)
			err := s.posts.CreatePost(ctx, s.db, post)
			if errors.Is(err, myErrors.ErrSlugTaken) {
				s.logger.Debug("文章已存在，跳过", zap.String("slug", p.Slug))
				continue
			}
			if err != nil {
				return created, fmt.Errorf("写入文章 %s 失败: %w", p.Slug, err)
			}
			created++
		}
	}
	return created, nil
}

func seedToEntity(p seeddata.Post, category enums.PostCategory) *entities.BlogPost {
	publishedAt, err := time.Parse(seedDateLayout, p.Date)
	if err != nil {
		publishedAt = time.Now()
	}
	post := &entities.BlogPost{
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    category,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Status:      enums.PostStatusPublished,
		PublishedAt: &publishedAt,
	}
	if p.Image != "" {
		post.FeaturedImage = sql.NullString{String: p.Image, Valid: true}
	}
	return post
}

// seedDemo 用 gofakeit 生成演示数据，捐赠与订阅走表单服务以生成收据编号
func (s *seeder) seedDemo(ctx context.Context, n int) error {
	partnerIDs := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		company := gofakeit.Company()
		partner := &entities.Partner{
			Name:             company,
			Description:      gofakeit.Paragraph(1, 3, 12, " "),
			MissionStatement: gofakeit.Sentence(12),
			Website:          gofakeit.URL(),
			Email:            gofakeit.Email(),
			IsActive:         true,
			DisplayOrder:     i,
		}
		if err := s.partners.CreatePartner(ctx, partner); err != nil {
			return fmt.Errorf("创建合作伙伴失败: %w", err)
		}
		partnerIDs = append(partnerIDs, partner.ID)
	}

	testimonialTypes := []enums.TestimonialType{
		enums.TestimonialPersonal, enums.TestimonialPartner, enums.TestimonialDonor, enums.TestimonialBeneficiary,
	}
	for i := 0; i < n; i++ {
		t := &entities.Testimonial{
			Name:            gofakeit.Name(),
			Organization:    gofakeit.Company(),
			TestimonialType: testimonialTypes[i%len(testimonialTypes)],
			Content:         gofakeit.Paragraph(1, 2, 15, " "),
			IsApproved:      i%4 != 3,
			IsFeatured:      i < 3,
			DisplayOrder:    i,
		}
		if err := s.testimonials.CreateTestimonial(ctx, s.db, t); err != nil {
			return fmt.Errorf("创建感言失败: %w", err)
		}
	}

	galleryCategories := []enums.GalleryCategory{
		enums.GalleryEvent, enums.GalleryActivity, enums.GalleryTeam, enums.GalleryImpact,
	}
	for i := 0; i < n; i++ {
		item := &entities.GalleryItem{
			Title:        gofakeit.Sentence(4),
			Description:  gofakeit.Sentence(10),
			Image:        gofakeit.ImageURL(800, 600),
			Category:     galleryCategories[i%len(galleryCategories)],
			IsFeatured:   i < 2,
			DisplayOrder: i,
		}
		if len(partnerIDs) > 0 && i%2 == 0 {
			item.PartnerID = &partnerIDs[i%len(partnerIDs)]
		}
		if err := s.gallery.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("创建图库条目失败: %w", err)
		}
	}

	methods := []enums.PaymentMethod{enums.PaymentJazzCash, enums.PaymentEasyPaisa, enums.PaymentBank, enums.PaymentCreditCard}
	for i := 0; i < n; i++ {
		req := &dto.DonationRequest{
			DonorName:     gofakeit.Name(),
			DonorEmail:    gofakeit.Email(),
			Amount:        gofakeit.Price(500, 50000),
			PaymentMethod: methods[i%len(methods)],
			Purpose:       gofakeit.Sentence(3),
			IsAnonymous:   i%5 == 0,
		}
		if len(partnerIDs) > 0 && i%3 == 0 {
			req.PartnerID = &partnerIDs[i%len(partnerIDs)]
		}
		receipt, err := s.forms.RecordDonation(ctx, req)
		if err != nil {
			return fmt.Errorf("登记捐赠失败: %w", err)
		}
		s.logger.Debug("演示捐赠已登记", zap.String("receipt", receipt.ReceiptNumber))
	}

	for i := 0; i < n; i++ {
		if _, err := s.forms.Subscribe(ctx, &dto.NewsletterSubscribeRequest{
			Email: gofakeit.Email(),
			Name:  gofakeit.Name(),
		}); err != nil {
			return fmt.Errorf("创建订阅失败: %w", err)
		}
	}

	s.logger.Info("演示数据生成完成", zap.Int("每类条数", n))
	return nil
}
