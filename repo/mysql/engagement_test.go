package mysql

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

func TestDonationReceiptAndStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewDonationRepository(db, nopLogger)
	ctx := context.Background()

	donation := &entities.Donation{
		DonorName:     "Ayesha",
		DonorEmail:    "ayesha@example.com",
		Amount:        2500,
		Currency:      "PKR",
		PaymentMethod: enums.PaymentJazzCash,
		PaymentStatus: enums.PaymentPending,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateDonation(ctx, tx, donation); err != nil {
			return err
		}
		return repo.SetReceiptNumber(ctx, tx, donation.ID, entities.BuildReceiptNumber("AJIF", donation.CreatedAt, donation.ID))
	})
	if err != nil {
		t.Fatalf("create donation: %v", err)
	}
	// 已有编号不会被覆盖
	if err := repo.SetReceiptNumber(ctx, db, donation.ID, "OTHER"); !errors.Is(err, commonerrors.ErrRepoNotFound) {
		t.Fatalf("receipt must be immutable, got %v", err)
	}

	first := time.Date(2025, 12, 17, 9, 0, 0, 0, time.UTC)
	if _, err := repo.UpdateStatus(ctx, []uint64{donation.ID}, enums.PaymentCompleted, first); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, []uint64{donation.ID}, enums.PaymentCompleted, first.Add(time.Hour)); err != nil {
		t.Fatalf("complete again: %v", err)
	}
	got, err := repo.GetByID(ctx, donation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReceiptNumber == nil || *got.ReceiptNumber != entities.BuildReceiptNumber("AJIF", donation.CreatedAt, donation.ID) {
		t.Fatalf("unexpected receipt %v", got.ReceiptNumber)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(first) {
		t.Fatalf("completed_at should keep first completion time, got %v", got.CompletedAt)
	}

	sum, err := repo.SumCompleted(ctx)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 2500 {
		t.Fatalf("expected completed sum 2500, got %v", sum)
	}
}

func TestPartnerDeleteClearsReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	partners := NewPartnerRepository(db, nopLogger)
	donations := NewDonationRepository(db, nopLogger)
	gallery := NewGalleryRepository(db, nopLogger)

	partner := &entities.Partner{Name: "Water Trust", IsActive: true}
	if err := partners.CreatePartner(ctx, partner); err != nil {
		t.Fatalf("create partner: %v", err)
	}
	donation := &entities.Donation{DonorName: "d", DonorEmail: "d@example.com", Amount: 10, Currency: "PKR",
		PaymentMethod: enums.PaymentBank, PaymentStatus: enums.PaymentPending, PartnerID: &partner.ID}
	if err := donations.CreateDonation(ctx, db, donation); err != nil {
		t.Fatalf("create donation: %v", err)
	}
	item := &entities.GalleryItem{Title: "well", Image: "site/gallery/well.jpg", Category: enums.GalleryImpact, PartnerID: &partner.ID}
	if err := gallery.CreateItem(ctx, item); err != nil {
		t.Fatalf("create gallery item: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := donations.ClearPartner(ctx, tx, partner.ID); err != nil {
			return err
		}
		if err := gallery.ClearPartner(ctx, tx, partner.ID); err != nil {
			return err
		}
		return partners.DeletePartner(ctx, tx, partner.ID)
	})
	if err != nil {
		t.Fatalf("delete partner: %v", err)
	}

	got, err := donations.GetByID(ctx, donation.ID)
	if err != nil {
		t.Fatalf("donation must survive: %v", err)
	}
	if got.PartnerID != nil {
		t.Fatalf("donation partner_id should be NULL")
	}
	items, err := gallery.ListItems(ctx, dto.GalleryFilter{})
	if err != nil || len(items) != 1 || items[0].PartnerID != nil {
		t.Fatalf("gallery item partner_id should be NULL: %v %v", items, err)
	}
	if _, err := partners.GetByID(ctx, partner.ID); !errors.Is(err, commonerrors.ErrRepoNotFound) {
		t.Fatalf("partner should be gone, got %v", err)
	}
}

func TestNewsletterLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsletterRepository(db, nopLogger)
	ctx := context.Background()
	now := time.Now()

	sub := &entities.NewsletterSubscriber{Email: "reader@example.com", IsActive: true, SubscribedAt: now}
	if err := repo.CreateSubscriber(ctx, sub); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	dup := &entities.NewsletterSubscriber{Email: "reader@example.com", IsActive: true, SubscribedAt: now}
	if err := repo.CreateSubscriber(ctx, dup); !errors.Is(err, myErrors.ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}

	if err := repo.Deactivate(ctx, "reader@example.com", now); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if count, _ := repo.CountActive(ctx); count != 0 {
		t.Fatalf("expected no active subscribers, got %d", count)
	}
	if err := repo.Reactivate(ctx, sub.ID, "Reader", now); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	got, err := repo.GetByEmail(ctx, "reader@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsActive || got.UnsubscribedAt != nil || got.Name != "Reader" {
		t.Fatalf("unexpected subscriber after reactivation: %+v", got)
	}
	if err := repo.Deactivate(ctx, "nobody@example.com", now); !errors.Is(err, commonerrors.ErrRepoNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSiteSettingsSingleton(t *testing.T) {
	db := newTestDB(t)
	repo := NewSiteSettingsRepository(db, nopLogger)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.ID != 1 || settings.SiteName != entities.DefaultSiteName {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	settings.ID = 42
	settings.Tagline = "Hope for all"
	if err := repo.Save(ctx, settings); err != nil {
		t.Fatalf("save: %v", err)
	}
	var count int64
	db.Model(&entities.SiteSettings{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one settings row, got %d", count)
	}
	again, err := repo.Get(ctx)
	if err != nil || again.Tagline != "Hope for all" {
		t.Fatalf("saved settings not returned: %+v %v", again, err)
	}
	if err := repo.Delete(ctx); !errors.Is(err, myErrors.ErrSingletonDelete) {
		t.Fatalf("expected ErrSingletonDelete, got %v", err)
	}
}

func TestTestimonialFlags(t *testing.T) {
	db := newTestDB(t)
	repo := NewTestimonialRepository(db, nopLogger)
	ctx := context.Background()

	pending := &entities.Testimonial{Name: "Sana", Content: "Thank you", TestimonialType: enums.TestimonialPersonal}
	if err := repo.CreateTestimonial(ctx, db, pending); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := repo.ListApproved(ctx, dto.TestimonialFilter{})
	if err != nil || len(list) != 0 {
		t.Fatalf("unapproved testimonial must be hidden: %v %v", list, err)
	}
	if n, _ := repo.CountPending(ctx); n != 1 {
		t.Fatalf("expected 1 pending, got %d", n)
	}
	if _, err := repo.SetFlag(ctx, []uint64{pending.ID}, TestimonialFieldApproved, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	personal := enums.TestimonialPersonal
	list, err = repo.ListApproved(ctx, dto.TestimonialFilter{Type: &personal})
	if err != nil || len(list) != 1 {
		t.Fatalf("approved testimonial should be listed: %v %v", list, err)
	}
	if _, err := repo.SetFlag(ctx, []uint64{pending.ID}, "content", true); err == nil {
		t.Fatalf("unknown flag must be rejected")
	}
}
