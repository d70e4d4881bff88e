package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

func TestSiteSettings_LoadAndUpdate(t *testing.T) {
	db := newTestDB(t)
	r := newRepos(db)
	ctx := context.Background()
	publisher := createStaff(t, db, "publisher", enums.RolePublisher)
	author := createStaff(t, db, "author", enums.RoleAuthor)

	svc := NewSiteSettingsService(r.settings, nopLogger)
	if got := svc.Current().SiteName; got != entities.DefaultSiteName {
		t.Errorf("site name before load = %q", got)
	}
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	req := &dto.UpdateSiteSettingsRequest{
		SiteName:     "Foundation",
		Tagline:      "Clean water for all",
		ContactEmail: "info@example.org",
	}
	if _, err := svc.Update(ctx, author, req); !errors.Is(err, myErrors.ErrPermissionDenied) {
		t.Errorf("author update err = %v, want ErrPermissionDenied", err)
	}
	if svc.Current().SiteName != entities.DefaultSiteName {
		t.Error("denied update changed the in-memory copy")
	}

	updated, err := svc.Update(ctx, publisher, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SiteName != "Foundation" || svc.Current().Tagline != "Clean water for all" {
		t.Errorf("updated = %+v", updated)
	}

	// 新实例从数据库加载到同一份设置，且仍只有一行
	reloaded := NewSiteSettingsService(r.settings, nopLogger)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if reloaded.Current().ContactEmail != "info@example.org" {
		t.Errorf("reloaded = %+v", reloaded.Current())
	}
	var rows int64
	db.Model(&entities.SiteSettings{}).Count(&rows)
	if rows != 1 {
		t.Errorf("settings rows = %d, want 1", rows)
	}
}

func TestSiteContent_Pages(t *testing.T) {
	f := newBlogFixture(t)
	ctx := context.Background()

	settings := NewSiteSettingsService(f.repos.settings, nopLogger)
	if err := settings.Load(ctx); err != nil {
		t.Fatal(err)
	}
	svc := NewSiteContentService(f.public, settings, f.repos.partners, f.repos.testimonials, f.repos.gallery, nopLogger)

	for i, name := range []string{"Alpha Trust", "Beta Trust", "Gamma Trust", "Delta Trust", "Epsilon Trust"} {
		if err := f.repos.partners.CreatePartner(ctx, &entities.Partner{Name: name, IsActive: true, DisplayOrder: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.repos.partners.CreatePartner(ctx, &entities.Partner{Name: "Hidden", IsActive: false}); err != nil {
		t.Fatal(err)
	}

	testimonials := []*entities.Testimonial{
		{Name: "Approved Featured", Content: "a", TestimonialType: enums.TestimonialPersonal, IsApproved: true, IsFeatured: true},
		{Name: "Approved Donor", Content: "b", TestimonialType: enums.TestimonialDonor, IsApproved: true},
		{Name: "Pending", Content: "c", TestimonialType: enums.TestimonialPersonal, IsFeatured: true},
	}
	for _, tm := range testimonials {
		if err := f.repos.testimonials.CreateTestimonial(ctx, f.db, tm); err != nil {
			t.Fatal(err)
		}
	}

	for _, item := range []*entities.GalleryItem{
		{Title: "Well opening", Image: "well.jpg", Category: enums.GalleryImpact, IsFeatured: true},
		{Title: "Unfeatured impact", Image: "other.jpg", Category: enums.GalleryImpact},
		{Title: "Gala", Image: "gala.jpg", Category: enums.GalleryEvent},
	} {
		if err := f.repos.gallery.CreateItem(ctx, item); err != nil {
			t.Fatal(err)
		}
	}

	home, err := svc.Home(ctx)
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if len(home.Partners) != 4 || home.Partners[0].Name != "Alpha Trust" {
		t.Errorf("home partners = %+v", home.Partners)
	}
	if len(home.Testimonials) != 1 || home.Testimonials[0].Name != "Approved Featured" {
		t.Errorf("home testimonials = %+v", home.Testimonials)
	}
	if home.Settings.SiteName != entities.DefaultSiteName || len(home.FeaturedPosts) != 0 {
		t.Errorf("home settings/posts = %+v / %d", home.Settings, len(home.FeaturedPosts))
	}

	mission, err := svc.Mission(ctx)
	if err != nil {
		t.Fatalf("mission: %v", err)
	}
	if len(mission.Testimonials) != 1 || len(mission.ImpactGallery) != 1 || mission.ImpactGallery[0].Title != "Well opening" {
		t.Errorf("mission = %+v", mission)
	}

	about, err := svc.About(ctx)
	if err != nil {
		t.Fatalf("about: %v", err)
	}
	if len(about.Partners) != 5 || len(about.EventGallery) != 1 {
		t.Errorf("about partners=%d events=%d", len(about.Partners), len(about.EventGallery))
	}

	all, err := svc.Testimonials(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("public testimonials = %d, want 2 approved", len(all))
	}

	featured := true
	gallery, err := svc.Gallery(ctx, dto.GalleryQuery{Featured: &featured})
	if err != nil {
		t.Fatal(err)
	}
	if len(gallery) != 1 {
		t.Errorf("featured gallery = %d", len(gallery))
	}
	gallery, err = svc.Gallery(ctx, dto.GalleryQuery{Category: enums.GalleryImpact})
	if err != nil {
		t.Fatal(err)
	}
	if len(gallery) != 2 {
		t.Errorf("impact gallery = %d", len(gallery))
	}
}
