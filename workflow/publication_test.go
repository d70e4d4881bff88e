package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/Xushengqwer/foundation_service/models/entities"
	"github.com/Xushengqwer/foundation_service/models/enums"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

var (
	publisher = Actor{AccountID: 1, Role: enums.RolePublisher}
	author    = Actor{AccountID: 2, Role: enums.RoleAuthor}
	stranger  = Actor{AccountID: 3, Role: enums.RoleAuthor}
)

func statusPtr(s enums.PostStatus) *enums.PostStatus { return &s }
func boolPtr(b bool) *bool { return &b }

func draftBy(a Actor) *entities.BlogPost {
	return NewDraft(a, Content{Title: "Original", Content: "Body", Category: enums.CategoryBlog}, "original")
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to enums.PostStatus
		want     bool
	}{
		{enums.PostStatusDraft, enums.PostStatusPublished, true},
		{enums.PostStatusDraft, enums.PostStatusArchived, true},
		{enums.PostStatusPublished, enums.PostStatusArchived, true},
		{enums.PostStatusPublished, enums.PostStatusDraft, true},
		{enums.PostStatusArchived, enums.PostStatusDraft, false},
		{enums.PostStatusArchived, enums.PostStatusPublished, false},
		{enums.PostStatusDraft, enums.PostStatusDraft, false},
		{enums.PostStatusDraft, enums.PostStatus("deleted"), false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNewDraftForcesDraftAndAuthor(t *testing.T) {
	post := draftBy(author)
	if post.Status != enums.PostStatusDraft {
		t.Fatalf("expected draft, got %s", post.Status)
	}
	if !post.IsOwnedBy(author.AccountID) {
		t.Fatalf("expected author %d to own the post", author.AccountID)
	}
	if post.PublishedAt != nil || post.IsFeatured || post.ViewCount != 0 {
		t.Fatalf("new draft carries publication fields: %+v", post)
	}
}

func TestNewDraftDefaultsCategory(t *testing.T) {
	post := NewDraft(author, Content{Title: "t", Content: "c"}, "t")
	if post.Category != enums.CategoryBlog {
		t.Fatalf("expected default category blog, got %s", post.Category)
	}
}

func TestAuthorEditIgnoresStatusAndFeatured(t *testing.T) {
	post := draftBy(author)
	edit := Edit{
		Content:    Content{Title: "Rewritten", Content: "New body", Category: enums.CategoryNews},
		Status:     statusPtr(enums.PostStatusPublished),
		IsFeatured: boolPtr(true),
	}
	change, err := ApplyEdit(author, post, edit, time.Now())
	if err != nil {
		t.Fatalf("author edit: %v", err)
	}
	if change.Changed() {
		t.Fatalf("author edit must not change status: %+v", change)
	}
	if post.Status != enums.PostStatusDraft || post.IsFeatured || post.PublishedAt != nil {
		t.Fatalf("author edit leaked publication fields: %+v", post)
	}
	if post.Title != "Rewritten" || post.Category != enums.CategoryNews {
		t.Fatalf("content fields not applied: %+v", post)
	}
}

func TestEditByNonOwnerDenied(t *testing.T) {
	post := draftBy(author)
	_, err := ApplyEdit(stranger, post, Edit{Content: Content{Title: "Hijack", Content: "x"}}, time.Now())
	if !errors.Is(err, myErrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if post.Title != "Original" {
		t.Fatalf("post mutated after denied edit: %+v", post)
	}
}

func TestPublisherPublishSetsPublishedAtOnce(t *testing.T) {
	post := draftBy(author)
	first := time.Date(2025, 12, 17, 10, 0, 0, 0, time.UTC)

	change, err := ApplyEdit(publisher, post, Edit{
		Content: Content{Title: "Original", Content: "Body"},
		Status:  statusPtr(enums.PostStatusPublished),
	}, first)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !change.Changed() || change.To != enums.PostStatusPublished {
		t.Fatalf("unexpected change: %+v", change)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("published_at not set: %v", post.PublishedAt)
	}

	// 回到草稿再发布，published_at 保持首次发布时间
	if _, err := ChangeStatus(publisher, post, enums.PostStatusDraft, first.Add(time.Hour)); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("published_at cleared on unpublish: %v", post.PublishedAt)
	}
	if _, err := ChangeStatus(publisher, post, enums.PostStatusPublished, first.Add(2*time.Hour)); err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !post.PublishedAt.Equal(first) {
		t.Fatalf("published_at overwritten on republish: %v", post.PublishedAt)
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	post := draftBy(publisher)
	if _, err := ChangeStatus(publisher, post, enums.PostStatusArchived, time.Now()); err != nil {
		t.Fatalf("archive: %v", err)
	}
	_, err := ApplyEdit(publisher, post, Edit{
		Content: Content{Title: "Changed", Content: "Body"},
		Status:  statusPtr(enums.PostStatusPublished),
	}, time.Now())
	if !errors.Is(err, myErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if post.Title != "Original" || post.Status != enums.PostStatusArchived {
		t.Fatalf("post mutated after rejected edit: %+v", post)
	}
}

func TestPublisherSameStatusIsNoop(t *testing.T) {
	post := draftBy(author)
	change, err := ApplyEdit(publisher, post, Edit{
		Content:    Content{Title: "Same", Content: "Body"},
		Status:     statusPtr(enums.PostStatusDraft),
		IsFeatured: boolPtr(true),
	}, time.Now())
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if change.Changed() {
		t.Fatalf("same status must not count as a change")
	}
	if !post.IsFeatured {
		t.Fatalf("publisher featured flag not applied")
	}
}

func TestChangeStatusRequiresPublisher(t *testing.T) {
	post := draftBy(author)
	if _, err := ChangeStatus(author, post, enums.PostStatusPublished, time.Now()); !errors.Is(err, myErrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if err := SetFeatured(author, post, true); !errors.Is(err, myErrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestAuthorizeDelete(t *testing.T) {
	if err := AuthorizeDelete(publisher); err != nil {
		t.Fatalf("publisher delete: %v", err)
	}
	if err := AuthorizeDelete(author); !errors.Is(err, myErrors.ErrPermissionDenied) {
		t.Fatalf("author delete should be denied, got %v", err)
	}
}

func TestListScope(t *testing.T) {
	if ListScope(publisher) != nil {
		t.Fatalf("publisher should see every post")
	}
	scope := ListScope(author)
	if scope == nil || *scope != author.AccountID {
		t.Fatalf("author scope should be own id, got %v", scope)
	}
}

func TestFeaturedImageKeptWhenNil(t *testing.T) {
	img := "site/posts/a.jpg"
	post := NewDraft(author, Content{Title: "t", Content: "c", FeaturedImage: &img}, "t")
	if _, err := ApplyEdit(author, post, Edit{Content: Content{Title: "t2", Content: "c"}}, time.Now()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !post.FeaturedImage.Valid || post.FeaturedImage.String != img {
		t.Fatalf("featured image dropped: %+v", post.FeaturedImage)
	}
}
