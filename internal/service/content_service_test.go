package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
	"portfolio/internal/security"
)

func newTestProjects(t *testing.T) (*ProjectService, *memProjectStore, *memCache, *memObjectStore) {
	t.Helper()
	store := newMemProjectStore()
	cache := newMemCache()
	objects := newMemObjectStore()
	svc := NewProjectService(store, newTestUploads(objects, 1<<20), cache, security.NewSanitizer(), nopLogger)
	return svc, store, cache, objects
}

func strPtr(s string) *string { return &s }

func TestProjectService_CreateSanitisesAndAssignsID(t *testing.T) {
	svc, store, _, _ := newTestProjects(t)

	created, err := svc.Create(context.Background(), models.Project{
		Title:               "  <b>Portfolio</b> ",
		Description:         "Personal site<script>alert(1)</script>",
		DetailedDescription: strPtr("<p></p>"),
		StartDate:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Portfolio", created.Title)
	assert.Equal(t, "Personal site", created.Description)
	assert.Nil(t, created.DetailedDescription)
	assert.Equal(t, []string{}, created.Technologies)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created, store.projects[created.ID])
}

func TestProjectService_CreateRequiresTitle(t *testing.T) {
	svc, _, _, _ := newTestProjects(t)

	_, err := svc.Create(context.Background(), models.Project{Title: "<i></i>", Description: "d"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectService_ListIsCachedUntilWrite(t *testing.T) {
	svc, store, cache, _ := newTestProjects(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Project{Title: "A", Description: "a", IsFeatured: true})
	require.NoError(t, err)

	first, err := svc.List(ctx, false)
	require.NoError(t, err)
	second, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, store.lists)

	_, err = svc.Create(ctx, models.Project{Title: "B", Description: "b"})
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, projectsResource)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	featured, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, featured, 1)
	assert.Equal(t, 3, store.lists)
}

func TestProjectService_CacheFailureFallsBackToStore(t *testing.T) {
	svc, store, cache, _ := newTestProjects(t)
	cache.failGet = true

	_, err := svc.Create(context.Background(), models.Project{Title: "A", Description: "a"})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, store.lists)
}

func TestProjectService_WriteDuringLoadDoesNotCacheStaleList(t *testing.T) {
	svc, store, cache, _ := newTestProjects(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Project{Title: "A", Description: "a"})
	require.NoError(t, err)

	store.onList = func() {
		store.onList = nil
		require.NoError(t, cache.Invalidate(ctx, projectsResource))
	}
	_, err = svc.List(ctx, false)
	require.NoError(t, err)

	_, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.lists)

	_, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.lists)
}

func TestProjectService_KeepsLiteralCharacters(t *testing.T) {
	svc, store, _, _ := newTestProjects(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Project{Title: "R&D Rustem's site", Description: "a < b"})
	require.NoError(t, err)
	assert.Equal(t, "R&D Rustem's site", created.Title)
	assert.Equal(t, "a < b", created.Description)

	title := "<em>R&D</em> v2"
	updated, err := svc.Update(ctx, created.ID, models.ProjectPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "R&D v2", updated.Title)
	assert.Equal(t, "a < b", store.projects[created.ID].Description)
}

func TestSkillService_CategoryIsFilteredFromCachedListing(t *testing.T) {
	store := &memSkillStore{}
	cache := newMemCache()
	svc := NewSkillService(store, cache, security.NewSanitizer(), nopLogger)
	ctx := context.Background()

	for i, s := range []models.Skill{
		{Name: "Go", Category: "Backend", ProficiencyLevel: 90},
		{Name: "Angular", Category: "Frontend", ProficiencyLevel: 80},
		{Name: "PostgreSQL", Category: "Backend", ProficiencyLevel: 85},
	} {
		s.DisplayOrder = i
		_, err := svc.Create(ctx, s)
		require.NoError(t, err)
	}

	backend, err := svc.List(ctx, "Backend")
	require.NoError(t, err)
	require.Len(t, backend, 2)
	assert.Equal(t, "Go", backend[0].Name)
	assert.Equal(t, "PostgreSQL", backend[1].Name)

	for i := 0; i < 20; i++ {
		none, err := svc.List(ctx, fmt.Sprintf("junk-%d", i))
		require.NoError(t, err)
		assert.Empty(t, none)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.Equal(t, []string{""}, store.lists)
	assert.Len(t, cache.entries, 1)
}

func TestProjectService_UpdateIsPartial(t *testing.T) {
	svc, _, _, _ := newTestProjects(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Project{
		Title:        "A",
		Description:  "a",
		Technologies: []string{"go"},
		DisplayOrder: 3,
	})
	require.NoError(t, err)

	featured := true
	updated, err := svc.Update(ctx, created.ID, models.ProjectPatch{IsFeatured: &featured})
	require.NoError(t, err)

	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, []string{"go"}, updated.Technologies)
	assert.Equal(t, 3, updated.DisplayOrder)
}

func TestProjectService_MissingIDIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestProjects(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, "missing", models.ProjectPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	_, err = svc.AttachImage(ctx, "missing", bytes.NewReader(pngBytes), "image/png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectService_AttachImageReplacesPrevious(t *testing.T) {
	svc, _, _, objects := newTestProjects(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Project{Title: "A", Description: "a"})
	require.NoError(t, err)

	first, err := svc.AttachImage(ctx, created.ID, bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)
	require.NotNil(t, first.ImageURL)
	assert.True(t, strings.HasPrefix(*first.ImageURL, objectBaseURL+"projects/"))

	second, err := svc.AttachImage(ctx, created.ID, bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, *first.ImageURL, *second.ImageURL)

	firstKey, _ := objects.KeyFromURL(*first.ImageURL)
	assert.Equal(t, []string{firstKey}, objects.removed)
	assert.Len(t, objects.objects, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, objects.objects)
}

func TestProjectService_AttachImageRejectsSVG(t *testing.T) {
	svc, store, _, _ := newTestProjects(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Project{Title: "A", Description: "a"})
	require.NoError(t, err)

	_, err = svc.AttachImage(ctx, created.ID, strings.NewReader("<svg></svg>"), "image/svg+xml")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Nil(t, store.projects[created.ID].ImageURL)
}

func TestValidateSkill(t *testing.T) {
	tests := []struct {
		name  string
		skill models.Skill
		ok    bool
	}{
		{"valid", models.Skill{Name: "Go", Category: "Backend", ProficiencyLevel: 90}, true},
		{"lower bound", models.Skill{Name: "Go", Category: "Backend", ProficiencyLevel: 1}, true},
		{"upper bound", models.Skill{Name: "Go", Category: "Backend", ProficiencyLevel: 100}, true},
		{"zero", models.Skill{Name: "Go", Category: "Backend", ProficiencyLevel: 0}, false},
		{"over", models.Skill{Name: "Go", Category: "Backend", ProficiencyLevel: 101}, false},
		{"no name", models.Skill{Category: "Backend", ProficiencyLevel: 50}, false},
		{"no category", models.Skill{Name: "Go", ProficiencyLevel: 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSkill(tt.skill)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateEducation(t *testing.T) {
	gpa := 3.8
	high := 7.0
	assert.NoError(t, validateEducation(models.Education{Institution: "MIT", Degree: "BSc", GPA: &gpa}))
	assert.NoError(t, validateEducation(models.Education{Institution: "MIT", Degree: "BSc"}))
	assert.ErrorIs(t, validateEducation(models.Education{Institution: "MIT", Degree: "BSc", GPA: &high}), ErrInvalidInput)
	assert.ErrorIs(t, validateEducation(models.Education{Degree: "BSc"}), ErrInvalidInput)
}

func TestContactService_SubmitSanitises(t *testing.T) {
	store := &memContactStore{}
	svc := NewContactService(store, security.NewSanitizer(), nopLogger)

	msg, err := svc.Submit(context.Background(), ContactInput{
		Name:    "Eve <img src=x onerror=alert(1)>",
		Email:   "eve@x.com",
		Subject: strPtr("   "),
		Message: "<a href=\"javascript:alert(1)\">hi</a> there",
	})
	require.NoError(t, err)

	assert.Equal(t, "Eve", msg.Name)
	assert.Nil(t, msg.Subject)
	assert.Equal(t, "hi there", msg.Message)
	assert.False(t, msg.IsRead)
	require.Len(t, store.messages, 1)
	assert.Equal(t, msg, store.messages[0])
}

func TestContactService_SubmitRequiresMessage(t *testing.T) {
	svc := NewContactService(&memContactStore{}, security.NewSanitizer(), nopLogger)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Eve", Email: "eve@x.com", Message: "<b></b>"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContactService_PurgeRead(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &memContactStore{messages: []models.ContactMessage{
		{ID: "old-read", IsRead: true, CreatedAt: now.Add(-100 * 24 * time.Hour)},
		{ID: "old-unread", CreatedAt: now.Add(-100 * 24 * time.Hour)},
		{ID: "new-read", IsRead: true, CreatedAt: now.Add(-time.Hour)},
	}}
	svc := NewContactService(store, security.NewSanitizer(), nopLogger)
	svc.now = func() time.Time { return now }

	removed, err := svc.PurgeRead(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, now.Add(-90*24*time.Hour), store.cutoff)

	ids := []string{}
	for _, m := range store.messages {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"old-unread", "new-read"}, ids)
}

func TestContactService_MarkReadAndDeleteUnknown(t *testing.T) {
	svc := NewContactService(&memContactStore{}, security.NewSanitizer(), nopLogger)

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "nope"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), ErrNotFound)
}
