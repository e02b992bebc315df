package store

import (
	"database/sql"
	"testing"

	"blogpress/internal/models"
)

// createTestAuthor inserts a throwaway user to satisfy the category FK.
func createTestAuthor(t *testing.T, db *sql.DB, username, email string) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create(username, email, "pw", nil, nil)
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { cleanUsers(t, db, email) })
	return u
}

func TestCategoryCreateAndLookup(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	author := createTestAuthor(t, db, "cat-author", "cat-author@test.local")
	t.Cleanup(func() { cleanCategories(t, db, "tech-and-news") })

	created, err := cs.Create(&models.Category{
		Name:            "Tech & News",
		Slug:            "tech-and-news",
		IsActive:        true,
		CreatedByUserID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "tech-and-news" || !created.IsActive {
		t.Errorf("created category = %+v", created)
	}

	bySlug, err := cs.FindBySlug("tech-and-news")
	if err != nil || bySlug == nil {
		t.Fatalf("FindBySlug: %v, %v", bySlug, err)
	}
	byID, err := cs.FindByID(created.ID)
	if err != nil || byID == nil {
		t.Fatalf("FindByID: %v, %v", byID, err)
	}
	if bySlug.ID != byID.ID {
		t.Error("slug and id lookups disagree")
	}
}

func TestCategoryExistsByNameCaseInsensitive(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	author := createTestAuthor(t, db, "cat-ci", "cat-ci@test.local")
	t.Cleanup(func() { cleanCategories(t, db, "programming") })

	created, err := cs.Create(&models.Category{
		Name:            "Programming",
		Slug:            "programming",
		IsActive:        true,
		CreatedByUserID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, name := range []string{"Programming", "programming", "PROGRAMMING"} {
		got, err := cs.ExistsByName(name, nil)
		if err != nil {
			t.Fatalf("ExistsByName(%q): %v", name, err)
		}
		if !got {
			t.Errorf("ExistsByName(%q) = false, want true", name)
		}
	}

	// The row itself is ignored when excluded, so renaming to the same
	// name does not self-collide.
	got, err := cs.ExistsByName("programming", &created.ID)
	if err != nil {
		t.Fatalf("ExistsByName exclude: %v", err)
	}
	if got {
		t.Error("ExistsByName with excludeID matched the excluded row")
	}
}

func TestCategoryListActive(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	author := createTestAuthor(t, db, "cat-list", "cat-list@test.local")
	t.Cleanup(func() { cleanCategories(t, db, "active-cat", "inactive-cat") })

	if _, err := cs.Create(&models.Category{
		Name: "Active Cat", Slug: "active-cat", IsActive: true, CreatedByUserID: author.ID,
	}); err != nil {
		t.Fatalf("Create active: %v", err)
	}
	inactive, err := cs.Create(&models.Category{
		Name: "Inactive Cat", Slug: "inactive-cat", IsActive: true, CreatedByUserID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}

	inactive.IsActive = false
	if _, err := cs.Update(inactive); err != nil {
		t.Fatalf("Update: %v", err)
	}

	active, err := cs.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, c := range active {
		if c.Slug == "inactive-cat" {
			t.Error("ListActive returned an inactive category")
		}
	}

	all, err := cs.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var sawInactive bool
	for _, c := range all {
		if c.Slug == "inactive-cat" {
			sawInactive = true
		}
	}
	if !sawInactive {
		t.Error("List omitted the inactive category")
	}
}

func TestCategoryDelete(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	author := createTestAuthor(t, db, "cat-del", "cat-del@test.local")

	created, err := cs.Create(&models.Category{
		Name: "Doomed", Slug: "doomed", IsActive: true, CreatedByUserID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := cs.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := cs.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if gone != nil {
		t.Error("category still present after delete")
	}
}
