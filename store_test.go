package inkpress

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// The store opens the database with sql.Open("sqlite", ...), which only
// works when the driver import in store.go registers it.
func TestSQLiteDriverRegistered(t *testing.T) {
	for _, name := range sql.Drivers() {
		if name == "sqlite" {
			return
		}
	}
	t.Fatalf(`sql.Drivers() = %v, "sqlite" not registered`, sql.Drivers())
}

func TestSaveAndGetPost(t *testing.T) {
	store := newTestStore(t)
	post := BlogPost{
		Slug:      "hello-world",
		Title:     "Hello World",
		Date:      "2024-03-01",
		Tags:      []string{"Go", "web"},
		Teaser:    "A short intro.",
		Content:   "Full body text.",
		Published: true,
	}
	if err := store.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := store.GetPost("hello-world")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Teaser != post.Teaser {
		t.Errorf("Teaser = %q, want %q", got.Teaser, post.Teaser)
	}
	if got.Link != "/blog/hello-world" {
		t.Errorf("Link = %q", got.Link)
	}
	// Tags are normalized to lowercase on save.
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", got.Tags)
	}
}

func TestSavePostUpserts(t *testing.T) {
	store := newTestStore(t)
	post := BlogPost{Slug: "p", Title: "First", Date: "2024-01-01", Published: true}
	if err := store.SavePost(post); err != nil {
		t.Fatal(err)
	}
	post.Title = "Updated"
	if err := store.SavePost(post); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetPost("p")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated")
	}
	all, err := store.ListAllPosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("got %d posts after upsert, want 1", len(all))
	}
}

func TestListPostsExcludesDrafts(t *testing.T) {
	store := newTestStore(t)
	seed := []BlogPost{
		{Slug: "live", Title: "Live", Date: "2024-01-02", Published: true},
		{Slug: "wip", Title: "WIP", Date: "2024-01-03", Published: false},
	}
	for _, p := range seed {
		if err := store.SavePost(p); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := store.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Errorf("ListPosts = %v, want only the published post", posts)
	}

	if _, err := store.GetPost("wip"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetPost(draft) err = %v, want sql.ErrNoRows", err)
	}
	if _, err := store.GetPostAny("wip"); err != nil {
		t.Errorf("GetPostAny(draft) failed: %v", err)
	}

	all, err := store.ListAllPosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("ListAllPosts = %d posts, want 2", len(all))
	}
}

func TestListPostsByTag(t *testing.T) {
	store := newTestStore(t)
	seed := []BlogPost{
		{Slug: "a", Title: "A", Date: "2024-01-03", Tags: []string{"go"}, Published: true},
		{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true},
		{Slug: "c", Title: "C", Date: "2024-01-01", Tags: []string{"misc"}, Published: true},
	}
	for _, p := range seed {
		if err := store.SavePost(p); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := store.ListPosts("go")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts for tag go, want 2", len(posts))
	}
	// Date descending.
	if posts[0].Slug != "a" || posts[1].Slug != "b" {
		t.Errorf("order = %s, %s", posts[0].Slug, posts[1].Slug)
	}

	// Tag match is case-insensitive and must not hit substrings of other tags.
	posts, err = store.ListPosts("GO")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Errorf("got %d posts for tag GO, want 2", len(posts))
	}
	posts, err = store.ListPosts("w")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts for tag w, want 0", len(posts))
	}
}

func TestListTags(t *testing.T) {
	store := newTestStore(t)
	seed := []BlogPost{
		{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"Go", "web"}, Published: true},
		{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"go"}, Published: true},
		{Slug: "d", Title: "D", Date: "2024-01-03", Tags: []string{"secret"}, Published: false},
	}
	for _, p := range seed {
		if err := store.SavePost(p); err != nil {
			t.Fatal(err)
		}
	}

	tags, err := store.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("ListTags = %v, want [go web]", tags)
	}
}

func TestDeletePost(t *testing.T) {
	store := newTestStore(t)
	if err := store.SavePost(BlogPost{Slug: "gone", Title: "Gone", Date: "2024-01-01", Published: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePost("gone"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := store.GetPostAny("gone"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetPostAny after delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestImageCRUD(t *testing.T) {
	store := newTestStore(t)
	img := Image{
		Filename:     "photo.jpg",
		OriginalName: "IMG_0042.jpeg",
		Width:        1200,
		Height:       800,
		Size:         123456,
		UploadedAt:   "2024-03-01T10:00:00Z",
	}
	if err := store.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := store.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0] != img {
		t.Errorf("image = %+v, want %+v", images[0], img)
	}

	if err := store.DeleteImage("photo.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = store.ListImages()
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images after delete, want 0", len(images))
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{",go,web,", []string{"go", "web"}},
		{"go,web", []string{"go", "web"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}
