package inkpress

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Special: chars & symbols!", "special-chars-symbols"},
		{"Already-Slugged", "already-slugged"},
		{"Numbers 123 mixed", "numbers-123-mixed"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestPostMetaUsesExtractedPair(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Description: "Site default"}
	post := BlogPost{Slug: "hello", Title: "Hello World", Teaser: "This is the intro."}

	meta := PostMeta(cfg, post)
	if meta.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", meta.Title, "Hello World")
	}
	if meta.Description != "This is the intro." {
		t.Errorf("Description = %q, want teaser", meta.Description)
	}
	if meta.OGType != "article" {
		t.Errorf("OGType = %q, want %q", meta.OGType, "article")
	}
	if meta.URL != "https://example.com/blog/hello/" {
		t.Errorf("URL = %q", meta.URL)
	}
}

func TestPostMetaEmptyTeaserFallsBack(t *testing.T) {
	// An empty teaser is a legitimate extraction result; the site default
	// fills the description so preview cards are never blank.
	cfg := SiteConfig{URL: "https://example.com", Description: "Site default"}
	post := BlogPost{Slug: "bare", Title: "Bare", Teaser: ""}

	meta := PostMeta(cfg, post)
	if meta.Description != "Site default" {
		t.Errorf("Description = %q, want site default", meta.Description)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := BlogPost{Slug: "a", Tags: []string{"go", "web"}}
	posts := []BlogPost{
		{Slug: "a", Tags: []string{"go"}},
		{Slug: "b", Tags: []string{"GO"}},
		{Slug: "c", Tags: []string{"rust"}},
		{Slug: "d", Tags: []string{"web", "css"}},
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 2 {
		t.Fatalf("got %d related posts, want 2", len(related))
	}
	if related[0].Slug != "b" || related[1].Slug != "d" {
		t.Errorf("related slugs = %s, %s, want b, d", related[0].Slug, related[1].Slug)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Author: "Jo"}
	post := BlogPost{Slug: "hello", Title: "Hello", Teaser: "Intro", Date: "2024-03-01", Tags: []string{"go"}}

	got := BlogPostingJsonLD(cfg, post)
	for _, want := range []string{`"BlogPosting"`, `"Hello"`, `"Intro"`, `"2024-03-01"`, `"go"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON-LD %s missing %s", got, want)
		}
	}
}
