package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/extract"
)

const samplePost = `---
title: Hello World
date: 2024-03-01
tags: [go, web]
---
This is the intro.
<!--more-->
Rest of the article.
`

func TestParseWellFormed(t *testing.T) {
	post, err := Parse(samplePost, "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", post.Title, "Hello World")
	}
	if post.Teaser != "This is the intro." {
		t.Errorf("Teaser = %q, want %q", post.Teaser, "This is the intro.")
	}
	if post.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", post.Slug, "hello-world")
	}
	if post.Date != "2024-03-01" {
		t.Errorf("Date = %q, want %q", post.Date, "2024-03-01")
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" || post.Tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", post.Tags)
	}
	if !post.Published {
		t.Error("post should be published")
	}
}

func TestParseStripsStructuralArtifacts(t *testing.T) {
	post, err := Parse(samplePost, "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for name, s := range map[string]string{"Teaser": post.Teaser, "Content": post.Content} {
		if strings.Contains(s, extract.Marker) {
			t.Errorf("%s contains the teaser marker: %q", name, s)
		}
		if strings.Contains(s, "title:") {
			t.Errorf("%s contains front-matter text: %q", name, s)
		}
	}
	if post.Content != "This is the intro.\n\nRest of the article." {
		t.Errorf("Content = %q", post.Content)
	}
}

func TestParseMissingTitle(t *testing.T) {
	doc := "---\ndate: 2024-01-01\n---\nbody\n<!--more-->\nrest"
	_, err := Parse(doc, "fallback")
	var missing *extract.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Parse error = %v, want *extract.MissingFieldError", err)
	}
}

func TestParseMissingMarkerTolerated(t *testing.T) {
	doc := "---\ntitle: No Marker\n---\nJust a body.\n"
	post, err := Parse(doc, "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Teaser != "" {
		t.Errorf("Teaser = %q, want empty for marker-less document", post.Teaser)
	}
	if post.Content != "Just a body." {
		t.Errorf("Content = %q", post.Content)
	}
}

func TestParseDraft(t *testing.T) {
	doc := "---\ntitle: WIP\ndraft: true\n---\nIntro.\n<!--more-->\nrest"
	post, err := Parse(doc, "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Published {
		t.Error("draft post should not be published")
	}
}

func TestParseSlugPrecedence(t *testing.T) {
	doc := "---\ntitle: Some Title\nslug: custom-slug\n---\nIntro.\n<!--more-->\nrest"
	post, err := Parse(doc, "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if post.Slug != "custom-slug" {
		t.Errorf("Slug = %q, want front-matter slug to win", post.Slug)
	}
}

func TestParseUnknownFieldsIgnored(t *testing.T) {
	doc := "---\ntitle: T\nlayout: wide\ncover: /img/x.jpg\n---\nIntro.\n<!--more-->\nrest"
	if _, err := Parse(doc, "fallback"); err != nil {
		t.Fatalf("Parse failed on unknown fields: %v", err)
	}
}

func TestLoadDirAndImport(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"first.md":  "---\ntitle: First\ndate: 2024-01-02\n---\nIntro one.\n<!--more-->\nBody one.\n",
		"second.md": "---\ntitle: Second\ndate: 2024-01-01\n---\nIntro two.\n<!--more-->\nBody two.\n",
		"draft.md":  "---\ntitle: Draft\ndate: 2024-01-03\ndraft: true\n---\nIntro.\n<!--more-->\nBody.\n",
		"notes.txt": "ignored, not markdown",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	// Date descending.
	if posts[0].Title != "Draft" || posts[1].Title != "First" || posts[2].Title != "Second" {
		t.Errorf("order = %s, %s, %s", posts[0].Title, posts[1].Title, posts[2].Title)
	}

	store, err := inkpress.NewStore(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	n, err := Import(store, dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Import wrote %d posts, want 3", n)
	}

	published, err := store.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(published) != 2 {
		t.Errorf("got %d published posts, want 2 (draft excluded)", len(published))
	}

	got, err := store.GetPost("first")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Teaser != "Intro one." {
		t.Errorf("Teaser = %q, want %q", got.Teaser, "Intro one.")
	}
}

func TestLoadDirReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\ndate: 2024-01-01\n---\nno title here\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("LoadDir should fail when a file has no title field")
	}
}
