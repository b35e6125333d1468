// Package content loads Markdown posts from a content directory and imports
// them into the store. Each file is split by the extract package; the YAML
// front-matter is then decoded in full for the fields the renderer needs.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/extract"
)

// Meta is the decoded front-matter of a post file. Unrecognized fields are
// collected into Params and ignored rather than rejected.
type Meta struct {
	Title  string         `yaml:"title"`
	Date   string         `yaml:"date"`
	Tags   []string       `yaml:"tags"`
	Slug   string         `yaml:"slug"`
	Draft  bool           `yaml:"draft"`
	Params map[string]any `yaml:",inline"`
}

// Parse turns a raw document into a BlogPost. fallbackSlug (usually the
// filename without extension) is used when neither front-matter slug nor a
// title-derived slug is available.
//
// The title comes from the extractor and is required. The teaser is the text
// before the first <!--more--> marker; a document without a marker gets an
// empty teaser and the site-wide description takes over in preview cards —
// the render is not failed over a missing boundary.
func Parse(doc, fallbackSlug string) (inkpress.BlogPost, error) {
	title, err := extract.Title(doc)
	if err != nil {
		return inkpress.BlogPost{}, err
	}

	teaser, err := extract.Teaser(doc)
	if err != nil {
		if !errors.Is(err, extract.ErrMissingMarker) {
			return inkpress.BlogPost{}, err
		}
		teaser = ""
	}

	front, body := extract.Split(doc)
	var meta Meta
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return inkpress.BlogPost{}, fmt.Errorf("parse front-matter: %w", err)
	}

	slug := meta.Slug
	if slug == "" {
		slug = inkpress.Slugify(title)
	}
	if slug == "" {
		slug = fallbackSlug
	}

	// The marker is a structural token, not content: strip the first
	// occurrence so it never reaches the rendered page.
	body = strings.Replace(body, extract.Marker, "", 1)

	return inkpress.BlogPost{
		Slug:      slug,
		Title:     title,
		Date:      meta.Date,
		Tags:      inkpress.FilterEmpty(meta.Tags),
		Teaser:    teaser,
		Content:   strings.TrimSpace(body),
		Link:      "/blog/" + slug,
		Published: !meta.Draft,
	}, nil
}

// Load parses one Markdown file into a BlogPost.
func Load(path string) (inkpress.BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inkpress.BlogPost{}, err
	}
	post, err := Parse(string(data), slugFromPath(path))
	if err != nil {
		return inkpress.BlogPost{}, fmt.Errorf("%s: %w", path, err)
	}
	return post, nil
}

// LoadDir parses every .md file under dir, fanning out across a small worker
// pool. Extraction is stateless, so documents are processed independently.
// Results come back sorted by date descending, drafts included.
func LoadDir(dir string) ([]inkpress.BlogPost, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	const workers = 4
	jobs := make(chan string)
	var (
		mu    sync.Mutex
		posts []inkpress.BlogPost
		errs  []error
		wg    sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				post, err := Load(path)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					posts = append(posts, post)
				}
				mu.Unlock()
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// Import loads dir and upserts every post into the store, returning the
// number of posts written. Drafts are imported unpublished so they show up
// in the admin dashboard but never on the public site.
func Import(store *inkpress.Store, dir string) (int, error) {
	posts, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, post := range posts {
		if err := store.SavePost(post); err != nil {
			return 0, fmt.Errorf("save %s: %w", post.Slug, err)
		}
	}
	return len(posts), nil
}

func slugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
