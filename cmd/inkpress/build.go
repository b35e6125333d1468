package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/content"
	"github.com/evandert/inkpress/views"
)

// runBuild exports the site as static files: the home page, one page per
// published post, the feed, the sitemap, robots.txt, and a copy of the
// static asset directory. Content is read straight from the Markdown files;
// the database is not touched.
func runBuild(args []string) error {
	flags := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := flags.String("config", "site.yaml", "path to the site config file")
	outDir := flags.String("out", "", "output directory (overrides config)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := inkpress.LoadSiteConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.Dev = false
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	all, err := content.LoadDir(cfg.ContentDir)
	if err != nil {
		return err
	}
	var posts []inkpress.BlogPost
	for _, p := range all {
		if p.Published {
			posts = append(posts, p)
		}
	}

	v := views.Default(cfg)

	if err := renderToFile(filepath.Join(cfg.OutputDir, "index.html"),
		v.Home(posts, "", collectTags(posts), inkpress.SiteMeta(cfg))); err != nil {
		return err
	}
	for _, post := range posts {
		related := inkpress.FilterRelatedPosts(post, posts)
		page := v.Post(post, related, inkpress.PostMeta(cfg, post))
		out := filepath.Join(cfg.OutputDir, "blog", post.Slug, "index.html")
		if err := renderToFile(out, page); err != nil {
			return err
		}
	}

	if err := writeToFile(filepath.Join(cfg.OutputDir, "feed.xml"), func(w io.Writer) error {
		return inkpress.WriteRSS(w, cfg, posts)
	}); err != nil {
		return err
	}
	if err := writeToFile(filepath.Join(cfg.OutputDir, "sitemap.xml"), func(w io.Writer) error {
		return inkpress.WriteSitemap(w, cfg, posts)
	}); err != nil {
		return err
	}
	if err := writeToFile(filepath.Join(cfg.OutputDir, "robots.txt"), func(w io.Writer) error {
		return inkpress.WriteRobots(w, cfg)
	}); err != nil {
		return err
	}

	if err := copyStaticAssets(cfg.StaticDir, filepath.Join(cfg.OutputDir, "public")); err != nil {
		return err
	}

	fmt.Printf("Built %d pages into %s\n", len(posts)+1, cfg.OutputDir)
	return nil
}

func collectTags(posts []inkpress.BlogPost) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func renderToFile(path string, c templ.Component) error {
	return writeToFile(path, func(w io.Writer) error {
		return c.Render(context.Background(), w)
	})
}

func writeToFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copyStaticAssets mirrors the static directory into the build output.
// A missing static directory is not an error.
func copyStaticAssets(src, dst string) error {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, in); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
