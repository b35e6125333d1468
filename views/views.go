// Package views provides the default templ components for an inkpress site:
// public pages with OpenGraph metadata in the head, and the admin screens.
// Sites that want a different look supply their own inkpress.ViewFuncs.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/markdown"
)

// Default returns the built-in view set bound to cfg.
func Default(cfg inkpress.SiteConfig) inkpress.ViewFuncs {
	v := &views{cfg: cfg}
	return inkpress.ViewFuncs{
		Home:           v.Home,
		Post:           v.Post,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminForm:      v.AdminForm,
		AdminImages:    v.AdminImages,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
	}
}

type views struct {
	cfg inkpress.SiteConfig
}

func esc(s string) string {
	return html.EscapeString(s)
}

// layout wraps body in the page shell. meta drives the OpenGraph block: this
// is where the extracted (title, teaser) pair becomes preview-card metadata.
func (v *views) layout(meta inkpress.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\"/>\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", esc(meta.Title))
		if meta.Description != "" {
			fmt.Fprintf(&b, "<meta name=\"description\" content=%q/>\n", esc(meta.Description))
		}
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=%q/>\n", esc(meta.URL))
		fmt.Fprintf(&b, "<meta property=\"og:title\" content=%q/>\n", esc(meta.Title))
		if meta.Description != "" {
			fmt.Fprintf(&b, "<meta property=\"og:description\" content=%q/>\n", esc(meta.Description))
		}
		fmt.Fprintf(&b, "<meta property=\"og:url\" content=%q/>\n", esc(meta.URL))
		fmt.Fprintf(&b, "<meta property=\"og:type\" content=%q/>\n", esc(meta.OGType))
		fmt.Fprintf(&b, "<meta property=\"og:site_name\" content=%q/>\n", esc(v.cfg.Name))
		b.WriteString("<meta name=\"twitter:card\" content=\"summary\"/>\n")
		fmt.Fprintf(&b, "<link rel=\"alternate\" type=\"application/rss+xml\" title=%q href=\"/feed.xml\"/>\n", esc(v.cfg.Name))
		b.WriteString("<link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\"/>\n")
		b.WriteString("<link rel=\"stylesheet\" href=\"/public/css/site.css\"/>\n")
		if jsonLD != "" {
			fmt.Fprintf(&b, "<script type=\"application/ld+json\">%s</script>\n", jsonLD)
		}
		b.WriteString("</head>\n<body>\n")
		fmt.Fprintf(&b, "<header class=\"site-header\"><a href=\"/\" class=\"site-name\">%s</a></header>\n", esc(v.cfg.Name))
		b.WriteString("<main>\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		var f strings.Builder
		f.WriteString("</main>\n")
		fmt.Fprintf(&f, "<footer class=\"site-footer\"><p>%s</p></footer>\n", esc(v.cfg.Name))
		if v.cfg.Dev {
			f.WriteString("<script src=\"/public/livereload.js\"></script>\n")
		}
		f.WriteString("</body>\n</html>\n")
		_, err := io.WriteString(w, f.String())
		return err
	})
}

// Home renders the landing page: site intro, tag filter pills, post listing.
func (v *views) Home(posts []inkpress.BlogPost, activeTag string, tags []string, meta inkpress.PageMeta) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<section class=\"hero\"><h1>%s</h1>", esc(v.cfg.Name))
		if v.cfg.Description != "" {
			fmt.Fprintf(&b, "<p>%s</p>", esc(v.cfg.Description))
		}
		b.WriteString("</section>\n")

		if len(tags) > 0 {
			b.WriteString("<nav class=\"tags\">")
			fmt.Fprintf(&b, "<a href=\"/\" class=%q>all</a>", tagClass(activeTag == ""))
			for _, t := range tags {
				fmt.Fprintf(&b, "<a href=\"/?tag=%s\" class=%q>%s</a>",
					inkpress.PathEscape(t), tagClass(t == activeTag), esc(t))
			}
			b.WriteString("</nav>\n")
		}

		b.WriteString("<section class=\"post-list\">\n")
		if len(posts) == 0 {
			b.WriteString("<p class=\"empty\">Nothing here yet.</p>\n")
		}
		for _, p := range posts {
			b.WriteString("<article class=\"post-card\">")
			fmt.Fprintf(&b, "<h2><a href=%q>%s</a></h2>", esc(p.Link+"/"), esc(p.Title))
			fmt.Fprintf(&b, "<time datetime=%q>%s</time>", esc(p.Date), esc(p.Date))
			if p.Teaser != "" {
				fmt.Fprintf(&b, "<p>%s</p>", esc(p.Teaser))
			}
			b.WriteString("</article>\n")
		}
		b.WriteString("</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return v.layout(meta, inkpress.WebsiteJsonLD(v.cfg), body)
}

// Post renders a single article page. The body Markdown is rendered and
// sanitized on the fly; the teaser already sits in the head via meta.
func (v *views) Post(post inkpress.BlogPost, related []inkpress.BlogPost, meta inkpress.PageMeta) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article class=\"post\">\n")
		fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(post.Title))
		fmt.Fprintf(&b, "<time datetime=%q>%s</time>\n", esc(post.Date), esc(post.Date))
		if len(post.Tags) > 0 {
			b.WriteString("<nav class=\"tags\">")
			for _, t := range post.Tags {
				fmt.Fprintf(&b, "<a href=\"/?tag=%s\" class=\"tag\">%s</a>", inkpress.PathEscape(t), esc(t))
			}
			b.WriteString("</nav>\n")
		}
		b.WriteString("<div class=\"post-body\">\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := markdown.Markdown(post.Content).Render(ctx, w); err != nil {
			return err
		}
		var f strings.Builder
		f.WriteString("</div>\n</article>\n")
		if len(related) > 0 {
			f.WriteString("<aside class=\"related\"><h2>Related posts</h2><ul>")
			for _, p := range related {
				fmt.Fprintf(&f, "<li><a href=%q>%s</a></li>", esc(p.Link+"/"), esc(p.Title))
			}
			f.WriteString("</ul></aside>\n")
		}
		f.WriteString("<p><a href=\"/\">&larr; All posts</a></p>\n")
		_, err := io.WriteString(w, f.String())
		return err
	})
	return v.layout(meta, inkpress.BlogPostingJsonLD(v.cfg, post), body)
}

// AdminLogin renders the password prompt.
func (v *views) AdminLogin(showError bool, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"admin-login\"><h1>Sign in</h1>\n")
		if showError {
			b.WriteString("<p class=\"error\">Wrong password.</p>\n")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/login/\">\n")
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"_csrf\" value=%q/>\n", esc(csrfToken))
		b.WriteString("<input type=\"password\" name=\"password\" autofocus required/>\n")
		b.WriteString("<button type=\"submit\">Sign in</button>\n</form>\n</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return v.layout(v.adminMeta("Sign in"), "", body)
}

// AdminDashboard lists every post, drafts included, with a blank form for
// new posts below the table.
func (v *views) AdminDashboard(posts []inkpress.BlogPost, message string, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"admin\"><h1>Posts</h1>\n")
		if message != "" {
			fmt.Fprintf(&b, "<p class=\"notice\">%s</p>\n", esc(message))
		}
		b.WriteString("<p><a href=\"/admin/images/\">Images</a></p>\n")
		b.WriteString("<form method=\"post\" action=\"/admin/logout/\">")
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"_csrf\" value=%q/>", esc(csrfToken))
		b.WriteString("<button type=\"submit\">Sign out</button></form>\n")
		b.WriteString("<table class=\"post-table\"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>\n")
		for _, p := range posts {
			status := "published"
			if !p.Published {
				status = "draft"
			}
			fmt.Fprintf(&b, "<tr><td><a href=\"/admin/post/%s/\">%s</a></td><td>%s</td><td>%s</td>",
				inkpress.PathEscape(p.Slug), esc(p.Title), esc(p.Date), status)
			fmt.Fprintf(&b, "<td><form method=\"post\" action=\"/admin/delete/%s/\"><input type=\"hidden\" name=\"_csrf\" value=%q/><button type=\"submit\">Delete</button></form></td></tr>\n",
				inkpress.PathEscape(p.Slug), esc(csrfToken))
		}
		b.WriteString("</tbody></table>\n</section>\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		return v.postForm(inkpress.BlogPost{}, csrfToken).Render(ctx, w)
	})
	return v.layout(v.adminMeta("Admin"), "", body)
}

// AdminForm renders the edit page for one post.
func (v *views) AdminForm(post inkpress.BlogPost, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<section class=\"admin\"><h1>Edit: %s</h1>\n", esc(post.Title))
		b.WriteString("<p><a href=\"/admin/\">&larr; Dashboard</a></p>\n</section>\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		return v.postForm(post, csrfToken).Render(ctx, w)
	})
	return v.layout(v.adminMeta("Edit post"), "", body)
}

func (v *views) postForm(post inkpress.BlogPost, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<form class=\"post-form\" method=\"post\" action=\"/admin/save/\">\n")
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"_csrf\" value=%q/>\n", esc(csrfToken))
		fmt.Fprintf(&b, "<label>Title <input name=\"title\" value=%q/></label>\n", esc(post.Title))
		fmt.Fprintf(&b, "<label>Slug <input name=\"slug\" value=%q/></label>\n", esc(post.Slug))
		fmt.Fprintf(&b, "<label>Date <input name=\"date\" value=%q placeholder=\"YYYY-MM-DD\"/></label>\n", esc(post.Date))
		fmt.Fprintf(&b, "<label>Tags <input name=\"tags\" value=%q/></label>\n", esc(inkpress.JoinTags(post.Tags)))
		fmt.Fprintf(&b, "<label>Teaser <textarea name=\"teaser\" rows=\"3\">%s</textarea></label>\n", esc(post.Teaser))
		fmt.Fprintf(&b, "<label>Content <textarea name=\"content\" rows=\"20\">%s</textarea></label>\n", esc(post.Content))
		checked := ""
		if post.Published {
			checked = " checked"
		}
		fmt.Fprintf(&b, "<label>Published <input type=\"checkbox\" name=\"published\"%s/></label>\n", checked)
		b.WriteString("<button type=\"submit\">Save</button>\n</form>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AdminImages renders the upload form and the list of stored images.
func (v *views) AdminImages(images []inkpress.Image, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"admin\"><h1>Images</h1>\n")
		b.WriteString("<p><a href=\"/admin/\">&larr; Dashboard</a></p>\n")
		b.WriteString("<form method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\">\n")
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"_csrf\" value=%q/>\n", esc(csrfToken))
		b.WriteString("<input type=\"file\" name=\"image\" accept=\"image/*\" required/>\n")
		b.WriteString("<button type=\"submit\">Upload</button>\n</form>\n")
		b.WriteString("<ul class=\"image-list\">\n")
		for _, img := range images {
			fmt.Fprintf(&b, "<li><img src=\"/public/uploads/%s\" alt=%q width=\"160\"/> <code>%s</code> %dx%d",
				inkpress.PathEscape(img.Filename), esc(img.OriginalName), esc(img.Filename), img.Width, img.Height)
			fmt.Fprintf(&b, " <form method=\"post\" action=\"/admin/images/delete/%s/\"><input type=\"hidden\" name=\"_csrf\" value=%q/><button type=\"submit\">Delete</button></form></li>\n",
				inkpress.PathEscape(img.Filename), esc(csrfToken))
		}
		b.WriteString("</ul>\n</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return v.layout(v.adminMeta("Images"), "", body)
}

// NotFound renders the styled 404 page.
func (v *views) NotFound() templ.Component {
	return v.statusPage("404", "That page does not exist.")
}

// ServerError renders the styled 500 page.
func (v *views) ServerError() templ.Component {
	return v.statusPage("500", "Something went wrong on our end.")
}

func (v *views) statusPage(code, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<section class=\"status\"><h1>%s</h1><p>%s</p><p><a href=\"/\">Back home</a></p></section>\n",
			esc(code), esc(message))
		return err
	})
	return v.layout(v.adminMeta(code), "", body)
}

func (v *views) adminMeta(title string) inkpress.PageMeta {
	return inkpress.PageMeta{
		Title:       title + " · " + v.cfg.Name,
		Description: "",
		URL:         inkpress.BuildURL(v.cfg.URL),
		OGType:      "website",
	}
}

func tagClass(active bool) string {
	if active {
		return "tag active"
	}
	return "tag"
}
