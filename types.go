package inkpress

// BlogPost is the core content type. Posts originate as Markdown files with
// YAML front-matter and a teaser marker, get imported into SQLite, and are
// rendered by the view layer.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Teaser    string // text before the <!--more--> marker; feeds og:description and RSS
	Link      string
	Slug      string
	Content   string // Markdown body, teaser marker stripped; rendered at view time
	Published bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>
// template. For post pages Title and Description come straight from the
// front-matter extractor.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Image is stored metadata for an uploaded media file.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
