package models

// Resource documents are stored as-is in the document store. Timestamps are
// RFC3339 UTC strings so that created_at sorts lexicographically.

type Page struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	MetaTitle       *string          `json:"meta_title"`
	MetaDescription *string          `json:"meta_description"`
	IsPublished     bool             `json:"is_published"`
	Sections        []map[string]any `json:"sections"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

func (p Page) DocumentID() string { return p.ID }

type PortfolioItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	ToolsUsed    []string `json:"tools_used"`
	MediaType    *string  `json:"media_type"`
	MediaURL     *string  `json:"media_url"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	IsFeatured   bool     `json:"is_featured"`
	IsPublished  bool     `json:"is_published"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func (p PortfolioItem) DocumentID() string { return p.ID }

type SocialLink struct {
	ID           string `json:"id"`
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	IsVisible    bool   `json:"is_visible"`
	DisplayOrder int    `json:"display_order"`
}

func (s SocialLink) DocumentID() string { return s.ID }

type ContentBlock struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updated_at"`
}

func (c ContentBlock) DocumentID() string { return c.ID }

type NavItem struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Href         string `json:"href"`
	DisplayOrder int    `json:"display_order"`
	IsVisible    bool   `json:"is_visible"`
	IsExternal   bool   `json:"is_external"`
}

func (n NavItem) DocumentID() string { return n.ID }

type Message struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Subject             *string `json:"subject"`
	Message             string  `json:"message"`
	SubscribeNewsletter bool    `json:"subscribe_newsletter"`
	IsRead              bool    `json:"is_read"`
	CreatedAt           string  `json:"created_at"`
}

func (m Message) DocumentID() string { return m.ID }

type Lead struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

func (l Lead) DocumentID() string { return l.ID }

// Settings is a singleton; exactly one document with ID "default" exists
// once anything has been written.
type Settings struct {
	ID           string  `json:"id"`
	SiteName     string  `json:"site_name"`
	LogoURL      *string `json:"logo_url"`
	FaviconURL   *string `json:"favicon_url"`
	PrimaryColor string  `json:"primary_color"`
	FooterText   *string `json:"footer_text"`
}

func (s Settings) DocumentID() string { return s.ID }

// Upload records an image stored in the object store.
type Upload struct {
	ID        string `json:"id"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

func (u Upload) DocumentID() string { return u.ID }
