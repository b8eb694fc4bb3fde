package domain

import "time"

// BlogPost is a simple CMS article. Slug derives from Title and is recomputed
// whenever the title changes.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	Image     string    `json:"image,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MediaAsset is an uploaded file in the media library. UsedBy records the
// entity ids referencing the asset; deleting an in-use asset requires the
// two-step request/confirm flow in the media container.
type MediaAsset struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType,omitempty"`
	SizeBytes int64     `json:"sizeBytes,omitempty"`
	AltText   string    `json:"altText,omitempty"`
	UsedBy    []string  `json:"usedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SEOSettings is a single global document of meta defaults.
type SEOSettings struct {
	SiteTitle       string `json:"siteTitle"`
	TitleTemplate   string `json:"titleTemplate,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	OGImage         string `json:"ogImage,omitempty"`
	CanonicalBase   string `json:"canonicalBase,omitempty"`
	RobotsIndex     bool   `json:"robotsIndex"`
}

// ActivityLog is an append-only audit entry. Listed newest-first; ids carry a
// random suffix because several entries can land in the same millisecond.
type ActivityLog struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
