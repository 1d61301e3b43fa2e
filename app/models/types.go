package models

import "time"

// Span is a single rich-text run inside a content block body.
type Span struct {
	Text string `json:"text"`
}

// ContentBlock is one heading plus rich-text body unit within a post's
// ordered content.
type ContentBlock struct {
	Heading string `json:"heading"`
	Body    []Span `json:"body"`
}

// PostSummary is the listing-page shape of a post. A nil PublicationDate
// means the document has never been published (preview drafts).
type PostSummary struct {
	UID             string     `json:"uid" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Subtitle        string     `json:"subtitle"`
	Author          string     `json:"author"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

// PostDetail is the full post document rendered on a post page.
// Optional fields stay absent (nil pointer or empty string) rather than
// being filled with sentinels.
type PostDetail struct {
	UID             string         `json:"uid" validate:"required"`
	Title           string         `json:"title" validate:"required"`
	Author          string         `json:"author"`
	BannerURL       string         `json:"banner_url,omitempty"`
	PublicationDate *time.Time     `json:"publication_date,omitempty"`
	LastModified    *time.Time     `json:"last_modified,omitempty"`
	Content         []ContentBlock `json:"content"`
}

// PageLink points at a sibling post in publication order.
type PageLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Pagination holds sibling navigation for a post page. A nil side means
// there is no post in that direction; there is no wrap-around.
type Pagination struct {
	Previous *PageLink `json:"previous,omitempty"`
	Next     *PageLink `json:"next,omitempty"`
}
