package cms

import (
	"fmt"
	"time"

	"spacetraveling/app/models"
)

// Raw wire shapes of the content API. Mapping into models is an
// explicit step so that a malformed document fails loudly instead of
// leaking half-empty structs into the views.

type rawSearchResponse struct {
	Results  []rawDocument `json:"results"`
	NextPage string        `json:"next_page"`
}

type rawDocument struct {
	UID                  string  `json:"uid"`
	Type                 string  `json:"type"`
	FirstPublicationDate string  `json:"first_publication_date"`
	LastPublicationDate  string  `json:"last_publication_date"`
	Data                 rawData `json:"data"`
}

type rawData struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Author   string     `json:"author"`
	Banner   rawBanner  `json:"banner"`
	Content  []rawBlock `json:"content"`
}

type rawBanner struct {
	URL string `json:"url"`
}

type rawBlock struct {
	Heading string    `json:"heading"`
	Body    []rawSpan `json:"body"`
}

type rawSpan struct {
	Text string `json:"text"`
}

// mapSummary narrows a raw document to its listing shape, validating
// the required fields.
func mapSummary(doc rawDocument) (models.PostSummary, error) {
	published, err := parseOptionalTime(doc.FirstPublicationDate)
	if err != nil {
		return models.PostSummary{}, fmt.Errorf("document %q: first_publication_date: %w", doc.UID, err)
	}

	summary := models.PostSummary{
		UID:             doc.UID,
		Title:           doc.Data.Title,
		Subtitle:        doc.Data.Subtitle,
		Author:          doc.Data.Author,
		PublicationDate: published,
	}
	if err := summary.Validate(); err != nil {
		return models.PostSummary{}, fmt.Errorf("document %q: %w", doc.UID, err)
	}

	return summary, nil
}

// mapDetail maps a raw document to the full post shape, validating the
// required fields and preserving content block order.
func mapDetail(doc rawDocument) (*models.PostDetail, error) {
	published, err := parseOptionalTime(doc.FirstPublicationDate)
	if err != nil {
		return nil, fmt.Errorf("document %q: first_publication_date: %w", doc.UID, err)
	}
	modified, err := parseOptionalTime(doc.LastPublicationDate)
	if err != nil {
		return nil, fmt.Errorf("document %q: last_publication_date: %w", doc.UID, err)
	}

	detail := &models.PostDetail{
		UID:             doc.UID,
		Title:           doc.Data.Title,
		Author:          doc.Data.Author,
		BannerURL:       doc.Data.Banner.URL,
		PublicationDate: published,
		LastModified:    modified,
		Content:         mapContent(doc.Data.Content),
	}
	if err := detail.Validate(); err != nil {
		return nil, fmt.Errorf("document %q: %w", doc.UID, err)
	}

	return detail, nil
}

func mapContent(blocks []rawBlock) []models.ContentBlock {
	if blocks == nil {
		return nil
	}
	mapped := make([]models.ContentBlock, 0, len(blocks))
	for _, blk := range blocks {
		spans := make([]models.Span, 0, len(blk.Body))
		for _, sp := range blk.Body {
			spans = append(spans, models.Span{Text: sp.Text})
		}
		mapped = append(mapped, models.ContentBlock{Heading: blk.Heading, Body: spans})
	}
	return mapped
}

// parseOptionalTime parses an RFC 3339 timestamp, treating the empty
// string as absent.
func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
