package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostSummaryValidation(t *testing.T) {
	published := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		summary *PostSummary
		wantErr bool
	}{
		{
			name: "valid summary",
			summary: &PostSummary{
				UID:             "how-to-use-hooks",
				Title:           "How to use hooks",
				Subtitle:        "Thinking in hooks",
				Author:          "Joseph Oliveira",
				PublicationDate: &published,
			},
			wantErr: false,
		},
		{
			name: "missing title",
			summary: &PostSummary{
				UID:    "how-to-use-hooks",
				Author: "Joseph Oliveira",
			},
			wantErr: true,
		},
		{
			name: "missing uid",
			summary: &PostSummary{
				Title: "How to use hooks",
			},
			wantErr: true,
		},
		{
			name: "unpublished draft is valid",
			summary: &PostSummary{
				UID:   "draft-post",
				Title: "Draft Post",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.summary.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostDetailValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *PostDetail
		wantErr bool
	}{
		{
			name: "valid post",
			post: &PostDetail{
				UID:    "creating-a-cra-app",
				Title:  "Creating a CRA app",
				Author: "Danilo Vieira",
				Content: []ContentBlock{
					{Heading: "Getting started", Body: []Span{{Text: "First of all"}}},
				},
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			post:    &PostDetail{UID: "creating-a-cra-app"},
			wantErr: true,
		},
		{
			name: "empty content is valid",
			post: &PostDetail{
				UID:   "empty-post",
				Title: "Empty Post",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostDetailSummary(t *testing.T) {
	published := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	post := &PostDetail{
		UID:             "creating-a-cra-app",
		Title:           "Creating a CRA app",
		Author:          "Danilo Vieira",
		BannerURL:       "https://images.example.com/banner.png",
		PublicationDate: &published,
	}

	summary := post.Summary()
	assert.Equal(t, "creating-a-cra-app", summary.UID)
	assert.Equal(t, "Creating a CRA app", summary.Title)
	assert.Equal(t, "Danilo Vieira", summary.Author)
	assert.Equal(t, &published, summary.PublicationDate)
	assert.Empty(t, summary.Subtitle)
}

func TestHref(t *testing.T) {
	summary := &PostSummary{UID: "how-to-use-hooks", Title: "How to use hooks"}
	assert.Equal(t, "/posts/how-to-use-hooks", summary.Href())

	post := &PostDetail{UID: "how-to-use-hooks", Title: "How to use hooks"}
	assert.Equal(t, "/posts/how-to-use-hooks", post.Href())
}
