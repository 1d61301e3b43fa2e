package services

import (
	"context"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
)

// PostView is everything a post page needs from the content layer:
// the document itself plus the derived reading time and sibling
// navigation. ReadingTime of 0 means no estimate is available.
type PostView struct {
	Post        *models.PostDetail
	ReadingTime int
	Pagination  models.Pagination
}

// PostService composes the post page view model.
type PostService struct {
	fetcher    cms.Fetcher
	docType    string
	pagination *PaginationService
}

// NewPostService creates a PostService for the given content type.
func NewPostService(fetcher cms.Fetcher, docType string) *PostService {
	return &PostService{
		fetcher:    fetcher,
		docType:    docType,
		pagination: NewPaginationService(fetcher, docType),
	}
}

// GetPost fetches one post and derives its view model. A non-empty
// previewRef fetches the unpublished preview variant. Errors from the
// content layer (NotFoundError, FetchError) propagate unmodified.
func (s *PostService) GetPost(ctx context.Context, uid, previewRef string) (*PostView, error) {
	post, err := s.fetcher.GetByUID(ctx, s.docType, uid, cms.GetOptions{PreviewRef: previewRef})
	if err != nil {
		return nil, err
	}

	pagination, err := s.pagination.Resolve(ctx, post.UID)
	if err != nil {
		return nil, err
	}

	return &PostView{
		Post:        post,
		ReadingTime: EstimateReadingTime(post.Content),
		Pagination:  pagination,
	}, nil
}
