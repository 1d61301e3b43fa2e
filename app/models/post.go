package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks if the summary meets all validation requirements.
func (s *PostSummary) Validate() error {
	return validate.Struct(s)
}

// Validate checks if the post detail meets all validation requirements.
func (p *PostDetail) Validate() error {
	return validate.Struct(p)
}

// Summary narrows a detail document to its listing shape.
func (p *PostDetail) Summary() PostSummary {
	return PostSummary{
		UID:             p.UID,
		Title:           p.Title,
		Author:          p.Author,
		PublicationDate: p.PublicationDate,
	}
}

// Href returns the canonical site-relative path of the post page.
func (s *PostSummary) Href() string {
	return "/posts/" + s.UID
}

// Href returns the canonical site-relative path of the post page.
func (p *PostDetail) Href() string {
	return "/posts/" + p.UID
}
