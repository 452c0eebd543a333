// Package faq serves the knowledge base users can browse before filing a
// complaint: categorized articles with search, view tracking and a helpful
// counter.
package faq

import (
	"strings"

	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

const (
	featuredLimit = 5
	relatedLimit  = 5
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Listing is one page of the knowledge base: the active categories for the
// sidebar, the featured articles, and the filtered article list.
type Listing struct {
	Categories []models.FAQCategory `json:"categories"`
	Featured   []models.FAQ         `json:"featured"`
	Articles   []models.FAQ         `json:"articles"`
}

// Browse lists articles, optionally narrowed to a category or matching a
// search term against questions and answers.
func (s *Service) Browse(categoryID *uint, search string) (*Listing, error) {
	categories, err := s.Storage.ListFAQCategories()
	if err != nil {
		return nil, err
	}
	featured, err := s.Storage.ListFeaturedFAQs(featuredLimit)
	if err != nil {
		return nil, err
	}
	articles, err := s.Storage.FindFAQs(categoryID, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return &Listing{Categories: categories, Featured: featured, Articles: articles}, nil
}

// Get returns one article with up to five related articles from the same
// category, counting the read. Returns a nil article when none is active
// under that id.
func (s *Service) Get(id uint) (*models.FAQ, []models.FAQ, error) {
	article, err := s.Storage.GetFAQByID(id)
	if err != nil || article == nil {
		return nil, nil, err
	}

	if err := s.Storage.IncrementFAQViews(article.ID); err != nil {
		// A lost view count never blocks reading the article.
		log.WithError(err).WithField("faq_id", article.ID).Warn("failed to count article view")
	} else {
		article.ViewCount++
	}

	var related []models.FAQ
	if article.CategoryID != nil {
		related, err = s.Storage.ListRelatedFAQs(*article.CategoryID, article.ID, relatedLimit)
		if err != nil {
			return nil, nil, err
		}
	}
	return article, related, nil
}

// MarkHelpful bumps the helpful counter, returning the updated article or
// nil when none is active under that id.
func (s *Service) MarkHelpful(id uint) (*models.FAQ, error) {
	return s.Storage.MarkFAQHelpful(id)
}
