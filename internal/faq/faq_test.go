package faq_test

import (
	"testing"

	"helpdesk/backend/internal/faq"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleStore serves a fixed knowledge base and records view increments.
type articleStore struct {
	storage.Storage

	categories []models.FAQCategory
	articles   []models.FAQ

	viewsCounted []uint
	viewErr      error
}

func (s *articleStore) ListFAQCategories() ([]models.FAQCategory, error) {
	return s.categories, nil
}

func (s *articleStore) FindFAQs(categoryID *uint, search string) ([]models.FAQ, error) {
	var out []models.FAQ
	for _, a := range s.articles {
		if categoryID != nil && (a.CategoryID == nil || *a.CategoryID != *categoryID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *articleStore) ListFeaturedFAQs(limit int) ([]models.FAQ, error) {
	var out []models.FAQ
	for _, a := range s.articles {
		if a.IsFeatured && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *articleStore) GetFAQByID(id uint) (*models.FAQ, error) {
	for i := range s.articles {
		if s.articles[i].ID == id {
			a := s.articles[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *articleStore) ListRelatedFAQs(categoryID, excludeID uint, limit int) ([]models.FAQ, error) {
	var out []models.FAQ
	for _, a := range s.articles {
		if a.ID == excludeID || a.CategoryID == nil || *a.CategoryID != categoryID {
			continue
		}
		if len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *articleStore) IncrementFAQViews(id uint) error {
	if s.viewErr != nil {
		return s.viewErr
	}
	s.viewsCounted = append(s.viewsCounted, id)
	return nil
}

func seededArticles() ([]models.FAQCategory, []models.FAQ) {
	accounts := uint(1)
	printing := uint(2)
	categories := []models.FAQCategory{
		{ID: accounts, Name: "Accounts", Order: 1, IsActive: true},
		{ID: printing, Name: "Printing", Order: 2, IsActive: true},
	}
	articles := []models.FAQ{
		{ID: 1, CategoryID: &accounts, Question: "How do I reset my password?", IsFeatured: true, ViewCount: 12},
		{ID: 2, CategoryID: &accounts, Question: "How do I unlock my account?"},
		{ID: 3, CategoryID: &printing, Question: "Why does the printer show offline?"},
		{ID: 4, Question: "Who do I contact out of hours?"},
	}
	return categories, articles
}

func TestBrowseReturnsCategoriesFeaturedAndArticles(t *testing.T) {
	categories, articles := seededArticles()
	svc := faq.NewService(&articleStore{categories: categories, articles: articles})

	listing, err := svc.Browse(nil, "")

	require.NoError(t, err)
	assert.Len(t, listing.Categories, 2)
	assert.Len(t, listing.Articles, 4)
	require.Len(t, listing.Featured, 1)
	assert.Equal(t, uint(1), listing.Featured[0].ID)
}

func TestBrowseNarrowsToOneCategory(t *testing.T) {
	categories, articles := seededArticles()
	svc := faq.NewService(&articleStore{categories: categories, articles: articles})

	printing := uint(2)
	listing, err := svc.Browse(&printing, "")

	require.NoError(t, err)
	require.Len(t, listing.Articles, 1)
	assert.Equal(t, uint(3), listing.Articles[0].ID)
}

func TestGetCountsViewAndCollectsRelated(t *testing.T) {
	categories, articles := seededArticles()
	store := &articleStore{categories: categories, articles: articles}
	svc := faq.NewService(store)

	article, related, err := svc.Get(1)

	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 13, article.ViewCount, "the read itself is counted")
	assert.Equal(t, []uint{1}, store.viewsCounted)
	require.Len(t, related, 1)
	assert.Equal(t, uint(2), related[0].ID)
}

func TestGetUncategorizedArticleHasNoRelated(t *testing.T) {
	categories, articles := seededArticles()
	svc := faq.NewService(&articleStore{categories: categories, articles: articles})

	article, related, err := svc.Get(4)

	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Empty(t, related)
}

func TestGetUnknownArticleReturnsNil(t *testing.T) {
	categories, articles := seededArticles()
	svc := faq.NewService(&articleStore{categories: categories, articles: articles})

	article, related, err := svc.Get(99)

	require.NoError(t, err)
	assert.Nil(t, article)
	assert.Nil(t, related)
}

func TestGetSurvivesFailedViewCount(t *testing.T) {
	categories, articles := seededArticles()
	store := &articleStore{categories: categories, articles: articles, viewErr: assert.AnError}
	svc := faq.NewService(store)

	article, _, err := svc.Get(1)

	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 12, article.ViewCount, "a lost increment is not reflected back")
}
