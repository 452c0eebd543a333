package storage

import (
	"errors"

	"helpdesk/backend/internal/models"

	"gorm.io/gorm"
)

// SaveFAQCategory is used by the admin CLI only and lives on the concrete
// service rather than the Storage interface.
func (s *Service) SaveFAQCategory(c *models.FAQCategory) error {
	return s.DB.Save(c).Error
}

func (s *Service) ListFAQCategories() ([]models.FAQCategory, error) {
	var categories []models.FAQCategory
	err := s.DB.Where("is_active = ?", true).
		Order("display_order asc, name asc").
		Find(&categories).Error
	return categories, err
}

// FindFAQs lists active articles, featured first, optionally narrowed to one
// category or matched against a search term in the question or answer.
func (s *Service) FindFAQs(categoryID *uint, search string) ([]models.FAQ, error) {
	q := s.DB.Model(&models.FAQ{}).
		Joins("LEFT JOIN faq_categories ON faq_categories.id = faqs.category_id").
		Where("faqs.is_active = ?", true).
		Preload("Category")

	if categoryID != nil {
		q = q.Where("faqs.category_id = ?", *categoryID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("faqs.question ILIKE ? OR faqs.answer ILIKE ?", pattern, pattern)
	}

	var faqs []models.FAQ
	err := q.Order("faqs.is_featured desc, faq_categories.display_order asc, faqs.display_order asc, faqs.question asc").
		Find(&faqs).Error
	return faqs, err
}

func (s *Service) ListFeaturedFAQs(limit int) ([]models.FAQ, error) {
	var faqs []models.FAQ
	err := s.DB.Where("is_featured = ? AND is_active = ?", true, true).
		Order("display_order asc, question asc").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

func (s *Service) GetFAQByID(id uint) (*models.FAQ, error) {
	var faq models.FAQ
	err := s.DB.Preload("Category").
		Where("is_active = ?", true).
		First(&faq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (s *Service) ListRelatedFAQs(categoryID, excludeID uint, limit int) ([]models.FAQ, error) {
	var faqs []models.FAQ
	err := s.DB.Where("category_id = ? AND id <> ? AND is_active = ?", categoryID, excludeID, true).
		Order("display_order asc, question asc").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

func (s *Service) IncrementFAQViews(id uint) error {
	return s.DB.Model(&models.FAQ{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *Service) MarkFAQHelpful(id uint) (*models.FAQ, error) {
	res := s.DB.Model(&models.FAQ{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetFAQByID(id)
}
