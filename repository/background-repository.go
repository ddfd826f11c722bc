package repository

import (
	"fmt"

	"gorm.io/gorm"
)

type BackgroundCategory struct {
	ID          uint          `gorm:"primaryKey"`
	ElectionID  uint          `gorm:"not null;index"`
	Name        string        `gorm:"not null"`
	Backgrounds []*Background `gorm:"foreignKey:BackgroundCategoryID;constraint:OnDelete:CASCADE"`
}

type Background struct {
	ID                   uint                   `gorm:"primaryKey"`
	BackgroundCategoryID uint                   `gorm:"not null;index"`
	Name                 string                 `gorm:"not null"`
	BackgroundCategory   *BackgroundCategory    `gorm:"foreignKey:BackgroundCategoryID"`
	Values               []*BackgroundCandidate `gorm:"foreignKey:BackgroundID;constraint:OnDelete:CASCADE"`
}

// BackgroundCandidate holds a candidate's entry for one background.
type BackgroundCandidate struct {
	ID           uint        `gorm:"primaryKey"`
	BackgroundID uint        `gorm:"not null;uniqueIndex:idx_background_candidate,priority:1"`
	CandidateID  uint        `gorm:"not null;uniqueIndex:idx_background_candidate,priority:2"`
	Value        string      `gorm:"not null"`
	Background   *Background `gorm:"foreignKey:BackgroundID"`
}

type BackgroundRepository struct {
	DB *gorm.DB
}

func NewBackgroundRepository(db *gorm.DB) *BackgroundRepository {
	return &BackgroundRepository{DB: db}
}

func (r *BackgroundRepository) CreateCategory(category *BackgroundCategory) (*BackgroundCategory, error) {
	result := r.DB.Omit("Backgrounds").Create(category)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create background category: %w", result.Error)
	}
	return category, nil
}

func (r *BackgroundRepository) CreateBackground(background *Background) (*Background, error) {
	result := r.DB.Omit("BackgroundCategory", "Values").Create(background)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create background: %w", result.Error)
	}
	return background, nil
}

func (r *BackgroundRepository) GetCategoriesForElection(electionId uint) ([]*BackgroundCategory, error) {
	categories := make([]*BackgroundCategory, 0)
	result := preloadOrdered(r.DB, []string{"Backgrounds"}).
		Where("election_id = ?", electionId).
		Order("id").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *BackgroundRepository) GetCategoryForElection(electionId uint, categoryId uint) (*BackgroundCategory, error) {
	var category BackgroundCategory
	result := r.DB.Where("election_id = ? AND id = ?", electionId, categoryId).First(&category)
	if result.Error != nil {
		return nil, fmt.Errorf("background category %d: %w", categoryId, result.Error)
	}
	return &category, nil
}
