package repository

import (
	"candideit/utils"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Category groups the questions candidates are compared on.
type Category struct {
	ID         uint        `gorm:"primaryKey"`
	ElectionID uint        `gorm:"not null;uniqueIndex:idx_categories_election_slug,priority:1"`
	Name       string      `gorm:"not null"`
	Slug       string      `gorm:"not null;uniqueIndex:idx_categories_election_slug,priority:2"`
	Questions  []*Question `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type Question struct {
	ID         uint      `gorm:"primaryKey"`
	CategoryID uint      `gorm:"not null;index"`
	Question   string    `gorm:"not null;type:text"`
	Answers    []*Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"not null;index"`
	Caption    string `gorm:"not null"`
}

// CandidateAnswer records which answer a candidate picked for a question.
type CandidateAnswer struct {
	ID          uint      `gorm:"primaryKey"`
	CandidateID uint      `gorm:"not null;uniqueIndex:idx_candidate_answer,priority:1"`
	QuestionID  uint      `gorm:"not null;uniqueIndex:idx_candidate_answer,priority:2"`
	AnswerID    uint      `gorm:"not null"`
	Question    *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	Answer      *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Create derives the slug from the name when missing and suffixes it until
// it is free inside the election.
func (r *CategoryRepository) Create(category *Category) (*Category, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		base := category.Slug
		if base == "" {
			base = utils.Slugify(category.Name)
		}
		slug, err := uniqueSlug(tx, &Category{}, category.ElectionID, base)
		if err != nil {
			return err
		}
		category.Slug = slug
		return tx.Omit("Questions").Create(category).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryBySlug(electionId uint, slug string, preloads ...string) (*Category, error) {
	var category Category
	result := preloadOrdered(r.DB, preloads).
		Where("election_id = ? AND slug = ?", electionId, slug).
		First(&category)
	if result.Error != nil {
		return nil, fmt.Errorf("category %s: %w", slug, result.Error)
	}
	return &category, nil
}

func (r *CategoryRepository) GetCategoriesForElection(electionId uint, preloads ...string) ([]*Category, error) {
	categories := make([]*Category, 0)
	result := preloadOrdered(r.DB, preloads).
		Where("election_id = ?", electionId).
		Order("id").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *CategoryRepository) CreateQuestion(question *Question) (*Question, error) {
	result := r.DB.Omit("Answers").Create(question)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create question: %w", result.Error)
	}
	return question, nil
}

func (r *CategoryRepository) CreateAnswer(answer *Answer) (*Answer, error) {
	result := r.DB.Create(answer)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create answer: %w", result.Error)
	}
	return answer, nil
}

// GetQuestionForElection resolves a question only when its category belongs to the election.
func (r *CategoryRepository) GetQuestionForElection(electionId uint, questionId uint) (*Question, error) {
	var question Question
	result := r.DB.
		Joins("JOIN categories ON categories.id = questions.category_id").
		Where("categories.election_id = ? AND questions.id = ?", electionId, questionId).
		First(&question)
	if result.Error != nil {
		return nil, fmt.Errorf("question %d: %w", questionId, result.Error)
	}
	return &question, nil
}

func (r *CategoryRepository) GetCategoryForElection(electionId uint, categoryId uint) (*Category, error) {
	var category Category
	result := r.DB.Where("election_id = ? AND id = ?", electionId, categoryId).First(&category)
	if result.Error != nil {
		return nil, fmt.Errorf("category %d: %w", categoryId, result.Error)
	}
	return &category, nil
}

// uniqueSlug suffixes base with -2, -3... until it is free within the
// election. Reserved slugs count as taken.
func uniqueSlug(tx *gorm.DB, model any, electionId uint, base string, reserved ...string) (string, error) {
	if base == "" {
		return "", errors.New("cannot derive a slug from an empty name")
	}
	taken := append(make([]string, 0), reserved...)
	used := make([]string, 0)
	result := tx.Model(model).
		Where("election_id = ? AND (slug = ? OR slug LIKE ?)", electionId, base, base+"-%").
		Pluck("slug", &used)
	if result.Error != nil {
		return "", result.Error
	}
	taken = append(taken, used...)
	if !utils.Contains(taken, base) {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !utils.Contains(taken, candidate) {
			return candidate, nil
		}
	}
}
