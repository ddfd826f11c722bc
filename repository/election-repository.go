package repository

import (
	"candideit/app_error"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Election struct {
	ID                   uint                  `gorm:"primaryKey"`
	Name                 string                `gorm:"not null"`
	Slug                 string                `gorm:"not null;uniqueIndex:idx_elections_owner_slug,priority:2"`
	OwnerID              uint                  `gorm:"not null;uniqueIndex:idx_elections_owner_slug,priority:1"`
	Owner                *User                 `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Description          string                `gorm:"not null;default:''"`
	Date                 string                `gorm:"not null;default:''"`
	Logo                 string                `gorm:"not null;default:''"`
	InformationSource    string                `gorm:"not null;default:''"`
	CreatedAt            time.Time             `gorm:"not null"`
	PersonalData         []*PersonalData       `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE"`
	BackgroundCategories []*BackgroundCategory `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE"`
	Categories           []*Category           `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE"`
	Candidates           []*Candidate          `gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE"`
}

type ElectionRepository struct {
	DB *gorm.DB
}

func NewElectionRepository(db *gorm.DB) *ElectionRepository {
	return &ElectionRepository{DB: db}
}

// Create inserts the election and seeds its default child records in one
// transaction. It is the only way default data gets created.
func (r *ElectionRepository) Create(election *Election) (*Election, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Election{}).
			Where("owner_id = ? AND slug = ?", election.OwnerID, election.Slug).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return app_error.ErrDuplicateSlugForOwner
		}
		if err := tx.Omit(clause.Associations).Create(election).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return app_error.ErrDuplicateSlugForOwner
			}
			return err
		}
		return seedElectionDefaults(tx, election)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create election %s: %w", election.Slug, err)
	}
	return election, nil
}

// Update persists the editable fields only; slug and owner never change.
func (r *ElectionRepository) Update(election *Election) (*Election, error) {
	result := r.DB.Model(election).
		Select("Name", "Description", "Logo", "InformationSource").
		Updates(election)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update election %s: %w", election.Slug, result.Error)
	}
	return election, nil
}

func (r *ElectionRepository) ExistsForOwner(ownerId uint, slug string) (bool, error) {
	var count int64
	result := r.DB.Model(&Election{}).Where("owner_id = ? AND slug = ?", ownerId, slug).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *ElectionRepository) GetElectionForOwner(ownerId uint, slug string, preloads ...string) (*Election, error) {
	var election Election
	result := preloadOrdered(r.DB, preloads).
		Where("owner_id = ? AND slug = ?", ownerId, slug).
		First(&election)
	if result.Error != nil {
		return nil, fmt.Errorf("election %s for owner %d: %w", slug, ownerId, result.Error)
	}
	return &election, nil
}

func (r *ElectionRepository) GetElectionByUsernameAndSlug(username string, slug string, preloads ...string) (*Election, error) {
	var election Election
	result := preloadOrdered(r.DB, preloads).
		Joins("JOIN users ON users.id = elections.owner_id").
		Where("users.username = ? AND elections.slug = ?", username, slug).
		First(&election)
	if result.Error != nil {
		return nil, fmt.Errorf("election %s/%s: %w", username, slug, result.Error)
	}
	return &election, nil
}

func (r *ElectionRepository) GetLatestElectionForOwner(ownerId uint) (*Election, error) {
	var election Election
	result := r.DB.Where("owner_id = ?", ownerId).Order("id DESC").Take(&election)
	if result.Error != nil {
		return nil, fmt.Errorf("latest election for owner %d: %w", ownerId, result.Error)
	}
	return &election, nil
}

func (r *ElectionRepository) GetElectionsForOwner(ownerId uint) ([]*Election, error) {
	elections := make([]*Election, 0)
	result := r.DB.Where("owner_id = ?", ownerId).Order("id").Find(&elections)
	if result.Error != nil {
		return nil, result.Error
	}
	return elections, nil
}

// preloadOrdered preloads every level of each dotted path sorted by id,
// so children come back in insertion order.
func preloadOrdered(db *gorm.DB, preloads []string) *gorm.DB {
	query := db
	seen := make(map[string]bool)
	byID := func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}
	for _, preload := range preloads {
		parts := strings.Split(preload, ".")
		for i := range parts {
			path := strings.Join(parts[:i+1], ".")
			if seen[path] {
				continue
			}
			seen[path] = true
			query = query.Preload(path, byID)
		}
	}
	return query
}
