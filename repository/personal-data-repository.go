package repository

import (
	"fmt"

	"gorm.io/gorm"
)

type PersonalData struct {
	ID         uint                     `gorm:"primaryKey"`
	ElectionID uint                     `gorm:"not null;index"`
	Label      string                   `gorm:"not null"`
	Values     []*PersonalDataCandidate `gorm:"foreignKey:PersonalDataID;constraint:OnDelete:CASCADE"`
}

func (PersonalData) TableName() string { return "personal_data" }

// PersonalDataCandidate holds a candidate's value for one personal data field.
type PersonalDataCandidate struct {
	ID             uint          `gorm:"primaryKey"`
	PersonalDataID uint          `gorm:"not null;uniqueIndex:idx_personal_data_candidate,priority:1"`
	CandidateID    uint          `gorm:"not null;uniqueIndex:idx_personal_data_candidate,priority:2"`
	Value          string        `gorm:"not null"`
	PersonalData   *PersonalData `gorm:"foreignKey:PersonalDataID"`
}

func (PersonalDataCandidate) TableName() string { return "personal_data_candidates" }

type PersonalDataRepository struct {
	DB *gorm.DB
}

func NewPersonalDataRepository(db *gorm.DB) *PersonalDataRepository {
	return &PersonalDataRepository{DB: db}
}

func (r *PersonalDataRepository) Create(personalData *PersonalData) (*PersonalData, error) {
	result := r.DB.Omit("Values").Create(personalData)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create personal data: %w", result.Error)
	}
	return personalData, nil
}

func (r *PersonalDataRepository) GetPersonalDataForElection(electionId uint) ([]*PersonalData, error) {
	personalData := make([]*PersonalData, 0)
	result := r.DB.Where("election_id = ?", electionId).Order("id").Find(&personalData)
	if result.Error != nil {
		return nil, result.Error
	}
	return personalData, nil
}

func (r *PersonalDataRepository) SetValue(candidateId uint, personalDataId uint, value string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return setPersonalDataValue(tx, candidateId, personalDataId, value)
	})
}
