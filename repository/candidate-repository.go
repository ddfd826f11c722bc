package repository

import (
	"candideit/utils"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Candidate struct {
	ID                 uint                     `gorm:"primaryKey"`
	ElectionID         uint                     `gorm:"not null;uniqueIndex:idx_candidates_election_slug,priority:1"`
	Name               string                   `gorm:"not null"`
	Slug               string                   `gorm:"not null;uniqueIndex:idx_candidates_election_slug,priority:2"`
	Photo              string                   `gorm:"not null;default:''"`
	CreatedAt          time.Time                `gorm:"not null"`
	PersonalDataValues []*PersonalDataCandidate `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	BackgroundValues   []*BackgroundCandidate   `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	Answers            []*CandidateAnswer       `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
}

// CandidateProfilePreloads loads everything a comparison needs about a candidate.
var CandidateProfilePreloads = []string{
	"PersonalDataValues.PersonalData",
	"BackgroundValues.Background.BackgroundCategory",
	"Answers.Answer",
}

// CandidateData is a full set of values to record for one candidate.
// Empty strings remove a previously recorded value.
type CandidateData struct {
	PersonalData map[uint]string
	Backgrounds  map[uint]string
	Answers      map[uint]uint
}

// ReservedCandidateSlugs are path segments the compare pages use for their own
// routes, so no candidate may take them.
var ReservedCandidateSlugs = []string{"async"}

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(candidate *Candidate) (*Candidate, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		base := candidate.Slug
		if base == "" {
			base = utils.Slugify(candidate.Name)
		}
		slug, err := uniqueSlug(tx, &Candidate{}, candidate.ElectionID, base, ReservedCandidateSlugs...)
		if err != nil {
			return err
		}
		candidate.Slug = slug
		return tx.Omit(clause.Associations).Create(candidate).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return candidate, nil
}

func (r *CandidateRepository) GetCandidateBySlug(electionId uint, slug string, preloads ...string) (*Candidate, error) {
	var candidate Candidate
	result := preloadOrdered(r.DB, preloads).
		Where("election_id = ? AND slug = ?", electionId, slug).
		First(&candidate)
	if result.Error != nil {
		return nil, fmt.Errorf("candidate %s: %w", slug, result.Error)
	}
	return &candidate, nil
}

func (r *CandidateRepository) GetCandidatesForElection(electionId uint, preloads ...string) ([]*Candidate, error) {
	candidates := make([]*Candidate, 0)
	result := preloadOrdered(r.DB, preloads).
		Where("election_id = ?", electionId).
		Order("id").
		Find(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}
	return candidates, nil
}

func (r *CandidateRepository) GetFirstCandidate(electionId uint) (*Candidate, error) {
	var candidate Candidate
	result := r.DB.Where("election_id = ?", electionId).Order("id").Take(&candidate)
	if result.Error != nil {
		return nil, fmt.Errorf("first candidate of election %d: %w", electionId, result.Error)
	}
	return &candidate, nil
}

// SaveCandidateData upserts all values in one transaction.
func (r *CandidateRepository) SaveCandidateData(candidateId uint, data *CandidateData) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for personalDataId, value := range data.PersonalData {
			if err := setPersonalDataValue(tx, candidateId, personalDataId, value); err != nil {
				return err
			}
		}
		for backgroundId, value := range data.Backgrounds {
			if err := setBackgroundValue(tx, candidateId, backgroundId, value); err != nil {
				return err
			}
		}
		for questionId, answerId := range data.Answers {
			if err := setAnswer(tx, candidateId, questionId, answerId); err != nil {
				return err
			}
		}
		return nil
	})
}

func setPersonalDataValue(tx *gorm.DB, candidateId uint, personalDataId uint, value string) error {
	if value == "" {
		return tx.Where("personal_data_id = ? AND candidate_id = ?", personalDataId, candidateId).
			Delete(&PersonalDataCandidate{}).Error
	}
	row := &PersonalDataCandidate{PersonalDataID: personalDataId, CandidateID: candidateId, Value: value}
	return tx.Omit("PersonalData").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "personal_data_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(row).Error
}

func setBackgroundValue(tx *gorm.DB, candidateId uint, backgroundId uint, value string) error {
	if value == "" {
		return tx.Where("background_id = ? AND candidate_id = ?", backgroundId, candidateId).
			Delete(&BackgroundCandidate{}).Error
	}
	row := &BackgroundCandidate{BackgroundID: backgroundId, CandidateID: candidateId, Value: value}
	return tx.Omit("Background").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "background_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(row).Error
}

func setAnswer(tx *gorm.DB, candidateId uint, questionId uint, answerId uint) error {
	if answerId == 0 {
		return tx.Where("candidate_id = ? AND question_id = ?", candidateId, questionId).
			Delete(&CandidateAnswer{}).Error
	}
	row := &CandidateAnswer{CandidateID: candidateId, QuestionID: questionId, AnswerID: answerId}
	return tx.Omit("Question", "Answer").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer_id"}),
	}).Create(row).Error
}
