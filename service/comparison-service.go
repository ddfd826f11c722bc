package service

import (
	"candideit/app_error"
	"candideit/filestorage"
	"candideit/logging"
	"candideit/metrics"
	"candideit/repository"

	"gorm.io/gorm"
)

const (
	CompareModeSingle       = "single"
	CompareModePair         = "pair"
	CompareModePairCategory = "pair_category"
	CompareModeAsync        = "async"
)

type CandidateProfile struct {
	Name         string                       `json:"name"`
	Slug         string                       `json:"slug"`
	Photo        string                       `json:"photo"`
	PersonalData map[string]string            `json:"personal_data"`
	Backgrounds  map[string]map[string]string `json:"backgrounds"`
	Answers      map[uint]string              `json:"answers"`
}

type AnswerChoice struct {
	ID      uint   `json:"id"`
	Caption string `json:"caption"`
}

type QuestionComparison struct {
	ID       uint            `json:"id"`
	Question string          `json:"question"`
	Answers  []*AnswerChoice `json:"answers"`
	// Chosen holds the answer of each compared candidate, in order, or nil.
	Chosen []*AnswerChoice `json:"chosen"`
}

type CategoryComparison struct {
	Name      string                `json:"name"`
	Slug      string                `json:"slug"`
	Questions []*QuestionComparison `json:"questions"`
}

type Comparison struct {
	Candidates []*CandidateProfile `json:"candidates"`
	Category   *CategoryComparison `json:"category,omitempty"`
}

type ComparisonService struct {
	candidateRepository *repository.CandidateRepository
	categoryRepository  *repository.CategoryRepository
	storage             filestorage.FileStorage
}

func NewComparisonService(db *gorm.DB, storage filestorage.FileStorage) *ComparisonService {
	return &ComparisonService{
		candidateRepository: repository.NewCandidateRepository(db),
		categoryRepository:  repository.NewCategoryRepository(db),
		storage:             storage,
	}
}

// Profile builds the data of a single candidate. Labels without a recorded
// value are left out.
func (s *ComparisonService) Profile(election *repository.Election, slug string) (*CandidateProfile, error) {
	candidate, err := s.candidateRepository.GetCandidateBySlug(election.ID, slug, repository.CandidateProfilePreloads...)
	if err != nil {
		return nil, notFound(err, "candidate")
	}
	return s.toProfile(candidate), nil
}

func (s *ComparisonService) CompareOne(election *repository.Election, slug string) (*Comparison, error) {
	profile, err := s.Profile(election, slug)
	if err != nil {
		return nil, err
	}
	metrics.ComparisonsCounter.WithLabelValues(CompareModeSingle).Inc()
	return &Comparison{Candidates: []*CandidateProfile{profile}}, nil
}

// CompareTwo compares two different candidates, optionally on the questions
// of one category. Comparing a candidate with itself is not found.
func (s *ComparisonService) CompareTwo(election *repository.Election, firstSlug string, secondSlug string, categorySlug string) (*Comparison, error) {
	if firstSlug == secondSlug {
		return nil, app_error.NotFound("candidate")
	}
	first, err := s.candidateRepository.GetCandidateBySlug(election.ID, firstSlug, repository.CandidateProfilePreloads...)
	if err != nil {
		return nil, notFound(err, "candidate")
	}
	second, err := s.candidateRepository.GetCandidateBySlug(election.ID, secondSlug, repository.CandidateProfilePreloads...)
	if err != nil {
		return nil, notFound(err, "candidate")
	}
	logging.Log.Debugf("COMPARE: %s with %s in election %d", firstSlug, secondSlug, election.ID)
	comparison := &Comparison{Candidates: []*CandidateProfile{s.toProfile(first), s.toProfile(second)}}
	if categorySlug == "" {
		metrics.ComparisonsCounter.WithLabelValues(CompareModePair).Inc()
		return comparison, nil
	}
	category, err := s.categoryRepository.GetCategoryBySlug(election.ID, categorySlug, "Questions.Answers")
	if err != nil {
		return nil, notFound(err, "category")
	}
	comparison.Category = compareCategory(category, first, second)
	metrics.ComparisonsCounter.WithLabelValues(CompareModePairCategory).Inc()
	return comparison, nil
}

func (s *ComparisonService) toProfile(candidate *repository.Candidate) *CandidateProfile {
	profile := &CandidateProfile{
		Name:         candidate.Name,
		Slug:         candidate.Slug,
		Photo:        assetURL(s.storage, candidate.Photo),
		PersonalData: make(map[string]string),
		Backgrounds:  make(map[string]map[string]string),
		Answers:      make(map[uint]string),
	}
	for _, value := range candidate.PersonalDataValues {
		if value.PersonalData == nil || value.Value == "" {
			continue
		}
		profile.PersonalData[value.PersonalData.Label] = value.Value
	}
	for _, value := range candidate.BackgroundValues {
		if value.Background == nil || value.Background.BackgroundCategory == nil || value.Value == "" {
			continue
		}
		categoryName := value.Background.BackgroundCategory.Name
		if profile.Backgrounds[categoryName] == nil {
			profile.Backgrounds[categoryName] = make(map[string]string)
		}
		profile.Backgrounds[categoryName][value.Background.Name] = value.Value
	}
	for _, answer := range candidate.Answers {
		if answer.Answer == nil {
			continue
		}
		profile.Answers[answer.QuestionID] = answer.Answer.Caption
	}
	return profile
}

func compareCategory(category *repository.Category, candidates ...*repository.Candidate) *CategoryComparison {
	chosenBy := make([]map[uint]uint, len(candidates))
	for i, candidate := range candidates {
		chosenBy[i] = make(map[uint]uint)
		for _, answer := range candidate.Answers {
			chosenBy[i][answer.QuestionID] = answer.AnswerID
		}
	}
	comparison := &CategoryComparison{
		Name:      category.Name,
		Slug:      category.Slug,
		Questions: make([]*QuestionComparison, 0, len(category.Questions)),
	}
	for _, question := range category.Questions {
		byId := make(map[uint]*AnswerChoice)
		item := &QuestionComparison{
			ID:       question.ID,
			Question: question.Question,
			Answers:  make([]*AnswerChoice, 0, len(question.Answers)),
			Chosen:   make([]*AnswerChoice, len(candidates)),
		}
		for _, answer := range question.Answers {
			choice := &AnswerChoice{ID: answer.ID, Caption: answer.Caption}
			byId[answer.ID] = choice
			item.Answers = append(item.Answers, choice)
		}
		for i := range candidates {
			item.Chosen[i] = byId[chosenBy[i][question.ID]]
		}
		comparison.Questions = append(comparison.Questions, item)
	}
	return comparison
}
