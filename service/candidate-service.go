package service

import (
	"candideit/app_error"
	"candideit/config"
	"candideit/events"
	"candideit/filestorage"
	"candideit/logging"
	"candideit/metrics"
	"candideit/repository"
	"candideit/utils"
	"context"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	PersonalDataFieldPrefix = "personal_data_"
	BackgroundFieldPrefix   = "background_"
	QuestionFieldPrefix     = "question_"
)

type CandidateInput struct {
	Name  string
	Photo *multipart.FileHeader
}

type CandidateService struct {
	candidateRepository    *repository.CandidateRepository
	personalDataRepository *repository.PersonalDataRepository
	backgroundRepository   *repository.BackgroundRepository
	categoryRepository     *repository.CategoryRepository
	storage                filestorage.FileStorage
	publisher              events.Publisher
	maxUploadBytes         int64
}

func NewCandidateService(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *CandidateService {
	return &CandidateService{
		candidateRepository:    repository.NewCandidateRepository(db),
		personalDataRepository: repository.NewPersonalDataRepository(db),
		backgroundRepository:   repository.NewBackgroundRepository(db),
		categoryRepository:     repository.NewCategoryRepository(db),
		storage:                storage,
		publisher:              publisher,
		maxUploadBytes:         config.Env().MaxUploadBytes,
	}
}

func (s *CandidateService) Create(ctx context.Context, owner *repository.User, election *repository.Election, input *CandidateInput) (*repository.Candidate, error) {
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	if utils.Slugify(name) == "" {
		return nil, app_error.Validation("name", invalidNameMessage)
	}
	photo, err := storeAsset(ctx, s.storage, filestorage.KindPhoto, "photo", input.Photo, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidateRepository.Create(&repository.Candidate{
		ElectionID: election.ID,
		Name:       name,
		Photo:      photo,
	})
	if err != nil {
		discardAsset(ctx, s.storage, photo)
		return nil, err
	}
	metrics.CandidatesCreatedCounter.Inc()
	logging.Log.Infof("CANDIDATE: %s added to %s/%s", candidate.Slug, owner.Username, election.Slug)
	events.Emit(ctx, s.publisher, &events.Event{
		Type:      events.CandidateCreated,
		Owner:     owner.Username,
		Election:  election.Slug,
		Candidate: candidate.Slug,
	})
	return candidate, nil
}

func (s *CandidateService) GetCandidate(election *repository.Election, slug string, preloads ...string) (*repository.Candidate, error) {
	candidate, err := s.candidateRepository.GetCandidateBySlug(election.ID, slug, preloads...)
	return candidate, notFound(err, "candidate")
}

func (s *CandidateService) GetCandidates(election *repository.Election, preloads ...string) ([]*repository.Candidate, error) {
	return s.candidateRepository.GetCandidatesForElection(election.ID, preloads...)
}

func (s *CandidateService) PhotoURL(candidate *repository.Candidate) string {
	return assetURL(s.storage, candidate.Photo)
}

// SaveData records the submitted form values of a candidate. Every referenced
// definition must belong to the candidate's election.
func (s *CandidateService) SaveData(election *repository.Election, candidate *repository.Candidate, values map[string]string) error {
	data, err := s.parseCandidateData(election, values)
	if err != nil {
		return err
	}
	if err := s.candidateRepository.SaveCandidateData(candidate.ID, data); err != nil {
		return err
	}
	logging.Log.Debugf("CANDIDATE: saved %d personal data, %d backgrounds, %d answers for %s",
		len(data.PersonalData), len(data.Backgrounds), len(data.Answers), candidate.Slug)
	return nil
}

func (s *CandidateService) parseCandidateData(election *repository.Election, values map[string]string) (*repository.CandidateData, error) {
	personalData, err := s.personalDataRepository.GetPersonalDataForElection(election.ID)
	if err != nil {
		return nil, err
	}
	backgroundCategories, err := s.backgroundRepository.GetCategoriesForElection(election.ID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepository.GetCategoriesForElection(election.ID, "Questions.Answers")
	if err != nil {
		return nil, err
	}

	personalDataIds := make(map[uint]bool)
	for _, pd := range personalData {
		personalDataIds[pd.ID] = true
	}
	backgroundIds := make(map[uint]bool)
	for _, category := range backgroundCategories {
		for _, background := range category.Backgrounds {
			backgroundIds[background.ID] = true
		}
	}
	answersByQuestion := make(map[uint]map[uint]bool)
	for _, category := range categories {
		for _, question := range category.Questions {
			answersByQuestion[question.ID] = make(map[uint]bool)
			for _, answer := range question.Answers {
				answersByQuestion[question.ID][answer.ID] = true
			}
		}
	}

	data := &repository.CandidateData{
		PersonalData: make(map[uint]string),
		Backgrounds:  make(map[uint]string),
		Answers:      make(map[uint]uint),
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := strings.TrimSpace(values[key])
		switch {
		case strings.HasPrefix(key, PersonalDataFieldPrefix):
			id, ok := parseId(strings.TrimPrefix(key, PersonalDataFieldPrefix))
			if !ok || !personalDataIds[id] {
				return nil, app_error.Validation(key, invalidChoiceMessage)
			}
			data.PersonalData[id] = value
		case strings.HasPrefix(key, BackgroundFieldPrefix):
			id, ok := parseId(strings.TrimPrefix(key, BackgroundFieldPrefix))
			if !ok || !backgroundIds[id] {
				return nil, app_error.Validation(key, invalidChoiceMessage)
			}
			data.Backgrounds[id] = value
		case strings.HasPrefix(key, QuestionFieldPrefix):
			questionId, ok := parseId(strings.TrimPrefix(key, QuestionFieldPrefix))
			answers, known := answersByQuestion[questionId]
			if !ok || !known {
				return nil, app_error.Validation(key, invalidChoiceMessage)
			}
			if value == "" {
				data.Answers[questionId] = 0
				continue
			}
			answerId, ok := parseId(value)
			if !ok || !answers[answerId] {
				return nil, app_error.Validation(key, invalidChoiceMessage)
			}
			data.Answers[questionId] = answerId
		}
	}
	return data, nil
}

func parseId(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
