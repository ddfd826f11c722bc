package service

import (
	"candideit/app_error"
	"candideit/repository"
	"candideit/utils"
	"errors"
	"strings"

	"gorm.io/gorm"
)

const invalidChoiceMessage = "Escoge una opción válida."

// ElectionDataService manages the definitions an election compares its
// candidates on.
type ElectionDataService struct {
	personalDataRepository *repository.PersonalDataRepository
	backgroundRepository   *repository.BackgroundRepository
	categoryRepository     *repository.CategoryRepository
}

func NewElectionDataService(db *gorm.DB) *ElectionDataService {
	return &ElectionDataService{
		personalDataRepository: repository.NewPersonalDataRepository(db),
		backgroundRepository:   repository.NewBackgroundRepository(db),
		categoryRepository:     repository.NewCategoryRepository(db),
	}
}

func required(field string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", app_error.Validation(field, requiredMessage)
	}
	return value, nil
}

func invalidChoice(err error, field string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return app_error.WrapValidation(err, field, invalidChoiceMessage)
	}
	return err
}

func (s *ElectionDataService) CreatePersonalData(election *repository.Election, label string) (*repository.PersonalData, error) {
	label, err := required("label", label)
	if err != nil {
		return nil, err
	}
	return s.personalDataRepository.Create(&repository.PersonalData{ElectionID: election.ID, Label: label})
}

func (s *ElectionDataService) CreateBackgroundCategory(election *repository.Election, name string) (*repository.BackgroundCategory, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	return s.backgroundRepository.CreateCategory(&repository.BackgroundCategory{ElectionID: election.ID, Name: name})
}

func (s *ElectionDataService) CreateBackground(election *repository.Election, categoryId uint, name string) (*repository.Background, error) {
	category, err := s.backgroundRepository.GetCategoryForElection(election.ID, categoryId)
	if err != nil {
		return nil, invalidChoice(err, "category")
	}
	name, err = required("name", name)
	if err != nil {
		return nil, err
	}
	return s.backgroundRepository.CreateBackground(&repository.Background{BackgroundCategoryID: category.ID, Name: name})
}

func (s *ElectionDataService) CreateCategory(election *repository.Election, name string, slug string) (*repository.Category, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	slug = utils.Slugify(slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, app_error.Validation("slug", "Introduce un slug válido.")
	}
	return s.categoryRepository.Create(&repository.Category{ElectionID: election.ID, Name: name, Slug: slug})
}

func (s *ElectionDataService) CreateQuestion(election *repository.Election, categoryId uint, text string) (*repository.Question, error) {
	category, err := s.categoryRepository.GetCategoryForElection(election.ID, categoryId)
	if err != nil {
		return nil, invalidChoice(err, "category")
	}
	text, err = required("question", text)
	if err != nil {
		return nil, err
	}
	return s.categoryRepository.CreateQuestion(&repository.Question{CategoryID: category.ID, Question: text})
}

func (s *ElectionDataService) CreateAnswer(election *repository.Election, questionId uint, caption string) (*repository.Answer, error) {
	question, err := s.categoryRepository.GetQuestionForElection(election.ID, questionId)
	if err != nil {
		return nil, invalidChoice(err, "question")
	}
	caption, err = required("caption", caption)
	if err != nil {
		return nil, err
	}
	return s.categoryRepository.CreateAnswer(&repository.Answer{QuestionID: question.ID, Caption: caption})
}

func (s *ElectionDataService) GetPersonalData(election *repository.Election) ([]*repository.PersonalData, error) {
	return s.personalDataRepository.GetPersonalDataForElection(election.ID)
}

func (s *ElectionDataService) GetBackgroundCategories(election *repository.Election) ([]*repository.BackgroundCategory, error) {
	return s.backgroundRepository.GetCategoriesForElection(election.ID)
}

func (s *ElectionDataService) GetCategories(election *repository.Election) ([]*repository.Category, error) {
	return s.categoryRepository.GetCategoriesForElection(election.ID, "Questions.Answers")
}
