package controller

import (
	"candideit/repository"
	"candideit/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type ElectionResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Owner             string `json:"owner,omitempty"`
	Description       string `json:"description"`
	Date              string `json:"date"`
	Logo              string `json:"logo"`
	InformationSource string `json:"information_source"`
}

type CandidateResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Photo string `json:"photo"`
}

type PersonalDataResponse struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type BackgroundResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BackgroundCategoryResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Backgrounds []*BackgroundResponse `json:"backgrounds"`
}

type AnswerResponse struct {
	ID      uint   `json:"id"`
	Caption string `json:"caption"`
}

type QuestionResponse struct {
	ID       uint              `json:"id"`
	Question string            `json:"question"`
	Answers  []*AnswerResponse `json:"answers"`
}

type CategoryResponse struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Slug      string              `json:"slug"`
	Questions []*QuestionResponse `json:"questions"`
}

func toUserResponse(user *repository.User) *UserResponse {
	return &UserResponse{ID: user.ID, Username: user.Username}
}

func toElectionResponse(election *repository.Election, logoURL string) *ElectionResponse {
	response := &ElectionResponse{
		ID:                election.ID,
		Name:              election.Name,
		Slug:              election.Slug,
		Description:       election.Description,
		Date:              election.Date,
		Logo:              logoURL,
		InformationSource: election.InformationSource,
	}
	if election.Owner != nil {
		response.Owner = election.Owner.Username
	}
	return response
}

func toCandidateResponse(candidate *repository.Candidate, photoURL string) *CandidateResponse {
	return &CandidateResponse{
		ID:    candidate.ID,
		Name:  candidate.Name,
		Slug:  candidate.Slug,
		Photo: photoURL,
	}
}

func toPersonalDataResponse(personalData *repository.PersonalData) *PersonalDataResponse {
	return &PersonalDataResponse{ID: personalData.ID, Label: personalData.Label}
}

func toBackgroundCategoryResponse(category *repository.BackgroundCategory) *BackgroundCategoryResponse {
	return &BackgroundCategoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Backgrounds: utils.Map(category.Backgrounds, func(background *repository.Background) *BackgroundResponse {
			return &BackgroundResponse{ID: background.ID, Name: background.Name}
		}),
	}
}

func toCategoryResponse(category *repository.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
		Questions: utils.Map(category.Questions, func(question *repository.Question) *QuestionResponse {
			return &QuestionResponse{
				ID:       question.ID,
				Question: question.Question,
				Answers: utils.Map(question.Answers, func(answer *repository.Answer) *AnswerResponse {
					return &AnswerResponse{ID: answer.ID, Caption: answer.Caption}
				}),
			}
		}),
	}
}

func idChoice(id uint, label string) *FormChoice {
	return &FormChoice{Value: strconv.FormatUint(uint64(id), 10), Label: label}
}

// render writes the context of a page along with the template that shows it.
func render(c *gin.Context, template string, context gin.H) {
	context["template"] = template
	c.JSON(http.StatusOK, context)
}
