package controller

import (
	"candideit/app_error"
	"candideit/events"
	"candideit/filestorage"
	"candideit/repository"
	"candideit/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxFormMemory = 32 << 20

type CandidateController struct {
	electionService     *service.ElectionService
	electionDataService *service.ElectionDataService
	candidateService    *service.CandidateService
}

func NewCandidateController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *CandidateController {
	return &CandidateController{
		electionService:     service.NewElectionService(db, storage, publisher),
		electionDataService: service.NewElectionDataService(db),
		candidateService:    service.NewCandidateService(db, storage, publisher),
	}
}

type CandidateCreate struct {
	Name string `form:"name" binding:"required,max=255"`
}

func newCandidateForm() *Form {
	return newForm("CandidateForm", textField("name", true), fileField("photo"))
}

func setupCandidateController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) []RouteInfo {
	e := NewCandidateController(db, storage, publisher)
	basePath := "/election/:slug/candidate"
	routes := []RouteInfo{
		{Method: "GET", Path: "/create", HandlerFunc: e.createPageHandler(), Authenticated: true},
		{Method: "POST", Path: "/create", HandlerFunc: e.createCandidateHandler(), Authenticated: true},
		{Method: "GET", Path: "/:candidate_slug/data_update", HandlerFunc: e.dataUpdatePageHandler(), Authenticated: true},
		{Method: "POST", Path: "/:candidate_slug/data_update", HandlerFunc: e.dataUpdateHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *CandidateController) ownedElection(c *gin.Context) (*repository.Election, bool) {
	user := getUser(c)
	election, err := e.electionService.GetElectionForOwner(user.ID, c.Param("slug"))
	if err != nil {
		app_error.Abort(c, err)
		return nil, false
	}
	election.Owner = user
	return election, true
}

func (e *CandidateController) renderCreate(c *gin.Context, election *repository.Election, form *Form) {
	render(c, "elections/candidate_create.html", gin.H{
		"form":     form,
		"election": toElectionResponse(election, e.electionService.LogoURL(election)),
	})
}

// @id CandidateCreatePage
// @Description Candidate creation form
// @Tags candidate
// @Produce json
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/candidate/create [get]
func (e *CandidateController) createPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		e.renderCreate(c, election, newCandidateForm())
	}
}

// @id CreateCandidate
// @Description Adds a candidate to an owned election
// @Tags candidate
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Election slug"
// @Param name formData string true "Name"
// @Param photo formData file false "Photo"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/candidate/create [post]
func (e *CandidateController) createCandidateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		form := newCandidateForm()
		var request CandidateCreate
		if !bindForm(c, &request, form) {
			e.renderCreate(c, election, form)
			return
		}
		photo, err := optionalFile(c, "photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		candidate, err := e.candidateService.Create(c.Request.Context(), getUser(c), election, &service.CandidateInput{
			Name:  request.Name,
			Photo: photo,
		})
		if err != nil {
			if form.AddValidationError(err) {
				e.renderCreate(c, election, form)
				return
			}
			app_error.Abort(c, err)
			return
		}
		c.Redirect(http.StatusFound, candidateDataUpdatePath(election.Slug, candidate.Slug))
	}
}

func fieldName(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

// newCandidateDataForm has one field per definition of the election, filled
// with what the candidate has recorded so far.
func newCandidateDataForm(data *electionData, candidate *repository.Candidate) *Form {
	form := newForm("CandidateDataForm")
	for _, personalData := range data.personalData {
		form.Fields = append(form.Fields, &FormField{Name: fieldName(service.PersonalDataFieldPrefix, personalData.ID), Type: "text"})
	}
	for _, category := range data.backgroundCategories {
		for _, background := range category.Backgrounds {
			form.Fields = append(form.Fields, &FormField{Name: fieldName(service.BackgroundFieldPrefix, background.ID), Type: "textarea"})
		}
	}
	for _, category := range data.categories {
		for _, question := range category.Questions {
			choices := make([]*FormChoice, 0, len(question.Answers))
			for _, answer := range question.Answers {
				choices = append(choices, idChoice(answer.ID, answer.Caption))
			}
			form.Fields = append(form.Fields, choiceField(fieldName(service.QuestionFieldPrefix, question.ID), false, choices))
		}
	}
	for _, value := range candidate.PersonalDataValues {
		form.Values[fieldName(service.PersonalDataFieldPrefix, value.PersonalDataID)] = value.Value
	}
	for _, value := range candidate.BackgroundValues {
		form.Values[fieldName(service.BackgroundFieldPrefix, value.BackgroundID)] = value.Value
	}
	for _, answer := range candidate.Answers {
		form.Values[fieldName(service.QuestionFieldPrefix, answer.QuestionID)] = strconv.FormatUint(uint64(answer.AnswerID), 10)
	}
	return form
}

func (e *CandidateController) renderDataUpdate(c *gin.Context, election *repository.Election, candidate *repository.Candidate, form *Form) {
	render(c, "elections/candidate_data_update.html", gin.H{
		"form":      form,
		"election":  toElectionResponse(election, e.electionService.LogoURL(election)),
		"candidate": toCandidateResponse(candidate, e.candidateService.PhotoURL(candidate)),
	})
}

func (e *CandidateController) ownedCandidate(c *gin.Context) (*repository.Election, *repository.Candidate, *electionData, bool) {
	election, ok := e.ownedElection(c)
	if !ok {
		return nil, nil, nil, false
	}
	candidate, err := e.candidateService.GetCandidate(election, c.Param("candidate_slug"), "PersonalDataValues", "BackgroundValues", "Answers")
	if err != nil {
		app_error.Abort(c, err)
		return nil, nil, nil, false
	}
	data, err := loadElectionData(e.electionDataService, election)
	if err != nil {
		app_error.Abort(c, err)
		return nil, nil, nil, false
	}
	return election, candidate, data, true
}

// @id CandidateDataUpdatePage
// @Description Form with everything recorded about a candidate
// @Tags candidate
// @Produce json
// @Param slug path string true "Election slug"
// @Param candidate_slug path string true "Candidate slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/candidate/{candidate_slug}/data_update [get]
func (e *CandidateController) dataUpdatePageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, candidate, data, ok := e.ownedCandidate(c)
		if !ok {
			return
		}
		e.renderDataUpdate(c, election, candidate, newCandidateDataForm(data, candidate))
	}
}

// @id UpdateCandidateData
// @Description Records personal data, backgrounds and answers of a candidate
// @Tags candidate
// @Accept x-www-form-urlencoded
// @Produce json
// @Param slug path string true "Election slug"
// @Param candidate_slug path string true "Candidate slug"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/candidate/{candidate_slug}/data_update [post]
func (e *CandidateController) dataUpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, candidate, data, ok := e.ownedCandidate(c)
		if !ok {
			return
		}
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		values := make(map[string]string, len(c.Request.PostForm))
		for key := range c.Request.PostForm {
			values[key] = c.Request.PostForm.Get(key)
		}
		form := newCandidateDataForm(data, candidate)
		if err := e.candidateService.SaveData(election, candidate, values); err != nil {
			if form.AddValidationError(err) {
				for key, value := range values {
					form.Values[key] = value
				}
				e.renderDataUpdate(c, election, candidate, form)
				return
			}
			app_error.Abort(c, err)
			return
		}
		c.Redirect(http.StatusFound, candidateDataUpdatePath(election.Slug, candidate.Slug))
	}
}
