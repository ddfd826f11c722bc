package controller

import (
	"candideit/app_error"
	"candideit/events"
	"candideit/filestorage"
	"candideit/repository"
	"candideit/service"
	"candideit/utils"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ElectionDataController struct {
	electionService     *service.ElectionService
	electionDataService *service.ElectionDataService
}

func NewElectionDataController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *ElectionDataController {
	return &ElectionDataController{
		electionService:     service.NewElectionService(db, storage, publisher),
		electionDataService: service.NewElectionDataService(db),
	}
}

type PersonalDataCreate struct {
	Label string `form:"label" binding:"required,max=255"`
}

type BackgroundCategoryCreate struct {
	Name string `form:"name" binding:"required,max=255"`
}

type BackgroundCreate struct {
	Category string `form:"category" binding:"required,numeric"`
	Name     string `form:"name" binding:"required,max=255"`
}

type CategoryCreate struct {
	Name string `form:"name" binding:"required,max=255"`
	Slug string `form:"slug" binding:"max=255"`
}

type QuestionCreate struct {
	Category string `form:"category" binding:"required,numeric"`
	Question string `form:"question" binding:"required"`
}

type AnswerCreate struct {
	Question string `form:"question" binding:"required,numeric"`
	Caption  string `form:"caption" binding:"required,max=255"`
}

// electionData holds the definitions used to offer choices on the forms.
type electionData struct {
	personalData         []*repository.PersonalData
	backgroundCategories []*repository.BackgroundCategory
	categories           []*repository.Category
}

func (d *electionData) personalDataForm() *Form {
	return newForm("PersonalDataForm", textField("label", true))
}

func (d *electionData) backgroundCategoryForm() *Form {
	return newForm("BackgroundCategoryForm", textField("name", true))
}

func (d *electionData) backgroundForm() *Form {
	choices := utils.Map(d.backgroundCategories, func(category *repository.BackgroundCategory) *FormChoice {
		return idChoice(category.ID, category.Name)
	})
	return newForm("BackgroundForm", choiceField("category", true, choices), textField("name", true))
}

func (d *electionData) categoryForm() *Form {
	return newForm("CategoryForm", textField("name", true), textField("slug", false))
}

func (d *electionData) questionForm() *Form {
	choices := utils.Map(d.categories, func(category *repository.Category) *FormChoice {
		return idChoice(category.ID, category.Name)
	})
	return newForm("QuestionForm", choiceField("category", true, choices), textareaField("question", true))
}

func (d *electionData) answerForm() *Form {
	choices := make([]*FormChoice, 0)
	for _, category := range d.categories {
		for _, question := range category.Questions {
			choices = append(choices, idChoice(question.ID, question.Question))
		}
	}
	return newForm("AnswerForm", choiceField("question", true, choices), textField("caption", true))
}

// collectionPage is an owner only page creating one kind of election data.
type collectionPage struct {
	kind     string
	template string
	form     func(*electionData) *Form
	create   func(c *gin.Context, election *repository.Election, form *Form) error
}

func setupElectionDataController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) []RouteInfo {
	e := NewElectionDataController(db, storage, publisher)
	routes := []RouteInfo{
		{Method: "GET", Path: "/election/:slug/update_data", HandlerFunc: e.updateDataHandler(), Authenticated: true},
		{Method: "GET", Path: "/election/:slug/pre_personaldata", HandlerFunc: e.prePersonalDataHandler(), Authenticated: true},
	}
	for _, page := range e.collectionPages() {
		path := fmt.Sprintf("/election/:slug/%s/create", page.kind)
		routes = append(routes,
			RouteInfo{Method: "GET", Path: path, HandlerFunc: e.collectionPageHandler(page), Authenticated: true},
			RouteInfo{Method: "POST", Path: path, HandlerFunc: e.collectionCreateHandler(page), Authenticated: true},
		)
	}
	return routes
}

func (e *ElectionDataController) collectionPages() []collectionPage {
	return []collectionPage{
		{
			kind:     "personal_data",
			template: "elections/personaldata_create.html",
			form:     (*electionData).personalDataForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request PersonalDataCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreatePersonalData(election, request.Label)
				return err
			},
		},
		{
			kind:     "background_category",
			template: "elections/backgroundcategory_create.html",
			form:     (*electionData).backgroundCategoryForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request BackgroundCategoryCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreateBackgroundCategory(election, request.Name)
				return err
			},
		},
		{
			kind:     "background",
			template: "elections/background_create.html",
			form:     (*electionData).backgroundForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request BackgroundCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreateBackground(election, formId(request.Category), request.Name)
				return err
			},
		},
		{
			kind:     "category",
			template: "elections/category_create.html",
			form:     (*electionData).categoryForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request CategoryCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreateCategory(election, request.Name, request.Slug)
				return err
			},
		},
		{
			kind:     "question",
			template: "elections/question_create.html",
			form:     (*electionData).questionForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request QuestionCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreateQuestion(election, formId(request.Category), request.Question)
				return err
			},
		},
		{
			kind:     "answer",
			template: "elections/answer_create.html",
			form:     (*electionData).answerForm,
			create: func(c *gin.Context, election *repository.Election, form *Form) error {
				var request AnswerCreate
				if !bindForm(c, &request, form) {
					return nil
				}
				_, err := e.electionDataService.CreateAnswer(election, formId(request.Question), request.Caption)
				return err
			},
		},
	}
}

func formId(value string) uint {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// ownedElection aborts with 404 unless the slug names an election of the user.
func (e *ElectionDataController) ownedElection(c *gin.Context) (*repository.Election, bool) {
	user := getUser(c)
	election, err := e.electionService.GetElectionForOwner(user.ID, c.Param("slug"))
	if err != nil {
		app_error.Abort(c, err)
		return nil, false
	}
	election.Owner = user
	return election, true
}

func loadElectionData(dataService *service.ElectionDataService, election *repository.Election) (*electionData, error) {
	personalData, err := dataService.GetPersonalData(election)
	if err != nil {
		return nil, err
	}
	backgroundCategories, err := dataService.GetBackgroundCategories(election)
	if err != nil {
		return nil, err
	}
	categories, err := dataService.GetCategories(election)
	if err != nil {
		return nil, err
	}
	return &electionData{
		personalData:         personalData,
		backgroundCategories: backgroundCategories,
		categories:           categories,
	}, nil
}

func (e *ElectionDataController) renderCollectionPage(c *gin.Context, page collectionPage, election *repository.Election, form *Form) {
	render(c, page.template, gin.H{
		"form":     form,
		"election": toElectionResponse(election, e.electionService.LogoURL(election)),
	})
}

func (e *ElectionDataController) collectionPageHandler(page collectionPage) gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		data, err := loadElectionData(e.electionDataService, election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		e.renderCollectionPage(c, page, election, page.form(data))
	}
}

func (e *ElectionDataController) collectionCreateHandler(page collectionPage) gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		data, err := loadElectionData(e.electionDataService, election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		form := page.form(data)
		if err := page.create(c, election, form); err != nil && !form.AddValidationError(err) {
			app_error.Abort(c, err)
			return
		}
		if !form.Valid() {
			e.renderCollectionPage(c, page, election, form)
			return
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("/election/%s/%s/create", election.Slug, page.kind))
	}
}

// @id ElectionUpdateData
// @Description Forms to edit the data candidates are compared on
// @Tags election-data
// @Produce json
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/update_data [get]
func (e *ElectionDataController) updateDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		data, err := loadElectionData(e.electionDataService, election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		render(c, "elections/election_update_data.html", gin.H{
			"election":                toElectionResponse(election, e.electionService.LogoURL(election)),
			"personaldata_form":       data.personalDataForm(),
			"backgroundcategory_form": data.backgroundCategoryForm(),
			"background_form":         data.backgroundForm(),
			"question_form":           data.questionForm(),
			"category_form":           data.categoryForm(),
			"answer_form":             data.answerForm(),
			"personal_data":           utils.Map(data.personalData, toPersonalDataResponse),
			"background_categories":   utils.Map(data.backgroundCategories, toBackgroundCategoryResponse),
			"categories":              utils.Map(data.categories, toCategoryResponse),
		})
	}
}

// @id PrePersonalData
// @Description Page shown before filling in personal data
// @Tags election-data
// @Produce json
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/pre_personaldata [get]
func (e *ElectionDataController) prePersonalDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.ownedElection(c)
		if !ok {
			return
		}
		personalData, err := e.electionDataService.GetPersonalData(election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		render(c, "elections/pre_personaldata.html", gin.H{
			"election":      toElectionResponse(election, e.electionService.LogoURL(election)),
			"personal_data": utils.Map(personalData, toPersonalDataResponse),
		})
	}
}
