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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ElectionController struct {
	electionService  *service.ElectionService
	candidateService *service.CandidateService
}

func NewElectionController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *ElectionController {
	return &ElectionController{
		electionService:  service.NewElectionService(db, storage, publisher),
		candidateService: service.NewCandidateService(db, storage, publisher),
	}
}

type ElectionCreate struct {
	Name              string `form:"name" binding:"required,max=255"`
	Slug              string `form:"slug" binding:"max=255"`
	Description       string `form:"description"`
	Date              string `form:"date" binding:"max=255"`
	InformationSource string `form:"information_source"`
}

type ElectionUpdate struct {
	Name              string `form:"name" binding:"required,max=255"`
	Description       string `form:"description"`
	InformationSource string `form:"information_source"`
}

func newElectionForm() *Form {
	return newForm("ElectionForm",
		textField("name", true),
		textField("slug", false),
		textareaField("description", false),
		textField("date", false),
		fileField("logo"),
		textareaField("information_source", false),
	)
}

func newElectionUpdateForm(election *repository.Election) *Form {
	form := newForm("ElectionUpdateForm",
		textField("name", true),
		textareaField("description", false),
		fileField("logo"),
		textareaField("information_source", false),
	)
	if election != nil {
		form.Values["name"] = election.Name
		form.Values["description"] = election.Description
		form.Values["information_source"] = election.InformationSource
	}
	return form
}

func setupElectionController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) []RouteInfo {
	e := NewElectionController(db, storage, publisher)
	routes := []RouteInfo{
		{Method: "GET", Path: "/election/pre_create", HandlerFunc: e.preCreateHandler(), Authenticated: true},
		{Method: "GET", Path: "/election/create", HandlerFunc: e.createPageHandler(), Authenticated: true},
		{Method: "POST", Path: "/election/create", HandlerFunc: e.createElectionHandler(), Authenticated: true},
		{Method: "GET", Path: "/election/redirect", HandlerFunc: e.redirectHandler(), Authenticated: true},
		{Method: "GET", Path: "/election/:slug/update", HandlerFunc: e.updatePageHandler(), Authenticated: true},
		{Method: "POST", Path: "/election/:slug/update", HandlerFunc: e.updateElectionHandler(), Authenticated: true},
		{Method: "GET", Path: "/:username/:slug/", HandlerFunc: e.detailHandler()},
		{Method: "GET", Path: "/:username/:slug/admin", HandlerFunc: e.adminHandler(), Authenticated: true},
		{Method: "GET", Path: "/:username/:slug/profiles", HandlerFunc: e.profilesHandler(), Cached: true},
		{Method: "GET", Path: "/:username/:slug/about", HandlerFunc: e.aboutHandler(), Cached: true},
	}
	return routes
}

func electionDetailPath(username string, slug string) string {
	return fmt.Sprintf("/%s/%s/", username, slug)
}

func electionAdminPath(username string, slug string) string {
	return fmt.Sprintf("/%s/%s/admin", username, slug)
}

func electionUpdatePath(slug string) string {
	return fmt.Sprintf("/election/%s/update", slug)
}

func candidateCreatePath(electionSlug string) string {
	return fmt.Sprintf("/election/%s/candidate/create", electionSlug)
}

func candidateDataUpdatePath(electionSlug string, candidateSlug string) string {
	return fmt.Sprintf("/election/%s/candidate/%s/data_update", electionSlug, candidateSlug)
}

func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}

// @id ElectionPreCreate
// @Description Page shown before creating an election
// @Tags election
// @Produce json
// @Success 200 {object} map[string]any
// @Security CookieAuth
// @Router /election/pre_create [get]
func (e *ElectionController) preCreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		elections, err := e.electionService.GetElectionsForOwner(user.ID)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		render(c, "elections/election_pre_create.html", gin.H{
			"user": toUserResponse(user),
			"elections": utils.Map(elections, func(election *repository.Election) *ElectionResponse {
				return toElectionResponse(election, e.electionService.LogoURL(election))
			}),
		})
	}
}

// @id ElectionCreatePage
// @Description Election creation form
// @Tags election
// @Produce json
// @Success 200 {object} Form
// @Security CookieAuth
// @Router /election/create [get]
func (e *ElectionController) createPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "elections/election_form.html", gin.H{"form": newElectionForm()})
	}
}

// @id CreateElection
// @Description Creates an election with its default data
// @Tags election
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param slug formData string false "Slug"
// @Param description formData string false "Description"
// @Param logo formData file false "Logo"
// @Param information_source formData string false "Information source"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Security CookieAuth
// @Router /election/create [post]
func (e *ElectionController) createElectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		form := newElectionForm()
		var request ElectionCreate
		if !bindForm(c, &request, form) {
			render(c, "elections/election_form.html", gin.H{"form": form})
			return
		}
		logo, err := optionalFile(c, "logo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		election, err := e.electionService.Create(c.Request.Context(), getUser(c), &service.ElectionInput{
			Name:              request.Name,
			Slug:              request.Slug,
			Description:       request.Description,
			Date:              request.Date,
			InformationSource: request.InformationSource,
			Logo:              logo,
		})
		if err != nil {
			if form.AddValidationError(err) {
				render(c, "elections/election_form.html", gin.H{"form": form})
				return
			}
			app_error.Abort(c, err)
			return
		}
		c.Redirect(http.StatusFound, candidateCreatePath(election.Slug))
	}
}

// @id ElectionRedirect
// @Description Sends the user to the election they should keep working on
// @Tags election
// @Success 302
// @Security CookieAuth
// @Router /election/redirect [get]
func (e *ElectionController) redirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		election, candidate, err := e.electionService.Landing(user)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		switch {
		case election == nil:
			c.Redirect(http.StatusFound, "/election/create")
		case candidate == nil:
			c.Redirect(http.StatusFound, electionAdminPath(user.Username, election.Slug))
		default:
			c.Redirect(http.StatusFound, candidateDataUpdatePath(election.Slug, candidate.Slug))
		}
	}
}

func (e *ElectionController) renderUpdate(c *gin.Context, election *repository.Election, form *Form) {
	user := getUser(c)
	election.Owner = user
	render(c, "elections/election_update_form.html", gin.H{
		"form":         form,
		"election":     toElectionResponse(election, e.electionService.LogoURL(election)),
		"election_url": absoluteURL(c, electionDetailPath(user.Username, election.Slug)),
	})
}

// @id ElectionUpdatePage
// @Description Election edit form
// @Tags election
// @Produce json
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/update [get]
func (e *ElectionController) updatePageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, err := e.electionService.GetElectionForOwner(getUser(c).ID, c.Param("slug"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		e.renderUpdate(c, election, newElectionUpdateForm(election))
	}
}

// @id UpdateElection
// @Description Updates an owned election
// @Tags election
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Election slug"
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param logo formData file false "Logo"
// @Param information_source formData string false "Information source"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /election/{slug}/update [post]
func (e *ElectionController) updateElectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		election, err := e.electionService.GetElectionForOwner(user.ID, c.Param("slug"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		form := newElectionUpdateForm(nil)
		var request ElectionUpdate
		if !bindForm(c, &request, form) {
			e.renderUpdate(c, election, form)
			return
		}
		logo, err := optionalFile(c, "logo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := e.electionService.Update(c.Request.Context(), user, election.Slug, &service.ElectionInput{
			Name:              request.Name,
			Description:       request.Description,
			InformationSource: request.InformationSource,
			Logo:              logo,
		})
		if err != nil {
			if form.AddValidationError(err) {
				e.renderUpdate(c, election, form)
				return
			}
			app_error.Abort(c, err)
			return
		}
		c.Redirect(http.StatusFound, electionUpdatePath(updated.Slug))
	}
}

func (e *ElectionController) candidates(election *repository.Election) ([]*CandidateResponse, error) {
	candidates, err := e.candidateService.GetCandidates(election)
	if err != nil {
		return nil, err
	}
	return utils.Map(candidates, func(candidate *repository.Candidate) *CandidateResponse {
		return toCandidateResponse(candidate, e.candidateService.PhotoURL(candidate))
	}), nil
}

func (e *ElectionController) electionPage(template string, withCandidates bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		election, err := e.electionService.GetElection(c.Param("username"), c.Param("slug"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		context := gin.H{"election": toElectionResponse(election, e.electionService.LogoURL(election))}
		if withCandidates {
			candidates, err := e.candidates(election)
			if err != nil {
				app_error.Abort(c, err)
				return
			}
			context["candidates"] = candidates
		}
		render(c, template, context)
	}
}

// @id ElectionDetail
// @Description Public page of an election
// @Tags election
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/ [get]
func (e *ElectionController) detailHandler() gin.HandlerFunc {
	return e.electionPage("elections/election_detail.html", true)
}

// @id ElectionProfiles
// @Description Candidate profiles of an election
// @Tags election
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/profiles [get]
func (e *ElectionController) profilesHandler() gin.HandlerFunc {
	return e.electionPage("elections/election_detail_profiles.html", true)
}

// @id ElectionAbout
// @Description About page of an election
// @Tags election
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/about [get]
func (e *ElectionController) aboutHandler() gin.HandlerFunc {
	return e.electionPage("elections/election_about.html", false)
}

// @id ElectionAdmin
// @Description Owner view of an election
// @Tags election
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Security CookieAuth
// @Router /{username}/{slug}/admin [get]
func (e *ElectionController) adminHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, err := e.electionService.GetAdminElection(getUser(c), c.Param("username"), c.Param("slug"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		candidates, err := e.candidates(election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		render(c, "elections/election_detail_admin.html", gin.H{
			"election":   toElectionResponse(election, e.electionService.LogoURL(election)),
			"candidates": candidates,
		})
	}
}
