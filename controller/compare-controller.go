package controller

import (
	"candideit/app_error"
	"candideit/events"
	"candideit/filestorage"
	"candideit/metrics"
	"candideit/repository"
	"candideit/service"
	"candideit/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompareController struct {
	electionService     *service.ElectionService
	electionDataService *service.ElectionDataService
	candidateService    *service.CandidateService
	comparisonService   *service.ComparisonService
}

func NewCompareController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *CompareController {
	return &CompareController{
		electionService:     service.NewElectionService(db, storage, publisher),
		electionDataService: service.NewElectionDataService(db),
		candidateService:    service.NewCandidateService(db, storage, publisher),
		comparisonService:   service.NewComparisonService(db, storage),
	}
}

func setupCompareController(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) []RouteInfo {
	e := NewCompareController(db, storage, publisher)
	basePath := "/:username/:slug/compare"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.compareHandler()},
		{Method: "GET", Path: "/:first", HandlerFunc: e.compareOneHandler()},
		{Method: "GET", Path: "/:first/:second", HandlerFunc: e.compareTwoHandler()},
		{Method: "GET", Path: "/:first/:second/:category", HandlerFunc: e.compareTwoHandler()},
		{Method: "POST", Path: "/async/:candidate", HandlerFunc: e.compareAsyncHandler()},
		{Method: "GET", Path: "/async/:candidate", HandlerFunc: methodNotAllowed("POST")},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func methodNotAllowed(allowed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", allowed)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	}
}

func (e *CompareController) election(c *gin.Context) (*repository.Election, bool) {
	election, err := e.electionService.GetElection(c.Param("username"), c.Param("slug"))
	if err != nil {
		app_error.Abort(c, err)
		return nil, false
	}
	return election, true
}

func (e *CompareController) renderComparison(c *gin.Context, election *repository.Election, comparison *service.Comparison) {
	render(c, "elections/election_compare.html", gin.H{
		"election":   toElectionResponse(election, e.electionService.LogoURL(election)),
		"comparison": comparison,
	})
}

// @id Compare
// @Description Comparison landing page listing candidates and categories
// @Tags compare
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/compare [get]
func (e *CompareController) compareHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.election(c)
		if !ok {
			return
		}
		candidates, err := e.candidateService.GetCandidates(election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		categories, err := e.electionDataService.GetCategories(election)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		render(c, "elections/election_compare.html", gin.H{
			"election": toElectionResponse(election, e.electionService.LogoURL(election)),
			"candidates": utils.Map(candidates, func(candidate *repository.Candidate) *CandidateResponse {
				return toCandidateResponse(candidate, e.candidateService.PhotoURL(candidate))
			}),
			"categories": utils.Map(categories, toCategoryResponse),
		})
	}
}

// @id CompareOne
// @Description Data of a single candidate
// @Tags compare
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Param first path string true "Candidate slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/compare/{first} [get]
func (e *CompareController) compareOneHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.election(c)
		if !ok {
			return
		}
		comparison, err := e.comparisonService.CompareOne(election, c.Param("first"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		e.renderComparison(c, election, comparison)
	}
}

// @id CompareTwo
// @Description Compares two different candidates, optionally on one category
// @Tags compare
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Param first path string true "First candidate slug"
// @Param second path string true "Second candidate slug"
// @Param category path string true "Category slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /{username}/{slug}/compare/{first}/{second}/{category} [get]
func (e *CompareController) compareTwoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.election(c)
		if !ok {
			return
		}
		comparison, err := e.comparisonService.CompareTwo(election, c.Param("first"), c.Param("second"), c.Param("category"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		e.renderComparison(c, election, comparison)
	}
}

// @id CompareAsync
// @Description Personal data of one candidate, for partial page updates
// @Tags compare
// @Produce json
// @Param username path string true "Owner username"
// @Param slug path string true "Election slug"
// @Param candidate path string true "Candidate slug"
// @Success 200 {object} service.CandidateProfile
// @Failure 404 {object} map[string]string
// @Failure 405 {object} map[string]string
// @Router /{username}/{slug}/compare/async/{candidate} [post]
func (e *CompareController) compareAsyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		election, ok := e.election(c)
		if !ok {
			return
		}
		profile, err := e.comparisonService.Profile(election, c.Param("candidate"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		metrics.ComparisonsCounter.WithLabelValues(service.CompareModeAsync).Inc()
		c.JSON(http.StatusOK, profile)
	}
}
