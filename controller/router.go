package controller

import (
	"candideit/config"
	"candideit/events"
	"candideit/filestorage"
	"candideit/logging"
	"candideit/repository"
	"candideit/service"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userContextKey = "user"
	pageCacheTTL   = time.Minute
)

// cachedPages are the public election pages served through the page cache.
var cachedPages = []string{"profiles", "about"}

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	Cached        bool
}

func SetRoutes(r *gin.Engine, db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) {
	pageCache := persistence.NewInMemoryStore(pageCacheTTL)
	identify := IdentifyMiddleware(service.NewUserService(db))

	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAccountController(db)...)
	routes = append(routes, setupElectionController(db, storage, publisher)...)
	routes = append(routes, setupElectionDataController(db, storage, publisher)...)
	routes = append(routes, setupCandidateController(db, storage, publisher)...)
	routes = append(routes, setupCompareController(db, storage, publisher)...)
	for _, route := range routes {
		handlerfuncs := []gin.HandlerFunc{identify}
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, LoginRequired())
			if route.Method != http.MethodGet {
				handlerfuncs = append(handlerfuncs, InvalidatePages(pageCache))
			}
		}
		if route.Cached {
			handlerfuncs = append(handlerfuncs, cache.CachePage(pageCache, pageCacheTTL, route.HandlerFunc))
		} else {
			handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		}
		r.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// IdentifyMiddleware attaches the user behind the request credentials, if
// any. Invalid or expired tokens are treated as anonymous.
func IdentifyMiddleware(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := userService.GetUserFromRequest(c); err == nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// InvalidatePages drops the cached public pages of the election named by the
// slug parameter once an owner request on it has been handled.
func InvalidatePages(store persistence.CacheStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		user := getUser(c)
		slug := c.Param("slug")
		if user == nil || slug == "" {
			return
		}
		for _, page := range cachedPages {
			key := cache.CreateKey(fmt.Sprintf("/%s/%s/%s", user.Username, slug, page))
			if err := store.Delete(key); err != nil && !errors.Is(err, persistence.ErrCacheMiss) {
				logging.Log.WithError(err).Warnf("CACHE: could not drop %s", key)
			}
		}
	}
}

// LoginRequired sends anonymous requests to the login page, keeping the
// requested location in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if getUser(c) != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func LoginRedirectURL(next string) string {
	return config.Env().LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func getUser(c *gin.Context) *repository.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*repository.User)
	return user
}
