package controller

import (
	"candideit/auth"
	"candideit/config"
	"candideit/repository"
	"candideit/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const loginLanding = "/election/redirect"

type AccountController struct {
	userService *service.UserService
}

func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{
		userService: service.NewUserService(db),
	}
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterRequest struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"omitempty,email"`
	Password  string `form:"password1" binding:"required"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

func newLoginForm() *Form {
	return newForm("LoginForm", textField("username", true), passwordField("password"))
}

func newRegisterForm() *Form {
	return newForm("RegisterForm",
		textField("username", true),
		textField("email", false),
		passwordField("password1"),
		passwordField("password2"),
	)
}

func setupAccountController(db *gorm.DB) []RouteInfo {
	e := NewAccountController(db)
	basePath := "/accounts"
	routes := []RouteInfo{
		{Method: "GET", Path: "/login", HandlerFunc: e.loginPageHandler()},
		{Method: "POST", Path: "/login", HandlerFunc: e.loginHandler()},
		{Method: "GET", Path: "/register", HandlerFunc: e.registerPageHandler()},
		{Method: "POST", Path: "/register", HandlerFunc: e.registerHandler()},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id LoginPage
// @Description Login page context
// @Tags account
// @Produce json
// @Param next query string false "Location to continue to"
// @Success 200 {object} Form
// @Router /accounts/login [get]
func (e *AccountController) loginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "registration/login.html", gin.H{"form": newLoginForm(), "next": c.Query("next")})
	}
}

// @id Login
// @Description Checks the credentials and sets the auth cookie
// @Tags account
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next query string false "Location to continue to"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Router /accounts/login [post]
func (e *AccountController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		form := newLoginForm()
		next := c.Query("next")
		if next == "" {
			next = c.PostForm("next")
		}
		var request LoginRequest
		if !bindForm(c, &request, form) {
			render(c, "registration/login.html", gin.H{"form": form, "next": next})
			return
		}
		user, err := e.userService.Authenticate(request.Username, request.Password)
		if err != nil {
			if form.AddValidationError(err) {
				render(c, "registration/login.html", gin.H{"form": form, "next": next})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := setAuthCookie(c, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Redirect(http.StatusFound, safeNext(next))
	}
}

// @id RegisterPage
// @Description Registration page context
// @Tags account
// @Produce json
// @Success 200 {object} Form
// @Router /accounts/register [get]
func (e *AccountController) registerPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "registration/register.html", gin.H{"form": newRegisterForm()})
	}
}

// @id Register
// @Description Creates an account and logs it in
// @Tags account
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string false "Email"
// @Param password1 formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Success 302
// @Success 200 {object} Form "Form with errors"
// @Router /accounts/register [post]
func (e *AccountController) registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		form := newRegisterForm()
		var request RegisterRequest
		if !bindForm(c, &request, form) {
			render(c, "registration/register.html", gin.H{"form": form})
			return
		}
		user, err := e.userService.Register(request.Username, request.Email, request.Password)
		if err != nil {
			if form.AddValidationError(err) {
				render(c, "registration/register.html", gin.H{"form": form})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := setAuthCookie(c, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Redirect(http.StatusFound, "/election/create")
	}
}

// @id Logout
// @Description Clears the auth cookie
// @Tags account
// @Success 302
// @Router /accounts/logout [post]
func (e *AccountController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.CookieName, "", -1, "/", "", config.IsProduction(), true)
		c.Redirect(http.StatusFound, config.Env().LoginURL)
	}
}

func setAuthCookie(c *gin.Context, user *repository.User) error {
	token, err := auth.CreateToken(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(auth.TokenLifetime.Seconds()), "/", "", config.IsProduction(), true)
	return nil
}

// safeNext only follows local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return loginLanding
	}
	return next
}
