package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

const themeCookieMaxAge = 365 * 24 * time.Hour

type themeRequest struct {
	Theme string `json:"theme" form:"theme" validate:"required,theme"`
}

type themeResponse struct {
	Theme    domain.Theme   `json:"theme"`
	Gradient string         `json:"gradient"`
	Themes   []domain.Theme `json:"themes"`
}

// ThemeHandler keeps the selected color scheme in its own cookie, apart from
// the session. Changing identity never touches it.
type ThemeHandler struct {
	cookieName string
	secure     bool
}

func NewThemeHandler(cookieName string, secure bool) *ThemeHandler {
	return &ThemeHandler{cookieName: cookieName, secure: secure}
}

// Current reads the theme cookie; missing or unknown values give the default.
func (h *ThemeHandler) Current(c echo.Context) domain.Theme {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil {
		return domain.ThemeDefault
	}
	theme, err := domain.ParseTheme(cookie.Value)
	if err != nil {
		return domain.ThemeDefault
	}
	return theme
}

func (h *ThemeHandler) describe(theme domain.Theme) themeResponse {
	return themeResponse{Theme: theme, Gradient: theme.Gradient(), Themes: domain.Themes()}
}

// Get returns the active theme.
//
// @Summary      Get theme
// @Tags         theme
// @Produce      json
// @Success      200  {object}  themeResponse
// @Router       /api/theme [get]
func (h *ThemeHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.describe(h.Current(c)))
}

// Set selects a theme.
//
// @Summary      Select theme
// @Tags         theme
// @Accept       json
// @Produce      json
// @Param        body  body      themeRequest  true  "Theme key"
// @Success      200   {object}  themeResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/theme [put]
func (h *ThemeHandler) Set(c echo.Context) error {
	var req themeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	theme, err := domain.ParseTheme(req.Theme)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, h.describe(theme))
}
