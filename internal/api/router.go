package api

import (
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Witch19/rrhh-console/internal/api/docs"
	"github.com/Witch19/rrhh-console/internal/api/handler"
	"github.com/Witch19/rrhh-console/internal/api/middleware"
	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// Deps holds everything the router needs to register routes.
type Deps struct {
	Log      zerolog.Logger
	Session  middleware.SessionConfig
	Sessions middleware.SessionOpener
	Auth     handler.AuthService
	HR       handler.HRService

	ThemeCookie    string
	PublicEntry    string
	LoginRateLimit int
	Readiness      map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.PublicEntry)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit("12M"))
	e.Use(echoprometheus.NewMiddleware("rrhh"))

	// --- Health probes, metrics and docs (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	themes := handler.NewThemeHandler(d.ThemeCookie, d.Session.Secure)
	pages := handler.NewPageHandler(themes)
	auth := handler.NewAuthHandler(d.Auth, d.PublicEntry)
	hr := handler.NewHRHandler(d.HR)

	// Every console route runs with an open session.
	app := e.Group("",
		middleware.Session(d.Session, d.Sessions, d.Log),
		middleware.ExpireOnUnauthorized(d.Log),
	)

	// --- Public routes ---
	app.GET("/", pages.Public(handler.ViewLanding))
	app.GET("/login", pages.Login)
	app.GET("/register", pages.Public(handler.ViewRegister))
	app.POST("/login", auth.Login, loginLimiter(d.LoginRateLimit)...)
	app.POST("/register", auth.Register)
	app.POST("/logout", auth.Logout)
	app.GET("/api/session", auth.Session)
	app.GET("/api/theme", themes.Get)
	app.PUT("/api/theme", themes.Set)
	app.GET("/api/job-types", hr.ListJobTypes)
	app.GET("/api/job-types/options", hr.ListJobTypeOptions)
	app.POST("/api/applicants", hr.Apply)

	// --- Protected routes ---
	private := &guarded{group: app, identity: middleware.RequireIdentity(d.PublicEntry)}
	private.GET("/dashboard", pages.Protected(handler.ViewDashboard))
	private.GET("/trabajadores", pages.Protected(handler.ViewWorkers))
	private.GET("/cursos", pages.Protected(handler.ViewCourses))
	private.GET("/solicitudes", pages.Protected(handler.ViewRequests))
	private.GET("/aspirantes", pages.Protected(handler.ViewApplicants), can(domain.CapManageApplicants))
	private.GET("/usuarios", pages.Protected(handler.ViewUsers), can(domain.CapManageUsers))

	private.GET("/api/profile", auth.Profile)
	private.PUT("/api/profile", auth.UpdateProfile)

	private.GET("/api/workers", hr.ListWorkers, can(domain.CapViewDirectory))
	private.GET("/api/workers/:id", hr.GetWorker, can(domain.CapViewDirectory))
	private.POST("/api/workers", hr.CreateWorker, can(domain.CapManageWorkers))
	private.PATCH("/api/workers/:id", hr.UpdateWorker, can(domain.CapManageWorkers))
	private.DELETE("/api/workers/:id", hr.DeleteWorker, can(domain.CapManageWorkers))

	private.GET("/api/courses", hr.ListCourses, can(domain.CapViewDirectory))
	private.POST("/api/courses", hr.CreateCourse, can(domain.CapManageCourses))
	private.PUT("/api/courses/:id", hr.UpdateCourse, can(domain.CapManageCourses))
	private.DELETE("/api/courses/:id", hr.DeleteCourse, can(domain.CapManageCourses))

	private.GET("/api/enrollments", hr.ListEnrollments, can(domain.CapViewDirectory))
	private.POST("/api/enrollments", hr.Enroll, can(domain.CapSubmitRequests))
	private.DELETE("/api/enrollments/:id", hr.DeleteEnrollment, can(domain.CapManageCourses))

	private.GET("/api/requests", hr.ListRequests, can(domain.CapViewDirectory))
	private.POST("/api/requests", hr.SubmitRequest, can(domain.CapSubmitRequests))
	private.PUT("/api/requests/:id", hr.ReviewRequest, can(domain.CapReviewRequests))
	private.DELETE("/api/requests/:id", hr.DeleteRequest, can(domain.CapReviewRequests))

	private.GET("/api/applicants", hr.ListApplicants, can(domain.CapManageApplicants))
	private.DELETE("/api/applicants/:id", hr.DeleteApplicant, can(domain.CapManageApplicants))

	private.GET("/api/users", hr.ListUsers, can(domain.CapManageUsers))
	private.POST("/api/users", auth.Register, can(domain.CapManageUsers))
	private.PUT("/api/users/:id", hr.UpdateUser, can(domain.CapManageUsers))
	private.DELETE("/api/users/:id", hr.DeleteUser, can(domain.CapManageUsers))

	return e
}

// guarded registers routes behind the identity guard. Unknown paths keep the
// plain 404 of the outer group.
type guarded struct {
	group    *echo.Group
	identity echo.MiddlewareFunc
}

func (g *guarded) chain(m []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{g.identity}, m...)
}

func (g *guarded) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.group.GET(path, h, g.chain(m)...)
}

func (g *guarded) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.group.POST(path, h, g.chain(m)...)
}

func (g *guarded) PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.group.PUT(path, h, g.chain(m)...)
}

func (g *guarded) PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.group.PATCH(path, h, g.chain(m)...)
}

func (g *guarded) DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.group.DELETE(path, h, g.chain(m)...)
}

func can(capability domain.Capability) echo.MiddlewareFunc {
	return middleware.RequireCapability(capability)
}

// loginLimiter throttles login attempts per client IP. A limit of zero
// disables it.
func loginLimiter(perMinute int) []echo.MiddlewareFunc {
	if perMinute <= 0 {
		return nil
	}
	return []echo.MiddlewareFunc{
		echo.WrapMiddleware(httprate.LimitByIP(perMinute, time.Minute)),
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			} else {
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
