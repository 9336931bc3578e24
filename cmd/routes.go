package cmd

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"institute-events/config"
	"institute-events/handlers"
	"institute-events/models"
	"institute-events/security"
	"institute-events/utils"
)

type routes struct {
	cfg     *config.Config
	redis   redis.Cmdable
	auth    *handlers.Auth
	limiter *security.RateLimiter

	authH    *handlers.AuthHandler
	public   *handlers.PublicHandler
	events   *handlers.EventHandler
	tickets  *handlers.TicketHandler
	staff    *handlers.StaffHandler
	messages *handlers.MessageHandler
	exports  *handlers.ExportHandler
}

func (r *routes) register(se *core.ServeEvent) {
	editors := r.auth.RequireRole(models.RoleSuperAdmin, models.RoleInstituteAdmin, models.RoleStaff)
	admins := r.auth.RequireRole(models.RoleSuperAdmin, models.RoleInstituteAdmin)

	se.Router.BindFunc(r.auth.LoadCookie)

	// Health check
	se.Router.GET("/health", func(e *core.RequestEvent) error {
		if err := utils.RedisHealthCheck(e.Request.Context(), r.redis); err != nil {
			return e.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	if r.cfg.EnableMetrics {
		se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
	}

	// Public site
	se.Router.GET("/{$}", func(e *core.RequestEvent) error {
		return e.Redirect(http.StatusSeeOther, "/events")
	})
	se.Router.GET("/events", r.public.Events)
	se.Router.GET("/events/{id}", r.public.Event)
	se.Router.POST("/events/{id}/book", r.tickets.Book).BindFunc(r.limiter.AntiBotMiddleware)

	// Auth
	authGroup := se.Router.Group("/auth")
	authGroup.GET("/login", r.authH.LoginPage)
	authGroup.POST("/login", r.authH.Login).BindFunc(r.limiter.AntiBotMiddleware, r.limiter.LoginRateLimit)
	authGroup.GET("/signup", r.authH.SignupPage)
	authGroup.POST("/signup", r.authH.Signup).BindFunc(r.limiter.AntiBotMiddleware, r.limiter.LoginRateLimit)
	authGroup.GET("/logout", r.authH.Logout)
	authGroup.POST("/logout", r.authH.Logout)

	// Dashboard
	se.Router.GET("/dashboard", r.events.Dashboard).BindFunc(r.auth.RequireLogin)

	dash := se.Router.Group("/dashboard")
	dash.BindFunc(r.auth.RequireLogin)

	dash.GET("/events", r.events.List)
	dash.POST("/events", r.events.Create).BindFunc(editors)
	dash.GET("/events/{id}", r.events.Get)
	dash.GET("/events/edit/{id}", r.events.Get)
	dash.POST("/events/{id}", r.events.Update).BindFunc(editors)
	dash.DELETE("/events/{id}", r.events.Delete).BindFunc(editors)
	dash.POST("/events/{id}/delete", r.events.Delete).BindFunc(editors)
	dash.GET("/calendar", r.events.Calendar)

	dash.GET("/tickets", r.tickets.List)
	dash.POST("/tickets/{id}/status", r.tickets.UpdateStatus).BindFunc(editors)

	dash.GET("/staff", r.staff.Grid)
	dash.POST("/staff", r.staff.Create).BindFunc(editors)
	dash.POST("/staff/import", r.staff.Import).BindFunc(editors)
	dash.POST("/staff/{id}/attendance", r.staff.MarkAttendance).BindFunc(editors)
	dash.GET("/profiles", r.staff.Profiles).BindFunc(admins)
	dash.POST("/profiles/{id}/role", r.staff.UpdateRole).BindFunc(admins)

	messages := dash.Group("/messages")
	messages.BindFunc(editors)
	messages.GET("/queue", r.messages.Queue)
	messages.POST("/queue", r.messages.Process)
	messages.DELETE("/queue", r.messages.Reset)
	messages.POST("/queue/{item}/send", r.messages.Send)
	messages.GET("/templates", r.messages.Templates)
	messages.POST("/templates", r.messages.SaveTemplate)
	messages.DELETE("/templates/{index}", r.messages.DeleteTemplate)

	dash.GET("/export", r.exports.Dialog).BindFunc(editors)
	exports := dash.Group("/export")
	exports.BindFunc(editors)
	exports.GET("/xlsx", r.exports.Spreadsheet)
	exports.POST("/pdf", r.exports.Document)
	exports.GET("/settings", r.exports.Settings)
	exports.POST("/settings", r.exports.SaveSettings)
	exports.DELETE("/settings", r.exports.ClearSettings)
}
