package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/api"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const pathSwagger = "/swagger"

// Deps are the handlers the router mounts.
type Deps struct {
	Auth     *handler.AuthHandler
	Ticket   *handler.TicketHandler
	Category *handler.CategoryHandler
	User     *handler.UserHandler
	Faq      *handler.FaqHandler
}

func New(sessionSecret string, d Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	v1.Use(auth.Middleware(sessionSecret))
	{
		v1.POST("/auth/login", d.Auth.Login)
		v1.POST("/auth/logout", d.Auth.Logout)
		v1.GET("/auth/me", auth.RequireAuth, d.Auth.Me)

		tickets := v1.Group("/tickets", auth.RequireAuth)
		{
			tickets.GET("", d.Ticket.List)
			tickets.POST("", d.Ticket.Create)
			tickets.GET("/export", d.Ticket.Export)
			tickets.POST("/import", auth.RequireStaff, d.Ticket.Import)
			tickets.GET("/:id", d.Ticket.Get)
			tickets.PUT("/:id", d.Ticket.Update)
			tickets.DELETE("/:id", d.Ticket.Delete)
			tickets.GET("/:id/comments", d.Ticket.Comments)
			tickets.POST("/:id/comments", d.Ticket.AddComment)
		}

		v1.GET("/dashboard/stats", auth.RequireAuth, d.Ticket.Dashboard)

		categories := v1.Group("/categories")
		{
			categories.GET("", d.Category.List)
			categories.GET("/:id", d.Category.Get)
			categories.GET("/:id/subcategories", d.Category.Subcategories)
			categories.POST("", auth.RequireAuth, d.Category.Create)
			categories.PUT("/:id", auth.RequireAuth, d.Category.Update)
			categories.DELETE("/:id", auth.RequireAuth, d.Category.Delete)
		}

		users := v1.Group("/users", auth.RequireAuth)
		{
			users.GET("", d.User.List)
			users.GET("/:id", d.User.Get)
			users.POST("", d.User.Create)
			users.PUT("/:id", d.User.Update)
			users.DELETE("/:id", d.User.Delete)
			users.PUT("/:id/password", d.User.ChangePassword)
		}

		faqs := v1.Group("/faqs")
		{
			faqs.GET("", d.Faq.List)
			faqs.GET("/:id", d.Faq.Get)
			faqs.POST("", auth.RequireAuth, d.Faq.Create)
			faqs.PUT("/:id", auth.RequireAuth, d.Faq.Update)
		}
	}

	return r
}
