package main

import (
	"context"
	"net/http"
	"time"

	"interview-booking-api/internal/middleware"
	"interview-booking-api/internal/models"
	"interview-booking-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupStaticRoutes configures documentation and metrics
func (a *App) setupStaticRoutes() {
	// Serve Swagger UI; the bare prefix redirects to the UI page
	swagger := ginSwagger.WrapHandler(swaggerFiles.Handler)
	a.Router.GET("/api-docs/*any", func(c *gin.Context) {
		if path := c.Param("any"); path == "" || path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/api-docs/index.html")
			return
		}
		swagger(c)
	})

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		for name, check := range a.checks {
			if err := check(ctx); err != nil {
				logger.GlobalLogger.Printf("%s ping failed: %v", name, err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": name + " unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes mounts the three route groups under /api/v1
func (a *App) setupAPIRoutes() {
	protect := middleware.Protect(a.AuthService)
	adminOnly := middleware.Authorize(models.RoleAdmin)
	anyRole := middleware.Authorize(models.RoleAdmin, models.RoleUser)

	v1 := a.Router.Group("/api/v1")

	companies := v1.Group("/companies")
	{
		companies.GET("", a.CompanyHandler.GetCompanies)
		companies.GET("/:id", a.CompanyHandler.GetCompany)
		companies.POST("", protect, adminOnly, a.CompanyHandler.CreateCompany)
		companies.PUT("/:id", protect, adminOnly, a.CompanyHandler.UpdateCompany)
		companies.DELETE("/:id", protect, adminOnly, a.CompanyHandler.DeleteCompany)

		companies.GET("/:id/bookings", protect, a.BookingHandler.GetCompanyBookings)
		companies.POST("/:id/bookings", protect, anyRole, a.BookingHandler.AddCompanyBooking)
	}

	auth := v1.Group("/auth")
	auth.Use(middleware.ThrottleMiddleware(a.Throttle))
	{
		auth.POST("/register", a.AuthHandler.Register)
		auth.POST("/login", a.AuthHandler.Login)
		auth.GET("/me", protect, a.AuthHandler.GetMe)
		auth.GET("/logout", a.AuthHandler.Logout)
	}

	bookings := v1.Group("/bookings")
	bookings.Use(protect)
	{
		bookings.GET("", a.BookingHandler.GetBookings)
		bookings.GET("/:id", a.BookingHandler.GetBooking)
		bookings.POST("", anyRole, a.BookingHandler.AddBooking)
		bookings.PUT("/:id", anyRole, a.BookingHandler.UpdateBooking)
		bookings.DELETE("/:id", anyRole, a.BookingHandler.DeleteBooking)
	}
}
