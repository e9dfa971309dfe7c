package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirenest/hirenest-be/internal/api/handler"
	"github.com/hirenest/hirenest-be/internal/api/storage"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, requestTimeout time.Duration) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())
	r.Use(TimeoutMiddleware(requestTimeout))

	store := storage.NewStorage(deps.DBClient)

	authHandler := handler.NewAuthHandler(deps.Logger, deps.Tokens, deps.Cookies)
	jobHandler := handler.NewJobHandler(deps.Logger, store)
	bidHandler := handler.NewBidHandler(deps.Logger, store, store, deps.RabbitClient)

	guard := RequireAuth(deps.Tokens, deps.Cookies.Name, deps.Logger)

	// Liveness probe
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "HireNest running peacefully")
	})

	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := deps.DBClient.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		c.JSON(status, gin.H{
			"service":  "hirenest-api",
			"database": dbStatus,
		})
	})

	// Session tokens
	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/logout", authHandler.Logout)

	// Jobs
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/job/:id", jobHandler.GetJob)
	r.POST("/job", jobHandler.CreateJob)
	r.PUT("/job/:id", jobHandler.UpdateJob)
	r.DELETE("/job/:id", jobHandler.DeleteJob)
	r.GET("/jobs/:email", guard, jobHandler.ListJobsByOwner)
	r.GET("/all-jobs", jobHandler.SearchJobs)
	r.GET("/job-count", jobHandler.CountJobs)

	// Bids
	r.POST("/bid", bidHandler.CreateBid)
	r.PATCH("/bid/:id", bidHandler.UpdateBidStatus)
	r.GET("/my-bids/:email", guard, bidHandler.ListBidsByBidder)
	r.GET("/bid-request/:email", guard, bidHandler.ListBidRequests)

	return r
}
