package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"table-booking/config"
	"table-booking/controllers"
	"table-booking/middleware"
)

// Limiters are the per-IP buckets shared by each route group.
type Limiters struct {
	Read     *middleware.RateLimiter
	Write    *middleware.RateLimiter
	Resident *middleware.RateLimiter
}

func NewLimiters(cfg config.RateLimitConfig) Limiters {
	return Limiters{
		Read:     middleware.NewRateLimiter(cfg.Read),
		Write:    middleware.NewRateLimiter(cfg.Write),
		Resident: middleware.NewRateLimiter(cfg.Resident),
	}
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(
	cfg *config.Config,
	rc *controllers.ResidentController,
	bc *controllers.BookingController,
	ac *controllers.AvailabilityController,
	limits Limiters,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/rbw/v1")
	{
		read := api.Group("", middleware.RateLimit(limits.Read))
		{
			read.GET("/opening-hours", ac.OpeningHours)
			read.POST("/available-times", ac.AvailableTimes)
			read.POST("/available-times-multi", ac.AvailableTimesMulti)
			read.POST("/prefetch-staying", rc.PrefetchStaying)
			read.POST("/check-duplicate", bc.CheckDuplicate)
		}

		// ? resident checks fire on every settled keystroke, so they get their own bucket
		resident := api.Group("", middleware.RateLimit(limits.Resident))
		{
			resident.POST("/check-resident", rc.CheckResident)
			resident.POST("/verify-resident-phone", rc.VerifyPhone)
			resident.POST("/verify-resident-reference", rc.VerifyReference)
			resident.POST("/verify-resident", rc.VerifyLink)
			resident.POST("/check-group", rc.CheckGroup)
		}

		write := api.Group("", middleware.RateLimit(limits.Write))
		{
			write.POST("/create-booking", bc.CreateBooking)
			write.POST("/create-bookings-batch", bc.CreateBatch)
			write.POST("/mark-no-table", bc.MarkNoTable)
			write.POST("/plan-stay", bc.PlanStay)
		}
	}

	return r
}
