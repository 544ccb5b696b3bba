package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rent-backend/config"
	"rent-backend/controllers"
	"rent-backend/middleware"
)

func corsOrigins(cfg *config.Config) []string {
	if len(cfg.CORSOrigins) == 0 {
		return []string{cfg.FrontendURL}
	}
	return cfg.CORSOrigins
}

// SetupRouter wires middleware and the API surface onto a gin engine.
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	ac *controllers.AuthController,
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := corsOrigins(cfg)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := []byte(cfg.JWTSecret)
	requireUser := middleware.RequireUser(db, secret)
	optionalUser := middleware.OptionalUser(db, secret)

	listing := r.Group("/api/v1/rent/listing")
	{
		listing.GET("", pc.List)
		listing.GET("/:id", pc.Get)
	}

	user := r.Group("/api/v1/rent/user")
	{
		// authentication
		user.POST("/signup", ac.Signup)
		user.POST("/login", ac.Login)
		user.GET("/logout", ac.Logout)
		user.POST("/forgotPassword", ac.ForgotPassword)
		user.PATCH("/resetPassword/:token", ac.ResetPassword)

		// profile
		user.GET("/me", requireUser, ac.Me)
		user.PATCH("/updateMe", requireUser, ac.UpdateMe)
		user.PATCH("/updateMyPassword", requireUser, ac.UpdateMyPassword)

		// accommodations
		user.POST("/newAccommodation", requireUser, pc.Create)
		user.GET("/myAccommodation", optionalUser, pc.MyAccommodation)
		user.GET("/getUsersProperties", requireUser, pc.UsersProperties)

		// checkout
		user.POST("/checkout-session", requireUser, bc.Checkout)

		// bookings
		user.GET("/booking", requireUser, bc.ListMine)
		user.GET("/booking/:bookingId", requireUser, bc.Details)
		user.POST("/booking/new", requireUser, bc.Create)
	}

	return r
}
