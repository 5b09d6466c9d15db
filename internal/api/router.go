package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sainamthip/resort-booking-backend/internal/auth"
	"github.com/sainamthip/resort-booking-backend/internal/conference"
	conferenceHttp "github.com/sainamthip/resort-booking-backend/internal/conference/http"
	"github.com/sainamthip/resort-booking-backend/internal/hall"
	hallHttp "github.com/sainamthip/resort-booking-backend/internal/hall/http"
	"github.com/sainamthip/resort-booking-backend/internal/hotel"
	hotelHttp "github.com/sainamthip/resort-booking-backend/internal/hotel/http"
	"github.com/sainamthip/resort-booking-backend/internal/pool"
	poolHttp "github.com/sainamthip/resort-booking-backend/internal/pool/http"
	"github.com/sainamthip/resort-booking-backend/internal/report"
	reportHttp "github.com/sainamthip/resort-booking-backend/internal/report/http"
	"github.com/sainamthip/resort-booking-backend/internal/restaurant"
	restaurantHttp "github.com/sainamthip/resort-booking-backend/internal/restaurant/http"
	"github.com/sainamthip/resort-booking-backend/internal/room"
	roomHttp "github.com/sainamthip/resort-booking-backend/internal/room/http"
	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
	roomtypeHttp "github.com/sainamthip/resort-booking-backend/internal/roomtype/http"
	"github.com/sainamthip/resort-booking-backend/internal/timeslot"
	timeslotHttp "github.com/sainamthip/resort-booking-backend/internal/timeslot/http"
	"github.com/sainamthip/resort-booking-backend/internal/user"
	userHttp "github.com/sainamthip/resort-booking-backend/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService       user.Service
	SlotService       timeslot.Service
	PoolService       pool.Service
	HallService       hall.Service
	ConferenceService conference.Service
	RoomTypeService   roomtype.Service
	RoomService       room.Service
	HotelService      hotel.Service
	RestaurantService restaurant.Service
	ReportService     report.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and
// registering routes for the booking modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	slotHandler := timeslotHttp.NewHandler(cfg.SlotService)
	poolHandler := poolHttp.NewHandler(cfg.PoolService)
	hallHandler := hallHttp.NewHandler(cfg.HallService)
	conferenceHandler := conferenceHttp.NewHandler(cfg.ConferenceService)
	roomTypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	hotelHandler := hotelHttp.NewHandler(cfg.HotelService)
	restaurantHandler := restaurantHttp.NewHandler(cfg.RestaurantService)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		timeslotHttp.RegisterRoutes(v1, slotHandler, authMiddleware)
		poolHttp.RegisterRoutes(v1, poolHandler, authMiddleware)
		hallHttp.RegisterRoutes(v1, hallHandler, authMiddleware)
		conferenceHttp.RegisterRoutes(v1, conferenceHandler, authMiddleware)
		roomtypeHttp.RegisterRoutes(v1, roomTypeHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		hotelHttp.RegisterRoutes(v1, hotelHandler, authMiddleware)
		restaurantHttp.RegisterRoutes(v1, restaurantHandler, authMiddleware)
		reportHttp.RegisterRoutes(v1, reportHandler, authMiddleware)
	}

	return r
}
