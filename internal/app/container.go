package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sainamthip/resort-booking-backend/internal/api"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
	"github.com/sainamthip/resort-booking-backend/internal/cache"
	"github.com/sainamthip/resort-booking-backend/internal/conference"
	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/hall"
	"github.com/sainamthip/resort-booking-backend/internal/hotel"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/storage"
	"github.com/sainamthip/resort-booking-backend/internal/pool"
	"github.com/sainamthip/resort-booking-backend/internal/report"
	"github.com/sainamthip/resort-booking-backend/internal/restaurant"
	"github.com/sainamthip/resort-booking-backend/internal/room"
	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
	"github.com/sainamthip/resort-booking-backend/internal/timeslot"
	"github.com/sainamthip/resort-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Cache        *cache.Cache
	Events       event.Publisher
	PhotoDir     string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	photoStore, err := storage.NewLocalStorage(cfg.PhotoDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}
	images := storage.NewImageProcessor()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// TimeSlot Module
	slotRepo := timeslot.NewPgxRepository(cfg.DBPool)
	slotService := timeslot.NewService(slotRepo)

	// Pool Module
	poolRepo := pool.NewPgxRepository(cfg.DBPool)
	poolService := pool.NewService(poolRepo, slotService, cfg.Events)

	// Hall Module
	hallRepo := hall.NewPgxRepository(cfg.DBPool)
	hallService := hall.NewService(hallRepo, photoStore, images)

	// Conference Module
	conferenceRepo := conference.NewPgxRepository(cfg.DBPool)
	conferenceService := conference.NewService(conferenceRepo, hallService, cfg.Events)

	// RoomType Module
	roomTypeRepo := roomtype.NewPgxRepository(cfg.DBPool)
	roomTypeService := roomtype.NewService(roomTypeRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, roomTypeService, photoStore, images)

	// Hotel Module
	hotelRepo := hotel.NewPgxRepository(cfg.DBPool)
	hotelService := hotel.NewService(hotelRepo, roomService, roomTypeService, cfg.Events)

	// Restaurant Module
	restaurantRepo := restaurant.NewPgxRepository(cfg.DBPool)
	restaurantService := restaurant.NewService(restaurantRepo, cfg.Events)

	// Report Module
	reportRepo := report.NewPgxRepository(cfg.DBPool)
	reportService := report.NewService(reportRepo, cfg.Cache)

	// API Router Config
	routerParams := api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UserService:       userService,
		SlotService:       slotService,
		PoolService:       poolService,
		HallService:       hallService,
		ConferenceService: conferenceService,
		RoomTypeService:   roomTypeService,
		RoomService:       roomService,
		HotelService:      hotelService,
		RestaurantService: restaurantService,
		ReportService:     reportService,
		JWTManager:        jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
