package main

import (
	"context"
	"mentorin-service/internal/app/config"
	"mentorin-service/internal/app/delivery/http/controllers"
	"mentorin-service/internal/app/delivery/http/middlewares"
	"mentorin-service/internal/app/delivery/http/routers"
	"mentorin-service/internal/app/drivers/database"
	"mentorin-service/internal/app/drivers/logger"
	"mentorin-service/internal/app/services/core/availability"
	"mentorin-service/internal/app/services/core/reaper"
	"mentorin-service/internal/app/services/core/sessions"
	"mentorin-service/internal/app/services/shared/locker"
	"mentorin-service/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	reaperWorker := bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, location)

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	reaperWorker.Start(runCtx)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests already received by the server to be processed..")

	reaperWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, location *time.Location) *reaper.Worker {
	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Middlewares
	mw := middlewares.New(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// Repositories
	weeklyRepository := availability.NewWeeklySlotMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	overrideRepository := availability.NewDateOverrideSlotMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	sessionRepository := sessions.NewBookedSessionMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Usecases
	admissionUsecase := availability.NewSlotAdmissionUsecase(
		bootstrap.Logger,
		weeklyRepository,
		overrideRepository,
		sessionRepository,
		lockerService,
		bootstrap.InternalConfig,
	)
	queryUsecase := availability.NewAvailabilityQueryUsecase(bootstrap.Logger, weeklyRepository, overrideRepository)
	reaperUsecase := reaper.NewExpiryReaperUsecase(bootstrap.Logger, overrideRepository, location)

	// Controllers
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, admissionUsecase, queryUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, mw, availabilityController)

	return reaper.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, reaperUsecase)
}
