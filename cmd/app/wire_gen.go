// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"go.uber.org/zap"
	"uptown/config"
	"uptown/internal/command"
	command2 "uptown/internal/command/handler"
	"uptown/internal/cron"
	"uptown/internal/database/client"
	"uptown/internal/database/fluentd/repository"
	repository3 "uptown/internal/database/mongodb/repository"
	repository2 "uptown/internal/database/redis/repository"
	"uptown/internal/handler"
	"uptown/internal/middleware"
	"uptown/internal/router"
	"uptown/internal/service"
	"uptown/internal/service/cloudinary"
	"uptown/internal/telemetry"
)

import (
	_ "uptown/cmd/docs"
)

// Injectors from wire.go:

// wireApp init application.
func wireApp(configuration *config.Configuration, zapLogger *zap.Logger) (*App, func(), error) {
	trace, err := telemetry.NewTrace(configuration)
	if err != nil {
		return nil, nil, err
	}
	metric := telemetry.NewMetric(configuration)
	traceEntry := middleware.NewTraceEntry(trace, metric, configuration)
	fluentdClient, err := client.NewFluentdClient(zapLogger, configuration)
	if err != nil {
		return nil, nil, err
	}
	logRepository := repository.NewLogRepository(configuration, fluentdClient)
	recovery := middleware.NewRecovery(zapLogger, trace, metric, configuration, logRepository)
	cors := middleware.NewCors(trace)
	middlewareLogger := middleware.NewLogger(zapLogger, trace, configuration, logRepository)
	response := middleware.NewResponse(zapLogger, trace, metric, configuration, logRepository)
	redisClient, cleanup, err := client.NewRedisClient(zapLogger, configuration)
	if err != nil {
		return nil, nil, err
	}
	loginLimiterRepository := repository2.NewLoginLimiterRepository(trace, redisClient)
	authService := service.NewAuthService(trace, loginLimiterRepository, configuration, zapLogger)
	auth := middleware.NewAuth(trace, authService)
	authHandler := handler.NewAuthHandler(trace, authService)
	mongoClient, cleanup2, err := client.NewMongoClient(zapLogger, configuration)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	propertyRepository := repository3.NewPropertyRepository(mongoClient)
	cityContentRepository := repository3.NewCityContentRepository(mongoClient)
	microlocationRepository := repository3.NewMicrolocationRepository(mongoClient)
	amenityRepository := repository3.NewAmenityRepository(mongoClient)
	colivingPlanRepository := repository3.NewColivingPlanRepository(mongoClient)
	httpClient := newHttpClient()
	cloudinaryService := cloudinary.NewCloudinaryService(trace, metric, configuration, httpClient)
	propertyService := service.NewPropertyService(trace, propertyRepository, cityContentRepository, microlocationRepository, amenityRepository, colivingPlanRepository, cloudinaryService, zapLogger)
	propertyHandler := handler.NewPropertyHandler(trace, propertyService)
	stateRepository := repository3.NewStateRepository(mongoClient)
	stateService := service.NewStateService(trace, stateRepository, zapLogger)
	stateHandler := handler.NewStateHandler(trace, stateService)
	cityService := service.NewCityService(trace, cityContentRepository, stateRepository, zapLogger)
	cityHandler := handler.NewCityHandler(trace, cityService)
	microlocationService := service.NewMicrolocationService(trace, microlocationRepository, cityContentRepository, zapLogger)
	microlocationHandler := handler.NewMicrolocationHandler(trace, microlocationService)
	amenityService := service.NewAmenityService(trace, amenityRepository, cloudinaryService, zapLogger)
	amenityHandler := handler.NewAmenityHandler(trace, amenityService)
	colivingPlanService := service.NewColivingPlanService(trace, colivingPlanRepository, cloudinaryService, zapLogger)
	colivingPlanHandler := handler.NewColivingPlanHandler(trace, colivingPlanService)
	leadRepository := repository3.NewLeadRepository(mongoClient)
	leadService := service.NewLeadService(trace, leadRepository, zapLogger)
	leadHandler := handler.NewLeadHandler(trace, leadService)
	mediaFileRepository := repository3.NewMediaFileRepository(mongoClient)
	mediaService := service.NewMediaService(trace, mediaFileRepository, cloudinaryService, zapLogger)
	mediaHandler := handler.NewMediaHandler(trace, mediaService)
	apiRouter := router.NewApiRouter(auth, authHandler, propertyHandler, stateHandler, cityHandler, microlocationHandler, amenityHandler, colivingPlanHandler, leadHandler, mediaHandler)
	healthService := service.NewHealthService()
	healthHandler := handler.NewHealthHandler(healthService)
	healthRouter := router.NewHealthRouter(healthHandler)
	engine := router.NewRouter(configuration, traceEntry, recovery, cors, middlewareLogger, response, apiRouter, healthRouter)
	server := newHttpServer(configuration, engine)
	cronCron := cron.NewCron(zapLogger, configuration, propertyService)
	app := newApp(configuration, zapLogger, engine, server, healthService, cronCron)
	return app, func() {
		cleanup2()
		cleanup()
	}, nil
}

// wireCommand init application.
func wireCommand(configuration *config.Configuration, zapLogger *zap.Logger) (*command.Command, func(), error) {
	trace, err := telemetry.NewTrace(configuration)
	if err != nil {
		return nil, nil, err
	}
	mongoClient, cleanup, err := client.NewMongoClient(zapLogger, configuration)
	if err != nil {
		return nil, nil, err
	}
	propertyRepository := repository3.NewPropertyRepository(mongoClient)
	cityContentRepository := repository3.NewCityContentRepository(mongoClient)
	microlocationRepository := repository3.NewMicrolocationRepository(mongoClient)
	amenityRepository := repository3.NewAmenityRepository(mongoClient)
	colivingPlanRepository := repository3.NewColivingPlanRepository(mongoClient)
	metric := telemetry.NewMetric(configuration)
	httpClient := newHttpClient()
	cloudinaryService := cloudinary.NewCloudinaryService(trace, metric, configuration, httpClient)
	propertyService := service.NewPropertyService(trace, propertyRepository, cityContentRepository, microlocationRepository, amenityRepository, colivingPlanRepository, cloudinaryService, zapLogger)
	reconcileHandler := command2.NewReconcileHandler(zapLogger, propertyService)
	stateRepository := repository3.NewStateRepository(mongoClient)
	cityService := service.NewCityService(trace, cityContentRepository, stateRepository, zapLogger)
	backfillHandler := command2.NewBackfillHandler(zapLogger, cityService)
	commandCommand := command.NewCommand(reconcileHandler, backfillHandler)
	return commandCommand, func() {
		cleanup()
	}, nil
}
