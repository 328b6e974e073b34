package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/confmed/icms-api/docs"
	v1 "github.com/confmed/icms-api/internal/api/handler/v1"
	"github.com/confmed/icms-api/internal/api/middleware"
	"github.com/confmed/icms-api/internal/cache"
	"github.com/confmed/icms-api/internal/config"
	"github.com/confmed/icms-api/internal/email"
	"github.com/confmed/icms-api/internal/payment"
	"github.com/confmed/icms-api/internal/repository"
	"github.com/confmed/icms-api/internal/repository/dao"
	"github.com/confmed/icms-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	var eventCache service.EventCache
	if redisClient != nil {
		ttl := time.Duration(conf.Redis.TTL) * time.Second
		eventCache = cache.NewEventCache(redisClient, ttl)
	}

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db, eventCache)
	directoryHandler := s.initDirectoryHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	certificateHandler := s.initCertificateHandler(db)
	publicHandler := s.initPublicHandler(db, eventCache)
	s.MountHandlers(authHandler, userHandler, eventHandler, directoryHandler, registrationHandler, certificateHandler, publicHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, eventCache service.EventCache) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo, eventCache)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initDirectoryHandler(db *gorm.DB) *v1.DirectoryHandler {
	speakerRepo := repository.NewSpeakerRepository(dao.NewSpeakerDAO(db))
	sponsorRepo := repository.NewSponsorRepository(dao.NewSponsorDAO(db))
	speakerSvc := service.NewSpeakerService(speakerRepo)
	sponsorSvc := service.NewSponsorService(sponsorRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewDirectoryHandler(speakerSvc, sponsorSvc, uSvc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	payments := payment.NewStripeProvider(s.Config.Stripe)
	mailer := email.NewMailer(s.Config.Email)
	svc := service.NewRegistrationService(regRepo, eventRepo, payments, mailer)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewRegistrationHandler(svc, uSvc)

	return handler
}

func (s *Server) initCertificateHandler(db *gorm.DB) *v1.CertificateHandler {
	certRepo := repository.NewCertificateRepository(dao.NewCertificateDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewCertificateService(certRepo, regRepo, eventRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewCertificateHandler(svc, uSvc)

	return handler
}

func (s *Server) initPublicHandler(db *gorm.DB, eventCache service.EventCache) *v1.PublicHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(repo, eventCache)
	handler := v1.NewPublicHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	directoryHandler *v1.DirectoryHandler,
	registrationHandler *v1.RegistrationHandler,
	certificateHandler *v1.CertificateHandler,
	publicHandler *v1.PublicHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/public/events", publicHandler.HandleListPublishedEvents)
		public.GET("/public/events/:slug", publicHandler.HandleGetPublishedEvent)
		public.GET("/public/events/:slug/schedule.ics", publicHandler.HandleEventSchedule)
		public.GET("/public/certificates/:code/verify", certificateHandler.HandleVerifyCertificate)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	events := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		events.GET("/events", eventHandler.HandleListEvents)
		events.POST("/events", eventHandler.HandleCreateEvent)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		events.PATCH("/events/:eventID/publish", eventHandler.HandlePublishEvent)
		events.POST("/events/:eventID/duplicate", eventHandler.HandleDuplicateEvent)

		events.POST("/events/:eventID/speakers", eventHandler.HandleAddEventSpeaker)
		events.PUT("/events/:eventID/speakers/:assignmentID", eventHandler.HandleUpdateEventSpeaker)
		events.DELETE("/events/:eventID/speakers/:assignmentID", eventHandler.HandleRemoveEventSpeaker)

		events.GET("/events/:eventID/sessions", eventHandler.HandleListEventSessions)
		events.POST("/events/:eventID/sessions", eventHandler.HandleAddEventSession)
		events.PUT("/events/:eventID/sessions/:sessionID", eventHandler.HandleUpdateEventSession)
		events.DELETE("/events/:eventID/sessions/:sessionID", eventHandler.HandleRemoveEventSession)

		events.POST("/events/:eventID/sponsors", eventHandler.HandleAddEventSponsor)
		events.DELETE("/events/:eventID/sponsors/:assignmentID", eventHandler.HandleRemoveEventSponsor)

		events.POST("/events/:eventID/register", registrationHandler.HandleRegister)
	}

	directory := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		directory.GET("/speakers", directoryHandler.HandleListSpeakers)
		directory.POST("/speakers", directoryHandler.HandleCreateSpeaker)
		directory.GET("/speakers/:speakerID", directoryHandler.HandleGetSpeaker)
		directory.GET("/sponsors", directoryHandler.HandleListSponsors)
		directory.POST("/sponsors", directoryHandler.HandleCreateSponsor)
		directory.GET("/sponsors/:sponsorID", directoryHandler.HandleGetSponsor)
	}

	registrations := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		registrations.GET("/registrations", registrationHandler.HandleListOwnRegistrations)
		registrations.POST("/registrations/:registrationID/confirm-payment", registrationHandler.HandleConfirmPayment)
		registrations.POST("/certificates", certificateHandler.HandleIssueCertificate)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Conference Management API"
	docs.SwaggerInfo.Description = "Medical conference management: events, schedules, registrations and CME certificates."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
