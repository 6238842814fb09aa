package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ringsizer/storefront/docs"
	v1 "github.com/ringsizer/storefront/internal/api/handler/v1"
	"github.com/ringsizer/storefront/internal/api/middleware"
	"github.com/ringsizer/storefront/internal/config"
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository"
	"github.com/ringsizer/storefront/internal/repository/dao"
	"github.com/ringsizer/storefront/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	client   *dao.Client
	creds    service.CredentialRepository
	sessions *service.SessionRegistry
	events   *v1.EventsHandler
}

// NewServer wires the storefront against the remote API reachable through client.
// creds persists the remote token of every signed-in user.
func NewServer(conf *config.AppConfig, client *dao.Client, creds service.CredentialRepository) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		client: client,
		creds:  creds,
	}
	s.sessions = service.NewSessionRegistry(creds, s.newSession)
	s.events = v1.NewEventsHandler(s.sessions)

	s.MountMiddlewares()
	s.MountHandlers()

	return s
}

// Run starts the background work of the server until ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.events.Run(ctx)
}

// newSession binds fresh state holders to a client carrying the user's remote token.
func (s *Server) newSession(cred domain.Credential) *service.Session {
	c := s.client.WithToken(cred.Token)

	return &service.Session{
		Credential: cred,
		Catalog:    service.NewProductCatalog(repository.NewProductRepository(c)),
		Gold:       service.NewGoldTracker(repository.NewGoldRepository(c), s.Config.Gold.DefaultDays, s.Config.Gold.Karat),
		UserData:   service.NewUserData(repository.NewUserDataRepository(c)),
		Cart:       service.NewCartLedger(repository.NewCartRepository(c)),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ZapLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers() {
	auth := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	origin := s.client.Origin()

	// Anonymous visitors share one catalog and one gold tracker without a token.
	publicCatalog := service.NewProductCatalog(repository.NewProductRepository(s.client))
	publicGold := service.NewGoldTracker(repository.NewGoldRepository(s.client), s.Config.Gold.DefaultDays, s.Config.Gold.Karat)

	authSvc := service.NewAuthService(repository.NewAuthRepository(s.client), s.creds)
	authHandler := v1.NewAuthHandler(s.Config.API, authSvc, s.sessions)
	measureHandler := v1.NewMeasureHandler(publicGold)
	catalogHandler := v1.NewCatalogHandler(publicCatalog, s.sessions, origin)
	sellerHandler := v1.NewSellerHandler(s.sessions, origin)
	meHandler := v1.NewMeHandler(authSvc, s.sessions)
	cartHandler := v1.NewCartHandler(s.sessions)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/register", authHandler.HandleRegister)

		public.POST("/measure/ring", measureHandler.HandleRingSize)
		public.POST("/measure/bracelet", measureHandler.HandleBraceletSize)
		public.POST("/pricing/suggest", measureHandler.HandleSuggestPrice)
		public.GET("/gold", measureHandler.HandleGold)

		public.GET("/catalog/featured", catalogHandler.HandleFeatured)
	}

	optional := s.Router.Group(basePath, auth.OptionalJWT())
	{
		optional.GET("/catalog", catalogHandler.HandleList)
	}

	private := s.Router.Group(basePath, auth.VerifyJWT())
	{
		private.POST("/auth/logout", authHandler.HandleLogout)

		private.GET("/seller/products", sellerHandler.HandleList)
		private.POST("/seller/products", sellerHandler.HandleCreate)
		private.PATCH("/seller/products/:productID", sellerHandler.HandleUpdate)
		private.DELETE("/seller/products/:productID", sellerHandler.HandleDelete)
		private.POST("/seller/products/:productID/cover", sellerHandler.HandleUploadCover)
		private.POST("/seller/products/:productID/images", sellerHandler.HandleAddImage)

		private.GET("/me", meHandler.HandleGetMe)
		private.GET("/me/sizes", meHandler.HandleGetSizes)
		private.PUT("/me/sizes/:kind", meHandler.HandleUpsertSize)
		private.DELETE("/me/sizes/:sizeID", meHandler.HandleDeleteSize)
		private.POST("/me/sizes/ring/measurement", meHandler.HandleMeasureRing)
		private.POST("/me/sizes/bracelet/measurement", meHandler.HandleMeasureBracelet)
		private.GET("/me/favorites", meHandler.HandleGetFavorites)
		private.POST("/me/favorites", meHandler.HandleAddFavorite)
		private.DELETE("/me/favorites/:productID", meHandler.HandleRemoveFavorite)

		private.GET("/cart", cartHandler.HandleGetCart)
		private.POST("/cart", cartHandler.HandleAddLine)
		private.DELETE("/cart", cartHandler.HandleClear)
		private.PUT("/cart/:productID", cartHandler.HandleSetQuantity)
		private.DELETE("/cart/:productID", cartHandler.HandleRemoveLine)
		private.POST("/cart/:productID/increment", cartHandler.HandleIncrement)
		private.POST("/cart/:productID/decrement", cartHandler.HandleDecrement)

		private.GET("/events", s.events.HandleEvents)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Storefront API"
	docs.SwaggerInfo.Description = "Jewelry storefront: catalog, sizing tools, gold prices, favorites and cart."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
