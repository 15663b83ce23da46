package cmd

import (
	"context"
	"net"
	"net/http"
	"path/filepath"

	"github.com/vibast-solutions/ms-go-blog-auth/app/controller"
	authgrpc "github.com/vibast-solutions/ms-go-blog-auth/app/grpc"
	"github.com/vibast-solutions/ms-go-blog-auth/app/middleware"
	"github.com/vibast-solutions/ms-go-blog-auth/app/repository"
	"github.com/vibast-solutions/ms-go-blog-auth/app/service"
	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start both HTTP (Echo) and gRPC servers for the blog authentication service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	db, err := openDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient, authOpts, err := openDenylist(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure mailer")
	}

	userRepo := repository.NewUserRepository(db)
	codec := service.NewTokenCodec(cfg)
	authService := service.NewAuthService(userRepo, codec, mailer, cfg, authOpts...)
	userService := service.NewUserService(userRepo, service.NewBcryptHasher(0), cfg)

	if _, err = userService.SeedAdmin(context.Background()); err != nil {
		logrus.WithError(err).Fatal("Failed to seed admin account")
	}

	go startGRPCServer(cfg, authService)

	startHTTPServer(cfg, authService, userService)
}

func startHTTPServer(cfg *config.Config, authService service.AuthService, userService service.UserService) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			if identity, ok := middleware.CurrentIdentity(c); ok {
				fields["user_id"] = identity.UserID
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	// Identity first, then the route policy; handlers only run once both pass.
	e.Use(middleware.NewAuthMiddleware(authService).Authenticate)
	e.Use(middleware.NewPolicy(middleware.DefaultRules()).Authorize)

	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	adminController := controller.NewAdminController(userService)

	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/authenticate", authController.Authenticate)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)
	auth.POST("/logout", authController.Logout)

	user := e.Group("/api/v1/user")
	user.GET("/me", userController.Me)
	user.PUT("/me", userController.UpdateMe)
	user.GET("/search", userController.Search)
	user.GET("/suggestions", userController.Suggestions)
	user.GET("/:id", userController.GetUser)

	admin := e.Group("/api/v1/admin")
	admin.PUT("/verify/:id", adminController.ToggleVerification)
	admin.GET("/users", adminController.ListUsers)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.Static("/profile-images", filepath.Join(cfg.Uploads.Dir, "profile-images"))
	e.Static("/post-images", filepath.Join(cfg.Uploads.Dir, "post-images"))

	httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func startGRPCServer(cfg *config.Config, authService service.AuthService) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(authgrpc.IdentityUnaryInterceptor(authService)))
	defer grpcServer.GracefulStop()
	authgrpc.RegisterAuthServiceServer(grpcServer, authgrpc.NewAuthServer(authService))

	logrus.WithField("addr", grpcAddr).Info("Starting gRPC server")
	if err := grpcServer.Serve(lis); err != nil {
		logrus.WithError(err).Fatal("Failed to start gRPC server")
	}
}
