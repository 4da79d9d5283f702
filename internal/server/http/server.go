// Package http exposes the authentication and patient-record operations
// over a JSON REST API.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medvault/medvault/internal/logging"
	"github.com/medvault/medvault/internal/server/auth"
	"github.com/medvault/medvault/internal/server/patients"
	"github.com/medvault/medvault/internal/server/users"
)

type HTTPServer struct {
	address  string
	logger   logging.Logger
	users    *users.Service
	patients *patients.Service
	issuer   *auth.TokenIssuer
}

func NewHTTPServer(a string, l logging.Logger, us *users.Service, ps *patients.Service, issuer *auth.TokenIssuer) (*HTTPServer, error) {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		patients: ps,
		issuer:   issuer,
	}, nil
}

// Routes builds the gin engine with all endpoints registered.
func (s *HTTPServer) Routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/ping", s.Ping)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", s.Register)
			authGroup.POST("/login", s.Login)
			authGroup.GET("/profile", s.Authenticate(), s.Profile)
		}

		patientGroup := api.Group("/patients", s.Authenticate())
		{
			patientGroup.POST("", s.CreatePatient)
			patientGroup.POST("/batch", s.CreatePatientBatch)
			patientGroup.GET("/list", s.ListPatients)
			patientGroup.GET("/my-uploads", s.MyUploads)
		}
	}

	return router
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
