// Package server wires configuration, database and handlers into the HTTP server
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/config"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
)

// MaxBodyBytes bounds size of every request body
const MaxBodyBytes = 1 << 20

// Server holds dependencies shared by every route handler
type Server struct {
	Config    config.Config
	DB        *database.DBinstanceStruct
	Tokens    *auth.JWTManager
	Blacklist auth.JwtBlacklistStore
}

// NewServer construct new Server instance
func NewServer(cfg config.Config, db *database.DBinstanceStruct, blacklist auth.JwtBlacklistStore) *Server {
	return &Server{
		Config:    cfg,
		DB:        db,
		Tokens:    auth.NewJWTManager(cfg.SecretKey, cfg.JWTIssuer, cfg.AccessTokenTTL),
		Blacklist: blacklist,
	}
}

// HTTPServer returns http.Server listening on configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
