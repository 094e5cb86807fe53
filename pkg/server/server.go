package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
	"github.com/fantasy-forge/forge-api/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.ForgeConfig

	UsersStore   store.UsersStore
	DevicesStore store.DevicesStore
	ImagesStore  store.ImagesStore
	HealthStore  store.HealthStore

	TokenIssuer *token.Issuer

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.ForgeConfig,
	issuer *token.Issuer,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router: router,
		DB:     db,
		Config: cfg,

		TokenIssuer: issuer,

		srv: srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
