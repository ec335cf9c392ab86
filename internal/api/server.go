package api

import (
	"github.com/dismorfo/rsui/internal/config"
	"github.com/dismorfo/rsui/internal/database"
	"github.com/dismorfo/rsui/internal/upstream"
)

type Server struct {
	config     *config.Config
	store      *database.Store
	client     *upstream.Client
	downloader *upstream.Downloader
}

func NewServer(cfg *config.Config, store *database.Store, client *upstream.Client) *Server {
	return &Server{
		config:     cfg,
		store:      store,
		client:     client,
		downloader: upstream.NewDownloader(client),
	}
}
