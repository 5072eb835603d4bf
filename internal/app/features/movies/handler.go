// internal/app/features/movies/handler.go
package movies

import (
	"github.com/dalemusser/moviehub/internal/app/services/moviesvc"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the movies API.
type Handler struct {
	Movies *moviesvc.Service
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Movies: moviesvc.New(db),
		Log:    logger,
	}
}
