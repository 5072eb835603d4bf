// internal/app/features/members/handler.go
package members

import (
	"github.com/dalemusser/moviehub/internal/app/services/membersvc"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the members API.
// It holds the service and logger built from WAFFLE DBDeps.
type Handler struct {
	Members *membersvc.Service
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Members: membersvc.New(db),
		Log:     logger,
	}
}
