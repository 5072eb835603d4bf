// internal/app/features/subscriptions/handler.go
package subscriptions

import (
	"github.com/dalemusser/moviehub/internal/app/services/subscriptionsvc"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the subscriptions API (/subs).
type Handler struct {
	Subs *subscriptionsvc.Service
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Subs: subscriptionsvc.New(db),
		Log:  logger,
	}
}

// pairBody is the JSON body of the add, update and remove endpoints.
type pairBody struct {
	MemberID    string `json:"memberId"`
	MovieID     string `json:"movieId"`
	WatchedDate string `json:"watchedDate"`
}
