// internal/app/features/authapi/handler.go
package authapi

import (
	"github.com/dalemusser/moviehub/internal/app/services/authsvc"
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	MsgLoggedOut     = "Logged out successfully"
	MsgAuthenticated = "User is authenticated"
)

// Handler serves signup, login, logout and the session check (/auth).
type Handler struct {
	Auth       *authsvc.Service
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler builds the handler. bcryptCost is passed to authsvc.New.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, bcryptCost int, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       authsvc.New(db, bcryptCost),
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}
