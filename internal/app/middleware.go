package app

import (
	httpMW "github.com/yungbote/outreach-backend/internal/http/middleware"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, clients.Verifier),
	}
}
