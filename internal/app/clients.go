package app

import (
	"github.com/yungbote/outreach-backend/internal/platform/authtoken"
	"github.com/yungbote/outreach-backend/internal/platform/envutil"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/openai"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
	"github.com/yungbote/outreach-backend/internal/platform/sendgrid"
)

type Clients struct {
	LLM      openai.Client
	Email    sendgrid.Client
	Cache    redis.Store
	Verifier authtoken.Verifier
}

// wireClients never fails on a missing collaborator: the engine reports
// llm_unavailable / email_unavailable per request instead.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")
	var out Clients

	if llm, err := openai.NewFromEnv(log); err != nil {
		log.Warn("OpenAI client disabled", "error", err)
	} else {
		out.LLM = llm
	}

	if email, err := sendgrid.NewFromEnv(log); err != nil {
		log.Warn("SendGrid client disabled", "error", err)
	} else {
		out.Email = email
	}

	out.Cache = redis.NewMemory()
	if envutil.String("REDIS_ADDR", "") != "" {
		store, err := redis.New(log, redis.ConfigFromEnv())
		if err != nil {
			log.Warn("Redis unavailable, using in-process cache", "error", err)
		} else {
			out.Cache = store
		}
	}

	if v, err := authtoken.New(cfg.JWTSecret); err != nil {
		log.Warn("Token verifier disabled", "error", err)
	} else {
		out.Verifier = v
	}
	return out
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
