package domain

import (
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/domain/outreach"
)

type Strategy = humanness.Strategy

type HumannessTest = humanness.Test
type Panelist = humanness.Panelist
type Message = humanness.Message
type Response = humanness.Response
type AnalyticsRecord = humanness.AnalyticsRecord
type Judgment = humanness.Judgment

type Prospect = outreach.Prospect
type Template = outreach.Template
type AuditLog = outreach.AuditLog
type ConversationLog = outreach.ConversationLog
type StrategyPreference = outreach.StrategyPreference

// Models lists every persisted entity, in migration order.
func Models() []any {
	return []any{
		&humanness.Test{},
		&humanness.Panelist{},
		&humanness.Message{},
		&humanness.Response{},
		&humanness.AnalyticsRecord{},
		&outreach.Prospect{},
		&outreach.Template{},
		&outreach.AuditLog{},
		&outreach.ConversationLog{},
		&outreach.StrategyPreference{},
	}
}
