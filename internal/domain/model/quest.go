package model

// QuestStatus is the lifecycle state of a sponsor quest.
type QuestStatus string

// Quest lifecycle. Deck quests start Available, team quests start Active;
// external reward resolution advances them to Completed or Expired.
const (
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestExpired   QuestStatus = "expired"
)

// QuestType is the objective category of a sponsor quest.
type QuestType string

// Closed set of quest objective categories.
const (
	QuestAttendance QuestType = "attendance"
	QuestWins       QuestType = "wins"
	QuestMedia      QuestType = "media"
	QuestNIL        QuestType = "nil"
	QuestAlumni     QuestType = "alumni"
	QuestDraft      QuestType = "draft"
)

// SponsorTier is the sponsor bracket a league-deck quest is drawn from.
type SponsorTier string

// Sponsor brackets. Syndicate is the alumni-investor bracket gated by the
// alumni registry.
const (
	TierSyndicate SponsorTier = "Syndicate"
	TierHigh      SponsorTier = "High"
	TierMid       SponsorTier = "Mid"
	TierLow       SponsorTier = "Low"
)

// SponsorQuest is a season objective with a cash reward.
type SponsorQuest struct {
	ID            string      `json:"id"`
	Sponsor       string      `json:"sponsor"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Type          QuestType   `json:"type"`
	SponsorTier   SponsorTier `json:"sponsor_tier,omitempty"`
	Target        int         `json:"target"`
	Progress      int         `json:"progress"`
	RewardCash    int         `json:"reward_cash"`
	Status        QuestStatus `json:"status"`
	ExpiresWeek   int         `json:"expires_week"`
	IsAlumniOwned bool        `json:"is_alumni_owned,omitempty"`
}
