// Package docs implements the C1 Docs store from spec §3: analysis
// snapshots, the milestone/XP gamification layer, and the upsert-by-month
// planning documents (idea evaluations, DPRs, Mudra DPRs, monthly metrics).
package docs

import (
	"encoding/json"
	"time"
)

// AnalysisSnapshot is one point-in-time capture of a user's computed
// metrics (health score, subscriptions, trends, ...), gated by a 7-day
// cooldown (spec §4.11).
type AnalysisSnapshot struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"` // "2026-07"
	Metrics   json.RawMessage `json:"metrics"`
	CreatedAt time.Time       `json:"created_at"`
}

// Milestone is one row of a user's achieved-milestone history. At most one
// row per (user_id, milestone_id) may have Achieved=true (invariant I4).
type Milestone struct {
	UserID      string     `json:"user_id"`
	MilestoneID string     `json:"milestone_id"`
	Title       string     `json:"title"`
	Icon        string     `json:"icon"`
	XP          int        `json:"xp"`
	Order       int        `json:"order"`
	Achieved    bool       `json:"achieved"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
}

// UserXP is derived, never stored: total XP summed over achieved
// milestones and the level computed from it (spec §4.11).
type UserXP struct {
	TotalXP int `json:"total_xp"`
	Level   int `json:"level"`
}

// CooldownStatus is the result of checking a user's analysis cooldown.
type CooldownStatus struct {
	CanAnalyze        bool       `json:"can_analyze"`
	NextAnalysisDate  *time.Time `json:"next_analysis_date,omitempty"`
	DaysRemaining     int        `json:"days_remaining,omitempty"`
	HoursRemaining    int        `json:"hours_remaining,omitempty"`
}

// IdeaEvaluation, DPR, MudraDPR and MonthlyMetrics all share the
// upsert-by-(user_id, month) key named in spec §3; each wraps an
// arbitrary JSON payload produced by its owning component (SchemeAssessor,
// the DPR generator, MudraEngine, and Analytics respectively) so this
// store doesn't need to know their internal shape.
type IdeaEvaluation struct {
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type DPR struct {
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type MudraDPR struct {
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type MonthlyMetrics struct {
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}
