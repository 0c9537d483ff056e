package docs

import "encoding/json"

// Repository persists the Docs store's entities.
type Repository interface {
	CreateSnapshot(s *AnalysisSnapshot) (*AnalysisSnapshot, error)
	LatestSnapshot(userID string) (*AnalysisSnapshot, error)
	ListSnapshots(userID string) ([]*AnalysisSnapshot, error)

	GetMilestones(userID string) ([]*Milestone, error)
	UpsertMilestone(m *Milestone) error

	UpsertIdeaEvaluation(userID, month string, payload json.RawMessage) (*IdeaEvaluation, error)
	GetIdeaEvaluation(userID, month string) (*IdeaEvaluation, error)

	UpsertDPR(userID, month string, payload json.RawMessage) (*DPR, error)
	GetDPR(userID, month string) (*DPR, error)

	UpsertMudraDPR(userID, month string, payload json.RawMessage) (*MudraDPR, error)
	GetMudraDPR(userID, month string) (*MudraDPR, error)

	UpsertMonthlyMetrics(userID, month string, payload json.RawMessage) (*MonthlyMetrics, error)
	GetMonthlyMetrics(userID, month string) (*MonthlyMetrics, error)
}
