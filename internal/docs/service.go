package docs

import (
	"encoding/json"
	"time"

	"github.com/wealthin/agent-backend/internal/apperr"
)

const cooldown = 7 * 24 * time.Hour

type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// CheckCooldown implements spec §4.11's cooldown gate: analysis may not
// run again within 7 days of the user's most recent snapshot.
func (s *Store) CheckCooldown(userID string, now time.Time) (*CooldownStatus, error) {
	last, err := s.repo.LatestSnapshot(userID)
	if err != nil {
		if err == ErrNotFound {
			return &CooldownStatus{CanAnalyze: true}, nil
		}
		return nil, apperr.Internal("load latest snapshot", err)
	}
	elapsed := now.Sub(last.CreatedAt)
	if elapsed >= cooldown {
		return &CooldownStatus{CanAnalyze: true}, nil
	}
	next := last.CreatedAt.Add(cooldown)
	remaining := next.Sub(now)
	return &CooldownStatus{
		CanAnalyze:       false,
		NextAnalysisDate: &next,
		DaysRemaining:    int(remaining.Hours() / 24),
		HoursRemaining:   int(remaining.Hours()),
	}, nil
}

// CreateSnapshot records a new AnalysisSnapshot and evaluates the
// milestone catalog against metrics, returning any newly-achieved
// milestones (spec §4.11 steps 1-2; invariant I4 is enforced by
// AwardMilestones below).
func (s *Store) CreateSnapshot(userID, month string, metrics Metrics, rawMetrics json.RawMessage) (*AnalysisSnapshot, []*Milestone, error) {
	snap, err := s.repo.CreateSnapshot(&AnalysisSnapshot{
		UserID:    userID,
		Month:     month,
		Metrics:   rawMetrics,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, nil, apperr.Internal("create snapshot", err)
	}
	newlyAchieved, err := s.AwardMilestones(userID, metrics)
	if err != nil {
		return snap, nil, err
	}
	return snap, newlyAchieved, nil
}

// AwardMilestones walks the fixed 14-milestone catalog and inserts an
// achieved row for every predicate that transitions false→true, skipping
// any milestone_id that already has achieved=true (invariant I4: at most
// one achieved row per (user_id, milestone_id)).
func (s *Store) AwardMilestones(userID string, metrics Metrics) ([]*Milestone, error) {
	existing, err := s.repo.GetMilestones(userID)
	if err != nil {
		return nil, apperr.Internal("load milestones", err)
	}
	achieved := make(map[string]bool, len(existing))
	for _, m := range existing {
		if m.Achieved {
			achieved[m.MilestoneID] = true
		}
	}

	var newlyAchieved []*Milestone
	now := time.Now().UTC()
	for _, def := range catalog {
		if achieved[def.id] {
			continue
		}
		if !def.check(metrics) {
			continue
		}
		m := &Milestone{
			UserID:      userID,
			MilestoneID: def.id,
			Title:       def.title,
			Icon:        def.icon,
			XP:          def.xp,
			Order:       def.order,
			Achieved:    true,
			AchievedAt:  &now,
		}
		if err := s.repo.UpsertMilestone(m); err != nil {
			return newlyAchieved, apperr.Internal("upsert milestone", err)
		}
		newlyAchieved = append(newlyAchieved, m)
	}
	return newlyAchieved, nil
}

func (s *Store) GetMilestones(userID string) ([]*Milestone, error) {
	m, err := s.repo.GetMilestones(userID)
	if err != nil {
		return nil, apperr.Internal("load milestones", err)
	}
	return m, nil
}

// GetUserXP derives total XP and level from achieved milestones;
// level = total_xp / 100 + 1 (integer division, spec §4.11 step 3).
func (s *Store) GetUserXP(userID string) (*UserXP, error) {
	milestones, err := s.repo.GetMilestones(userID)
	if err != nil {
		return nil, apperr.Internal("load milestones", err)
	}
	total := 0
	for _, m := range milestones {
		if m.Achieved {
			total += m.XP
		}
	}
	return &UserXP{TotalXP: total, Level: total/100 + 1}, nil
}

// --- upsert-by-(user_id, month) documents ---

func (s *Store) UpsertIdeaEvaluation(userID, month string, payload json.RawMessage) (*IdeaEvaluation, error) {
	out, err := s.repo.UpsertIdeaEvaluation(userID, month, payload)
	if err != nil {
		return nil, apperr.Internal("upsert idea evaluation", err)
	}
	return out, nil
}

func (s *Store) GetIdeaEvaluation(userID, month string) (*IdeaEvaluation, error) {
	out, err := s.repo.GetIdeaEvaluation(userID, month)
	if err != nil {
		return nil, apperr.NotFound("idea evaluation not found")
	}
	return out, nil
}

func (s *Store) UpsertDPR(userID, month string, payload json.RawMessage) (*DPR, error) {
	out, err := s.repo.UpsertDPR(userID, month, payload)
	if err != nil {
		return nil, apperr.Internal("upsert dpr", err)
	}
	return out, nil
}

func (s *Store) GetDPR(userID, month string) (*DPR, error) {
	out, err := s.repo.GetDPR(userID, month)
	if err != nil {
		return nil, apperr.NotFound("dpr not found")
	}
	return out, nil
}

func (s *Store) UpsertMudraDPR(userID, month string, payload json.RawMessage) (*MudraDPR, error) {
	out, err := s.repo.UpsertMudraDPR(userID, month, payload)
	if err != nil {
		return nil, apperr.Internal("upsert mudra dpr", err)
	}
	return out, nil
}

func (s *Store) GetMudraDPR(userID, month string) (*MudraDPR, error) {
	out, err := s.repo.GetMudraDPR(userID, month)
	if err != nil {
		return nil, apperr.NotFound("mudra dpr not found")
	}
	return out, nil
}

func (s *Store) UpsertMonthlyMetrics(userID, month string, payload json.RawMessage) (*MonthlyMetrics, error) {
	out, err := s.repo.UpsertMonthlyMetrics(userID, month, payload)
	if err != nil {
		return nil, apperr.Internal("upsert monthly metrics", err)
	}
	return out, nil
}

func (s *Store) GetMonthlyMetrics(userID, month string) (*MonthlyMetrics, error) {
	out, err := s.repo.GetMonthlyMetrics(userID, month)
	if err != nil {
		return nil, apperr.NotFound("monthly metrics not found")
	}
	return out, nil
}

func (s *Store) ListSnapshots(userID string) ([]*AnalysisSnapshot, error) {
	out, err := s.repo.ListSnapshots(userID)
	if err != nil {
		return nil, apperr.Internal("list snapshots", err)
	}
	return out, nil
}
