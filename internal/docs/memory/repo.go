// Package memory implements docs.Repository in-process, following the
// same pattern as ledger/memory and planning/memory.
package memory

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/wealthin/agent-backend/internal/docs"
)

type monthDoc struct {
	payload   json.RawMessage
	updatedAt time.Time
}

type Repository struct {
	mu sync.Mutex

	nextID    int64
	snapshots map[int64]*docs.AnalysisSnapshot
	// milestones keyed by (user_id, milestone_id)
	milestones map[string]*docs.Milestone

	ideaEvals map[string]monthDoc
	dprs      map[string]monthDoc
	mudraDPRs map[string]monthDoc
	monthly   map[string]monthDoc
}

func NewRepository() *Repository {
	return &Repository{
		snapshots:  make(map[int64]*docs.AnalysisSnapshot),
		milestones: make(map[string]*docs.Milestone),
		ideaEvals:  make(map[string]monthDoc),
		dprs:       make(map[string]monthDoc),
		mudraDPRs:  make(map[string]monthDoc),
		monthly:    make(map[string]monthDoc),
	}
}

func monthKey(userID, month string) string { return userID + "|" + month }
func milestoneKey(userID, milestoneID string) string { return userID + "|" + milestoneID }

func (r *Repository) CreateSnapshot(s *docs.AnalysisSnapshot) (*docs.AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	out := *s
	out.ID = r.nextID
	r.snapshots[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) LatestSnapshot(userID string) (*docs.AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *docs.AnalysisSnapshot
	for _, s := range r.snapshots {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, docs.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *Repository) ListSnapshots(userID string) ([]*docs.AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*docs.AnalysisSnapshot
	for _, s := range r.snapshots {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repository) GetMilestones(userID string) ([]*docs.Milestone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*docs.Milestone
	for _, m := range r.milestones {
		if m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *Repository) UpsertMilestone(m *docs.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.milestones[milestoneKey(m.UserID, m.MilestoneID)] = &cp
	return nil
}

func upsert(store map[string]monthDoc, userID, month string, payload json.RawMessage) monthDoc {
	d := monthDoc{payload: payload, updatedAt: time.Now().UTC()}
	store[monthKey(userID, month)] = d
	return d
}

func (r *Repository) UpsertIdeaEvaluation(userID, month string, payload json.RawMessage) (*docs.IdeaEvaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := upsert(r.ideaEvals, userID, month, payload)
	return &docs.IdeaEvaluation{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) GetIdeaEvaluation(userID, month string) (*docs.IdeaEvaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.ideaEvals[monthKey(userID, month)]
	if !ok {
		return nil, docs.ErrNotFound
	}
	return &docs.IdeaEvaluation{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) UpsertDPR(userID, month string, payload json.RawMessage) (*docs.DPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := upsert(r.dprs, userID, month, payload)
	return &docs.DPR{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) GetDPR(userID, month string) (*docs.DPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dprs[monthKey(userID, month)]
	if !ok {
		return nil, docs.ErrNotFound
	}
	return &docs.DPR{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) UpsertMudraDPR(userID, month string, payload json.RawMessage) (*docs.MudraDPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := upsert(r.mudraDPRs, userID, month, payload)
	return &docs.MudraDPR{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) GetMudraDPR(userID, month string) (*docs.MudraDPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.mudraDPRs[monthKey(userID, month)]
	if !ok {
		return nil, docs.ErrNotFound
	}
	return &docs.MudraDPR{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) UpsertMonthlyMetrics(userID, month string, payload json.RawMessage) (*docs.MonthlyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := upsert(r.monthly, userID, month, payload)
	return &docs.MonthlyMetrics{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}

func (r *Repository) GetMonthlyMetrics(userID, month string) (*docs.MonthlyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.monthly[monthKey(userID, month)]
	if !ok {
		return nil, docs.ErrNotFound
	}
	return &docs.MonthlyMetrics{UserID: userID, Month: month, Payload: d.payload, UpdatedAt: d.updatedAt}, nil
}
