// Package postgres implements docs.Repository against the docs schema,
// following the same hand-written-SQL-over-pgx/v5 style as
// internal/ledger/postgres and internal/planning/postgres.
package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthin/agent-backend/internal/docs"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const schema = "docs"

func mapErr(err error) error {
	if err == pgx.ErrNoRows {
		return docs.ErrNotFound
	}
	return err
}

func (r *Repository) CreateSnapshot(s *docs.AnalysisSnapshot) (*docs.AnalysisSnapshot, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.analysis_snapshots (user_id, month, metrics, created_at)
		VALUES ($1,$2,$3,$4) RETURNING id`, s.UserID, s.Month, s.Metrics, s.CreatedAt)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *s
	out.ID = id
	return &out, nil
}

func (r *Repository) LatestSnapshot(userID string) (*docs.AnalysisSnapshot, error) {
	ctx := context.Background()
	var s docs.AnalysisSnapshot
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, month, metrics, created_at FROM `+schema+`.analysis_snapshots
		WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`, userID).
		Scan(&s.ID, &s.UserID, &s.Month, &s.Metrics, &s.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *Repository) ListSnapshots(userID string) ([]*docs.AnalysisSnapshot, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, month, metrics, created_at FROM `+schema+`.analysis_snapshots
		WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*docs.AnalysisSnapshot
	for rows.Next() {
		var s docs.AnalysisSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Month, &s.Metrics, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *Repository) GetMilestones(userID string) ([]*docs.Milestone, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, milestone_id, title, icon, xp, "order", achieved, achieved_at
		FROM `+schema+`.milestones WHERE user_id=$1 ORDER BY "order"`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*docs.Milestone
	for rows.Next() {
		var m docs.Milestone
		if err := rows.Scan(&m.UserID, &m.MilestoneID, &m.Title, &m.Icon, &m.XP, &m.Order, &m.Achieved, &m.AchievedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// UpsertMilestone relies on a UNIQUE (user_id, milestone_id) constraint
// to make invariant I4 (at most one achieved row per milestone) hold even
// under concurrent writers.
func (r *Repository) UpsertMilestone(m *docs.Milestone) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO `+schema+`.milestones (user_id, milestone_id, title, icon, xp, "order", achieved, achieved_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (user_id, milestone_id) DO UPDATE SET
			achieved=$7, achieved_at=$8`,
		m.UserID, m.MilestoneID, m.Title, m.Icon, m.XP, m.Order, m.Achieved, m.AchievedAt)
	return err
}

func upsertMonthDoc(ctx context.Context, pool *pgxpool.Pool, table, userID, month string, payload json.RawMessage) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO `+schema+`.`+table+` (user_id, month, payload, updated_at)
		VALUES ($1,$2,$3, now())
		ON CONFLICT (user_id, month) DO UPDATE SET payload=$3, updated_at=now()`,
		userID, month, payload)
	return err
}

func (r *Repository) UpsertIdeaEvaluation(userID, month string, payload json.RawMessage) (*docs.IdeaEvaluation, error) {
	ctx := context.Background()
	if err := upsertMonthDoc(ctx, r.pool, "idea_evaluations", userID, month, payload); err != nil {
		return nil, err
	}
	return r.GetIdeaEvaluation(userID, month)
}

func (r *Repository) GetIdeaEvaluation(userID, month string) (*docs.IdeaEvaluation, error) {
	ctx := context.Background()
	var d docs.IdeaEvaluation
	err := r.pool.QueryRow(ctx, `SELECT user_id, month, payload, updated_at FROM `+schema+`.idea_evaluations WHERE user_id=$1 AND month=$2`, userID, month).
		Scan(&d.UserID, &d.Month, &d.Payload, &d.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *Repository) UpsertDPR(userID, month string, payload json.RawMessage) (*docs.DPR, error) {
	ctx := context.Background()
	if err := upsertMonthDoc(ctx, r.pool, "dprs", userID, month, payload); err != nil {
		return nil, err
	}
	return r.GetDPR(userID, month)
}

func (r *Repository) GetDPR(userID, month string) (*docs.DPR, error) {
	ctx := context.Background()
	var d docs.DPR
	err := r.pool.QueryRow(ctx, `SELECT user_id, month, payload, updated_at FROM `+schema+`.dprs WHERE user_id=$1 AND month=$2`, userID, month).
		Scan(&d.UserID, &d.Month, &d.Payload, &d.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *Repository) UpsertMudraDPR(userID, month string, payload json.RawMessage) (*docs.MudraDPR, error) {
	ctx := context.Background()
	if err := upsertMonthDoc(ctx, r.pool, "mudra_dprs", userID, month, payload); err != nil {
		return nil, err
	}
	return r.GetMudraDPR(userID, month)
}

func (r *Repository) GetMudraDPR(userID, month string) (*docs.MudraDPR, error) {
	ctx := context.Background()
	var d docs.MudraDPR
	err := r.pool.QueryRow(ctx, `SELECT user_id, month, payload, updated_at FROM `+schema+`.mudra_dprs WHERE user_id=$1 AND month=$2`, userID, month).
		Scan(&d.UserID, &d.Month, &d.Payload, &d.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *Repository) UpsertMonthlyMetrics(userID, month string, payload json.RawMessage) (*docs.MonthlyMetrics, error) {
	ctx := context.Background()
	if err := upsertMonthDoc(ctx, r.pool, "monthly_metrics", userID, month, payload); err != nil {
		return nil, err
	}
	return r.GetMonthlyMetrics(userID, month)
}

func (r *Repository) GetMonthlyMetrics(userID, month string) (*docs.MonthlyMetrics, error) {
	ctx := context.Background()
	var d docs.MonthlyMetrics
	err := r.pool.QueryRow(ctx, `SELECT user_id, month, payload, updated_at FROM `+schema+`.monthly_metrics WHERE user_id=$1 AND month=$2`, userID, month).
		Scan(&d.UserID, &d.Month, &d.Payload, &d.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}
