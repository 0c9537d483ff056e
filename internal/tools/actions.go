package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/google/uuid"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// actionTokenTTL bounds how long a prepared-but-unconfirmed action stays
// valid (spec §4.6 "Cancellation": "actions only-prepared (not confirmed)
// are dropped" — an expired token is the stateless form of that drop).
const actionTokenTTL = 15 * time.Minute

// actionClaims is the JWT payload for a prepared write: it carries enough
// of the model's original call to replay it on confirm without the server
// keeping any pending-action state (spec §4.5 "Prepare-action writes").
type actionClaims struct {
	jwt.RegisteredClaims
	UserID   string          `json:"uid"`
	ToolName string          `json:"tool"`
	Args     json.RawMessage `json:"args"`
}

// ActionTokens issues and verifies the action_id tokens returned by
// prepare-action tools.
type ActionTokens struct {
	secret []byte
}

// NewActionTokens builds a token issuer/verifier over an HMAC secret.
func NewActionTokens(secret string) *ActionTokens {
	return &ActionTokens{secret: []byte(secret)}
}

func (a *ActionTokens) issue(userID, toolName string, args json.RawMessage) (string, error) {
	claims := actionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(actionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		ToolName: toolName,
		Args:     args,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse verifies signature, expiry and the caller's userID binding.
func (a *ActionTokens) Parse(actionID, userID string) (*actionClaims, error) {
	var claims actionClaims
	token, err := jwt.ParseWithClaims(actionID, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Validation("action_id is invalid or expired")
	}
	if claims.UserID != userID {
		return nil, apperr.Validation("action_id does not belong to this user")
	}
	return &claims, nil
}

// ActionCommitter performs the store write once an action is confirmed.
// Narrow and primitive-typed so this package never imports ledger/planning
// directly; cmd/api wires an adapter over those stores.
type ActionCommitter interface {
	CommitBudget(ctx context.Context, userID, category string, amount decimal.Decimal, period string) (string, error)
	CommitGoal(ctx context.Context, userID, name string, target decimal.Decimal, deadline *time.Time) (string, error)
	CommitScheduledPayment(ctx context.Context, userID, payee string, amount decimal.Decimal, dueDate time.Time, frequency string) (string, error)
	CommitTransaction(ctx context.Context, userID, txType, category, description string, amount decimal.Decimal, date time.Time) (string, error)
}

// RegisterActionTools wires create_budget/create_savings_goal/
// schedule_payment/add_transaction (spec §4.5 "Prepare-action writes"):
// each call only prepares, returning needs_confirmation=true plus an
// action_id; ConfirmAction performs the actual write.
func RegisterActionTools(r *Registry, tokens *ActionTokens) {
	r.Register(Tool{
		Name: "create_budget", Family: FamilyAction,
		Description: "Prepare a new monthly budget for a category; requires confirmation to take effect.",
		Schema: schema(`{"category":{"type":"string"},"amount":{"type":"number"},"period":{"type":"string"}}`,
			"category", "amount"),
		Handle: prepare(tokens, "create_budget", func(a map[string]any) string {
			return fmt.Sprintf("Create a budget of %.2f for %s?", toFloat(a["amount"]), toString(a["category"]))
		}),
	})
	r.Register(Tool{
		Name: "create_savings_goal", Family: FamilyAction,
		Description: "Prepare a new savings goal; requires confirmation to take effect.",
		Schema: schema(`{"name":{"type":"string"},"target_amount":{"type":"number"},"deadline":{"type":"string"}}`,
			"name", "target_amount"),
		Handle: prepare(tokens, "create_savings_goal", func(a map[string]any) string {
			return fmt.Sprintf("Create a savings goal %q targeting %.2f?", toString(a["name"]), toFloat(a["target_amount"]))
		}),
	})
	r.Register(Tool{
		Name: "schedule_payment", Family: FamilyAction,
		Description: "Prepare a scheduled payment; requires confirmation to take effect.",
		Schema: schema(`{"payee":{"type":"string"},"amount":{"type":"number"},"due_date":{"type":"string"},"frequency":{"type":"string"}}`,
			"payee", "amount", "due_date"),
		Handle: prepare(tokens, "schedule_payment", func(a map[string]any) string {
			return fmt.Sprintf("Schedule a payment of %.2f to %s on %s?", toFloat(a["amount"]), toString(a["payee"]), toString(a["due_date"]))
		}),
	})
	r.Register(Tool{
		Name: "add_transaction", Family: FamilyAction,
		Description: "Prepare a ledger transaction; requires confirmation to take effect.",
		Schema: schema(`{"type":{"type":"string","enum":["income","expense"]},"category":{"type":"string"},"description":{"type":"string"},"amount":{"type":"number"},"date":{"type":"string"}}`,
			"type", "amount"),
		Handle: prepare(tokens, "add_transaction", func(a map[string]any) string {
			return fmt.Sprintf("Record a %s of %.2f (%s)?", toString(a["type"]), toFloat(a["amount"]), toString(a["description"]))
		}),
	})
}

// prepare builds a Handler that never writes: it only stashes the raw
// args in a signed action_id and returns needs_confirmation=true.
func prepare(tokens *ActionTokens, name string, describe func(map[string]any) string) Handler {
	return func(_ context.Context, userID string, args json.RawMessage) Result {
		var asMap map[string]any
		if err := decodeArgs(args, &asMap); err != nil {
			return failed(name, err.Error())
		}
		actionID, err := tokens.issue(userID, name, args)
		if err != nil {
			return failed(name, "could not prepare action: "+err.Error())
		}
		return Result{
			Success:           true,
			Action:            name,
			Data:              map[string]string{"action_id": actionID},
			Message:           describe(asMap),
			NeedsConfirmation: true,
		}
	}
}

func toFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

const dateLayout = "2006-01-02"

// ConfirmAction verifies actionID and performs the store write it
// describes (spec §4.5: "a subsequent explicit confirm(action_id) call
// performs the store write").
func ConfirmAction(ctx context.Context, tokens *ActionTokens, committer ActionCommitter, userID, actionID string) Result {
	claims, err := tokens.Parse(actionID, userID)
	if err != nil {
		return failed("confirm_action", err.Error())
	}

	var a map[string]any
	_ = json.Unmarshal(claims.Args, &a)

	switch claims.ToolName {
	case "create_budget":
		id, err := committer.CommitBudget(ctx, userID, toString(a["category"]), decimal.NewFromFloat(toFloat(a["amount"])), toString(a["period"]))
		return confirmResult(claims.ToolName, id, err)
	case "create_savings_goal":
		var deadline *time.Time
		if s := toString(a["deadline"]); s != "" {
			if t, err := time.Parse(dateLayout, s); err == nil {
				deadline = &t
			}
		}
		id, err := committer.CommitGoal(ctx, userID, toString(a["name"]), decimal.NewFromFloat(toFloat(a["target_amount"])), deadline)
		return confirmResult(claims.ToolName, id, err)
	case "schedule_payment":
		due, _ := time.Parse(dateLayout, toString(a["due_date"]))
		id, err := committer.CommitScheduledPayment(ctx, userID, toString(a["payee"]), decimal.NewFromFloat(toFloat(a["amount"])), due, toString(a["frequency"]))
		return confirmResult(claims.ToolName, id, err)
	case "add_transaction":
		date := time.Now().UTC()
		if s := toString(a["date"]); s != "" {
			if t, err := time.Parse(dateLayout, s); err == nil {
				date = t
			}
		}
		id, err := committer.CommitTransaction(ctx, userID, toString(a["type"]), toString(a["category"]), toString(a["description"]), decimal.NewFromFloat(toFloat(a["amount"])), date)
		return confirmResult(claims.ToolName, id, err)
	default:
		return failed("confirm_action", "unknown prepared action type")
	}
}

func confirmResult(action, id string, err error) Result {
	if err != nil {
		return failed(action, err.Error())
	}
	return ok(action, map[string]string{"id": id}, action+" confirmed and recorded")
}
