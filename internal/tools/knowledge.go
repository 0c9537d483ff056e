package tools

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/wealthin/agent-backend/internal/knowledge"
)

// KnowledgeSearcher is the narrow interface the knowledge-lookup tool
// family depends on; knowledge.Index satisfies it.
type KnowledgeSearcher interface {
	Hybrid(q string, k int) []knowledge.SearchResult
}

const defaultKnowledgeK = 5

// RegisterKnowledgeTools wires get_tax_info/static_kb_search (spec §4.5
// "Knowledge lookups", side-effect-free).
func RegisterKnowledgeTools(r *Registry, idx KnowledgeSearcher) {
	search := func(name, defaultCategory string) Handler {
		return func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Query string `json:"query"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed(name, err.Error())
			}
			if in.Query == "" && defaultCategory != "" {
				in.Query = defaultCategory
			}
			hits := idx.Hybrid(in.Query, defaultKnowledgeK)
			if len(hits) == 0 {
				return Result{Success: true, Action: name, Data: []knowledge.SearchResult{}, Message: "no matching knowledge documents found"}
			}
			return ok(name, hits, "knowledge documents found")
		}
	}

	r.Register(Tool{
		Name: "get_tax_info", Family: FamilyKnowledge,
		Description: "Look up Indian tax/regulation guidance from the static knowledge base.",
		Schema:      schema(`{"query":{"type":"string"}}`, "query"),
		Handle:      search("get_tax_info", "income tax"),
	})
	r.Register(Tool{
		Name: "static_kb_search", Family: FamilyKnowledge,
		Description: "Search the static knowledge base for any finance/regulation topic.",
		Schema:      schema(`{"query":{"type":"string"}}`, "query"),
		Handle:      search("static_kb_search", ""),
	})
}

var (
	panRe   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinRe = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	itrRe   = regexp.MustCompile(`^[A-Z]{2}[0-9]{14}$`)
)

// RegisterGovTools wires gov_verify_pan|gstin|itr (spec §4.5 "Knowledge
// lookups"; spec §4.10 rule 1 routes queries containing these tokens here).
// No government API is part of this deployment's stack (none appears
// anywhere in the retrieved pack), so verification is format-only: it
// confirms the token is well-formed and echoes it back, never a live
// lookup.
func RegisterGovTools(r *Registry) {
	verify := func(name string, re *regexp.Regexp, label string) Handler {
		return func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				ID string `json:"id"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed(name, err.Error())
			}
			if !re.MatchString(in.ID) {
				return Result{Success: true, Action: name, Data: map[string]any{"valid": false, "id": in.ID},
					Message: label + " does not match the expected format"}
			}
			return Result{Success: true, Action: name, Data: map[string]any{"valid": true, "id": in.ID},
				Message: label + " format verified"}
		}
	}

	r.Register(Tool{
		Name: "gov_verify_pan", Family: FamilyKnowledge,
		Description: "Verify a PAN token's format (AAAAA9999A).",
		Schema:      schema(`{"id":{"type":"string"}}`, "id"),
		Handle:      verify("gov_verify_pan", panRe, "PAN"),
	})
	r.Register(Tool{
		Name: "gov_verify_gstin", Family: FamilyKnowledge,
		Description: "Verify a GSTIN token's format (15 characters).",
		Schema:      schema(`{"id":{"type":"string"}}`, "id"),
		Handle:      verify("gov_verify_gstin", gstinRe, "GSTIN"),
	})
	r.Register(Tool{
		Name: "gov_verify_itr", Family: FamilyKnowledge,
		Description: "Verify an ITR acknowledgement number's format.",
		Schema:      schema(`{"id":{"type":"string"}}`, "id"),
		Handle:      verify("gov_verify_itr", itrRe, "ITR acknowledgement number"),
	})
}
