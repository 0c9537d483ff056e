package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/agent"
	"github.com/wealthin/agent-backend/internal/brainstorm"
	"github.com/wealthin/agent-backend/internal/config"
	"github.com/wealthin/agent-backend/internal/docs"
	docspg "github.com/wealthin/agent-backend/internal/docs/postgres"
	"github.com/wealthin/agent-backend/internal/extract/docintel"
	"github.com/wealthin/agent-backend/internal/extract/receipt"
	"github.com/wealthin/agent-backend/internal/extract/storage"
	"github.com/wealthin/agent-backend/internal/handler"
	"github.com/wealthin/agent-backend/internal/knowledge"
	"github.com/wealthin/agent-backend/internal/ledger"
	ledgerpg "github.com/wealthin/agent-backend/internal/ledger/postgres"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/llm/providers/anthropic"
	"github.com/wealthin/agent-backend/internal/llm/providers/openai"
	"github.com/wealthin/agent-backend/internal/metrics"
	"github.com/wealthin/agent-backend/internal/middleware"
	"github.com/wealthin/agent-backend/internal/planning"
	planningpg "github.com/wealthin/agent-backend/internal/planning/postgres"
	"github.com/wealthin/agent-backend/internal/router"
	"github.com/wealthin/agent-backend/internal/tools"
	"github.com/wealthin/agent-backend/internal/tools/ratelimit"
	"github.com/wealthin/agent-backend/internal/tools/search"
	"github.com/wealthin/agent-backend/internal/ws"
)

// ledgerRecorderProxy breaks the ledger<->planning constructor cycle:
// ledger.NewStore needs a planning.BudgetSpentTracker and planning.NewStore
// needs a ledger.ExpenseRecorder, so neither store can be built first. The
// proxy satisfies ExpenseRecorder with a field filled in once both stores
// exist.
type ledgerRecorderProxy struct {
	store *ledger.Store
}

func (p *ledgerRecorderProxy) RecordExpense(userID, category, description string, amount decimal.Decimal, date time.Time) error {
	return p.store.RecordExpense(userID, category, description, amount, date)
}

// brainstormSearchAdapter adapts tools/search.Searcher to brainstorm.WebSearcher.
type brainstormSearchAdapter struct {
	searcher *search.Searcher
}

func (a *brainstormSearchAdapter) Search(ctx context.Context, category, query string) ([]brainstorm.WebSearchResult, error) {
	if category == "" {
		category = string(search.CategoryGeneral)
	}
	results, err := a.searcher.Search(ctx, search.Category(category), query)
	if err != nil {
		return nil, err
	}
	out := make([]brainstorm.WebSearchResult, len(results))
	for i, r := range results {
		out[i] = brainstorm.WebSearchResult{Title: r.Title, URL: r.URL, Snippet: r.Snippet, Price: r.Price}
	}
	return out, nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// --- C1 stores: ledger and planning depend on each other, so a proxy
	// breaks the constructor cycle (see ledgerRecorderProxy above).
	recorderProxy := &ledgerRecorderProxy{}
	planningStore := planning.NewStore(planningpg.NewRepository(pool), recorderProxy)
	ledgerStore := ledger.NewStore(ledgerpg.NewRepository(pool), planningStore)
	recorderProxy.store = ledgerStore

	docsStore := docs.NewStore(docspg.NewRepository(pool))

	// --- C8 LLM gateway: Anthropic primary, OpenAI fallback, both optional.
	var providers []llm.Gateway
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, anthropic.New(cfg.AnthropicAPIKey))
	}
	if p := openai.New(cfg.OpenAIAPIKey); p != nil {
		providers = append(providers, p)
	}
	gateway := llm.NewFallbackGateway(providers...)

	// --- C2 extraction collaborators, all optional (NotConfigured pattern).
	var blobs *storage.Store
	if cfg.MinIO.AccessKeyID != "" && cfg.MinIO.SecretAccessKey != "" {
		blobs, err = storage.New(ctx, storage.Config{
			Region:          "us-east-1",
			Bucket:          cfg.MinIO.BucketName,
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKeyID,
			SecretAccessKey: cfg.MinIO.SecretAccessKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
	}
	docIntel := docintel.New(cfg.DocIntelEndpoint, cfg.DocIntelAPIKey)
	vision := receipt.NewSarvamVisionProvider(cfg.SarvamAPIKey)

	// --- C7 knowledge index: builtin seed corpus, TF-IDF + full-text hybrid.
	knowledgeIndex, err := knowledge.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize knowledge index")
	}
	if err := knowledgeIndex.Build(ctx, knowledge.Seed()); err != nil {
		log.Fatal().Err(err).Msg("Failed to build knowledge index")
	}

	// --- C9 tools registry.
	registry := tools.NewRegistry()
	tokens := tools.NewActionTokens(cfg.ActionTokenSecret)
	tools.RegisterActionTools(registry, tokens)
	tools.RegisterCalculators(registry)
	tools.RegisterKnowledgeTools(registry, knowledgeIndex)
	tools.RegisterGovTools(registry)

	var searcher *search.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchEndpoint != "" {
		searcher = search.NewSearcher(search.NewHTTPProvider(cfg.SearchEndpoint), mustSearchCache())
		tools.RegisterSearchTool(registry, searcher, ratelimit.New(10, 20))
	}

	rtr := router.New(router.DefaultStaticKBKeywords())
	committer := handler.NewActionCommitter(ledgerStore, planningStore)
	agentInstance := agent.New(gateway, registry, rtr, knowledgeIndex, "")

	// --- C13 brainstorm orchestrator, with best-effort web search.
	var webSearcher brainstorm.WebSearcher
	if searcher != nil {
		webSearcher = &brainstormSearchAdapter{searcher: searcher}
	}
	orchestrator := brainstorm.New(gateway, webSearcher, "")

	// --- websocket push channel (spec §4.11/§6.1).
	hub := ws.NewHub()
	wsValidator, err := ws.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, ws.IdentityUserLookup{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket validator")
	}

	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, ws.IdentityUserLookup{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	handlers := handler.Handlers{
		Ledger:     handler.NewLedgerHandler(ledgerStore),
		Planning:   handler.NewPlanningHandler(planningStore),
		Extract:    handler.NewExtractHandler(ledgerStore, blobs, docIntel, vision),
		Categorize: handler.NewCategorizeHandler(handler.NewPlanningRuleSource(planningStore), handler.NewGatewayCategorizer(gateway, "")),
		Analytics:  handler.NewAnalyticsHandler(ledgerStore, planningStore, docsStore),
		Mudra:      handler.NewMudraHandler(docsStore),
		Brainstorm: handler.NewBrainstormHandler(orchestrator),
		Scheme:     handler.NewSchemeHandler(),
		Agent:      handler.NewAgentHandler(agentInstance, tokens, committer),
		Calculator: handler.NewCalculatorHandler(),
		WS:         handler.NewWSHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))
	e.Use(zerologMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.Recover())

	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func mustSearchCache() *search.Cache {
	c, err := search.NewCache()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize search cache")
	}
	return c
}

func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
