package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/metrics"
	"github.com/wealthin/agent-backend/internal/middleware"
)

// Handlers bundles every composition-root handler RegisterRoutes wires up.
// One struct keeps main.go's call site to a single argument instead of a
// growing positional list as C1-C13 handlers are added.
type Handlers struct {
	Ledger     *LedgerHandler
	Planning   *PlanningHandler
	Extract    *ExtractHandler
	Categorize *CategorizeHandler
	Analytics  *AnalyticsHandler
	Mudra      *MudraHandler
	Brainstorm *BrainstormHandler
	Scheme     *SchemeHandler
	Agent      *AgentHandler
	Calculator *CalculatorHandler
	WS         *WSHandler
}

// RegisterRoutes sets up the full HTTP surface of spec §6.1 plus the
// supplemental CRUD underneath it (spec §6.1 calls its table
// "non-exhaustive").
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rl *middleware.RateLimiter, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/metrics", metrics.Handler())
	e.GET("/ws", h.WS.HandleWS)

	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rl))

	transactions := api.Group("/transactions")
	transactions.POST("", h.Ledger.CreateTransaction)
	transactions.GET("", h.Ledger.ListTransactions)
	transactions.GET("/summary", h.Ledger.SpendingSummary)
	transactions.GET("/cashflow", h.Ledger.Cashflow)
	transactions.GET("/:id", h.Ledger.GetTransaction)
	transactions.PATCH("/:id", h.Ledger.UpdateTransaction)
	transactions.DELETE("/:id", h.Ledger.DeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.POST("", h.Planning.CreateBudget)
	budgets.GET("", h.Planning.ListBudgets)
	budgets.DELETE("/:id", h.Planning.DeleteBudget)

	goals := api.Group("/goals")
	goals.POST("", h.Planning.CreateGoal)
	goals.GET("", h.Planning.ListGoals)
	goals.POST("/:id/add-funds", h.Planning.AddFunds)

	scheduled := api.Group("/scheduled-payments")
	scheduled.POST("", h.Planning.CreateScheduledPayment)
	scheduled.GET("", h.Planning.ListScheduledPayments)
	scheduled.POST("/:id/mark-paid", h.Planning.MarkPaid)

	rules := api.Group("/merchant-rules")
	rules.POST("", h.Planning.CreateMerchantRule)
	rules.GET("", h.Planning.ListMerchantRules)
	rules.DELETE("/:id", h.Planning.DeleteMerchantRule)

	api.POST("/categorize", h.Categorize.Categorize)
	api.POST("/categorize/batch", h.Categorize.CategorizeBatch)

	analytics := api.Group("/analytics")
	analytics.GET("/health-score/:user_id", h.Analytics.HealthScore)
	analytics.POST("/refresh/:user_id", h.Analytics.Refresh)
	analytics.GET("/monthly/:user_id", h.Analytics.Monthly)

	api.GET("/dashboard/:user_id", h.Analytics.Dashboard)
	api.GET("/insights/daily/:user_id", h.Analytics.DailyInsight)

	mudraDPR := api.Group("/mudra-dpr")
	mudraDPR.POST("/calculate", h.Mudra.Calculate)
	mudraDPR.POST("/whatif", h.Mudra.WhatIf)

	brainstorm := api.Group("/brainstorm")
	brainstorm.POST("/chat", h.Brainstorm.Brainstorm)
	brainstorm.POST("/critique", h.Brainstorm.ReverseBrainstorm)
	brainstorm.POST("/canvas", h.Brainstorm.ExtractCanvas)

	api.POST("/scheme/assess", h.Scheme.Assess)

	calc := api.Group("/calculator")
	calc.POST("/sip", h.Calculator.SIP)
	calc.POST("/emi", h.Calculator.EMI)
	calc.POST("/fd", h.Calculator.FD)
	calc.POST("/rd", h.Calculator.RD)
	calc.POST("/lumpsum", h.Calculator.Lumpsum)
	calc.POST("/cagr", h.Calculator.CAGR)
	calc.POST("/goal-sip", h.Calculator.GoalSIP)
	calc.POST("/compound-interest", h.Calculator.CompoundInterest)

	agentGroup := api.Group("/agent")
	agentGroup.POST("/chat", h.Agent.Chat)
	agentGroup.POST("/agentic-chat", h.Agent.AgenticChat)
	agentGroup.POST("/confirm-action", h.Agent.ConfirmAction)
	agentGroup.POST("/scan-document", h.Extract.ScanDocument)
	agentGroup.POST("/scan-receipt", h.Extract.ScanReceipt)
}
