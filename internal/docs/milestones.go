package docs

// Metrics is the predicate input for milestone evaluation, a flattened
// view of whatever AnalysisSnapshot.Metrics carries for a given user at
// snapshot time.
type Metrics struct {
	TransactionCount  int
	BudgetCount       int
	SavingsRate       float64
	HealthScore       float64
	UnderBudgetMonths int
	GoalsCompleted    int
	CurrentStreak     int
}

type milestoneDef struct {
	id    string
	title string
	icon  string
	xp    int
	order int
	check func(Metrics) bool
}

// catalog is the fixed 14-milestone gamification catalog (spec §4.11).
var catalog = []milestoneDef{
	{"first_transaction", "First Step", "🎯", 10, 1, func(m Metrics) bool { return m.TransactionCount >= 1 }},
	{"budget_creator", "Budget Master", "📊", 15, 2, func(m Metrics) bool { return m.BudgetCount >= 1 }},
	{"savings_10", "Saver Initiate", "💰", 25, 3, func(m Metrics) bool { return m.SavingsRate >= 10 }},
	{"savings_20", "Smart Saver", "🏆", 50, 4, func(m Metrics) bool { return m.SavingsRate >= 20 }},
	{"savings_30", "Savings Champion", "👑", 100, 5, func(m Metrics) bool { return m.SavingsRate >= 30 }},
	{"health_50", "Financially Fit", "💪", 30, 6, func(m Metrics) bool { return m.HealthScore >= 50 }},
	{"health_75", "Financial Pro", "🌟", 75, 7, func(m Metrics) bool { return m.HealthScore >= 75 }},
	{"health_90", "Finance Legend", "🔥", 150, 8, func(m Metrics) bool { return m.HealthScore >= 90 }},
	{"expense_tracker_50", "Tracker Pro", "📝", 40, 9, func(m Metrics) bool { return m.TransactionCount >= 50 }},
	{"expense_tracker_200", "Data Driven", "📈", 80, 10, func(m Metrics) bool { return m.TransactionCount >= 200 }},
	{"under_budget", "Budget Hero", "🛡️", 60, 11, func(m Metrics) bool { return m.UnderBudgetMonths >= 1 }},
	{"goal_achieved", "Goal Crusher", "🎯", 100, 12, func(m Metrics) bool { return m.GoalsCompleted >= 1 }},
	{"streak_7", "Week Warrior", "⚡", 20, 13, func(m Metrics) bool { return m.CurrentStreak >= 7 }},
	{"streak_30", "Month Master", "🔥", 75, 14, func(m Metrics) bool { return m.CurrentStreak >= 30 }},
}

// TotalMilestones is the fixed catalog size, exposed for UserXP progress
// displays ("N of TotalMilestones achieved").
const TotalMilestones = 14
