package analytics

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the inter-arrival bucket from spec §4.9.
type Frequency string

const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiWeekly   Frequency = "bi-weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi-annual"
	FrequencyAnnual     Frequency = "annual"
	FrequencyIrregular  Frequency = "irregular"
)

// Label classifies a merchant group per spec §4.9.
type Label string

const (
	LabelSubscription   Label = "subscription"
	LabelRecurringHabit Label = "recurring_habit"
	LabelNone           Label = "none"
)

// SubscriptionCandidate is one detected recurring-merchant group.
type SubscriptionCandidate struct {
	Merchant       string          `json:"merchant"`
	Label          Label           `json:"label"`
	Frequency      Frequency       `json:"frequency"`
	MeanAmount     decimal.Decimal `json:"mean_amount"`
	AmountCV       decimal.Decimal `json:"amount_cv"`
	MeanIntervalDays decimal.Decimal `json:"mean_interval_days"`
	IntervalStdDays decimal.Decimal `json:"interval_std_days"`
	Occurrences    int             `json:"occurrences"`
	Confidence     decimal.Decimal `json:"confidence"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)
var commonSuffixes = []string{" pvt", " ltd", " inc", " india", " private", " limited", " llc"}

func normalizeMerchantKey(description string) string {
	s := strings.ToLower(description)
	s = nonAlnum.ReplaceAllString(s, "")
	for _, suf := range commonSuffixes {
		s = strings.TrimSuffix(s, strings.ReplaceAll(suf, " ", ""))
	}
	return strings.TrimSpace(s)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, m float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

func frequencyBucket(meanIntervalDays float64) Frequency {
	switch {
	case meanIntervalDays <= 8:
		return FrequencyWeekly
	case meanIntervalDays <= 16:
		return FrequencyBiWeekly
	case meanIntervalDays <= 35:
		return FrequencyMonthly
	case meanIntervalDays <= 100:
		return FrequencyQuarterly
	case meanIntervalDays <= 200:
		return FrequencySemiAnnual
	case meanIntervalDays <= 400:
		return FrequencyAnnual
	default:
		return FrequencyIrregular
	}
}

// SubscriptionDetection implements spec §4.9: group expense transactions
// by normalized merchant key over the trailing lookbackMonths, and for
// every group with >=2 occurrences, compute amount/interval statistics,
// label subscription/recurring-habit/none, and a confidence score.
func SubscriptionDetection(txs []Transaction, lookbackMonths int) []SubscriptionCandidate {
	if lookbackMonths <= 0 {
		lookbackMonths = 6
	}
	cutoff := time.Now().AddDate(0, -lookbackMonths, 0)

	groups := map[string][]Transaction{}
	for _, tx := range txs {
		if tx.Type != TypeExpense || tx.Date.Before(cutoff) {
			continue
		}
		key := normalizeMerchantKey(firstNonEmpty(tx.Merchant, tx.Description))
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	var out []SubscriptionCandidate
	for merchant, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		amounts := make([]float64, len(group))
		for i, tx := range group {
			amounts[i], _ = tx.Amount.Float64()
		}
		amountMean := mean(amounts)
		amountStd := stddev(amounts, amountMean)
		amountCV := 0.0
		if amountMean != 0 {
			amountCV = amountStd / amountMean
		}

		intervals := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			intervals = append(intervals, group[i].Date.Sub(group[i-1].Date).Hours()/24)
		}
		intervalMean := mean(intervals)
		intervalStd := stddev(intervals, intervalMean)

		label := LabelNone
		switch {
		case intervalStd <= 3.0 && amountCV <= 0.10:
			label = LabelSubscription
		case intervalMean <= 35 && len(group) >= 3:
			label = LabelRecurringHabit
		}

		occurrenceScore := math.Min(1.0, float64(len(group))/6.0)
		regularityScore := math.Max(0, 1-intervalStd/10.0)
		consistencyScore := math.Max(0, 1-amountCV)
		reasonablenessScore := 1.0
		if intervalMean <= 0 || intervalMean > 400 {
			reasonablenessScore = 0.3
		}
		confidence := 0.25*occurrenceScore + 0.3*regularityScore + 0.3*consistencyScore + 0.15*reasonablenessScore

		if label == LabelNone {
			continue
		}

		out = append(out, SubscriptionCandidate{
			Merchant:         merchant,
			Label:            label,
			Frequency:        frequencyBucket(intervalMean),
			MeanAmount:       decimal.NewFromFloat(amountMean).Round(2),
			AmountCV:         decimal.NewFromFloat(amountCV).Round(4),
			MeanIntervalDays: decimal.NewFromFloat(intervalMean).Round(2),
			IntervalStdDays:  decimal.NewFromFloat(intervalStd).Round(2),
			Occurrences:      len(group),
			Confidence:       decimal.NewFromFloat(confidence).Round(2),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Merchant < out[j].Merchant })
	return out
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
