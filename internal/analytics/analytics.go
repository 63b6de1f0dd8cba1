// Package analytics derives dashboard statistics, distribution breakdowns and
// the interview-performance summary from a job collection. Every function is
// pure: inputs are never mutated, empty collections yield zeroed output, and
// nothing here can fail.
package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/justsurfingit/career-compass/internal/models"
)

// Stats is the dashboard headline block.
type Stats struct {
	Total          int `json:"total"`
	Applied        int `json:"applied"`
	Interviews     int `json:"interviews"`
	Offers         int `json:"offers"`
	HighPriority   int `json:"high_priority"`
	Rejected       int `json:"rejected"`
	AcceptanceRate int `json:"acceptance_rate"`
}

// ComputeStats counts the status buckets. The interview bucket covers every
// stage between applying and an outcome.
func ComputeStats(jobs []models.Job) Stats {
	s := Stats{Total: len(jobs)}
	for _, job := range jobs {
		switch job.Status {
		case models.StatusApplied:
			s.Applied++
		case models.StatusPhoneScreen, models.StatusInterview, models.StatusFinalRound:
			s.Interviews++
		case models.StatusOffer:
			s.Offers++
		case models.StatusRejected:
			s.Rejected++
		}
		if job.Priority == models.PriorityHigh {
			s.HighPriority++
		}
	}
	s.AcceptanceRate = ratio(s.Offers, s.Total)
	return s
}

// Progress is the pair of dashboard progress bars, capped at 100.
type Progress struct {
	Interviews int `json:"interviews"`
	Offers     int `json:"offers"`
}

func ComputeProgress(s Stats) Progress {
	return Progress{
		Interviews: capped(ratio(s.Interviews, s.Total)),
		Offers:     capped(ratio(s.Offers, s.Total)),
	}
}

// Sector is one pie slice: a label with its count, rounded display
// percentage, fixed color, and the cumulative angular span in degrees. The
// first sector starts at 0 (the renderer's twelve o'clock).
type Sector struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
	Color      string  `json:"color"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

var statusColors = map[models.Status]string{
	models.StatusApplied:     "#3B82F6",
	models.StatusRejected:    "#6B7280",
	models.StatusPhoneScreen: "#8B5CF6",
	models.StatusInterview:   "#4F46E5",
	models.StatusFinalRound:  "#EC4899",
	models.StatusOffer:       "#10B981",
	models.StatusAccepted:    "#059669",
	models.StatusDeclined:    "#F59E0B",
}

var priorityColors = map[models.Priority]string{
	models.PriorityHigh:   "#EF4444",
	models.PriorityMedium: "#F59E0B",
	models.PriorityLow:    "#10B981",
}

// StatusDistribution returns one sector per status that has at least one job,
// in the fixed status display order.
func StatusDistribution(jobs []models.Job) []Sector {
	counts := make([]labelCount, 0, len(models.StatusOptions))
	for _, status := range models.StatusOptions {
		n := 0
		for _, job := range jobs {
			if job.Status == status {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, labelCount{string(status), n, statusColors[status]})
		}
	}
	return sectors(counts, len(jobs))
}

// PriorityDistribution is the same breakdown keyed by priority.
func PriorityDistribution(jobs []models.Job) []Sector {
	counts := make([]labelCount, 0, len(models.PriorityOptions))
	for _, priority := range models.PriorityOptions {
		n := 0
		for _, job := range jobs {
			if job.Priority == priority {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, labelCount{string(priority), n, priorityColors[priority]})
		}
	}
	return sectors(counts, len(jobs))
}

type labelCount struct {
	label string
	count int
	color string
}

func sectors(counts []labelCount, total int) []Sector {
	if total == 0 {
		return nil
	}
	out := make([]Sector, 0, len(counts))
	startAngle := 0.0
	for _, c := range counts {
		fraction := float64(c.count) / float64(total)
		endAngle := startAngle + fraction*360
		out = append(out, Sector{
			Label:      c.label,
			Count:      c.count,
			Percentage: int(math.Round(fraction * 100)),
			Color:      c.color,
			StartAngle: startAngle,
			EndAngle:   endAngle,
		})
		startAngle = endAngle
	}
	return out
}

// SuccessRate is the funnel snapshot over the whole collection.
type SuccessRate struct {
	Applied    int `json:"applied"`
	Interviews int `json:"interviews"`
	Offers     int `json:"offers"`
}

// Analysis is the heuristic interview-performance summary. It is derived
// entirely from local data: keyword matching plus rating arithmetic.
type Analysis struct {
	OverallScore    int         `json:"overall_score"`
	InterviewCount  int         `json:"interview_count"`
	AverageRating   string      `json:"average_rating"`
	TopStrengths    []string    `json:"top_strengths"`
	TopImprovements []string    `json:"top_improvements"`
	Recommendations []string    `json:"recommendations"`
	SuccessRate     SuccessRate `json:"success_rate"`
	ConversionRate  int         `json:"conversion_rate"`
	OfferRate       int         `json:"offer_rate"`
}

// Fixed vocabularies matched case-insensitively against the concatenated
// strengths/improvements text of all interviews.
var (
	strengthKeywords    = []string{"communication", "technical", "problem-solving", "presentation", "portfolio", "experience", "data-driven"}
	improvementKeywords = []string{"system design", "whiteboarding", "culture fit", "monetization", "technical depth", "preparation"}
)

const (
	noDataPlaceholder = "No interview data available"
	notEnoughData     = "Not enough data"
)

var baselineRecommendations = []string{
	"Review common interview questions for your role",
	"Practice explaining your past projects concisely",
	"Prepare thoughtful questions about company culture",
}

// GenerateInterviewAnalysis summarizes how interviews for job went and where
// job sits in the wider funnel. A nil job or one with no interviews produces
// the placeholder analysis; the funnel numbers still cover allJobs.
func GenerateInterviewAnalysis(job *models.Job, allJobs []models.Job) Analysis {
	if job == nil || len(job.Interviews) == 0 {
		return Analysis{
			OverallScore:    0,
			InterviewCount:  0,
			AverageRating:   "0.0",
			TopStrengths:    []string{noDataPlaceholder},
			TopImprovements: []string{noDataPlaceholder},
			Recommendations: []string{"Add interview experiences to get AI-powered insights"},
			SuccessRate:     SuccessRate{Applied: len(allJobs)},
		}
	}

	interviewCount := len(job.Interviews)
	ratingSum := 0
	var allStrengths, allImprovements []string
	for _, iv := range job.Interviews {
		ratingSum += iv.Rating
		allStrengths = append(allStrengths, iv.Strengths)
		allImprovements = append(allImprovements, iv.Improvements)
	}
	averageRating := float64(ratingSum) / float64(interviewCount)

	strengths := matchKeywords(strings.Join(allStrengths, " "), strengthKeywords)
	improvements := matchKeywords(strings.Join(allImprovements, " "), improvementKeywords)

	recommendations := append([]string{}, baselineRecommendations...)
	if contains(improvements, "system design") {
		recommendations = append(recommendations, "Study system design patterns and practice whiteboarding solutions")
	}
	if contains(improvements, "technical depth") {
		recommendations = append(recommendations, "Deepen knowledge in core technical areas through targeted practice")
	}
	if averageRating < 7 {
		recommendations = append(recommendations, "Consider mock interviews with industry professionals for feedback")
	}
	if len(recommendations) > 4 {
		recommendations = recommendations[:4]
	}

	success := SuccessRate{Applied: len(allJobs)}
	for _, j := range allJobs {
		switch j.Status {
		case models.StatusInterview, models.StatusFinalRound:
			success.Interviews++
		case models.StatusOffer, models.StatusAccepted:
			success.Offers++
		}
	}

	return Analysis{
		OverallScore:    int(math.Round(averageRating * 10)),
		InterviewCount:  interviewCount,
		AverageRating:   fmt.Sprintf("%.1f", averageRating),
		TopStrengths:    topThree(strengths),
		TopImprovements: topThree(improvements),
		Recommendations: recommendations,
		SuccessRate:     success,
		ConversionRate:  ratio(success.Interviews, success.Applied),
		OfferRate:       ratio(success.Offers, success.Interviews),
	}
}

// matchKeywords returns the vocabulary entries found in text, case
// insensitively, preserving vocabulary order.
func matchKeywords(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			matched = append(matched, word)
		}
	}
	return matched
}

func topThree(matched []string) []string {
	if len(matched) == 0 {
		return []string{notEnoughData}
	}
	if len(matched) > 3 {
		matched = matched[:3]
	}
	return matched
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ratio is round(100*n/d), defined as 0 when the denominator is 0.
func ratio(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

func capped(pct int) int {
	if pct > 100 {
		return 100
	}
	return pct
}
