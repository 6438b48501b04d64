// Package stats derives task analytics: status and priority counts, category
// distribution and day-by-day productivity.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Joseda-hg/taskify/internal/model"
)

const (
	DefaultDays   = 7
	Uncategorized = "uncategorized"
)

type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

type Summary struct {
	model.TaskStats
	CompletionRate int                    `json:"completionRate" yaml:"completion_rate"`
	Priorities     map[model.Priority]int `json:"priorities" yaml:"priorities"`
	Categories     []CategoryCount        `json:"categories" yaml:"categories"`
}

type Day struct {
	Date      model.Date `json:"date" yaml:"date"`
	Created   int        `json:"created" yaml:"created"`
	Completed int        `json:"completed" yaml:"completed"`
}

// Summarize counts tasks by status, priority and category. Tasks without a
// priority are left out of the priority counts.
func Summarize(tasks []model.Task) Summary {
	summary := Summary{
		TaskStats:  model.CountStatuses(tasks),
		Priorities: make(map[model.Priority]int, len(model.Priorities)),
	}
	for _, p := range model.Priorities {
		summary.Priorities[p] = 0
	}
	if summary.Total > 0 {
		summary.CompletionRate = int(math.Round(float64(summary.Completed) * 100 / float64(summary.Total)))
	}

	categories := map[string]int{}
	for _, task := range tasks {
		if task.Priority != nil {
			if _, ok := summary.Priorities[*task.Priority]; ok {
				summary.Priorities[*task.Priority]++
			}
		}
		category := Uncategorized
		if task.Category != nil && strings.TrimSpace(*task.Category) != "" {
			category = strings.TrimSpace(*task.Category)
		}
		categories[category]++
	}

	summary.Categories = make([]CategoryCount, 0, len(categories))
	for category, count := range categories {
		summary.Categories = append(summary.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	return summary
}

// Productivity returns one entry per day for the days ending on now, oldest
// first. A task counts as completed on the day of its last update.
func Productivity(tasks []model.Task, now time.Time, days int) []Day {
	if days <= 0 {
		days = DefaultDays
	}
	now = now.UTC()

	result := make([]Day, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := model.NewDate(now.AddDate(0, 0, i-days+1))
		result[i] = Day{Date: day}
		index[day.String()] = i
	}

	for _, task := range tasks {
		if i, ok := index[model.NewDate(task.CreatedAt.UTC()).String()]; ok {
			result[i].Created++
		}
		if task.Status != model.StatusCompleted {
			continue
		}
		if i, ok := index[model.NewDate(task.UpdatedAt.UTC()).String()]; ok {
			result[i].Completed++
		}
	}
	return result
}
