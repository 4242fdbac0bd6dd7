package services

import (
	"sort"
	"strings"
	"time"

	"nailspa-backend/models"
	"nailspa-backend/utils"
)

// Analytics derives read-only views from the bill history. All calendar
// arithmetic happens in the shop time zone.
type Analytics struct {
	loc *time.Location
}

func NewAnalytics(loc *time.Location) *Analytics {
	return &Analytics{loc: loc}
}

// RevenueSummary is revenue and bill count for the current day, week and month.
type RevenueSummary struct {
	Today      int64 `json:"today"`
	TodayBills int   `json:"todayBills"`
	Week       int64 `json:"week"`
	WeekBills  int   `json:"weekBills"`
	Month      int64 `json:"month"`
	MonthBills int   `json:"monthBills"`
}

func (a *Analytics) Summary(bills []models.Bill, now time.Time) RevenueSummary {
	now = now.In(a.loc)
	var sum RevenueSummary
	for _, b := range bills {
		d := b.Date.In(a.loc)
		if utils.SameDay(d, now) {
			sum.Today += b.Total
			sum.TodayBills++
		}
		if utils.SameWeek(d, now) {
			sum.Week += b.Total
			sum.WeekBills++
		}
		if utils.SameMonth(d, now) {
			sum.Month += b.Total
			sum.MonthBills++
		}
	}
	return sum
}

type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Bills   int    `json:"bills"`
	Label   string `json:"label,omitempty"`
}

// LastDays returns one point per day for the n days ending today, oldest first.
func (a *Analytics) LastDays(bills []models.Bill, now time.Time, n int) []DailyRevenue {
	today := utils.BeginningOfDay(now.In(a.loc))
	points := make([]DailyRevenue, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		day := today.AddDate(0, 0, i-n+1)
		points[i].Date = day.Format(dateLayout)
		index[points[i].Date] = i
	}
	for _, b := range bills {
		if i, ok := index[b.Date.In(a.loc).Format(dateLayout)]; ok {
			points[i].Revenue += b.Total
			points[i].Bills++
		}
	}
	return points
}

// CalendarMonth is the revenue of each day of one month.
type CalendarMonth struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []DailyRevenue `json:"days"`
	Total int64          `json:"total"`
	Bills int            `json:"bills"`
}

func (a *Analytics) Calendar(bills []models.Bill, year int, month time.Month) CalendarMonth {
	days := utils.DaysInMonth(year, month)
	cal := CalendarMonth{Year: year, Month: int(month), Days: make([]DailyRevenue, days)}
	for i := range cal.Days {
		cal.Days[i].Date = time.Date(year, month, i+1, 0, 0, 0, 0, a.loc).Format(dateLayout)
	}
	for _, b := range bills {
		d := b.Date.In(a.loc)
		if d.Year() != year || d.Month() != month {
			continue
		}
		cal.Days[d.Day()-1].Revenue += b.Total
		cal.Days[d.Day()-1].Bills++
		cal.Total += b.Total
		cal.Bills++
	}
	for i := range cal.Days {
		if cal.Days[i].Bills > 0 {
			cal.Days[i].Label = utils.FormatCompactCurrency(cal.Days[i].Revenue)
		}
	}
	return cal
}

// CustomerStat aggregates every bill of one customer name.
type CustomerStat struct {
	Name          string        `json:"name"`
	TotalSpent    int64         `json:"totalSpent"`
	VisitCount    int           `json:"visitCount"`
	LastVisitDate time.Time     `json:"lastVisitDate"`
	History       []models.Bill `json:"visitHistory"`
}

// RankCustomers groups bills by trimmed customer name (case-sensitive, blanks
// skipped) and orders by total spent. Ties keep first-appearance order.
func RankCustomers(bills []models.Bill) []CustomerStat {
	stats := []CustomerStat{}
	index := map[string]int{}
	for _, b := range bills {
		name := b.Customer()
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, CustomerStat{Name: name})
		}
		stats[i].TotalSpent += b.Total
		stats[i].VisitCount++
		stats[i].History = append(stats[i].History, b)
	}

	for i := range stats {
		history := stats[i].History
		sort.SliceStable(history, func(x, y int) bool {
			return history[x].Date.After(history[y].Date)
		})
		stats[i].LastVisitDate = history[0].Date
	}
	sort.SliceStable(stats, func(x, y int) bool {
		return stats[x].TotalSpent > stats[y].TotalSpent
	})
	return stats
}

// CustomerNames lists unique non-blank trimmed names in first-appearance order.
func CustomerNames(bills []models.Bill) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, b := range bills {
		name := b.Customer()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Suggest returns names containing query, case-insensitively, excluding an
// exact case-insensitive match. An empty query suggests nothing.
func Suggest(names []string, query string) []string {
	q := strings.ToLower(query)
	out := []string{}
	if q == "" {
		return out
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, q) && lower != q {
			out = append(out, name)
		}
	}
	return out
}

// BillQuery filters the bill list. Day is YYYY-MM-DD in the shop time zone.
type BillQuery struct {
	Customer string
	Day      string
	Offset   int
	Limit    int
}

// BillPage is one page of a filtered bill list.
type BillPage struct {
	Total  int           `json:"total"`
	Bills  []models.Bill `json:"bills"`
	Groups []BillGroup   `json:"groups"`
}

type BillGroup struct {
	Key   string   `json:"key"`
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
}

const (
	GroupToday     = "today"
	GroupYesterday = "yesterday"
	GroupThisWeek  = "this_week"
	GroupThisMonth = "this_month"
)

// Search filters bills, sorts them newest first and returns the requested
// page grouped by recency.
func (a *Analytics) Search(bills []models.Bill, q BillQuery, now time.Time) (BillPage, error) {
	if q.Day != "" {
		if _, err := time.ParseInLocation(dateLayout, q.Day, a.loc); err != nil {
			return BillPage{}, &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
		}
	}
	needle := strings.ToLower(strings.TrimSpace(q.Customer))

	matched := make([]models.Bill, 0, len(bills))
	for _, b := range bills {
		if needle != "" && !strings.Contains(strings.ToLower(b.CustomerName), needle) {
			continue
		}
		if q.Day != "" && b.Date.In(a.loc).Format(dateLayout) != q.Day {
			continue
		}
		matched = append(matched, b)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	page := BillPage{Total: len(matched)}
	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if q.Limit > 0 && q.Limit < end-start {
		end = start + q.Limit
	}
	page.Bills = matched[start:end]
	page.Groups = a.Group(page.Bills, now)
	return page, nil
}

// Group buckets bills by recency relative to now. Groups appear in the order
// their first bill does.
func (a *Analytics) Group(bills []models.Bill, now time.Time) []BillGroup {
	now = now.In(a.loc)
	yesterday := now.AddDate(0, 0, -1)

	groups := []BillGroup{}
	index := map[string]int{}
	for _, b := range bills {
		d := b.Date.In(a.loc)
		var key string
		switch {
		case utils.SameDay(d, now):
			key = GroupToday
		case utils.SameDay(d, yesterday):
			key = GroupYesterday
		case utils.SameWeek(d, now):
			key = GroupThisWeek
		case utils.SameMonth(d, now):
			key = GroupThisMonth
		default:
			key = d.Format("2006-01")
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, BillGroup{Key: key})
		}
		groups[i].IDs = append(groups[i].IDs, b.ID)
		groups[i].Total += b.Total
	}
	return groups
}

// ServiceStat is the sales of one service name.
type ServiceStat struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// TopServices ranks line snapshots by revenue for bills dated in [from, to).
// Zero bounds are open. limit <= 0 returns every service.
func TopServices(bills []models.Bill, from, to time.Time, limit int) []ServiceStat {
	stats := []ServiceStat{}
	index := map[string]int{}
	for _, b := range bills {
		if !from.IsZero() && b.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !b.Date.Before(to) {
			continue
		}
		for _, item := range b.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(stats)
				index[item.Name] = i
				stats = append(stats, ServiceStat{Name: item.Name})
			}
			stats[i].Quantity += item.Quantity
			stats[i].Revenue += item.Price
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
