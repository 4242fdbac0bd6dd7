// controllers/report.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/models"
	"nailspa-backend/services"
	"nailspa-backend/utils"
)

// ReportController handles all reporting functions
type ReportController struct {
	billing   *services.BillingService
	analytics *services.Analytics
	loc       *time.Location
	log       *zap.Logger
	clock
}

func NewReportController(billing *services.BillingService, analytics *services.Analytics, loc *time.Location, log *zap.Logger) *ReportController {
	return &ReportController{billing: billing, analytics: analytics, loc: loc, log: log.Named("reports"), clock: systemClock()}
}

// DashboardOverview is the home screen summary
type DashboardOverview struct {
	Revenue       services.RevenueSummary `json:"revenue"`
	LastSevenDays []services.DailyRevenue `json:"lastSevenDays"`
	TotalBills    int                     `json:"totalBills"`
	TotalRevenue  int64                   `json:"totalRevenue"`
	Customers     int                     `json:"customers"`
	RecentBills   []models.Bill           `json:"recentBills"`
	TopServices   []services.ServiceStat  `json:"topServices"`
}

const (
	recentBillsLimit = 5
	topServicesLimit = 5
)

// GetDashboard returns revenue for today, this week and this month, the 7-day chart
// and this month's top services
func (rc *ReportController) GetDashboard(c *gin.Context) {
	bills := rc.billing.List()
	now := rc.now()

	overview := DashboardOverview{
		Revenue:       rc.analytics.Summary(bills, now),
		LastSevenDays: rc.analytics.LastDays(bills, now, 7),
		TotalBills:    len(bills),
		Customers:     len(services.CustomerNames(bills)),
		TopServices:   services.TopServices(bills, utils.BeginningOfMonth(now.In(rc.loc)), time.Time{}, topServicesLimit),
	}
	for _, b := range bills {
		overview.TotalRevenue += b.Total
	}

	page, err := rc.analytics.Search(bills, services.BillQuery{Limit: recentBillsLimit}, now)
	if err != nil {
		respondError(c, rc.log, err, "")
		return
	}
	overview.RecentBills = page.Bills

	c.JSON(http.StatusOK, overview)
}

// GetCalendar returns revenue per day of ?year=&month=, defaulting to the current month
func (rc *ReportController) GetCalendar(c *gin.Context) {
	now := rc.now().In(rc.loc)
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
			return
		}
		month = v
	}

	c.JSON(http.StatusOK, rc.analytics.Calendar(rc.billing.List(), year, time.Month(month)))
}

// GetTopServices ranks services by revenue between ?from= and ?to= (inclusive days)
func (rc *ReportController) GetTopServices(c *gin.Context) {
	from, err := rc.parseDay(c.Query("from"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := rc.parseDay(c.Query("to"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, services.TopServices(rc.billing.List(), from, to, limit))
}

// GetCustomers ranks customers by total spent, optionally filtered by ?search=
func (rc *ReportController) GetCustomers(c *gin.Context) {
	ranking := services.RankCustomers(rc.billing.List())
	if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
		matched := []services.CustomerStat{}
		for _, stat := range ranking {
			if strings.Contains(strings.ToLower(stat.Name), q) {
				matched = append(matched, stat)
			}
		}
		ranking = matched
	}
	c.JSON(http.StatusOK, ranking)
}

// SuggestCustomers completes a partially typed customer name
func (rc *ReportController) SuggestCustomers(c *gin.Context) {
	names := services.CustomerNames(rc.billing.List())
	c.JSON(http.StatusOK, services.Suggest(names, c.Query("q")))
}

func (rc *ReportController) parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", raw, rc.loc)
}
