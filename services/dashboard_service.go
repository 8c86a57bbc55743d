package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
)

// DashboardSnapshot separates pending from settled orders and totals the
// day's revenue.
type DashboardSnapshot struct {
	Date           string         `json:"date"`
	OpenOrders     []models.Order `json:"open_orders"`
	FinishedOrders []models.Order `json:"finished_orders"`
	RevenueToday   float64        `json:"revenue_today"`
}

// DashboardService reads persisted orders to render operational state. It
// is pull-only: callers refresh when they need fresh numbers.
type DashboardService struct {
	db    *gorm.DB
	store OrderStore
}

func NewDashboardService(db *gorm.DB, store OrderStore) *DashboardService {
	return &DashboardService{db: db, store: store}
}

// Refresh loads open orders (any date) and finished orders restricted to
// asOf's calendar day, then sums the finished totals into the day's revenue.
func (s *DashboardService) Refresh(asOf time.Time) (*DashboardSnapshot, error) {
	open, err := s.store.ListOpenOrders(s.db)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	finished, err := s.store.ListFinishedOrders(s.db, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, order := range finished {
		revenue += order.TotalAmount
	}

	return &DashboardSnapshot{
		Date:           dayStart.Format("2006-01-02"),
		OpenOrders:     open,
		FinishedOrders: finished,
		RevenueToday:   math.Round(revenue*100) / 100,
	}, nil
}

// ComputeChange returns the change due for an amount tendered against an
// order total. Negative change (underpayment) is returned as-is; blocking
// it is the caller's decision.
func ComputeChange(tendered, total float64) float64 {
	return math.Round((tendered-total)*100) / 100
}
