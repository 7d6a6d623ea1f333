package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/bills"
	"github.com/dromero/financepro/internal/domain"
)

// BillsHandler serves the recurring-bill projection.
type BillsHandler struct {
	engine *bills.Engine
	log    zerolog.Logger
	now    func() time.Time
}

// NewBillsHandler creates a bills handler.
func NewBillsHandler(engine *bills.Engine, log zerolog.Logger) *BillsHandler {
	return &BillsHandler{engine: engine, log: log, now: time.Now}
}

// Upcoming handles GET /api/bills/upcoming.
func (h *BillsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	upcoming := h.engine.Upcoming(h.now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bills": upcoming,
		"count": len(upcoming),
	})
}

// Report handles GET /api/bills/report. Query parameters: months
// (horizon, default 3), year (default current), category, search, sort
// (date|name|category|amount|frequency), dir (asc|desc).
func (h *BillsHandler) Report(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	q := r.URL.Query()

	months := 3
	if s := q.Get("months"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed <= 0 {
			writeBadRequestMsg(w, "invalid months")
			return
		}
		months = parsed
	}
	year := now.Year()
	if s := q.Get("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			writeBadRequestMsg(w, "invalid year")
			return
		}
		year = parsed
	}

	projected := h.engine.Future(months, year, now)

	// Totals, distributions and trend run over the unfiltered
	// projection; category and search filters only narrow the table.
	totals := h.engine.PeriodTotals(projected, months, now)
	trend := h.engine.Trend(projected, now)
	byCategory := h.engine.CategoryDistribution(projected)
	byFrequency := h.engine.FrequencyDistribution(projected)
	calendar := h.engine.Calendar(projected)

	filtered := projected
	if category := q.Get("category"); category != "" {
		filtered = nil
		for _, bill := range projected {
			if bill.Category == category {
				filtered = append(filtered, bill)
			}
		}
	}
	if search := strings.ToLower(strings.TrimSpace(q.Get("search"))); search != "" {
		narrowed := filtered[:0:0]
		for _, bill := range filtered {
			if strings.Contains(strings.ToLower(bill.Name), search) {
				narrowed = append(narrowed, bill)
			}
		}
		filtered = narrowed
	}

	sortField := bills.SortField(q.Get("sort"))
	if sortField == "" {
		sortField = bills.SortByDate
	}
	bills.Sort(filtered, sortField, q.Get("dir") != "desc")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bills":                 filtered,
		"periodTotals":          totals,
		"trend":                 trend,
		"categoryDistribution":  byCategory,
		"frequencyDistribution": byFrequency,
		"calendar":              calendar,
		"categories":            h.engine.Categories(),
	})
}

// Pay handles POST /api/bills/pay: it materializes one projected
// occurrence as a paid ledger transaction.
func (h *BillsHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string           `json:"name"`
		Category  string           `json:"category"`
		Amount    decimal.Decimal  `json:"amount"`
		Date      domain.Date      `json:"date"`
		Frequency domain.Frequency `json:"frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.Name == "" {
		writeBadRequestMsg(w, "name is required")
		return
	}
	if req.Amount.Sign() <= 0 {
		writeBadRequestMsg(w, "amount must be positive")
		return
	}
	if !req.Frequency.Valid() {
		writeBadRequestMsg(w, "invalid frequency")
		return
	}

	paid, err := h.engine.Pay(domain.ProjectedBill{
		Name:      req.Name,
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      req.Date,
		Frequency: req.Frequency,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paid)
}
