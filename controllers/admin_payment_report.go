package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/config"
	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
	"github.com/DikshantJo/ZwitchNew-sub000/models"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// paymentReportSummary aggregates a reporting window. All amounts are in
// minor units; display strings are formatted at the edge.
type paymentReportSummary struct {
	TotalPayments   int              `json:"total_payments"`
	CapturedCount   int              `json:"captured_count"`
	CapturedAmount  int64            `json:"captured_amount"`
	FailedCount     int              `json:"failed_count"`
	FailedAmount    int64            `json:"failed_amount"`
	RefundCount     int              `json:"refund_count"`
	RefundedAmount  int64            `json:"refunded_amount"`
	NetAmount       int64            `json:"net_amount"`
	MethodBreakdown map[string]int   `json:"method_breakdown"`
	Currencies      map[string]int64 `json:"captured_by_currency"`
}

// reportWindow resolves the period query into a concrete date range.
func reportWindow(c *gin.Context) (time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	case "custom":
		startDateStr := c.Query("start_date")
		endDateStr := c.Query("end_date")
		if startDateStr == "" || endDateStr == "" {
			utils.LogError("Missing date range parameters")
			utils.BadRequest(c, "Missing date range", "Both start_date and end_date are required for custom period")
			return startDate, endDate, false
		}
		var err error
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			utils.LogError("Invalid start date format: %v", err)
			utils.BadRequest(c, "Invalid start date", "Start date must be in YYYY-MM-DD format")
			return startDate, endDate, false
		}
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			utils.LogError("Invalid end date format: %v", err)
			utils.BadRequest(c, "Invalid end date", "End date must be in YYYY-MM-DD format")
			return startDate, endDate, false
		}
		endDate = endDate.Add(24 * time.Hour)
		if endDate.Before(startDate) {
			utils.LogError("Invalid date range: end date before start date")
			utils.BadRequest(c, "Invalid date range", "End date must be after start date")
			return startDate, endDate, false
		}
		if endDate.Sub(startDate) > 90*24*time.Hour {
			utils.LogError("Date range exceeds 90 days: %s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
			utils.BadRequest(c, "Invalid date range", "Date range cannot exceed 90 days")
			return startDate, endDate, false
		}
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, month, or custom")
		return startDate, endDate, false
	}

	utils.LogDebug("Report date range: %s to %s", startDate.Format("2006-01-02 15:04:05"), endDate.Format("2006-01-02 15:04:05"))
	return startDate, endDate, true
}

func loadPaymentReport(startDate, endDate time.Time) ([]models.PaymentRecord, []models.RefundRecord, paymentReportSummary, error) {
	var payments []models.PaymentRecord
	err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, nil, paymentReportSummary{}, err
	}

	var refunds []models.RefundRecord
	err = config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&refunds).Error
	if err != nil {
		return nil, nil, paymentReportSummary{}, err
	}

	summary := paymentReportSummary{
		MethodBreakdown: make(map[string]int),
		Currencies:      make(map[string]int64),
	}
	for _, p := range payments {
		summary.TotalPayments++
		switch p.Status {
		case models.PaymentStatusCaptured:
			summary.CapturedCount++
			summary.CapturedAmount += p.AmountMinor
			summary.Currencies[p.Currency] += p.AmountMinor
		case models.PaymentStatusFailed:
			summary.FailedCount++
			summary.FailedAmount += p.AmountMinor
		}
		if p.Method != "" {
			summary.MethodBreakdown[p.Method]++
		}
	}
	for _, r := range refunds {
		if r.Status == models.RefundStatusProcessed {
			summary.RefundCount++
			summary.RefundedAmount += r.AmountMinor
		}
	}
	summary.NetAmount = summary.CapturedAmount - summary.RefundedAmount
	return payments, refunds, summary, nil
}

// GET /v1/admin/reports/payments
func GeneratePaymentReport(c *gin.Context) {
	utils.LogInfo("GeneratePaymentReport called")

	startDate, endDate, ok := reportWindow(c)
	if !ok {
		return
	}

	payments, refunds, summary, err := loadPaymentReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch report data: %v", err)
		utils.InternalServerError(c, "Failed to fetch report data", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d payments and %d refunds for the period", len(payments), len(refunds))

	items := make([]gin.H, len(payments))
	for i, p := range payments {
		items[i] = gin.H{
			"razorpay_payment_id": p.RazorpayPaymentID,
			"razorpay_order_id":   p.RazorpayOrderID,
			"amount_display":      fmt.Sprintf("%.2f %s", gateway.MajorUnits(p.AmountMinor, p.Currency), p.Currency),
			"method":              p.Method,
			"status":              p.Status,
			"created_at":          p.CreatedAt,
		}
	}

	utils.Success(c, "Payment report generated successfully", gin.H{
		"period": gin.H{
			"start": startDate.Format("2006-01-02"),
			"end":   endDate.Format("2006-01-02"),
		},
		"summary":  summary,
		"payments": items,
		"refunds":  refunds,
	})
}
