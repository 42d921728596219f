package controllers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// GET /v1/admin/reports/payments/excel
func DownloadPaymentReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadPaymentReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(c)
	if !ok {
		return
	}

	payments, _, summary, err := loadPaymentReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch report data: %v", err)
		utils.InternalServerError(c, "Failed to fetch report data", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d payments for Excel report", len(payments))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payment Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Company details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("ZWITCH - Payment Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@zwitch.dev")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Payment ID", "Order ID", "Date", "Amount", "Currency", "Method", "Status", "Error Code"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, p := range payments {
		row := sheet.AddRow()
		row.AddCell().SetString(p.RazorpayPaymentID)
		row.AddCell().SetString(p.RazorpayOrderID)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetFloat(gateway.MajorUnits(p.AmountMinor, p.Currency))
		row.AddCell().SetString(p.Currency)
		row.AddCell().SetString(p.Method)
		row.AddCell().SetString(p.Status)
		row.AddCell().SetString(p.ErrorCode)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Payments", fmt.Sprintf("%d", summary.TotalPayments)},
		{"Captured", fmt.Sprintf("%d", summary.CapturedCount)},
		{"Captured Amount (minor units)", fmt.Sprintf("%d", summary.CapturedAmount)},
		{"Failed", fmt.Sprintf("%d", summary.FailedCount)},
		{"Refunds Processed", fmt.Sprintf("%d", summary.RefundCount)},
		{"Refunded Amount (minor units)", fmt.Sprintf("%d", summary.RefundedAmount)},
		{"Net Amount (minor units)", fmt.Sprintf("%d", summary.NetAmount)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payment_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// GET /v1/admin/reports/payments/pdf
func DownloadPaymentReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadPaymentReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(c)
	if !ok {
		return
	}

	payments, _, summary, err := loadPaymentReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch report data: %v", err)
		utils.InternalServerError(c, "Failed to fetch report data", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d payments for PDF report", len(payments))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "ZWITCH - Payment Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Razorpay Gateway Dashboard")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Payment ID", "Order ID", "Date", "Amount", "Currency", "Method", "Status", "Error Code"}
	colWidths := []float64{45, 45, 32, 25, 20, 25, 25, 35}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, p := range payments {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, p.RazorpayPaymentID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, p.RazorpayOrderID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, p.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", gateway.MajorUnits(p.AmountMinor, p.Currency)), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, p.Currency, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, p.Method, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, p.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, p.ErrorCode, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	summaryData := [][]string{
		{"Total Payments", fmt.Sprintf("%d", summary.TotalPayments)},
		{"Captured", fmt.Sprintf("%d", summary.CapturedCount)},
		{"Captured Amount (minor units)", fmt.Sprintf("%d", summary.CapturedAmount)},
		{"Failed", fmt.Sprintf("%d", summary.FailedCount)},
		{"Refunds Processed", fmt.Sprintf("%d", summary.RefundCount)},
		{"Refunded Amount (minor units)", fmt.Sprintf("%d", summary.RefundedAmount)},
		{"Net Amount (minor units)", fmt.Sprintf("%d", summary.NetAmount)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(70, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payment_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
