package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendMail delivers one HTML email through the configured SMTP relay.
// Failures are logged and returned; payment processing never depends on a
// mail delivery succeeding.
func sendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	if host == "" {
		return fmt.Errorf("SMTP not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendPaymentConfirmation notifies the customer that a payment was captured.
func SendPaymentConfirmation(to, receipt string, amountDisplay string) error {
	if to == "" {
		return nil
	}
	body := fmt.Sprintf(`
		<h2>Payment received</h2>
		<p>We have received your payment of <strong>%s</strong> for order <strong>%s</strong>.</p>
		<p>Your order is now being processed.</p>`, amountDisplay, receipt)
	if err := sendMail(to, "Payment received for "+receipt, body); err != nil {
		LogError("Failed to send payment confirmation for %s: %v", receipt, err)
		return err
	}
	LogInfo("Payment confirmation sent for %s", receipt)
	return nil
}

// SendRefundNotification notifies the customer that a refund was processed.
func SendRefundNotification(to, refundID string, amountDisplay string) error {
	if to == "" {
		return nil
	}
	body := fmt.Sprintf(`
		<h2>Refund processed</h2>
		<p>A refund of <strong>%s</strong> has been processed to your original payment method.</p>
		<p>Reference: %s. It may take 5-7 business days to reflect in your account.</p>`, amountDisplay, refundID)
	if err := sendMail(to, "Your refund has been processed", body); err != nil {
		LogError("Failed to send refund notification %s: %v", refundID, err)
		return err
	}
	LogInfo("Refund notification sent for %s", refundID)
	return nil
}
