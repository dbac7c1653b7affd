package utils

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSendMail(t *testing.T, err error) *[]byte {
	t.Helper()
	var sent []byte
	original := sendMail
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "shop@example.com", from)
		assert.Equal(t, []string{"jane@example.com"}, to)
		sent = msg
		return err
	}
	t.Cleanup(func() { sendMail = original })
	return &sent
}

func testSMTP() SMTPConfig {
	return SMTPConfig{Host: "smtp.example.com", Address: "smtp.example.com:587", From: "shop@example.com", Password: "pw"}
}

func TestSendEmail_RendersOrderConfirmation(t *testing.T) {
	sent := stubSendMail(t, nil)

	err := SendEmail(testSMTP(), "jane@example.com", "Order ORD-1 received", "order_confirmation.html", EmailData{
		Name:        "Jane",
		Message:     "Thank you for your order!",
		OrderNumber: "ORD-1",
		Items: []EmailItem{
			{Name: "Velvet Oud", Size: "35ml", Quantity: 2, UnitPrice: "30.00", Subtotal: "60.00"},
		},
		Total: "60.00",
	})
	require.NoError(t, err)

	msg := string(*sent)
	assert.Contains(t, msg, "Subject: Order ORD-1 received")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "Velvet Oud")
	assert.Contains(t, msg, "60.00")
}

func TestSendEmail_Errors(t *testing.T) {
	stubSendMail(t, errors.New("connection refused"))

	err := SendEmail(testSMTP(), "jane@example.com", "Status", "order_status.html", EmailData{Name: "Jane"})
	assert.ErrorContains(t, err, "failed to send email")

	err = SendEmail(testSMTP(), "jane@example.com", "Status", "missing.html", EmailData{})
	assert.ErrorContains(t, err, "template execution error")
}

func TestSMTPConfigEnabled(t *testing.T) {
	assert.True(t, testSMTP().Enabled())
	assert.False(t, SMTPConfig{Address: "smtp.example.com:587"}.Enabled())
}
