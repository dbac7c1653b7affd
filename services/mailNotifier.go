package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/utils"
)

// MailNotifier emails the customer when an order is placed or changes status.
// Orders placed without an email address are skipped.
type MailNotifier struct {
	smtp utils.SMTPConfig
}

func NewMailNotifier(cfg utils.SMTPConfig) *MailNotifier {
	return &MailNotifier{smtp: cfg}
}

func (m *MailNotifier) Notify(_ context.Context, event OrderEvent) error {
	order := event.Order
	if order.Email == nil || *order.Email == "" {
		return nil
	}

	data := utils.EmailData{
		Name:        order.CustomerName,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Total:       order.TotalAmount.StringFixed(2),
	}

	switch event.Type {
	case EventOrderPlaced:
		data.Message = "Thank you for your order! We will contact you to arrange delivery."
		for _, item := range order.Items {
			data.Items = append(data.Items, utils.EmailItem{
				Name:      item.ProductName,
				Size:      string(item.Size),
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.StringFixed(2),
				Subtotal:  item.Subtotal.StringFixed(2),
			})
		}
		subject := fmt.Sprintf("Order %s received", order.OrderNumber)
		return utils.SendEmail(m.smtp, *order.Email, subject, "order_confirmation.html", data)
	case EventOrderStatusChanged:
		data.Message = statusMessage(order.Status)
		subject := fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status)
		return utils.SendEmail(m.smtp, *order.Email, subject, "order_status.html", data)
	}
	return nil
}

func statusMessage(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusApproved:
		return "Your order has been approved and is being prepared."
	case models.OrderStatusShipped:
		return "Your order is on its way."
	case models.OrderStatusDelivered:
		return "Your order has been delivered. Enjoy your fragrance!"
	case models.OrderStatusCancelled:
		return "Your order has been cancelled. Contact us if this is unexpected."
	}
	return "Your order status has been updated."
}
