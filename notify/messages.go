package notify

import (
	"strings"

	"ordertrack/orders"
)

// messageTemplates maps every order status to its notification text.
// {name} is replaced with the customer name.
var messageTemplates = map[orders.Status]string{
	orders.StatusPending:   "Hello {name}! We received your order. It is being processed",
	orders.StatusProcessed: "{name}, your order has been processed",
	orders.StatusShipped:   "Good news, {name}! Your order has shipped and is on its way.",
	orders.StatusDelivered: "Order delivered! Enjoy your purchase.",
	orders.StatusCanceled:  "Notice: your order was canceled. Check the details in the app.",
	orders.StatusCompleted: "Your order is complete. Thank you for trusting us, {name}!",
}

// MessageFor renders the notification text for a status. Unknown statuses
// fall through to a generic message so the consumer stays total over
// whatever the broker delivers.
func MessageFor(status orders.Status, customerName string) string {
	tmpl, ok := messageTemplates[status]
	if !ok {
		return "Your order status changed to: " + string(status)
	}
	return strings.ReplaceAll(tmpl, "{name}", customerName)
}
