package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

const unknownProduct = "Unknown Product"

// FormatOrderSummary renders the Markdown message sent to the shop owner.
func FormatOrderSummary(order *domain.ExpandedOrder) string {
	var b strings.Builder

	b.WriteString("🛒 *NEW ORDER RECEIVED*\n")
	fmt.Fprintf(&b, "*Order ID:* `%s`\n", order.ID.Hex())
	fmt.Fprintf(&b, "*Customer:* %s\n", orNA(order.CustomerName))
	fmt.Fprintf(&b, "*Phone:* `%s`\n", orNA(order.Phone))
	fmt.Fprintf(&b, "*Total Amount:* ₹%s\n", decimal.NewFromFloat(order.Total).StringFixed(2))
	fmt.Fprintf(&b, "*Payment Method:* %s\n", order.PaymentMethod.Label())
	fmt.Fprintf(&b, "*Address:* %s\n", orNA(order.Address))

	city, link := "", ""
	if order.Location != nil {
		city = order.Location.City
		if order.Location.MapsLink != "" {
			link = fmt.Sprintf(" [View on Google Maps](%s)", order.Location.MapsLink)
		}
	}
	fmt.Fprintf(&b, "*Location:* %s%s\n", orNA(city), link)

	b.WriteString("\n*Items:*\n")
	if len(order.Products) == 0 {
		b.WriteString("No items listed\n")
	}
	for _, line := range order.Products {
		name, price := unknownProduct, 0.0
		if line.Product != nil {
			name, price = line.Product.Name, line.Product.Price
		}
		total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		fmt.Fprintf(&b, "- %s (Qty: %d) - ₹%s\n", name, line.Quantity, total.StringFixed(2))
	}

	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
