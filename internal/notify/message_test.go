package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

func TestFormatOrderSummary(t *testing.T) {
	id := primitive.NewObjectID()
	order := &domain.ExpandedOrder{
		Order: domain.Order{
			ID:            id,
			CustomerName:  "Asha",
			Phone:         "111",
			Total:         130.5,
			PaymentMethod: domain.PaymentMethodCOD,
			Address:       "12 Main St",
			Location:      &domain.Location{City: "Salem", MapsLink: "https://www.google.com/maps?q=1,2"},
		},
		Products: []domain.ExpandedLine{
			{Product: &domain.Product{Name: "Milk", Price: 40.1}, Quantity: 3},
			{Product: nil, Quantity: 1},
		},
	}

	text := FormatOrderSummary(order)

	assert.Contains(t, text, "*Order ID:* `"+id.Hex()+"`")
	assert.Contains(t, text, "*Customer:* Asha")
	assert.Contains(t, text, "*Total Amount:* ₹130.50")
	assert.Contains(t, text, "*Payment Method:* Cash on Delivery")
	assert.Contains(t, text, "*Location:* Salem [View on Google Maps](https://www.google.com/maps?q=1,2)")
	assert.Contains(t, text, "- Milk (Qty: 3) - ₹120.30")
	assert.Contains(t, text, "- Unknown Product (Qty: 1) - ₹0.00")
}

func TestFormatOrderSummaryFallbacks(t *testing.T) {
	text := FormatOrderSummary(&domain.ExpandedOrder{Order: domain.Order{PaymentMethod: domain.PaymentMethodQR}})

	assert.Contains(t, text, "*Customer:* N/A")
	assert.Contains(t, text, "*Payment Method:* Pay via QR Code")
	assert.Contains(t, text, "*Location:* N/A\n")
	assert.Contains(t, text, "No items listed")
}
