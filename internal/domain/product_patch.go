package domain

// ProductPatch maps stored field names to already-validated values: string, float64,
// int, bool, or nil for a cleared nullable field.
type ProductPatch map[string]interface{}

// ProductPatchFields is the whitelist of fields an update may touch.
var ProductPatchFields = []string{
	"name",
	"category",
	"price",
	"originalPrice",
	"stock",
	"imageUrl",
	"description",
	"available",
	"featured",
	"details",
	"specifications",
	"availability",
}

// NullableProductFields are optional strings where "" is stored as null.
var NullableProductFields = map[string]bool{
	"imageUrl":       true,
	"description":    true,
	"details":        true,
	"specifications": true,
}

// Apply copies the patched values onto p. Unknown keys are ignored.
func (p *Product) Apply(patch ProductPatch) {
	for field, value := range patch {
		switch field {
		case "name":
			p.Name, _ = value.(string)
		case "category":
			p.Category, _ = value.(string)
		case "price":
			p.Price, _ = value.(float64)
		case "originalPrice":
			p.OriginalPrice = floatPtr(value)
		case "stock":
			p.Stock, _ = value.(int)
		case "imageUrl":
			p.ImageURL = stringPtr(value)
		case "description":
			p.Description = stringPtr(value)
		case "details":
			p.Details = stringPtr(value)
		case "specifications":
			p.Specifications = stringPtr(value)
		case "available":
			p.Available, _ = value.(bool)
		case "featured":
			p.Featured, _ = value.(bool)
		case "availability":
			p.Availability, _ = value.(bool)
		}
	}
}

func stringPtr(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func floatPtr(v interface{}) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
