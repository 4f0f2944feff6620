package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

func TestContainsFoldEscapesInput(t *testing.T) {
	re := containsFold("a.b*(c")
	assert.Equal(t, `a\.b\*\(c`, re.Pattern)
	assert.Equal(t, "i", re.Options)

	assert.Equal(t, `^Asha \+ Co$`, equalFold("Asha + Co").Pattern)
}

func TestProductListFilter(t *testing.T) {
	assert.Empty(t, productListFilter(domain.ProductFilter{}))

	f := productListFilter(domain.ProductFilter{Search: "milk", Category: "Dairy"})
	assert.Equal(t, "Dairy", f["category"])
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 3)
}

func TestCustomerRefFilter(t *testing.T) {
	id := primitive.NewObjectID()

	f, ok := customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeObjectID, ID: id})
	require.True(t, ok)
	assert.Equal(t, bson.M{"customer": id}, f)

	f, ok = customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeIDString, ID: id})
	require.True(t, ok)
	assert.Equal(t, bson.M{"customer": id.Hex()}, f)

	f, ok = customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeName, Name: "Asha"})
	require.True(t, ok)
	assert.Equal(t, bson.M{"customer": "Asha"}, f)

	f, ok = customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeNested, ID: id})
	require.True(t, ok)
	assert.Len(t, f["$or"], 4)

	_, ok = customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeName})
	assert.False(t, ok)
	_, ok = customerRefFilter(domain.CustomerRefQuery{Shape: domain.RefShapeNone})
	assert.False(t, ok)
}

func TestContactFilter(t *testing.T) {
	_, ok := contactFilter("", "")
	assert.False(t, ok)

	f, ok := contactFilter("111", "")
	require.True(t, ok)
	assert.Equal(t, bson.M{"$or": bson.A{bson.M{"phone": "111"}}}, f)

	f, ok = contactFilter("111", "asha")
	require.True(t, ok)
	assert.Len(t, f["$or"], 3)
}

func TestOrderUpdate(t *testing.T) {
	packed := domain.OrderStatusPacked
	u := orderUpdate(domain.OrderPatch{Status: &packed})
	assert.Equal(t, bson.M{"$set": bson.M{"status": packed}}, u)

	u = orderUpdate(domain.OrderPatch{SetLocation: true})
	assert.Equal(t, bson.M{"$unset": bson.M{"location": ""}}, u)
}

func TestProductUpdateKeepsNulls(t *testing.T) {
	now := time.Now()
	u := productUpdate(domain.ProductPatch{"imageUrl": nil, "price": 12.5}, now)
	set := u["$set"].(bson.M)
	v, present := set["imageUrl"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Equal(t, 12.5, set["price"])
	assert.Equal(t, now, set["updatedAt"])
}

func TestSearchTermAggregationShape(t *testing.T) {
	pipeline := searchTermAggregation(time.Now(), 50)
	require.Len(t, pipeline, 5)
	assert.Equal(t, bson.M{"$limit": 50}, pipeline[4])
}
