package mongodb

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

// containsFold matches s anywhere in the field, ignoring case. User input is escaped.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// equalFold matches the whole field, ignoring case.
func equalFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func productListFilter(f domain.ProductFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		re := containsFold(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"category": re},
			bson.M{"description": re},
		}
	}
	return filter
}

// productUpdate turns a validated patch into an update document. Nil values clear
// the field.
func productUpdate(patch domain.ProductPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for field, value := range patch {
		set[field] = value
	}
	return bson.M{"$set": set}
}

// customerRefFilter selects orders whose customer field was stored in q's shape.
func customerRefFilter(q domain.CustomerRefQuery) (bson.M, bool) {
	switch q.Shape {
	case domain.RefShapeObjectID:
		return bson.M{"customer": q.ID}, !q.ID.IsZero()
	case domain.RefShapeIDString:
		return bson.M{"customer": q.ID.Hex()}, !q.ID.IsZero()
	case domain.RefShapeName:
		return bson.M{"customer": q.Name}, q.Name != ""
	case domain.RefShapeNested:
		return bson.M{"$or": bson.A{
			bson.M{"customer._id": q.ID},
			bson.M{"customer._id": q.ID.Hex()},
			bson.M{"customer.id": q.ID},
			bson.M{"customer.id": q.ID.Hex()},
		}}, !q.ID.IsZero()
	default:
		return nil, false
	}
}

// contactFilter matches orders by exact phone or by a case-insensitive fragment of
// the customer name, in either the current or the legacy string field.
func contactFilter(phone, name string) (bson.M, bool) {
	var or bson.A
	if phone != "" {
		or = append(or, bson.M{"phone": phone})
	}
	if name != "" {
		re := containsFold(name)
		or = append(or, bson.M{"customer_name": re}, bson.M{"customer": re})
	}
	if len(or) == 0 {
		return nil, false
	}
	return bson.M{"$or": or}, true
}

func orderUpdate(patch domain.OrderPatch) bson.M {
	set := bson.M{}
	update := bson.M{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.MapLink != nil {
		set["mapLink"] = *patch.MapLink
	}
	if patch.SetLocation {
		if patch.Location == nil {
			update["$unset"] = bson.M{"location": ""}
		} else {
			set["location"] = patch.Location
		}
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}

func searchTermFilter(term string) bson.M {
	if term == "" {
		return bson.M{}
	}
	return bson.M{"searchTerm": containsFold(term)}
}

// searcherIdentity mirrors OutOfStockSearch.Identity: customer id, then session,
// then client address. $concat and $toString yield null for missing fields.
var searcherIdentity = bson.M{"$ifNull": bson.A{
	bson.M{"$toString": "$username"},
	bson.M{"$ifNull": bson.A{
		bson.M{"$concat": bson.A{"session:", "$sessionId"}},
		bson.M{"$ifNull": bson.A{
			bson.M{"$concat": bson.A{"ip:", "$ipAddress"}},
			"",
		}},
	}},
}}

func searchTermAggregation(since time.Time, limit int) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"searchedAt": bson.M{"$gte": since}}},
		bson.M{"$group": bson.M{
			"_id":          "$searchTerm",
			"count":        bson.M{"$sum": 1},
			"lastSearched": bson.M{"$max": "$searchedAt"},
			"identities":   bson.M{"$addToSet": searcherIdentity},
		}},
		bson.M{"$project": bson.M{
			"_id":             0,
			"searchTerm":      "$_id",
			"count":           1,
			"lastSearched":    1,
			"uniqueUserCount": bson.M{"$size": "$identities"},
		}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "lastSearched", Value: -1}}}},
		bson.M{"$limit": limit},
	}
}
