package domain

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// RefShape records how the customer field of an order was stored.
type RefShape int

const (
	RefShapeNone     RefShape = iota // absent or null
	RefShapeObjectID                 // ObjectId, the only shape new writes produce
	RefShapeIDString                 // 24-hex string id (legacy)
	RefShapeName                     // raw customer name (legacy)
	RefShapeNested                   // embedded document with _id or id (legacy)
)

func (s RefShape) String() string {
	switch s {
	case RefShapeObjectID:
		return "objectid"
	case RefShapeIDString:
		return "id-string"
	case RefShapeName:
		return "name"
	case RefShapeNested:
		return "nested"
	default:
		return "none"
	}
}

// CustomerRef is the customer an order belongs to: resolved to a customer id, or an
// unresolved name. Reads accept every historical storage shape; writes store an
// ObjectId or null.
type CustomerRef struct {
	ID    primitive.ObjectID
	Name  string
	Shape RefShape
}

// ResolvedCustomer references a registered customer by id.
func ResolvedCustomer(id primitive.ObjectID) CustomerRef {
	return CustomerRef{ID: id, Shape: RefShapeObjectID}
}

// UnresolvedCustomer carries only a name; it is stored as null.
func UnresolvedCustomer(name string) CustomerRef {
	return CustomerRef{Name: strings.TrimSpace(name)}
}

func (r CustomerRef) IsResolved() bool {
	return !r.ID.IsZero()
}

// Normalized returns the form new writes persist.
func (r CustomerRef) Normalized() CustomerRef {
	if r.IsResolved() {
		return ResolvedCustomer(r.ID)
	}
	return CustomerRef{}
}

// CustomerRefQuery selects orders whose customer field was stored in one shape.
type CustomerRefQuery struct {
	Shape RefShape
	ID    primitive.ObjectID
	Name  string
}

// Matches reports whether r was stored in q's shape with q's value.
func (r CustomerRef) Matches(q CustomerRefQuery) bool {
	if r.Shape != q.Shape {
		return false
	}
	switch q.Shape {
	case RefShapeName:
		return q.Name != "" && r.Name == q.Name
	case RefShapeObjectID, RefShapeIDString, RefShapeNested:
		return !q.ID.IsZero() && r.ID == q.ID
	default:
		return false
	}
}

func (r *CustomerRef) setString(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if id, err := primitive.ObjectIDFromHex(s); err == nil {
		r.ID = id
		r.Shape = RefShapeIDString
		return
	}
	r.Name = s
	r.Shape = RefShapeName
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (r CustomerRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.IsResolved() {
		return bsontype.Null, nil, nil
	}
	return bsontype.ObjectID, bsoncore.AppendObjectID(nil, r.ID), nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Unknown shapes decode as
// an absent customer instead of failing the whole order.
func (r *CustomerRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*r = CustomerRef{}
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.ObjectID:
		r.ID = rv.ObjectID()
		r.Shape = RefShapeObjectID
	case bsontype.String:
		r.setString(rv.StringValue())
	case bsontype.EmbeddedDocument:
		doc, ok := rv.DocumentOK()
		if !ok {
			return nil
		}
		r.Shape = RefShapeNested
		for _, key := range []string{"_id", "id"} {
			v, err := doc.LookupErr(key)
			if err != nil {
				continue
			}
			if id, ok := rawValueID(v); ok {
				r.ID = id
				break
			}
		}
		if v, err := doc.LookupErr("name"); err == nil {
			r.Name, _ = v.StringValueOK()
		}
	}
	return nil
}

func rawValueID(v bson.RawValue) (primitive.ObjectID, bool) {
	if id, ok := v.ObjectIDOK(); ok {
		return id, true
	}
	if s, ok := v.StringValueOK(); ok {
		id, err := primitive.ObjectIDFromHex(s)
		return id, err == nil
	}
	return primitive.NilObjectID, false
}

// MarshalJSON renders the id hex, the unresolved name, or null.
func (r CustomerRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.IsResolved():
		return json.Marshal(r.ID.Hex())
	case r.Name != "":
		return json.Marshal(r.Name)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string (id or name), an object with _id/id/name, or null.
func (r *CustomerRef) UnmarshalJSON(data []byte) error {
	*r = CustomerRef{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.setString(s)
		return nil
	}

	var obj struct {
		UnderscoreID string `json:"_id"`
		ID           string `json:"id"`
		Name         string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Shape = RefShapeNested
	r.Name = strings.TrimSpace(obj.Name)
	for _, candidate := range []string{obj.UnderscoreID, obj.ID} {
		if id, err := primitive.ObjectIDFromHex(candidate); err == nil {
			r.ID = id
			break
		}
	}
	return nil
}
