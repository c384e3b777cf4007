package models

import "fmt"

// MetadataKind tags which variant of Metadata is populated.
type MetadataKind string

const (
	MetadataStatus       MetadataKind = "status"
	MetadataValuation    MetadataKind = "valuation"
	MetadataAssignment   MetadataKind = "assignment"
	MetadataUnstructured MetadataKind = "unstructured"
)

// StatusMetadata records a state transition, e.g. a visit marked "completed".
type StatusMetadata struct {
	Status string `bson:"status" json:"status"`
}

// ValuationMetadata records the figure captured during a valuation.
type ValuationMetadata struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// AssignmentMetadata links a client to a property.
type AssignmentMetadata struct {
	ClientID   string `bson:"client_id" json:"client_id"`
	PropertyID string `bson:"property_id" json:"property_id"`
}

// Metadata is a tagged union of the payload shapes attached to activities.
// Exactly one variant matching Kind is set.
type Metadata struct {
	Kind         MetadataKind           `bson:"kind" json:"kind"`
	Status       *StatusMetadata        `bson:"status,omitempty" json:"status,omitempty"`
	Valuation    *ValuationMetadata     `bson:"valuation,omitempty" json:"valuation,omitempty"`
	Assignment   *AssignmentMetadata    `bson:"assignment,omitempty" json:"assignment,omitempty"`
	Unstructured map[string]interface{} `bson:"unstructured,omitempty" json:"unstructured,omitempty"`
}

func NewStatusMetadata(status string) *Metadata {
	return &Metadata{Kind: MetadataStatus, Status: &StatusMetadata{Status: status}}
}

func NewValuationMetadata(amount float64, currency string) *Metadata {
	return &Metadata{Kind: MetadataValuation, Valuation: &ValuationMetadata{Amount: amount, Currency: currency}}
}

func NewAssignmentMetadata(clientID, propertyID string) *Metadata {
	return &Metadata{Kind: MetadataAssignment, Assignment: &AssignmentMetadata{ClientID: clientID, PropertyID: propertyID}}
}

func NewUnstructuredMetadata(fields map[string]interface{}) *Metadata {
	return &Metadata{Kind: MetadataUnstructured, Unstructured: fields}
}

// Validate checks that the populated variant agrees with Kind.
func (m *Metadata) Validate() error {
	if m == nil {
		return nil
	}
	set := 0
	for _, present := range []bool{m.Status != nil, m.Valuation != nil, m.Assignment != nil, m.Unstructured != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("metadata must carry exactly one variant, got %d", set)
	}

	switch m.Kind {
	case MetadataStatus:
		if m.Status == nil {
			return fmt.Errorf("metadata kind %s without status payload", m.Kind)
		}
	case MetadataValuation:
		if m.Valuation == nil {
			return fmt.Errorf("metadata kind %s without valuation payload", m.Kind)
		}
	case MetadataAssignment:
		if m.Assignment == nil {
			return fmt.Errorf("metadata kind %s without assignment payload", m.Kind)
		}
	case MetadataUnstructured:
		if m.Unstructured == nil {
			return fmt.Errorf("metadata kind %s without fields", m.Kind)
		}
	default:
		return fmt.Errorf("unknown metadata kind %q", string(m.Kind))
	}
	return nil
}

// ParseMetadata interprets a loose key/value payload for the given activity type.
// Payloads that match a known shape become that variant; anything else is kept
// as unstructured.
func ParseMetadata(t ActivityType, raw map[string]interface{}) *Metadata {
	if len(raw) == 0 {
		return nil
	}

	if status, ok := raw["status"].(string); ok && len(raw) == 1 {
		return NewStatusMetadata(status)
	}

	switch t {
	case ActivityValuation:
		if amount, ok := raw["amount"].(float64); ok {
			currency, _ := raw["currency"].(string)
			if len(raw) == 1 || (len(raw) == 2 && currency != "") {
				return NewValuationMetadata(amount, currency)
			}
		}
	case ActivityAssignment:
		clientID, okClient := raw["client_id"].(string)
		propertyID, okProperty := raw["property_id"].(string)
		if okClient && okProperty && len(raw) == 2 {
			return NewAssignmentMetadata(clientID, propertyID)
		}
	}

	return NewUnstructuredMetadata(raw)
}
