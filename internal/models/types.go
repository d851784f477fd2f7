package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a JSON-encoded list of strings stored in a single column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// PaymentMethod is one entry of the settings payment method list
type PaymentMethod struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`

	// ImageUploadIndex, when set, declares that this entry expects the
	// uploaded payment-method image at that position in the same request.
	ImageUploadIndex *int `json:"imageUploadIndex,omitempty"`
}

// PaymentMethodList is a JSON-encoded list of payment methods
type PaymentMethodList []PaymentMethod

// Value implements driver.Valuer
func (l PaymentMethodList) Value() (driver.Value, error) {
	if l == nil {
		l = PaymentMethodList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *PaymentMethodList) Scan(value interface{}) error {
	if value == nil {
		*l = PaymentMethodList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for PaymentMethodList")
	}
}
