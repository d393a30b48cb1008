package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Date is a request-side timestamp that accepts full RFC 3339 values as well
// as plain calendar dates such as "2024-06-01".
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return d.typeError(string(b))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return d.typeError(fmt.Sprintf("string %q", s))
}

// typeError is returned unwrapped so encoding/json fills in the field path.
func (d *Date) typeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(*d)}
}

// Ptr returns the wrapped time as a pointer, or nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
