package bank

import (
	"encoding/json"
	"strings"

	"apiviews/internal/jsonutil"
)

// Flag is a boolean-like capability marker (IMPS, NEFT, RTGS, UPI).
// The upstream API is inconsistent about the encoding; see jsonutil.Truthy.
type Flag bool

// UnmarshalJSON accepts booleans, strings and numbers.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(jsonutil.Truthy(v))
	return nil
}

func (f Flag) String() string {
	if f {
		return "Yes"
	}
	return "No"
}

// Branch is a single bank branch record.
type Branch struct {
	Bank     string
	Branch   string
	Address  string
	City     string
	District string
	State    string
	IFSC     string
	MICR     string
	Contact  string
	IMPS     Flag
	NEFT     Flag
	RTGS     Flag
	UPI      Flag
}

// UnmarshalJSON decodes the upper-case provider keys. MICR and CONTACT are
// sometimes numeric, so every text field goes through jsonutil.ToString.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*b = Branch{
		Bank:     text(m, "BANK"),
		Branch:   text(m, "BRANCH"),
		Address:  text(m, "ADDRESS"),
		City:     text(m, "CITY"),
		District: text(m, "DISTRICT"),
		State:    text(m, "STATE"),
		IFSC:     text(m, "IFSC"),
		MICR:     text(m, "MICR"),
		Contact:  text(m, "CONTACT"),
		IMPS:     Flag(jsonutil.Truthy(m["IMPS"])),
		NEFT:     Flag(jsonutil.Truthy(m["NEFT"])),
		RTGS:     Flag(jsonutil.Truthy(m["RTGS"])),
		UPI:      Flag(jsonutil.Truthy(m["UPI"])),
	}
	return nil
}

// Field is one labelled row of the branch detail panel.
type Field struct {
	Label string
	Value string
}

// Fields returns the detail rows in display order.
func (b *Branch) Fields() []Field {
	return []Field{
		{"Bank", b.Bank},
		{"Branch", b.Branch},
		{"Address", b.Address},
		{"City", b.City},
		{"District", b.District},
		{"State", b.State},
		{"IFSC", b.IFSC},
		{"MICR", b.MICR},
		{"Contact", b.Contact},
		{"IMPS", b.IMPS.String()},
		{"NEFT", b.NEFT.String()},
		{"RTGS", b.RTGS.String()},
		{"UPI", b.UPI.String()},
	}
}

// Center is one entry of the center list for a (state, district, city).
// The API returns either bare names or objects; both decode here.
type Center struct {
	Name   string
	Bank   string
	Branch string
	IFSC   string
}

// UnmarshalJSON accepts a JSON string or an object with CENTRE_NAME.
func (c *Center) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Center{Name: name}
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*c = Center{
		Name:   text(m, "CENTRE_NAME"),
		Bank:   text(m, "BANK"),
		Branch: text(m, "BRANCH"),
		IFSC:   text(m, "IFSC"),
	}
	if c.Name == "" {
		c.Name = text(m, "CENTRE")
	}
	return nil
}

// Label is the list text for the center.
func (c Center) Label() string {
	if c.Bank != "" {
		return c.Bank + " - " + c.Branch
	}
	return c.Name
}

func text(m map[string]interface{}, key string) string {
	return strings.TrimSpace(jsonutil.ToString(m[key]))
}
