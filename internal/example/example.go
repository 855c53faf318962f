// Package example holds the sample domain used to exercise fixture loading
// and schema generation: a small shop with users, orders and products.
package example

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

type Product struct {
	ID    string  `json:"id" yaml:"id" toml:"id"`
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Price float64 `json:"price" yaml:"price" toml:"price"`
	Cost  float64 `json:"cost" yaml:"cost" toml:"cost"`
}

// Validate rejects products without an id.
func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New("product: id is required")
	}
	return nil
}

type Order struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Date      EpochTime `json:"date" yaml:"date" toml:"date"`
	Products  []Product `json:"products" yaml:"products" toml:"products"`
	TotalPaid float64   `json:"totalPaid" yaml:"totalPaid" toml:"totalPaid"`
}

// Validate rejects orders without an id or with invalid products.
func (o *Order) Validate() error {
	if o.ID == "" {
		return errors.New("order: id is required")
	}
	for i := range o.Products {
		if err := o.Products[i].Validate(); err != nil {
			return fmt.Errorf("order %s: products[%d]: %w", o.ID, i, err)
		}
	}
	return nil
}

type User struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Status      Status  `json:"status" yaml:"status" toml:"status"`
	MemberSince int     `json:"memberSince" yaml:"memberSince" toml:"memberSince"`
	Orders      []Order `json:"orders" yaml:"orders" toml:"orders"`
}

// Validate rejects users without a name or with invalid orders.
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("user: name is required")
	}
	for i := range u.Orders {
		if err := u.Orders[i].Validate(); err != nil {
			return fmt.Errorf("user %s: orders[%d]: %w", u.Name, i, err)
		}
	}
	return nil
}

// Status is the account state of a User.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBlocked  Status = "BLOCKED"
)

// Statuses lists every valid Status in declaration order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusBlocked}
}

// UnmarshalText accepts only the declared constants. JSON strings, YAML
// scalars and TOML strings all go through here.
func (s *Status) UnmarshalText(text []byte) error {
	for _, known := range Statuses() {
		if string(text) == string(known) {
			*s = known
			return nil
		}
	}
	names := make([]string, 0, len(Statuses()))
	for _, known := range Statuses() {
		names = append(names, string(known))
	}
	return fmt.Errorf("unknown status %q (expected one of %s)", text, strings.Join(names, ", "))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// JSONSchema describes Status as a closed set of strings.
func (Status) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(Statuses()))
	for _, s := range Statuses() {
		enum = append(enum, string(s))
	}
	return &jsonschema.Schema{
		Type: "string",
		Enum: enum,
	}
}
