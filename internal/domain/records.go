package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Record is implemented by every synchronized entity / Implémenté par chaque entité synchronisée
type Record interface {
	RecordID() string
}

// Client is a customer of the seller.
type Client struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// Sale is a sale to a client. ClientID may point to a client that no longer exists.
type Sale struct {
	ID          string      `json:"id"`
	ClientID    *string     `json:"clientId"`
	Amount      float64     `json:"amount"`
	AmountPaid  float64     `json:"amountPaid"`
	PaymentType *string     `json:"paymentType"`
	Products    ProductList `json:"products"`
	Notes       *string     `json:"notes"`
	SaleDate    *time.Time  `json:"saleDate"`

	// Filled on pull from the owner's clients; absent when the reference dangles.
	ClientName    *string `json:"clientName,omitempty"`
	ClientSurname *string `json:"clientSurname,omitempty"`
}

// Payment is an instalment paid against a sale.
type Payment struct {
	ID          string     `json:"id"`
	SaleID      string     `json:"saleId"`
	Amount      float64    `json:"amount"`
	Notes       *string    `json:"notes"`
	PaymentDate *time.Time `json:"paymentDate"`
}

// Product is an item of the seller's catalogue.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// Template is a reusable message text.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Goal is a sales target over a period (objectif).
type Goal struct {
	ID        string     `json:"id"`
	Amount    float64    `json:"amount"`
	Period    string     `json:"period"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// Expense is money spent by the seller.
type Expense struct {
	ID          string     `json:"id"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	ExpenseDate *time.Time `json:"expenseDate"`
}

// Reminder is a follow-up about a client.
type Reminder struct {
	ID           string     `json:"id"`
	ClientID     *string    `json:"clientId"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	ReminderDate *time.Time `json:"reminderDate"`
	Resolved     bool       `json:"resolved"`
}

func (c Client) RecordID() string   { return c.ID }
func (s Sale) RecordID() string     { return s.ID }
func (p Payment) RecordID() string  { return p.ID }
func (p Product) RecordID() string  { return p.ID }
func (t Template) RecordID() string { return t.ID }
func (g Goal) RecordID() string     { return g.ID }
func (e Expense) RecordID() string  { return e.ID }
func (r Reminder) RecordID() string { return r.ID }

// ProductList is the product lines of a sale, kept as raw JSON elements so that
// whatever the device sent is returned byte-for-byte (modulo whitespace).
type ProductList []json.RawMessage

// Value stores the list as JSON text / Stocke la liste en texte JSON
func (p ProductList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]json.RawMessage(p))
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}
	return string(b), nil
}

// Scan parses stored JSON text; NULL and "" yield an empty list.
func (p *ProductList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = ProductList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan products: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*p = ProductList{}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode products: %w", err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	*p = items
	return nil
}

// MarshalJSON never emits null / N'émet jamais null
func (p ProductList) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]json.RawMessage(p))
}

// UnmarshalJSON accepts an array or null.
func (p *ProductList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("products must be a JSON array")
	}
	*p = items
	return nil
}
