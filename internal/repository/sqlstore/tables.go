package sqlstore

import (
	"fmt"
	"time"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

// table describes how one record kind maps to SQL / Décrit le mapping SQL d'un type d'enregistrement
type table struct {
	kind    domain.Kind
	name    string
	columns []string // written on insert, after id and user_id
	mutable []string // overwritten when the id already exists
	values  func(domain.Record) ([]any, error)
}

// newTable binds a typed value extractor to a record kind.
func newTable[T domain.Record](kind domain.Kind, name string, columns, mutable []string, values func(T) []any) table {
	return table{
		kind:    kind,
		name:    name,
		columns: columns,
		mutable: mutable,
		values: func(rec domain.Record) ([]any, error) {
			v, ok := rec.(T)
			if !ok {
				return nil, fmt.Errorf("%s: unexpected record type %T", kind, rec)
			}
			return values(v), nil
		},
	}
}

// utc normalizes optional dates before they are written.
func utc(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

var tables = []table{
	newTable(domain.KindClients, "clients",
		[]string{"name", "surname", "phone", "email", "address", "notes"},
		[]string{"name", "surname", "phone", "email", "address", "notes"},
		func(c domain.Client) []any {
			return []any{c.Name, c.Surname, c.Phone, c.Email, c.Address, c.Notes}
		}),
	newTable(domain.KindSales, "sales",
		[]string{"client_id", "amount", "amount_paid", "payment_type", "products", "notes", "sale_date"},
		[]string{"amount", "amount_paid", "payment_type", "products", "notes"},
		func(s domain.Sale) []any {
			return []any{s.ClientID, s.Amount, s.AmountPaid, s.PaymentType, s.Products, s.Notes, utc(s.SaleDate)}
		}),
	newTable(domain.KindPayments, "payments",
		[]string{"sale_id", "amount", "notes", "payment_date"},
		[]string{"amount", "notes"},
		func(p domain.Payment) []any {
			return []any{p.SaleID, p.Amount, p.Notes, utc(p.PaymentDate)}
		}),
	newTable(domain.KindProducts, "products",
		[]string{"name", "price", "description"},
		[]string{"name", "price", "description"},
		func(p domain.Product) []any {
			return []any{p.Name, p.Price, p.Description}
		}),
	newTable(domain.KindTemplates, "templates",
		[]string{"name", "content"},
		[]string{"name", "content"},
		func(t domain.Template) []any {
			return []any{t.Name, t.Content}
		}),
	newTable(domain.KindGoals, "goals",
		[]string{"amount", "period", "start_date", "end_date"},
		[]string{"amount", "period"},
		func(g domain.Goal) []any {
			return []any{g.Amount, g.Period, utc(g.StartDate), utc(g.EndDate)}
		}),
	newTable(domain.KindExpenses, "expenses",
		[]string{"amount", "category", "description", "expense_date"},
		[]string{"amount", "category"},
		func(e domain.Expense) []any {
			return []any{e.Amount, e.Category, e.Description, utc(e.ExpenseDate)}
		}),
	newTable(domain.KindReminders, "reminders",
		[]string{"client_id", "title", "description", "reminder_date", "resolved"},
		[]string{"title", "description", "resolved"},
		func(r domain.Reminder) []any {
			return []any{r.ClientID, r.Title, r.Description, utc(r.ReminderDate), r.Resolved}
		}),
}
