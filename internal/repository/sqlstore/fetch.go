package sqlstore

import (
	"context"
	"fmt"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

// scanner is satisfied by *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// fetch runs query and scans every row; it never returns a nil slice.
func fetch[T any](ctx context.Context, s *RecordStore, name, query string, userID string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, s.dialect.TranslateError(err))
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, s.dialect.TranslateError(err))
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, s.dialect.TranslateError(err))
	}
	return out, nil
}

// FetchAll reads every record owned by userID, outside any transaction.
// Lit tous les enregistrements de l'utilisateur.
func (s *RecordStore) FetchAll(ctx context.Context, userID string) (*domain.Dataset, error) {
	var (
		d   domain.Dataset
		err error
	)

	if d.Clients, err = fetch(ctx, s, "clients",
		`SELECT id, name, surname, phone, email, address, notes
		 FROM clients WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (c domain.Client, err error) {
			err = r.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Email, &c.Address, &c.Notes)
			return c, err
		}); err != nil {
		return nil, err
	}

	// Sales keep their client reference even when the client is gone;
	// clientName and clientSurname are only set when it still exists.
	if d.Sales, err = fetch(ctx, s, "sales",
		`SELECT s.id, s.client_id, s.amount, s.amount_paid, s.payment_type, s.products, s.notes, s.sale_date,
		        c.name, c.surname
		 FROM sales s
		 LEFT JOIN clients c ON c.id = s.client_id AND c.user_id = s.user_id
		 WHERE s.user_id = ? ORDER BY s.created_at, s.id`, userID,
		func(r scanner) (v domain.Sale, err error) {
			err = r.Scan(&v.ID, &v.ClientID, &v.Amount, &v.AmountPaid, &v.PaymentType, &v.Products,
				&v.Notes, &v.SaleDate, &v.ClientName, &v.ClientSurname)
			if v.Products == nil {
				v.Products = domain.ProductList{}
			}
			return v, err
		}); err != nil {
		return nil, err
	}

	if d.Payments, err = fetch(ctx, s, "payments",
		`SELECT id, sale_id, amount, notes, payment_date
		 FROM payments WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (p domain.Payment, err error) {
			err = r.Scan(&p.ID, &p.SaleID, &p.Amount, &p.Notes, &p.PaymentDate)
			return p, err
		}); err != nil {
		return nil, err
	}

	if d.Products, err = fetch(ctx, s, "products",
		`SELECT id, name, price, description
		 FROM products WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (p domain.Product, err error) {
			err = r.Scan(&p.ID, &p.Name, &p.Price, &p.Description)
			return p, err
		}); err != nil {
		return nil, err
	}

	if d.Templates, err = fetch(ctx, s, "templates",
		`SELECT id, name, content
		 FROM templates WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (t domain.Template, err error) {
			err = r.Scan(&t.ID, &t.Name, &t.Content)
			return t, err
		}); err != nil {
		return nil, err
	}

	if d.Goals, err = fetch(ctx, s, "goals",
		`SELECT id, amount, period, start_date, end_date
		 FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (g domain.Goal, err error) {
			err = r.Scan(&g.ID, &g.Amount, &g.Period, &g.StartDate, &g.EndDate)
			return g, err
		}); err != nil {
		return nil, err
	}

	if d.Expenses, err = fetch(ctx, s, "expenses",
		`SELECT id, amount, category, description, expense_date
		 FROM expenses WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (e domain.Expense, err error) {
			err = r.Scan(&e.ID, &e.Amount, &e.Category, &e.Description, &e.ExpenseDate)
			return e, err
		}); err != nil {
		return nil, err
	}

	if d.Reminders, err = fetch(ctx, s, "reminders",
		`SELECT id, client_id, title, description, reminder_date, resolved
		 FROM reminders WHERE user_id = ? ORDER BY created_at, id`, userID,
		func(r scanner) (m domain.Reminder, err error) {
			err = r.Scan(&m.ID, &m.ClientID, &m.Title, &m.Description, &m.ReminderDate, &m.Resolved)
			return m, err
		}); err != nil {
		return nil, err
	}

	return &d, nil
}
