package domain

// Kind names one of the eight synchronized collections / Nom d'une des huit collections
type Kind string

const (
	KindClients   Kind = "clients"
	KindSales     Kind = "sales"
	KindPayments  Kind = "payments"
	KindProducts  Kind = "products"
	KindTemplates Kind = "templates"
	KindGoals     Kind = "goals"
	KindExpenses  Kind = "expenses"
	KindReminders Kind = "reminders"
)

// SyncOrder is the order in which a push is applied. Referenced kinds come
// before the kinds that reference them (clients before sales, sales before payments).
var SyncOrder = []Kind{
	KindClients,
	KindSales,
	KindPayments,
	KindProducts,
	KindTemplates,
	KindGoals,
	KindExpenses,
	KindReminders,
}

// Batch is one push from a device. Absent collections decode as nil and count as empty.
type Batch struct {
	Clients   []Client   `json:"clients"`
	Sales     []Sale     `json:"sales"`
	Payments  []Payment  `json:"payments"`
	Products  []Product  `json:"products"`
	Templates []Template `json:"templates"`
	Goals     []Goal     `json:"goals"`
	Expenses  []Expense  `json:"expenses"`
	Reminders []Reminder `json:"reminders"`
}

// Records returns the records of one collection in submission order.
func (b *Batch) Records(kind Kind) []Record {
	switch kind {
	case KindClients:
		return toRecords(b.Clients)
	case KindSales:
		return toRecords(b.Sales)
	case KindPayments:
		return toRecords(b.Payments)
	case KindProducts:
		return toRecords(b.Products)
	case KindTemplates:
		return toRecords(b.Templates)
	case KindGoals:
		return toRecords(b.Goals)
	case KindExpenses:
		return toRecords(b.Expenses)
	case KindReminders:
		return toRecords(b.Reminders)
	}
	return nil
}

// Size is the total number of records across all collections.
func (b *Batch) Size() int {
	n := 0
	for _, kind := range SyncOrder {
		n += len(b.Records(kind))
	}
	return n
}

func toRecords[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// SyncCounts maps every kind to the number of records submitted for it.
type SyncCounts map[Kind]int

// NewSyncCounts returns counts with all eight kinds at zero.
func NewSyncCounts() SyncCounts {
	c := make(SyncCounts, len(SyncOrder))
	for _, kind := range SyncOrder {
		c[kind] = 0
	}
	return c
}

// Dataset is everything a user owns, as returned by a pull.
type Dataset struct {
	Clients   []Client   `json:"clients"`
	Sales     []Sale     `json:"sales"`
	Payments  []Payment  `json:"payments"`
	Products  []Product  `json:"products"`
	Templates []Template `json:"templates"`
	Goals     []Goal     `json:"goals"`
	Expenses  []Expense  `json:"expenses"`
	Reminders []Reminder `json:"reminders"`
}

// Counts reports the size of each collection.
func (d *Dataset) Counts() SyncCounts {
	return SyncCounts{
		KindClients:   len(d.Clients),
		KindSales:     len(d.Sales),
		KindPayments:  len(d.Payments),
		KindProducts:  len(d.Products),
		KindTemplates: len(d.Templates),
		KindGoals:     len(d.Goals),
		KindExpenses:  len(d.Expenses),
		KindReminders: len(d.Reminders),
	}
}

// UpsertOutcome tells whether a merged record was new.
type UpsertOutcome int

const (
	Inserted UpsertOutcome = iota + 1
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	}
	return "unknown"
}
