package entity

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Supplier{}, &Forwarder{},
		&Order{}, &OrderItem{},
		&Invoice{}, &InvoiceDocument{},
	}
}
