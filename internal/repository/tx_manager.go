package repository

import "context"

// TxRepos is the set of repositories visible inside one transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Payments() PaymentReceiptRepository
	Shipments() ShipmentRepository
	Products() ProductRepository
	Settings() SettingRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
