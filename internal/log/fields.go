package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldCategoryID  = "category_id"
	FieldTxID        = "transaction_id"
	FieldTxTitle     = "transaction_title"
	FieldTxType      = "transaction_type"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldDBPath      = "db_path"
)

// Components identify the subsystem emitting a record.
const (
	ComponentApp       = "app"
	ComponentStorage   = "storage"
	ComponentBootstrap = "bootstrap"
	ComponentSeeder    = "seeder"
	ComponentAuth      = "auth"
)

// Operations name the repository action being logged.
const (
	OpCreate = "create"
	OpRead   = "read"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
	OpStats  = "stats"
	OpSeed   = "seed"
	OpMigrate = "migrate"
)
