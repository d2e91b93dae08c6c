package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldExpenseID = "expense_id"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAdd       = "add"
	OpLoad      = "load"
	OpSave      = "save"
	OpSummarize = "summarize"
	OpArchive   = "archive"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
