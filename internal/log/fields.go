package log

// Имена полей структурированных логов.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldWalletID   = "wallet_id"
	FieldGoalID     = "goal_id"
	FieldCount      = "count"
)

// Компоненты приложения.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentGoals   = "goals"
	ComponentAMQP    = "amqp"
	ComponentJobs    = "jobs"
	ComponentCache   = "cache"
	ComponentMigrate = "migrate"
)

// Операции.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpExport   = "export"
	OpRollover = "rollover"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// Fields собирает пары ключ-значение для slog.
type Fields map[string]any

func NewFields() Fields {
	return make(Fields)
}

func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

func (f Fields) WithWallet(walletID int) Fields {
	f[FieldWalletID] = walletID
	return f
}

func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f Fields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
