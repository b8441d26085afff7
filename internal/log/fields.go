package log

// Standard field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldEntryID   = "entry_id"
	FieldEntryKind = "entry_kind"
	FieldAmount    = "amount_pence"
	FieldWeekStart = "week_start"
	FieldEmail     = "email"
	FieldQueue     = "queue"
	FieldAttempt   = "attempt"
	FieldCount     = "count"
	FieldStatus    = "status"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldRemoteIP  = "remote_ip"
)

// Component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentMailer    = "mailer"
	ComponentSheets    = "sheets"
	ComponentDashboard = "dashboard"
)

// Operation names
const (
	OpRegister      = "register"
	OpPasswordReset = "password_reset"
	OpSendResetMail = "send_reset_mail"
	OpExportEntry   = "export_entry"
)
