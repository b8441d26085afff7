package amqp

import (
	"encoding/json"
	"time"
)

// ResetMailMessage asks the worker to deliver a password reset email.
// The raw token is only ever carried here and in the email itself.
type ResetMailMessage struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Timestamp time.Time `json:"timestamp"`
}

func NewResetMailMessage(email, token string) *ResetMailMessage {
	return &ResetMailMessage{Email: email, Token: token, Timestamp: time.Now()}
}

func (m *ResetMailMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ResetMailMessageFromJSON(data []byte) (*ResetMailMessage, error) {
	var msg ResetMailMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Export actions understood by the worker.
const (
	ExportUpsert = "upsert"
	ExportRemove = "remove"
)

// EntryExportMessage points the worker at an entry to mirror into the
// ledger backup. Only kind, ID and action travel on the wire, the worker
// fetches the entry from the store.
type EntryExportMessage struct {
	Kind      string    `json:"kind"`
	EntryID   string    `json:"entryId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryExportMessage(kind, entryID, action string) *EntryExportMessage {
	return &EntryExportMessage{Kind: kind, EntryID: entryID, Action: action, Timestamp: time.Now()}
}

func (m *EntryExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryExportMessageFromJSON(data []byte) (*EntryExportMessage, error) {
	var msg EntryExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
