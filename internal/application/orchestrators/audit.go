package orchestrators

import (
	"context"
	"time"

	"trust/internal/domain/audit"
)

// AuditStoreForOrchestrator defines the store interface needed by RecordAdminAction.
type AuditStoreForOrchestrator interface {
	Save(ctx context.Context, entry audit.Entry) error
}

// RecordAdminActionInput carries input for RecordAdminAction.
type RecordAdminActionInput struct {
	Action     string
	TargetID   string
	ActorID    string
	ActorEmail string
	ActorRole  string
	IPAddress  string
}

// RecordAdminActionDeps holds dependencies for RecordAdminAction.
type RecordAdminActionDeps struct {
	AuditStore AuditStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRecordAdminAction appends one entry to the admin activity log.
// PRE: the change it describes has already been committed
// POST: entry persisted, or an error the caller may log and ignore
func ExecuteRecordAdminAction(ctx context.Context, input RecordAdminActionInput, deps RecordAdminActionDeps) (audit.Entry, error) {
	e := audit.Entry{
		ID:         deps.GenerateID(),
		Timestamp:  deps.Now(),
		Action:     input.Action,
		ActorID:    input.ActorID,
		ActorEmail: input.ActorEmail,
		ActorRole:  input.ActorRole,
		TargetID:   input.TargetID,
		IPAddress:  input.IPAddress,
	}
	if err := e.Validate(); err != nil {
		return audit.Entry{}, err
	}
	if err := deps.AuditStore.Save(ctx, e); err != nil {
		return audit.Entry{}, err
	}
	return e, nil
}
