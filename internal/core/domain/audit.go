package domain

import "time"

// AuditAction enumerates the privileged mutations the audit trail records.
type AuditAction string

const (
	AuditBan            AuditAction = "BAN"
	AuditUnban          AuditAction = "UNBAN"
	AuditPromote        AuditAction = "PROMOTE"
	AuditDemote         AuditAction = "DEMOTE"
	AuditCreate         AuditAction = "CREATE"
	AuditDelete         AuditAction = "DELETE"
	AuditChangePassword AuditAction = "CHANGE_PASSWORD"
)

// AuditRecord is an immutable entry in the append-only audit trail: who did
// what to whom, when. Written once per successful privileged mutation,
// never updated or deleted.
type AuditRecord struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Actor     string      `json:"actor"`
	Target    string      `json:"target"`
	Timestamp time.Time   `json:"timestamp"`
}
