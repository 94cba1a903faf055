package domain

import "time"

// AuditAction names an authentication event worth keeping a trail of.
type AuditAction string

const (
	AuditLogin            AuditAction = "login"
	AuditRegister         AuditAction = "register"
	AuditImpersonateStart AuditAction = "impersonate_start"
	AuditImpersonateExit  AuditAction = "impersonate_exit"
	AuditGateDenied       AuditAction = "gate_denied"
)

// AuditEvent is one entry in the authentication audit trail. ActorID is the
// real identity behind the action: for impersonation events it is the admin,
// not the assumed photographer.
type AuditEvent struct {
	ActorID        string      `json:"actor_id"`
	Role           Role        `json:"role"`
	Action         AuditAction `json:"action"`
	PhotographerID string      `json:"photographer_id,omitempty"`
	Detail         string      `json:"detail,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}
