// Package audit records supplier actions in the data API's audit log.
package audit

import "time"

// Type names an audited action.
type Type string

const (
	TypeSendClarificationQuestion Type = "send_clarification_question"
	TypeSendApplicationQuestion   Type = "send_application_question"
	TypeRegisterFrameworkInterest Type = "register_framework_interest"
	TypeAnswerDeclaration         Type = "answer_declaration"
	TypeUploadSignedAgreement     Type = "upload_signed_agreement"
	TypeInviteUser                Type = "invite_user"
)

// Event is emitted from handlers to capture key actions.
type Event struct {
	Type       Type
	User       string
	ObjectType string
	ObjectID   any
	Data       map[string]any
	Timestamp  time.Time
}
