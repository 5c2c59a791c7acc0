package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultName is substituted when a recipient has no display name.
const DefaultName = "Applicant"

// Recipient is the projection of an applicant that the mailer needs.
type Recipient struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	SRMEmail string             `bson:"srmEmail,omitempty"`
	RegNo    string             `bson:"regNo"`
}

// Address returns the primary email, or the SRM email when the primary is
// blank. An empty result means the recipient cannot be mailed.
func (r Recipient) Address() string {
	if addr := strings.TrimSpace(r.Email); addr != "" {
		return addr
	}
	return strings.TrimSpace(r.SRMEmail)
}

// TemplateVars returns the placeholder values for the email template.
func (r Recipient) TemplateVars() map[string]string {
	name := r.Name
	if name == "" {
		name = DefaultName
	}
	return map[string]string{
		"name":  name,
		"regNo": r.RegNo,
	}
}
