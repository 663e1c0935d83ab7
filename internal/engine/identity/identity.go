// Package identity resolves the acting principal of an audit record.
package identity

import (
	"strings"

	"github.com/crimson-sun/trailshift/internal/model"
)

const assumedRoleMarker = "/assumed-role/"

// Resolve determines the actor behind a record. The returned Identity always
// carries the record's kind; ok is false when the kind is out of scope or no
// actor id can be derived. Missing structure is never an error.
func Resolve(rec model.Record) (id model.Identity, ok bool) {
	ui := rec.UserIdentity
	if ui == nil || ui.Type == "" {
		return model.Identity{Kind: model.KindUnknown}, false
	}

	id.Kind = model.IdentityKind(ui.Type)
	switch id.Kind {
	case model.KindIAMUser:
		id.ActorID = ui.UserName
	case model.KindAssumedRole:
		id.ActorID = assumedRoleActor(ui)
	default:
		return id, false
	}
	return id, id.ActorID != ""
}

// assumedRoleActor prefers the session name from the ARN and falls back to
// the session issuer's name.
func assumedRoleActor(ui *model.UserIdentity) string {
	if strings.Contains(ui.ARN, assumedRoleMarker) {
		return ui.ARN[strings.LastIndex(ui.ARN, "/")+1:]
	}
	if ui.SessionContext == nil || ui.SessionContext.SessionIssuer == nil {
		return ""
	}
	return ui.SessionContext.SessionIssuer.UserName
}
