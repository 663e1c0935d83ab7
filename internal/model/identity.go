package model

// IdentityKind is the userIdentity.type of an audit record.
type IdentityKind string

const (
	KindIAMUser        IdentityKind = "IAMUser"
	KindAssumedRole    IdentityKind = "AssumedRole"
	KindRoot           IdentityKind = "Root"
	KindFederatedUser  IdentityKind = "FederatedUser"
	KindAWSAccount     IdentityKind = "AWSAccount"
	KindAWSService     IdentityKind = "AWSService"
	KindIdentityCenter IdentityKind = "IdentityCenterUser"
	KindUnknown        IdentityKind = "Unknown"
)

// InScope reports whether activity of this kind is attributed to an actor.
func (k IdentityKind) InScope() bool {
	return k == KindIAMUser || k == KindAssumedRole
}

// Identity is a resolved principal.
type Identity struct {
	Kind    IdentityKind
	ActorID string
}
