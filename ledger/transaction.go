package ledger

import (
	"github.com/l3montree-dev/partchain/dtos"
)

type manufacturerOrgPayload interface {
	ManufacturerOrg() string
}

type parentOrgPayload interface {
	ParentOrg() string
}

type targetOrgPayload interface {
	TargetOrgID() string
}

// endorsingOrg resolves the organization whose peers endorse a submitted transaction.
// An empty organization means the call cannot be endorsed.
func endorsingOrg(kind dtos.TransactionKind, caller string, payload any) string {
	switch kind.Endorsement() {
	case dtos.EndorseCaller:
		return caller
	case dtos.EndorsePayloadManufacturer:
		if p, ok := payload.(manufacturerOrgPayload); ok {
			return p.ManufacturerOrg()
		}
	case dtos.EndorsePayloadParentOrg:
		if p, ok := payload.(parentOrgPayload); ok {
			return p.ParentOrg()
		}
	case dtos.EndorsePayloadTargetOrg:
		if p, ok := payload.(targetOrgPayload); ok {
			return p.TargetOrgID()
		}
	}
	return ""
}
