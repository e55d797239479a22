package ledger

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
)

// Identity is the deployment of one organization: who we are and which peer we talk to.
type Identity struct {
	MspID            string   `json:"HLF_IDENTITY_MSP_ID" validate:"required"`
	ChaincodeID      string   `json:"HLF_NETWORK_CHAINCODE_ID" validate:"required"`
	CertPath         string   `json:"HLF_IDENTITY_CERT_PATH" validate:"required"`
	KeyPath          string   `json:"HLF_IDENTITY_KEY_PATH" validate:"required"`
	PeerEndpoint     string   `json:"HLF_PEER_ENDPOINT" validate:"required"`
	PeerTLSCertPath  string   `json:"HLF_PEER_TLS_CERT_PATH" validate:"required"`
	PeerHostOverride string   `json:"HLF_PEER_HOST_OVERRIDE"`
	Channels         []string `json:"HLF_CHANNELS"`
}

// ChannelNames returns the channels the organization participates in.
func (i Identity) ChannelNames(defaultChannel string) []string {
	channels := utils.CompactUnique(i.Channels)
	if len(channels) == 0 {
		return []string{defaultChannel}
	}
	return channels
}

// Identities maps the msp id of every hosted organization to its identity.
type Identities map[string]Identity

func LoadIdentities(path string) (Identities, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, shared.NewDeploymentError("could not read identities file %s: %s", path, err)
	}
	return ParseIdentities(path, content)
}

func ParseIdentities(path string, content []byte) (Identities, error) {
	var raw map[string]Identity
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, shared.NewDeploymentError("%s is not valid json: %s", path, err)
	}

	identities := make(Identities, len(raw))
	for key, identity := range raw {
		if err := shared.V.Struct(identity); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
				return nil, shared.NewDeploymentError("%s is missing property %s for mspID %s", path, validationErrors[0].Field(), key)
			}
			return nil, shared.NewDeploymentError("%s contains an invalid identity for mspID %s", path, key)
		}
		identities[identity.MspID] = identity
	}
	return identities, nil
}

func (i Identities) Get(mspID string) (Identity, error) {
	identity, ok := i[mspID]
	if !ok {
		return Identity{}, shared.NewDeploymentError("mspID %s not in identities file", mspID)
	}
	return identity, nil
}

// MspIDs returns the hosted organizations in a stable order.
func (i Identities) MspIDs() []string {
	ids := make([]string, 0, len(i))
	for id := range i {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
