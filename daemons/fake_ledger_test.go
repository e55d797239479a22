package daemons

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
)

type fakeEvent struct {
	name    string
	payload []byte
}

// fakeLedger keeps a single world state for all organizations and emits the
// chaincode events of asset requests and exchanges.
type fakeLedger struct {
	mu     sync.Mutex
	assets map[string]dtos.Asset
	pdc    map[string]map[string]json.RawMessage
	acl    map[string]dtos.OrgDetails
	denied map[string]bool
	events []fakeEvent
	calls  map[string]int
}

var _ shared.LedgerExecutor = (*fakeLedger)(nil)

func newFakeLedger(assets ...dtos.Asset) *fakeLedger {
	l := &fakeLedger{
		assets: map[string]dtos.Asset{},
		pdc:    map[string]map[string]json.RawMessage{},
		acl:    map[string]dtos.OrgDetails{},
		denied: map[string]bool{},
		calls:  map[string]int{},
	}
	for _, asset := range assets {
		l.assets[asset.SerialNumberCustomer] = asset
	}
	return l
}

func (l *fakeLedger) Organizations() []string {
	return []string{"Lion", "Tiger"}
}

func (l *fakeLedger) Execute(ctx context.Context, kind dtos.TransactionKind, orgID string, payloads []any, mode dtos.Mode) ([][]dtos.LedgerResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls[kind.Name()]++
	results := make([]dtos.LedgerResponse, 0, len(payloads))
	for _, payload := range payloads {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		results = append(results, l.handle(kind, orgID, raw))
	}
	return [][]dtos.LedgerResponse{results}, nil
}

func (l *fakeLedger) handle(kind dtos.TransactionKind, orgID string, raw json.RawMessage) dtos.LedgerResponse {
	switch kind {
	case dtos.TxGetPublicAssetDetail:
		var p dtos.SerialPayload
		_ = json.Unmarshal(raw, &p)
		if asset, ok := l.assets[p.SerialNumberCustomer]; ok {
			return answer(http.StatusOK, asset.WithoutChildren())
		}
	case dtos.TxGetAssetDetail:
		var p dtos.SerialPayload
		_ = json.Unmarshal(raw, &p)
		if asset, ok := l.assets[p.SerialNumberCustomer]; ok && asset.MspID == orgID {
			return answer(http.StatusOK, asset)
		}
	case dtos.TxGetAssetEventDetail:
		var p dtos.SerialPayload
		_ = json.Unmarshal(raw, &p)
		if data, ok := l.pdc[orgID][p.SerialNumberCustomer]; ok {
			return dtos.LedgerResponse{Status: http.StatusOK, Data: data}
		}
	case dtos.TxRequestAsset:
		var p dtos.RequestAssetPayload
		_ = json.Unmarshal(raw, &p)
		if l.denied[p.ManufacturerMSPID] {
			return dtos.LedgerResponse{Status: http.StatusForbidden, Message: "access denied"}
		}
		l.store(p.ManufacturerMSPID, "request-"+p.SerialNumberCustomer, dtos.EventRequest, raw)
		return answer(http.StatusOK, nil)
	case dtos.TxExchangeAssetInfo:
		var p dtos.ExchangeAssetPayload
		_ = json.Unmarshal(raw, &p)
		l.store(p.ParentMSP, "exchange-"+p.SerialNumberCustomer, dtos.EventExchange, json.RawMessage(p.AssetInfo))
		return answer(http.StatusOK, nil)
	case dtos.TxValidateAsset:
		return answer(http.StatusOK, dtos.ValidationResult{Result: true})
	case dtos.TxGetOrgDetails:
		var p dtos.OrgDetailsPayload
		_ = json.Unmarshal(raw, &p)
		if details, ok := l.acl[p.OrgMSP]; ok {
			return answer(http.StatusOK, details)
		}
	default:
		return dtos.LedgerResponse{Status: http.StatusInternalServerError, Message: dtos.InvalidFunctionCallErrorMessage}
	}
	return dtos.LedgerResponse{Status: http.StatusNotFound, Message: "not found"}
}

func (l *fakeLedger) store(org, key, event string, data json.RawMessage) {
	if l.pdc[org] == nil {
		l.pdc[org] = map[string]json.RawMessage{}
	}
	l.pdc[org][key] = data
	payload, _ := json.Marshal(dtos.LedgerEvent{Key: key, MspID: org})
	l.events = append(l.events, fakeEvent{name: event, payload: payload})
}

func (l *fakeLedger) callCount(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// deliver hands every emitted event to the event service until no new events are emitted.
func (l *fakeLedger) deliver(t *testing.T, eventService shared.EventService) {
	t.Helper()
	for {
		l.mu.Lock()
		if len(l.events) == 0 {
			l.mu.Unlock()
			return
		}
		event := l.events[0]
		l.events = l.events[1:]
		l.mu.Unlock()

		if err := eventService.HandleEvent(context.Background(), event.name, event.payload); err != nil {
			t.Fatalf("could not handle %s: %v", event.name, err)
		}
	}
}

func answer(status int, data any) dtos.LedgerResponse {
	raw, _ := json.Marshal(data)
	return dtos.LedgerResponse{Status: status, Data: raw}
}

func ledgerAsset(serial, owner string, children ...string) dtos.Asset {
	if children == nil {
		children = []string{}
	}
	return dtos.Asset{
		SerialNumberManufacturer:          "m-" + serial,
		SerialNumberCustomer:              serial,
		SerialNumberType:                  dtos.SerialNumberTypeSingle,
		Manufacturer:                      owner + " Corp",
		ProductionCountryCodeManufacturer: "DE",
		ProductionDateGmt:                 "2024-03-01T10:00:00.000Z",
		QualityStatus:                     dtos.QualityStatusOK,
		QualityDocuments:                  map[string]any{},
		CustomFields:                      map[string]any{},
		ComponentsSerialNumbers:           children,
		MspID:                             owner,
	}
}
