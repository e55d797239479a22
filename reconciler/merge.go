// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package reconciler

import (
	"encoding/json"
	"log/slog"
)

type keyedItem struct {
	fields map[string]json.RawMessage
	raw    json.RawMessage
}

// merge de-duplicates the collected data of all channels.
// Assets are keyed by serialNumberCustomer and their childComponents are unioned.
// History records are keyed by hash and timestamp where the first record wins.
// Everything else is passed through in front of the keyed records.
func merge(items []json.RawMessage) []json.RawMessage {
	unkeyed := make([]json.RawMessage, 0)
	keyed := map[string]*keyedItem{}
	order := make([]string, 0)

	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			unkeyed = append(unkeyed, item)
			continue
		}

		if serial, ok := fields["serialNumberCustomer"]; ok {
			key := "asset:" + string(serial)
			existing, ok := keyed[key]
			if !ok {
				keyed[key] = &keyedItem{fields: fields, raw: item}
				order = append(order, key)
				continue
			}
			if children, ok := fields["childComponents"]; ok {
				existing.mergeChildren(children)
			}
			continue
		}

		hash, hasHash := fields["hash"]
		timestamp, hasTimestamp := fields["timestamp"]
		if hasHash && hasTimestamp {
			key := "history:" + string(hash) + string(timestamp)
			if _, ok := keyed[key]; !ok {
				keyed[key] = &keyedItem{fields: fields, raw: item}
				order = append(order, key)
			}
			continue
		}

		unkeyed = append(unkeyed, item)
	}

	for _, key := range order {
		unkeyed = append(unkeyed, keyed[key].raw)
	}
	return unkeyed
}

func (k *keyedItem) mergeChildren(children json.RawMessage) {
	var current, incoming []json.RawMessage
	if existing, ok := k.fields["childComponents"]; ok && !isNull(existing) {
		if err := json.Unmarshal(existing, &current); err != nil {
			slog.Warn("could not decode child components", "err", err)
			return
		}
	}
	if !isNull(children) {
		if err := json.Unmarshal(children, &incoming); err != nil {
			slog.Warn("could not decode child components", "err", err)
			return
		}
	}

	union := make([]json.RawMessage, 0, len(current)+len(incoming))
	seen := map[string]struct{}{}
	for _, child := range append(current, incoming...) {
		var probe struct {
			SerialNumberCustomer *string `json:"serialNumberCustomer"`
		}
		if err := json.Unmarshal(child, &probe); err == nil && probe.SerialNumberCustomer != nil {
			if _, ok := seen[*probe.SerialNumberCustomer]; ok {
				continue
			}
			seen[*probe.SerialNumberCustomer] = struct{}{}
		}
		union = append(union, child)
	}

	b, err := json.Marshal(union)
	if err != nil {
		slog.Warn("could not encode child components", "err", err)
		return
	}
	k.fields["childComponents"] = b
	raw, err := json.Marshal(k.fields)
	if err != nil {
		slog.Warn("could not encode merged asset", "err", err)
		return
	}
	k.raw = raw
}
