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

package statemachine

import (
	"fmt"
	"strconv"
)

// RelationshipStatus is the synchronization state of a single parent/child edge.
// The numeric values are persisted and must never be reordered.
type RelationshipStatus int

const (
	StatusUnknown RelationshipStatus = iota
	StatusChildInPublicLedger
	StatusParentShared
	StatusChildShared
	StatusNotInFabric
	StatusParentExchangeFailure
	StatusChildExchangeFailure
	StatusParentHashValidationFailure
	StatusChildHashValidationFailure
	StatusRequestAssetNotAllowed
	StatusUpdatePending
)

var statusNames = map[RelationshipStatus]string{
	StatusUnknown:                     "unknown",
	StatusChildInPublicLedger:         "childInPublicLedger",
	StatusParentShared:                "parentShared",
	StatusChildShared:                 "childShared",
	StatusNotInFabric:                 "notInFabric",
	StatusParentExchangeFailure:       "parentExchangeFailure",
	StatusChildExchangeFailure:        "childExchangeFailure",
	StatusParentHashValidationFailure: "parentHashValidationFailure",
	StatusChildHashValidationFailure:  "childHashValidationFailure",
	StatusRequestAssetNotAllowed:      "requestAssetNotAllowed",
	StatusUpdatePending:               "updatePending",
}

// AllStatuses lists every status in persisted order.
var AllStatuses = []RelationshipStatus{
	StatusUnknown,
	StatusChildInPublicLedger,
	StatusParentShared,
	StatusChildShared,
	StatusNotInFabric,
	StatusParentExchangeFailure,
	StatusChildExchangeFailure,
	StatusParentHashValidationFailure,
	StatusChildHashValidationFailure,
	StatusRequestAssetNotAllowed,
	StatusUpdatePending,
}

func (s RelationshipStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "RelationshipStatus(" + strconv.Itoa(int(s)) + ")"
}

func (s RelationshipStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseRelationshipStatus accepts either the status name or its numeric value.
func ParseRelationshipStatus(s string) (RelationshipStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && RelationshipStatus(n).Valid() {
		return RelationshipStatus(n), nil
	}
	return StatusUnknown, fmt.Errorf("unknown relationship status %q", s)
}

// IsFailure reports whether the status records a failed exchange or validation.
// Failures are stored for inspection but no scheduler picks them up again.
func (s RelationshipStatus) IsFailure() bool {
	switch s {
	case StatusParentExchangeFailure, StatusChildExchangeFailure,
		StatusParentHashValidationFailure, StatusChildHashValidationFailure:
		return true
	}
	return false
}

// IsTerminal reports whether the edge is fully synchronized.
func (s RelationshipStatus) IsTerminal() bool {
	return s == StatusChildShared
}

var transitions = map[RelationshipStatus][]RelationshipStatus{
	StatusUnknown: {
		StatusChildInPublicLedger,
		StatusNotInFabric,
		StatusChildShared,
	},
	StatusChildInPublicLedger: {
		StatusParentShared,
		StatusRequestAssetNotAllowed,
		StatusUpdatePending,
	},
	StatusParentShared: {
		StatusChildShared,
		StatusChildInPublicLedger,
		StatusChildExchangeFailure,
		StatusChildHashValidationFailure,
		StatusUpdatePending,
	},
	StatusChildShared: {
		StatusUpdatePending,
		StatusChildHashValidationFailure,
	},
	StatusNotInFabric: {
		StatusChildInPublicLedger,
		StatusChildShared,
	},
	StatusRequestAssetNotAllowed: {
		StatusUnknown,
		StatusUpdatePending,
	},
	StatusUpdatePending: {
		StatusParentShared,
		StatusRequestAssetNotAllowed,
		StatusChildShared,
	},
	StatusParentExchangeFailure:       {StatusChildShared},
	StatusChildExchangeFailure:        {StatusChildShared},
	StatusParentHashValidationFailure: {StatusChildShared},
	StatusChildHashValidationFailure:  {StatusChildShared},
}

// CanTransition reports whether an edge may move from one status to another.
// Re-applying the current status is always allowed so scheduler ticks stay idempotent.
func CanTransition(from, to RelationshipStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Sources returns every status from which to can be reached, to itself included.
func Sources(to RelationshipStatus) []RelationshipStatus {
	result := []RelationshipStatus{}
	for _, from := range AllStatuses {
		if CanTransition(from, to) {
			result = append(result, from)
		}
	}
	return result
}
