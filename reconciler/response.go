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
	"net/http"
)

// Response is the reconciled answer of a ledger operation across all channels.
type Response[T any] struct {
	Status       int
	Data         []T
	Error        []any
	ResultLength int
	NextPage     bool

	returnArray bool
}

// NewResponse builds a response which did not originate from the ledger.
func NewResponse[T any](status int, data []T, returnArray bool) Response[T] {
	return Response[T]{
		Status:       status,
		Data:         data,
		ResultLength: len(data),
		returnArray:  returnArray,
	}
}

func (r Response[T]) OK() bool {
	return r.Status == http.StatusOK
}

// First returns the first data element if there is any.
func (r Response[T]) First() (T, bool) {
	if len(r.Data) == 0 {
		var t T
		return t, false
	}
	return r.Data[0], true
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"status": r.Status,
	}
	if r.Status == http.StatusOK || len(r.Data) > 0 {
		if r.returnArray {
			data := r.Data
			if data == nil {
				data = []T{}
			}
			out["data"] = data
		} else if first, ok := r.First(); ok {
			out["data"] = first
		}
		out["resultLength"] = r.ResultLength
	}
	if r.Status != http.StatusOK {
		errs := r.Error
		if errs == nil {
			errs = []any{}
		}
		out["error"] = errs
	}
	if r.NextPage {
		out["nextPage"] = true
	}
	return json.Marshal(out)
}
