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
	"net/http"
	"reflect"

	"github.com/l3montree-dev/partchain/dtos"
)

type Options struct {
	// ReturnArray keeps every merged element, otherwise only the first one is returned.
	ReturnArray bool
	// AllowDataOnError collects the data of successful channels even if another channel failed.
	AllowDataOnError bool
	// ForceDataPayload collects the data of every channel regardless of its status.
	ForceDataPayload bool
	// Page is 1-based, 0 disables pagination.
	Page     int
	PageSize int
}

// ResolveStatus folds the status codes of all channels into one.
// Any code besides 200 and 404 is critical and the last critical code wins.
// Otherwise a single 200 is enough to answer with 200.
func ResolveStatus(codes []int) int {
	status := http.StatusInternalServerError
	if len(codes) == 0 {
		return http.StatusOK
	}

	critical := false
	for _, code := range codes {
		if code != http.StatusOK && code != http.StatusNotFound {
			critical = true
			status = code
			if code == 0 {
				status = http.StatusInternalServerError
			}
			continue
		}
		if critical || code == status {
			continue
		}
		if status == http.StatusOK && code == http.StatusNotFound {
			continue
		}
		status = code
	}
	return status
}

// Reconcile merges the answers of every channel into a single response.
// The outer slice holds one result list per channel.
func Reconcile[T any](channelResults [][]dtos.LedgerResponse, opts Options) Response[T] {
	envelopes := flatten(channelResults)

	codes := make([]int, 0, len(envelopes))
	for _, e := range envelopes {
		codes = append(codes, e.Status)
	}
	status := ResolveStatus(codes)

	var data []json.RawMessage
	var errs []any
	for _, e := range envelopes {
		if !eligible(e.Status, status, opts) {
			continue
		}
		data = append(data, splitData(e.Data)...)
		errs = append(errs, collectErrors(e)...)
	}

	res := Response[T]{
		Status:      status,
		returnArray: opts.ReturnArray,
	}

	if status == http.StatusOK || opts.AllowDataOnError {
		merged := merge(data)
		res.ResultLength = len(merged)
		merged, res.NextPage = paginate(merged, opts.Page, opts.PageSize)
		if !opts.ReturnArray && len(merged) > 1 {
			merged = merged[:1]
		}
		res.Data = decode[T](merged)
	}

	if status != http.StatusOK {
		res.Error = dedupe(errs)
		if !opts.AllowDataOnError {
			res.Data = nil
		}
	}

	return res
}

func flatten(channelResults [][]dtos.LedgerResponse) []dtos.LedgerResponse {
	var envelopes []dtos.LedgerResponse
	for _, results := range channelResults {
		envelopes = append(envelopes, results...)
	}
	return envelopes
}

func eligible(code, resolved int, opts Options) bool {
	return code == resolved ||
		(opts.AllowDataOnError && code == http.StatusOK) ||
		opts.ForceDataPayload
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// splitData accepts a single value or an array of values.
func splitData(raw json.RawMessage) []json.RawMessage {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	return []json.RawMessage{raw}
}

func collectErrors(e dtos.LedgerResponse) []any {
	if isNull(e.Error) {
		if e.Message != "" && e.Status != http.StatusOK {
			return []any{e.Message}
		}
		return nil
	}

	var v any
	if err := json.Unmarshal(e.Error, &v); err != nil {
		return []any{string(e.Error)}
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

func dedupe(errs []any) []any {
	res := make([]any, 0, len(errs))
	for _, e := range errs {
		found := false
		for _, existing := range res {
			if reflect.DeepEqual(existing, e) {
				found = true
				break
			}
		}
		if !found {
			res = append(res, e)
		}
	}
	return res
}

func paginate(items []json.RawMessage, page, size int) ([]json.RawMessage, bool) {
	if page <= 0 || size <= 0 || len(items) == 0 {
		return items, false
	}
	end := page * size
	start := end - size
	nextPage := end < len(items)
	if start >= len(items) {
		return []json.RawMessage{}, false
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nextPage
}

func decode[T any](items []json.RawMessage) []T {
	res := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := json.Unmarshal(item, &t); err != nil {
			slog.Warn("could not decode ledger data", "err", err, "data", string(item))
			continue
		}
		res = append(res, t)
	}
	return res
}
