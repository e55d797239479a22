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

package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/reconciler"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
)

type accessControlService struct {
	executor shared.LedgerExecutor
}

var _ shared.AccessControlService = (*accessControlService)(nil)

func NewAccessControlService(executor shared.LedgerExecutor) *accessControlService {
	return &accessControlService{
		executor: executor,
	}
}

func (s *accessControlService) GetAccessControlList(ctx context.Context, orgID string) (reconciler.Response[dtos.OrgDetails], error) {
	return execute[dtos.OrgDetails](ctx, s.executor, dtos.TxGetOrgDetails, orgID, []any{dtos.OrgDetailsPayload{OrgMSP: orgID}}, dtos.ModeEvaluate, reconciler.Options{AllowDataOnError: true})
}

// ActivePartners returns the organizations which granted access to their private data collection.
func (s *accessControlService) ActivePartners(ctx context.Context, orgID string) ([]string, error) {
	res, err := s.GetAccessControlList(ctx, orgID)
	if err != nil {
		return nil, err
	}
	details, ok := res.First()
	if !res.OK() || !ok {
		return nil, shared.LedgerError{Msg: "could not read access control list of " + orgID, Err: errors.Errorf("status %d: %v", res.Status, res.Error)}
	}
	return details.ActivePartners(orgID), nil
}

func (s *accessControlService) EnrollOrg(ctx context.Context, orgID string) (reconciler.Response[json.RawMessage], error) {
	return execute[json.RawMessage](ctx, s.executor, dtos.TxEnrollOrg, orgID, []any{dtos.EnrollPayload{EnrollOrg: "enrollOrg"}}, dtos.ModeSubmit, collectAll)
}

// EnrollAllOrgs enrolls every organization with a local identity. Organizations which are
// already enrolled answer with 400 which is fine.
func (s *accessControlService) EnrollAllOrgs(ctx context.Context) error {
	var failed []string
	for _, orgID := range s.executor.Organizations() {
		res, err := s.EnrollOrg(ctx, orgID)
		if err != nil {
			slog.Error("could not enroll organization", "org", orgID, "err", err)
			failed = append(failed, orgID)
			continue
		}
		switch res.Status {
		case http.StatusOK:
			slog.Info("enrolled organization", "org", orgID)
		case http.StatusBadRequest:
			slog.Info("organization already enrolled", "org", orgID)
		default:
			slog.Error("could not enroll organization", "org", orgID, "status", res.Status, "errors", res.Error)
			failed = append(failed, orgID)
		}
	}

	if len(failed) > 0 {
		return errors.Errorf("could not enroll organizations: %s", strings.Join(failed, ", "))
	}
	return nil
}
