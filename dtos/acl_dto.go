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

package dtos

const ACLStatusActive = "ACTIVE"

type ACLEntry struct {
	Status    string   `json:"status"`
	Entities  []string `json:"entities"`
	ChangedBy string   `json:"changedBy"`
}

// OrgDetails is the access control list of an organization as stored in the ledger.
type OrgDetails struct {
	OrgMSP string              `json:"orgMSP"`
	ACL    map[string]ACLEntry `json:"ACL"`
}

// ActivePartners returns every organization with an ACTIVE entry, except the caller itself.
func (d OrgDetails) ActivePartners(self string) []string {
	seen := map[string]struct{}{}
	partners := []string{}
	for _, entry := range d.ACL {
		if entry.Status != ACLStatusActive {
			continue
		}
		for _, org := range entry.Entities {
			if org == self {
				continue
			}
			if _, ok := seen[org]; ok {
				continue
			}
			seen[org] = struct{}{}
			partners = append(partners, org)
		}
	}
	return partners
}
