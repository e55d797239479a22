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

package shared

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// StatusCoder is implemented by every error which maps to a response status.
type StatusCoder interface {
	StatusCode() int
}

// BadRequestError marks invalid input. Requests failing with it are never retried.
type BadRequestError struct {
	Msg string
}

func (e BadRequestError) Error() string   { return e.Msg }
func (e BadRequestError) StatusCode() int { return http.StatusBadRequest }

// AccessError is returned if the ledger denied access to another organization.
type AccessError struct {
	Msg string
}

func (e AccessError) Error() string   { return e.Msg }
func (e AccessError) StatusCode() int { return http.StatusForbidden }

type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string   { return e.Msg }
func (e NotFoundError) StatusCode() int { return http.StatusNotFound }

// LedgerError wraps a failure while talking to the ledger. It is retried on the next tick.
type LedgerError struct {
	Msg string
	Err error
}

func (e LedgerError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err)
}
func (e LedgerError) Unwrap() error   { return e.Err }
func (e LedgerError) StatusCode() int { return http.StatusInternalServerError }

// DeploymentError signals a broken deployment, for example a missing identity.
type DeploymentError struct {
	Msg string
}

func (e DeploymentError) Error() string   { return e.Msg }
func (e DeploymentError) StatusCode() int { return http.StatusInternalServerError }

func NewBadRequestError(format string, args ...any) error {
	return BadRequestError{Msg: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func NewDeploymentError(format string, args ...any) error {
	return DeploymentError{Msg: fmt.Sprintf(format, args...)}
}

// ErrorStatusCode walks the error chain and returns the first status code found.
// Unknown errors map to 500.
func ErrorStatusCode(err error) int {
	var coder StatusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}
	return http.StatusInternalServerError
}
