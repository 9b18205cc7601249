// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeRDFParseUnknownFormat Code = "rdf.parse.unknown_format"
	CodeRDFParseInvalidFormat Code = "rdf.parse.invalid_format"
	CodeRDFTermInvalid        Code = "rdf.term.invalid"

	CodeFetchRequestInvalid         Code = "fetch.request.invalid"
	CodeFetchRequestUpstreamFailure Code = "fetch.request.upstream_failure"

	CodeStoreTripleQueryDatabase Code = "store.triple.query.database_failure"
	CodeStoreDatabaseFailure     Code = "store.database.failure"
	CodeStoreBackendUnsupported  Code = "store.backend.unsupported"
	CodeStoreInvalidInput        Code = "store.invalid_input"
	CodeStoreClosed              Code = "store.closed"

	CodeSourceLoadFailure     Code = "source.load.failure"
	CodeSourceRequestInvalid  Code = "source.request.invalid"
	CodeSourceElementNotFound Code = "source.element.not_found"

	CodeFederationSourceFailure   Code = "federation.source.failure"
	CodeFederationAllFailed       Code = "federation.source.all_failed"
	CodeFederationConfigInvalid   Code = "federation.config.invalid"
	CodeFederationSourceDuplicate Code = "federation.source.conflict"

	CodeRemoteRequestFailure     Code = "remote.request.upstream_failure"
	CodeRemoteResponseInvalid    Code = "remote.response.invalid"
	CodeRemoteEndpointNotRunning Code = "remote.endpoint.unavailable"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigParseInvalidFormat   Code = "config.parse.invalid_format"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeServerRequestInvalid  Code = "server.request.invalid"
	CodeServerInternalFailure Code = "server.internal.failure"
	CodeServerConfigInvalid   Code = "server.config.invalid"
	CodeServerStartFailure    Code = "server.start.failure"
	CodeServerShutdownFailure Code = "server.shutdown.failure"
	CodeServerProxyFailure    Code = "server.proxy.upstream_failure"

	CodeCLIRequestFailure Code = "cli.request.failure"
	CodeCLISetupFailure   Code = "cli.setup.failure"
	CodeCLIInputInvalid   Code = "cli.input.invalid"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// FieldValue creates a structured error field.
func FieldValue(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Field is kept as the primary helper for terse callsites.
func Field(key string, value any) Attr {
	return FieldValue(key, value)
}

func FieldSource(value string) Attr {
	return Field("source", value)
}

func FieldOperation(value string) Attr {
	return Field("operation", value)
}

func FieldURL(value string) Attr {
	return Field("url", value)
}

func FieldMIME(value string) Attr {
	return Field("mime", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

// With adds structured fields to an existing error chain.
func With(err error, fields ...Attr) error {
	if err == nil {
		return nil
	}

	code := CodeOf(err)
	if code == "" {
		code = CodeServerInternalFailure
	}

	return oops.Code(code).With(flatten(fields)...).Wrap(err)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsConflict(err error) bool {
	return reason(CodeOf(err)) == "conflict"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid" || r == "invalid_input" || r == "invalid_value" || r == "invalid_format" || r == "unknown_format"
}

func IsUnavailable(err error) bool {
	return reason(CodeOf(err)) == "unavailable"
}

func IsUpstreamFailure(err error) bool {
	code := CodeOf(err)
	r := reason(code)
	return r == "upstream_failure" || (strings.Contains(string(code), "upstream") && r == "failure")
}

// IsSourceFailure reports whether err came from a federated source call.
// CodeOf returns the innermost code, so a coded error raised inside a source
// is recognised by the source field the federation attaches.
func IsSourceFailure(err error) bool {
	if HasCode(err, CodeFederationSourceFailure) || HasCode(err, CodeFederationAllFailed) {
		return true
	}
	_, ok := FieldsOf(err)["source"]
	return ok
}

func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsInvalidInput(err):
		return http.StatusBadRequest
	case IsUnavailable(err):
		return http.StatusServiceUnavailable
	case IsUpstreamFailure(err), IsSourceFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Join(errs ...error) error {
	joined := stderrors.Join(errs...)
	if joined == nil {
		return nil
	}
	return oops.Code(CodeServerInternalFailure).Wrap(joined)
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
