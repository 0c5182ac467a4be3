// Package common contains shared constants and sentinel errors used across
// the account service components.
package common

// Code is a machine-readable error code returned in HTTP error bodies.
type Code string

const (
	CodeUpdateUserInvalidPassword    Code = "UPDATE_USER_INVALID_PASSWORD"
	CodeUpdateUserEmailAlreadyExists Code = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
	CodeUpdateUserInvalidEmail       Code = "UPDATE_USER_INVALID_EMAIL"
	CodeInvalidRequestBody           Code = "INVALID_REQUEST_BODY"
)

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "
