// Package common contains shared constants and sentinel errors used across
// gophaccounts components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key used to carry
// the bearer access token.
const AuthorizationHeaderName = "authorization"

// BearerTokenType is the token type prefix returned by Login and expected in
// the authorization header.
const BearerTokenType = "Bearer"

// PasswordGrantType is the only OAuth2 grant type accepted by Login.
const PasswordGrantType = "password"
