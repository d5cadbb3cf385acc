// Package common contains shared constants and sentinel errors used across
// the journal server and its CLI client.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authentication scheme announced in WWW-Authenticate
// and expected as the Authorization header prefix.
const BearerScheme = "Bearer"

// TokenType is the token_type value returned by the login endpoint.
const TokenType = "bearer"
