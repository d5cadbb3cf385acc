// Package client talks to the journal HTTP API.
//
// HTTPClient keeps the bearer token obtained by Login and attaches it to
// every subsequent call. Transport failures surface as ErrUnavailable, 401
// as ErrUnauthorized and 404 as ErrNotFound; any other non-2xx answer is an
// *APIError carrying the status and the server's detail message.
package client
