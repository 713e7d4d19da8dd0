// Package client talks to the gophaccounts gRPC API on behalf of the CLI.
//
// GRPCClient manages the connection, keeps the access token returned by
// Login and attaches it to every call through a unary interceptor. gRPC
// statuses are mapped to ErrUnavailable or to *APIError, which carries the
// server's message and, for InvalidArgument, the per-field errors.
package client
