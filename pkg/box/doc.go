// Package box is the client for comments and metadata templates.
//
// A Client wraps a types.Session. Resource handles such as Comment and
// MetadataTemplate build request bodies with the encoders in pkg/types, send
// them through the session, and hydrate typed objects from the JSON
// responses. Errors from the session are returned unchanged; use errors.As
// with *types.APIError to inspect API failures.
package box
