// Package types defines the entity types, request encoders, the Session
// interface, and standard errors for the boxsdk client.
//
// Nothing in this package performs I/O. Request bodies are built here and
// handed to a Session, which owns transport, authentication headers, and JSON
// encoding.
package types
