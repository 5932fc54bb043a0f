// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, CORS, and request-body limits are handled in this package before
// requests are delegated to the service layer. Every endpoint answers with
// the uniform envelope defined in the models package.
package http
