// Package api contains the HTTP handlers for the flashcard service: user
// authentication, flashcard generation, set storage and retrieval, and
// checkout session management. Handlers depend on the service layer through
// small interfaces and translate internal errors into sanitized HTTP
// responses.
package api
