// Package generation defines the boundary between the application core and
// the external text-to-flashcard generation service.
package generation
