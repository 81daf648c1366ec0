// Package domain contains the core entities of the flashcard application:
// users, flashcards, set summaries, and card collections.
package domain
