// Package store defines persistence interfaces and shared persistence
// errors. Concrete implementations live under internal/platform.
package store
