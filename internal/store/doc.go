// Package store defines the persistence contracts for users, tasks and
// comments. Implementations live under internal/platform.
package store
