// Package service contains the task tracker's use cases.
//
// Every operation takes the resolved principal explicitly and checks it
// against the authorization gate before touching a store. Ownership of
// tasks by employees is enforced here by scoping store queries on the
// principal's ID.
package service
