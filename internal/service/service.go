// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, normalizes it, and calls repository methods. Every
// child list handed to a repository Save is the full desired state of that
// collection.
package service
