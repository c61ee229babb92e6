// Package repository handles all interactions with the database.
//
// It contains the SQL for the Academy and Federation aggregates and the
// social network catalog. Aggregate reads are one join folded by
// aggregate.Assemble; aggregate writes run through aggregate.Coordinator,
// which reconciles every child collection inside a single transaction.
package repository
