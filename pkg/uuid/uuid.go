// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Stable paging: Listing by id ascending is listing by creation order, on
    both PostgreSQL and MongoDB.
  - Portable: The same string id works as a Postgres 'uuid' and a Mongo '_id'.

This is the mandatory ID type for all primary keys in the Studydeck ecosystem.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// # Inspection

// Valid reports whether s is a canonical hyphenated UUID string.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
