// Package pgstore keeps metadata schemas in a PostgreSQL table.
//
// Each row binds a truncated version to a schema body stored as jsonb,
// together with the normalized checksum of the body:
//
//	CREATE TABLE dlmeta_schema (
//	    version    text PRIMARY KEY,
//	    body       jsonb NOT NULL,
//	    checksum   text NOT NULL,
//	    created_at timestamptz NOT NULL DEFAULT now()
//	);
//
// Validation does not talk to the database. Catalog loads every row once into
// a schema.Catalog, which then serves lookups from memory. Only connection
// establishment is retried.
package pgstore
