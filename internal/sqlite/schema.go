package sqlite

// Schema DDL for the index tables. Applied on every Attach; the IF NOT
// EXISTS forms keep the database reusable across program runs.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS crates (
    crate_name TEXT PRIMARY KEY,
    registered_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS implementors (
    implementor_id TEXT PRIMARY KEY,
    crate_name TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    trait_path TEXT NOT NULL,
    type_path TEXT NOT NULL,
    constraints TEXT NOT NULL,
    FOREIGN KEY (crate_name) REFERENCES crates(crate_name)
);

CREATE INDEX IF NOT EXISTS idx_implementors_crate ON implementors(crate_name);
CREATE INDEX IF NOT EXISTS idx_implementors_trait ON implementors(trait_path);
`
