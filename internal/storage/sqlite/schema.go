package sqlite

// Schema DDL. Positions keep the listing order of contacts and the order of
// each contact's phones.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    record_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    birthday TEXT,
    position INTEGER NOT NULL
);`

	createPhones = `CREATE TABLE IF NOT EXISTS phones (
    record_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (record_id, position),
    FOREIGN KEY (record_id) REFERENCES contacts(record_id) ON DELETE CASCADE
);`

	idxContactsPosition = `CREATE INDEX IF NOT EXISTS idx_contacts_position ON contacts(position);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
	idxContactsPosition,
}
