package sqlite

import "database/sql"

// schema sets up the kiosk tables. Statements run on startup; everything is
// IF NOT EXISTS so repeated starts are harmless.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    number TEXT PRIMARY KEY,
    day TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    total INTEGER NOT NULL,
    status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
    id TEXT PRIMARY KEY,
    order_number TEXT NOT NULL,
    position INTEGER NOT NULL,
    product_id TEXT NOT NULL,
    product_name TEXT NOT NULL,
    category TEXT NOT NULL,
    size TEXT NOT NULL,
    size_label TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    currency TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    subtotal INTEGER NOT NULL,
    FOREIGN KEY (order_number) REFERENCES orders(number) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS line_add_ons (
    line_id TEXT NOT NULL,
    name TEXT NOT NULL,
    tier TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    PRIMARY KEY (line_id, name),
    FOREIGN KEY (line_id) REFERENCES order_lines(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS order_counters (
    day TEXT PRIMARY KEY,
    counter INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS operators (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_day ON orders(day);
CREATE INDEX IF NOT EXISTS idx_order_lines_order_number ON order_lines(order_number);
CREATE INDEX IF NOT EXISTS idx_line_add_ons_line_id ON line_add_ons(line_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
