package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		number TEXT UNIQUE NOT NULL,
		status TEXT DEFAULT 'pending',
		date TIMESTAMPTZ,
		currency TEXT DEFAULT 'USD',
		total DECIMAL(10,2),
		subtotal DECIMAL(10,2),
		tax DECIMAL(10,2),
		email TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		company TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city TEXT,
		state TEXT,
		postcode TEXT,
		country TEXT,
		phone TEXT,
		gateway TEXT,
		customer_ip TEXT,
		discount_codes TEXT,
		purchase_key TEXT,
		receipt_id TEXT,
		receipt_link TEXT,
		sync_status TEXT DEFAULT 'pending',
		synced_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL,
		product_id UUID NOT NULL,
		name TEXT NOT NULL,
		price_name TEXT,
		quantity INTEGER DEFAULT 1,
		item_price DECIMAL(10,2),
		discount DECIMAL(10,2),
		files TEXT,
		license_key TEXT
	);

	CREATE TABLE IF NOT EXISTS order_notes (
		id SERIAL PRIMARY KEY,
		order_id UUID NOT NULL,
		note TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT DEFAULT 'publish',
		password TEXT,
		permalink TEXT,
		image_url TEXT,
		categories TEXT,
		tags TEXT,
		note TEXT,
		variable_pricing BOOLEAN DEFAULT false,
		price DECIMAL(10,2),
		price_tiers TEXT,
		sync_status TEXT DEFAULT 'pending',
		synced_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS discounts (
		id UUID PRIMARY KEY,
		code TEXT UNIQUE NOT NULL,
		type TEXT DEFAULT 'flat',
		amount DECIMAL(10,2),
		max_uses INTEGER DEFAULT 1,
		single_use BOOLEAN DEFAULT true,
		starts_at TIMESTAMPTZ,
		expires_at TIMESTAMPTZ,
		order_id UUID,
		email_restriction TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS queue_items (
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		action TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (entity_type, entity_id)
	);

	CREATE TABLE IF NOT EXISTS options (
		name TEXT PRIMARY KEY,
		value TEXT
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
