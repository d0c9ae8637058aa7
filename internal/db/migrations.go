package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('running', 'broken', 'in_maintenance', 'unavailable');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'fuel_type') THEN
			CREATE TYPE fuel_type AS ENUM ('petrol', 'diesel', 'hybrid', 'electric');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_status') THEN
			CREATE TYPE driver_status AS ENUM ('active', 'on_leave', 'inactive');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_type') THEN
			CREATE TYPE trip_type AS ENUM ('transfer', 'corporate_transfer', 'excursion', 'event', 'standby', 'other');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_status') THEN
			CREATE TYPE trip_status AS ENUM ('planned', 'in_progress', 'done', 'cancelled');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_payment_status') THEN
			CREATE TYPE trip_payment_status AS ENUM ('unpaid', 'deposit', 'paid', 'invoiced', 'free');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_mode') THEN
			CREATE TYPE payment_mode AS ENUM ('cash', 'deposit', 'invoice', 'cheque', 'unpaid', 'free');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'expense_category') THEN
			CREATE TYPE expense_category AS ENUM ('fuel', 'maintenance', 'insurance', 'salaries', 'taxes', 'other');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		username VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(100),
		phone VARCHAR(20),
		roles VARCHAR(100) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id SERIAL PRIMARY KEY,
		plate_number VARCHAR(20) NOT NULL UNIQUE,
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		seats INTEGER NOT NULL,
		fuel fuel_type NOT NULL,
		odometer DOUBLE PRECISION NOT NULL DEFAULT 0,
		color VARCHAR(50),
		power INTEGER,
		purchase_price NUMERIC(10,2),
		status vehicle_status NOT NULL DEFAULT 'running',
		manufacture_year INTEGER,
		acquired_at DATE,
		insurance_expires_at DATE,
		inspection_expires_at DATE,
		image_url VARCHAR(255),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		national_id VARCHAR(20) NOT NULL UNIQUE,
		birth_date DATE NOT NULL,
		sex VARCHAR(1) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		emergency_phone VARCHAR(20),
		address TEXT NOT NULL,
		email VARCHAR(100),
		license_number VARCHAR(50) NOT NULL,
		license_expires_at DATE NOT NULL,
		hired_at DATE NOT NULL,
		photo_url VARCHAR(255),
		status driver_status NOT NULL DEFAULT 'active',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS trips (
		id SERIAL PRIMARY KEY,
		code VARCHAR(12) NOT NULL UNIQUE,
		type trip_type NOT NULL,
		name VARCHAR(255),
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		recurring_days VARCHAR(100),
		departure_point VARCHAR(255),
		arrival_point VARCHAR(255),
		distance DOUBLE PRECISION,
		departure_date DATE NOT NULL,
		departure_time VARCHAR(5),
		arrival_date DATE,
		arrival_time VARCHAR(5),
		day_count INTEGER,
		buy_price NUMERIC(10,2),
		sell_price NUMERIC(10,2),
		commission NUMERIC(10,2),
		is_commission BOOLEAN NOT NULL DEFAULT FALSE,
		adults INTEGER NOT NULL DEFAULT 0,
		children INTEGER NOT NULL DEFAULT 0,
		infants INTEGER NOT NULL DEFAULT 0,
		payment_status trip_payment_status NOT NULL DEFAULT 'unpaid',
		status trip_status NOT NULL DEFAULT 'planned',
		client_name VARCHAR(100),
		client_phone VARCHAR(20),
		client_email VARCHAR(100),
		comments TEXT,
		created_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_departure_date ON trips (departure_date);`,
	`CREATE TABLE IF NOT EXISTS trip_assignments (
		id SERIAL PRIMARY KEY,
		trip_id INTEGER NOT NULL REFERENCES trips(id),
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		driver_id INTEGER NOT NULL REFERENCES drivers(id),
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_assignments_trip ON trip_assignments (trip_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_assignments_vehicle ON trip_assignments (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_assignments_driver ON trip_assignments (driver_id);`,
	`CREATE TABLE IF NOT EXISTS trip_expenses (
		id SERIAL PRIMARY KEY,
		trip_id INTEGER NOT NULL REFERENCES trips(id),
		name VARCHAR(100) NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL,
		person_count INTEGER NOT NULL,
		total NUMERIC(10,2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id SERIAL PRIMARY KEY,
		trip_id INTEGER NOT NULL REFERENCES trips(id),
		total_amount NUMERIC(10,2) NOT NULL,
		paid_amount NUMERIC(10,2) NOT NULL,
		mode payment_mode NOT NULL,
		reference VARCHAR(100),
		bank VARCHAR(100),
		cheque_number VARCHAR(100),
		cheque_image_url VARCHAR(255),
		paid_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		received_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
		notes TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments (paid_at);`,
	`CREATE TABLE IF NOT EXISTS maintenances (
		id SERIAL PRIMARY KEY,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		service_type VARCHAR(100) NOT NULL,
		cost NUMERIC(10,2) NOT NULL,
		service_date DATE NOT NULL,
		odometer DOUBLE PRECISION NOT NULL,
		next_due_odometer DOUBLE PRECISION NOT NULL,
		description TEXT,
		provider VARCHAR(100),
		invoice_reference VARCHAR(100),
		invoice_url VARCHAR(255),
		parts JSONB,
		created_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenances_vehicle ON maintenances (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenances_service_date ON maintenances (service_date);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		maintenance_id INTEGER NOT NULL REFERENCES maintenances(id),
		message VARCHAR(255) NOT NULL,
		severity VARCHAR(50) NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (vehicle_id, maintenance_id, severity) WHERE NOT read;`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		category expense_category NOT NULL,
		amount NUMERIC(10,2) NOT NULL,
		date DATE NOT NULL,
		description TEXT,
		vehicle_id INTEGER REFERENCES vehicles(id),
		created_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_vehicle ON expenses (vehicle_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
