package db

import "database/sql"

// QueryRower is the minimal query surface shared by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable reports whether the current schema contains the table.
func HasTable(q QueryRower, table string) bool {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?`, table).Scan(&n)
	return err == nil && n > 0
}

// EnsureSchema creates the tables this service owns. Reference data
// (routes, buses) and booking data (tickets, payments) live side by side;
// settlement updates arrive from outside this service.
func EnsureSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			origin_city VARCHAR(100) NOT NULL,
			origin_province VARCHAR(100) NOT NULL,
			destination_city VARCHAR(100) NOT NULL,
			destination_province VARCHAR(100) NOT NULL,
			distance_km DOUBLE NOT NULL DEFAULT 0,
			estimated_duration_hours DOUBLE NOT NULL DEFAULT 0,
			base_price_kz BIGINT NOT NULL DEFAULT 0,
			active TINYINT(1) NOT NULL DEFAULT 1
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS buses (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			company_name VARCHAR(255) NOT NULL,
			make VARCHAR(100) NOT NULL DEFAULT '',
			model VARCHAR(100) NOT NULL DEFAULT '',
			license_plate VARCHAR(50) NOT NULL,
			capacity INT NOT NULL DEFAULT 0,
			amenities VARCHAR(255) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS trips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			route_id BIGINT NOT NULL,
			bus_id BIGINT NOT NULL,
			departure_time DATETIME NOT NULL,
			arrival_time DATETIME NOT NULL,
			price_kz BIGINT NOT NULL DEFAULT 0,
			available_seats INT NOT NULL DEFAULT 0,
			seat_class VARCHAR(50) NOT NULL DEFAULT 'economy',
			status VARCHAR(50) NOT NULL DEFAULT 'scheduled',
			KEY idx_departure (departure_time),
			KEY idx_route (route_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS profiles (
			user_id BIGINT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			phone_number VARCHAR(100) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			passenger_id BIGINT NOT NULL,
			seat_number VARCHAR(255) NOT NULL,
			price_paid_kz BIGINT NOT NULL DEFAULT 0,
			payment_status VARCHAR(50) NOT NULL DEFAULT 'pending',
			payment_method VARCHAR(50) NOT NULL DEFAULT 'referencia',
			booking_source VARCHAR(50) NOT NULL DEFAULT 'online',
			seat_class VARCHAR(50) NOT NULL DEFAULT 'economy',
			ticket_number VARCHAR(100) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			booking_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_ticket_number (ticket_number),
			KEY idx_trip_status (trip_id, status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			transaction_id VARCHAR(100) NOT NULL,
			reference_number VARCHAR(50) NOT NULL DEFAULT '',
			ticket_id BIGINT NOT NULL,
			return_ticket_id BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			amount_kz BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_transaction (transaction_id),
			KEY idx_reference (reference_number),
			KEY idx_ticket (ticket_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
