package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT,
		bio TEXT,
		avatar_url TEXT,
		email TEXT,
		phone TEXT,
		address TEXT,
		website TEXT,
		linkedin TEXT,
		github TEXT,
		orcid TEXT,
		research_interests TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS education (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		degree TEXT NOT NULL,
		institution TEXT NOT NULL,
		field TEXT,
		start_year INTEGER,
		end_year INTEGER,
		description TEXT,
		tags TEXT,
		order_index INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS publications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		authors TEXT NOT NULL,
		journal TEXT,
		year INTEGER,
		volume TEXT,
		pages TEXT,
		doi TEXT,
		url TEXT,
		abstract TEXT,
		keywords TEXT,
		type TEXT DEFAULT 'journal',
		order_index INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		detailed_description TEXT,
		role TEXT,
		start_date DATE,
		end_date DATE,
		technologies TEXT,
		url TEXT,
		github_url TEXT,
		status TEXT DEFAULT 'completed',
		tags TEXT,
		order_index INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS experience (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		position TEXT NOT NULL,
		organization TEXT NOT NULL,
		start_date DATE,
		end_date DATE,
		description TEXT,
		location TEXT,
		tags TEXT,
		order_index INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS awards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		organization TEXT,
		year INTEGER,
		description TEXT,
		tags TEXT,
		order_index INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS friends (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		avatar TEXT,
		order_index INTEGER DEFAULT 0,
		is_active INTEGER DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY,
		beian TEXT,
		site_title TEXT DEFAULT 'Academic Homepage',
		site_description TEXT,
		keywords TEXT,
		analytics_code TEXT,
		custom_css TEXT,
		footer_text TEXT,
		social_links TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// Seed inserts the singleton profile and settings rows when they are missing
// so that the public page always has something to render.
func Seed(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO profile (id, name, title, bio)
		SELECT 1, 'Your Name', 'Your Title', 'A short bio.'
		WHERE NOT EXISTS (SELECT 1 FROM profile WHERE id = 1)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO settings (id, site_title)
		SELECT 1, 'Academic Homepage'
		WHERE NOT EXISTS (SELECT 1 FROM settings WHERE id = 1)`)
	return err
}
