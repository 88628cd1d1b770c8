package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SchemaVersion is the version the code expects to find in the file's
// PRAGMA user_version. Any other non-zero value triggers the destructive
// upgrade below.
const SchemaVersion = 7

var createStmts = []string{
	`CREATE TABLE IF NOT EXISTS article (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		price REAL,
		stock INTEGER,
		photo TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT,
		password TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cart (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		article_id INTEGER,
		quantity INTEGER,
		total REAL,
		user_id INTEGER,
		FOREIGN KEY(article_id) REFERENCES article(id),
		FOREIGN KEY(user_id) REFERENCES user(id)
	)`,
	`CREATE TABLE IF NOT EXISTS commande (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		date TEXT,
		total REAL,
		FOREIGN KEY(user_id) REFERENCES user(id)
	)`,
	`CREATE TABLE IF NOT EXISTS commande_line (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		commande_id INTEGER,
		article_id INTEGER,
		quantity INTEGER,
		total REAL,
		FOREIGN KEY(commande_id) REFERENCES commande(id),
		FOREIGN KEY(article_id) REFERENCES article(id)
	)`,
}

// dropped children first so the statements also work with enforced keys
var dropStmts = []string{
	`DROP TABLE IF EXISTS commande_line`,
	`DROP TABLE IF EXISTS commande`,
	`DROP TABLE IF EXISTS cart`,
	`DROP TABLE IF EXISTS user`,
	`DROP TABLE IF EXISTS article`,
}

// Initialize brings the file to the expected schema. A fresh file gets the
// five tables and a version stamp; a file at the current version gets any
// missing tables recreated; any other version goes through Upgrade, which
// destroys all data.
func (s *Store) Initialize(ctx context.Context) error {
	ver, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	switch {
	case ver == 0:
		if err := s.createTables(ctx); err != nil {
			return err
		}
		return s.setSchemaVersion(ctx, SchemaVersion)
	case ver != SchemaVersion:
		return s.Upgrade(ctx, ver, SchemaVersion)
	default:
		return s.createTables(ctx)
	}
}

// Upgrade performs the destructive migration: every table is dropped and
// recreated empty. Full data loss on any version change is the documented
// contract of this store, callers must not expect their rows to survive.
func (s *Store) Upgrade(ctx context.Context, from, to int) error {
	s.Log.Warn("upgrading schema, destroying all existing data",
		"from_version", from,
		"to_version", to,
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range dropStmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return storageErr("drop table", err)
			}
		}
		for _, stmt := range createStmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return storageErr("create table", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.setSchemaVersion(ctx, to)
}

func (s *Store) createTables(ctx context.Context) error {
	for _, stmt := range createStmts {
		if err := s.DB.WithContext(ctx).Exec(stmt).Error; err != nil {
			return storageErr("create table", err)
		}
	}
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var ver int
	if err := s.DB.WithContext(ctx).Raw("PRAGMA user_version").Scan(&ver).Error; err != nil {
		return 0, storageErr("read schema version", err)
	}
	return ver, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, ver int) error {
	// PRAGMA does not take bound parameters
	stmt := fmt.Sprintf("PRAGMA user_version = %d", ver)
	if err := s.DB.WithContext(ctx).Exec(stmt).Error; err != nil {
		return storageErr("set schema version", err)
	}
	return nil
}
