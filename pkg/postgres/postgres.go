// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package postgres manages the PostgreSQL connection used for document metadata.
package postgres

import (
	"database/sql"
	"time"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" driver with database/sql via init() - required for sql.Open("pgx", ...)
)

// connMaxLifetime bounds how long a pooled connection may be reused.
const connMaxLifetime = 10 * time.Minute

// Connection is a hub which deals with postgres connections.
type Connection struct {
	ConnectionString   string
	DBName             string
	ConnectionDB       *sql.DB
	Connected          bool
	Logger             log.Logger
	MaxOpenConnections int
	MaxIdleConnections int
}

// Connect initializes the connection with the PostgreSQL DB.
func (c *Connection) Connect() error {
	c.Logger.Info("Connecting to PostgreSQL...")

	db, err := sql.Open("pgx", c.ConnectionString)
	if err != nil {
		c.Logger.Errorf("Error opening connection: %v", err)
		return err
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			c.Logger.Errorf("Error closing connection: %v", closeErr)
		}

		c.Logger.Errorf("Error pinging PostgreSQL: %v", err)

		return err
	}

	db.SetMaxOpenConns(c.MaxOpenConnections)
	db.SetMaxIdleConns(c.MaxIdleConnections)
	db.SetConnMaxLifetime(connMaxLifetime)

	c.ConnectionDB = db
	c.Connected = true

	c.Logger.Infof("Connected to PostgreSQL [%s]", c.DBName)

	return nil
}

// GetDB returns a pointer to the postgres connection, initializing it if necessary.
func (c *Connection) GetDB() (*sql.DB, error) {
	if c.ConnectionDB == nil {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	return c.ConnectionDB, nil
}
