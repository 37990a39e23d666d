package database

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"prestamos-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a database handle from the given configuration. When a
// base64-encoded CA certificate is configured, the connection is made
// with TLS against that CA; otherwise sslmode is left to the driver
// default.
func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?search_path=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.Schema,
	)

	if cfg.CertBase64 != "" {
		certPath, err := writeCACert(cfg.CertBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare CA certificate: %w", err)
		}
		dsn += "&sslmode=verify-ca&sslrootcert=" + url.QueryEscape(certPath)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// writeCACert decodes the base64 certificate into a temp file so the
// driver can reference it by path.
func writeCACert(certBase64 string) (string, error) {
	pem, err := base64.StdEncoding.DecodeString(certBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode certificate: %w", err)
	}

	f, err := os.CreateTemp("", "db-ca-*.pem")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(pem); err != nil {
		return "", err
	}

	return f.Name(), nil
}

// Health pings the database and reports basic pool statistics.
func Health(db *sql.DB) map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprintf("%d", db.Stats().OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", db.Stats().InUse)
	return stats
}
