// internal/intake/ledger/ledger.go
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"esports-waitlist/internal/common/database"
	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/common/logger"
)

const (
	FormWaitlist     = "waitlist"
	FormPartnerships = "partnerships"
)

// Entry is one submission attempt that reached the upstream.
type Entry struct {
	Form       string
	SessionID  string
	Email      string
	Status     string
	HTTPStatus int
	Message    string
	Payload    interface{}
}

// Ledger records submission attempts. Implementations must be safe for
// concurrent use.
type Ledger interface {
	Record(ctx context.Context, e Entry) (string, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS intake_submissions (
	id          UUID PRIMARY KEY,
	form        TEXT NOT NULL,
	session_id  TEXT,
	email       TEXT NOT NULL,
	status      TEXT NOT NULL,
	http_status INTEGER,
	message     TEXT,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertSQL = `
		INSERT INTO intake_submissions (
			id, form, session_id, email, status, http_status, message, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// PostgresLedger appends entries to the intake_submissions table.
type PostgresLedger struct {
	db     *database.PostgresClient
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresLedger(db *database.PostgresClient, log logger.Logger) *PostgresLedger {
	return &PostgresLedger{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "ledger"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnsureSchema creates the ledger table if it does not exist.
func (l *PostgresLedger) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.Exec(ctx, schemaSQL); err != nil {
		return errors.NewDatabaseConnectionFailedError(fmt.Errorf("create intake_submissions: %w", err))
	}
	return nil
}

func (l *PostgresLedger) Record(ctx context.Context, e Entry) (string, error) {
	payloadJSON, err := json.Marshal(e.Payload)
	if err != nil {
		return "", errors.NewLedgerInsertFailedError(fmt.Errorf("marshal payload: %w", err))
	}

	id := uuid.New().String()
	_, err = l.db.Exec(ctx, insertSQL,
		id,
		e.Form,
		nullable(e.SessionID),
		e.Email,
		e.Status,
		e.HTTPStatus,
		nullable(e.Message),
		payloadJSON,
		l.now(),
	)
	if err != nil {
		return "", errors.NewLedgerInsertFailedError(err)
	}

	l.logger.Debug("submission recorded", map[string]interface{}{
		"entryId": id,
		"form":    e.Form,
		"status":  e.Status,
	})
	return id, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// NopLedger is used when no database is configured.
type NopLedger struct{}

func (NopLedger) Record(context.Context, Entry) (string, error) { return "", nil }
