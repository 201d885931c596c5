package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS notifications (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    hero_ids TEXT NOT NULL,
    accounts TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_type ON notifications (type);
`

// Journal appends notifications to a sqlite file so an off-system indexer
// can replay them in commit order.
type Journal struct {
	db *sql.DB
}

func OpenJournal(path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if path != ":memory:" {
		parent := filepath.Dir(path)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, stmt := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		journalSchema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init journal: %w", err)
		}
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) Notify(ctx context.Context, n domain.Notification) error {
	heroIDs, err := json.Marshal(nonNil(n.HeroIDs))
	if err != nil {
		return err
	}
	accounts, err := json.Marshal(nonNil(n.Accounts))
	if err != nil {
		return err
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}

	_, err = j.db.ExecContext(ctx, `
INSERT INTO notifications (id, type, hero_ids, accounts, data, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`,
		n.ID.String(), string(n.Type), string(heroIDs), string(accounts), string(data), n.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// After returns up to limit notifications journaled after the given
// sequence number, oldest first, with the sequence of the last row.
func (j *Journal) After(ctx context.Context, seq int64, limit int) ([]domain.Notification, int64, error) {
	rows, err := j.db.QueryContext(ctx, `
SELECT seq, id, type, hero_ids, accounts, data, created_at_ms
FROM notifications
WHERE seq > ?
ORDER BY seq ASC
LIMIT ?`, seq, limit)
	if err != nil {
		return nil, seq, err
	}
	defer rows.Close()

	var out []domain.Notification
	last := seq
	for rows.Next() {
		var (
			id, typ, heroIDs, accounts, data string
			createdAt                        int64
			n                                domain.Notification
		)
		if err := rows.Scan(&last, &id, &typ, &heroIDs, &accounts, &data, &createdAt); err != nil {
			return nil, seq, err
		}
		if n.ID, err = uuid.Parse(id); err != nil {
			return nil, seq, err
		}
		n.Type = domain.NotificationType(typ)
		if err := json.Unmarshal([]byte(heroIDs), &n.HeroIDs); err != nil {
			return nil, seq, err
		}
		if err := json.Unmarshal([]byte(accounts), &n.Accounts); err != nil {
			return nil, seq, err
		}
		if err := json.Unmarshal([]byte(data), &n.Data); err != nil {
			return nil, seq, err
		}
		n.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, n)
	}
	return out, last, rows.Err()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
