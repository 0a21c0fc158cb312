package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/akhilesh1566/Website-Chatbot/internal/config"
	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

type turnRow struct {
	bun.BaseModel `bun:"table:conversation_turns,alias:t"`
	ID            int64     `bun:"id,pk,autoincrement"`
	SessionID     string    `bun:"session_id,notnull"`
	Question      string    `bun:"question,notnull"`
	Answer        string    `bun:"answer,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// PostgresStore persists conversation turns across restarts.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(ctx context.Context, cfg *config.HistoryConfig) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if _, err := db.NewCreateTable().Model((*turnRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Turns(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	var rows []turnRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	turns := make([]models.ConversationTurn, 0, len(rows))
	for _, r := range rows {
		turns = append(turns, models.ConversationTurn{Question: r.Question, Answer: r.Answer})
	}
	return turns, nil
}

func (s *PostgresStore) Append(ctx context.Context, sessionID string, turn models.ConversationTurn) error {
	row := &turnRow{
		SessionID: sessionID,
		Question:  turn.Question,
		Answer:    turn.Answer,
	}
	_, err := s.db.NewInsert().Model(row).Exec(ctx)
	return err
}

func (s *PostgresStore) Reset(ctx context.Context, sessionID string) error {
	_, err := s.db.NewDelete().
		Model((*turnRow)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
