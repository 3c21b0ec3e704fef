package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/repository"
)

var conversationColumns = []string{"id", "user_id", "scenario", "difficulty", "status", "messages", "started_at", "ended_at"}

type conversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new ConversationRepository implementation
func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func scanConversation(row rowScanner) (*models.Conversation, error) {
	var (
		c        models.Conversation
		messages string
		endedAt  sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Scenario, &c.Difficulty, &c.Status, &messages, &c.StartedAt, &endedAt); err != nil {
		return nil, err
	}
	msgs, err := decodeJSON[models.Message](messages)
	if err != nil {
		return nil, err
	}
	c.Messages = msgs
	if endedAt.Valid {
		t := endedAt.Time
		c.EndedAt = &t
	}
	return &c, nil
}

func (r *conversationRepository) Create(ctx context.Context, c models.Conversation) error {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("creating conversation: id=%s, user_id=%s, scenario=%s", c.ID, c.UserID, c.Scenario)

	messages, err := encodeJSON(c.Messages)
	if err != nil {
		return err
	}
	var endedAt any
	if c.EndedAt != nil {
		endedAt = c.EndedAt.UTC()
	}

	query, args, err := sqlBuilder.Insert("conversations").
		Columns(conversationColumns...).
		Values(c.ID, c.UserID, c.Scenario, c.Difficulty, c.Status, messages, c.StartedAt.UTC(), endedAt).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert conversation: %v", err)
		return err
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id string) (*models.Conversation, error) {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("getting conversation: id=%s", id)

	query, args, err := sqlBuilder.Select(conversationColumns...).
		From("conversations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("conversation not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get conversation: %v", err)
		return nil, err
	}
	return c, nil
}

func (r *conversationRepository) List(ctx context.Context, filter models.ConversationFilter) ([]models.Conversation, error) {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("listing conversations: user_id=%s, status=%s, limit=%d", filter.UserID, filter.Status, filter.Limit)

	q := sqlBuilder.Select(conversationColumns...).From("conversations")
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.StartedBefore != nil {
		q = q.Where(squirrel.Lt{"started_at": filter.StartedBefore.UTC()})
	}
	q = paginate(q.OrderBy("started_at DESC", "rowid DESC"), filter.Limit, filter.Offset)

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list conversations: %v", err)
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			log.Error("failed to scan conversation row: %v", err)
			return nil, err
		}
		conversations = append(conversations, *c)
	}
	log.Debug("found %d conversations", len(conversations))
	return conversations, rows.Err()
}

// AppendMessages adds messages to the stored transcript in one transaction.
func (r *conversationRepository) AppendMessages(ctx context.Context, id string, msgs ...models.Message) error {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("appending %d messages to conversation: id=%s", len(msgs), id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var raw string
		if err := tx.QueryRowContext(ctx, `SELECT messages FROM conversations WHERE id = ?`, id).Scan(&raw); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("conversation %s: %w", id, err)
			}
			log.Error("failed to load messages: %v", err)
			return err
		}
		existing, err := decodeJSON[models.Message](raw)
		if err != nil {
			return err
		}
		encoded, err := encodeJSON(append(existing, msgs...))
		if err != nil {
			return err
		}

		query, args, err := sqlBuilder.Update("conversations").
			Set("messages", encoded).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to update messages: %v", err)
			return err
		}
		return nil
	})
}

func (r *conversationRepository) UpdateStatus(ctx context.Context, id string, status models.ConversationStatus, endedAt *time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("updating conversation status: id=%s, status=%s", id, status)

	var ended any
	if endedAt != nil {
		ended = endedAt.UTC()
	}
	query, args, err := sqlBuilder.Update("conversations").
		Set("status", status).
		Set("ended_at", ended).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update conversation status: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("conversation %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
