package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// Audit log writers. One immutable entry per affected item per transition,
// written inside the same unit of work that moves the record. Nothing in the
// core ever updates or deletes these tables.

// InsertValidationLogTx appends one validation_log entry.
func (s *Store) InsertValidationLogTx(ctx context.Context, tx *sqlx.Tx, entry *models.ValidationLog) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO validation_log
			(item_id, product_code, decision, origin, destination, observation, actor_username, actor_name)
		VALUES
			(:item_id, :product_code, :decision, :origin, :destination, :observation, :actor_username, :actor_name)`,
		entry)
	return err
}

// InsertRejectionLogTx appends one rejection_log entry.
func (s *Store) InsertRejectionLogTx(ctx context.Context, tx *sqlx.Tx, entry *models.RejectionLog) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO rejection_log
			(item_id, product_code, origin, destination, reason, actor_username, actor_name)
		VALUES
			(:item_id, :product_code, :origin, :destination, :reason, :actor_username, :actor_name)`,
		entry)
	return err
}

// InsertUpdateLogTx appends one update_log entry with the changed column
// names and full before/after snapshots.
func (s *Store) InsertUpdateLogTx(ctx context.Context, tx *sqlx.Tx, entry *models.UpdateLog) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO update_log
			(item_id, product_code, changed_columns, before_snapshot, after_snapshot, actor_username, actor_name)
		VALUES
			(:item_id, :product_code, :changed_columns, :before_snapshot, :after_snapshot, :actor_username, :actor_name)`,
		entry)
	return err
}

// InsertRemovalLogTx appends one removal_log entry.
func (s *Store) InsertRemovalLogTx(ctx context.Context, tx *sqlx.Tx, entry *models.RemovalLog) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO removal_log
			(item_id, product_code, supply_label, reason, actor_username, actor_name)
		VALUES
			(:item_id, :product_code, :supply_label, :reason, :actor_username, :actor_name)`,
		entry)
	return err
}

// HistoryFilter narrows the decision history. Zero values mean "no filter".
type HistoryFilter struct {
	Decision string
	Actor    string
	From     time.Time
	To       time.Time
}

// History returns the combined validation and rejection trail, newest first.
func (s *Store) History(ctx context.Context, f HistoryFilter) ([]models.HistoryEntry, error) {
	query := `
		SELECT item_id, product_code, decision, observation,
		       actor_username, actor_name, created_at
		FROM (
			SELECT item_id, product_code, decision, observation,
			       actor_username, actor_name, created_at
			FROM validation_log
			UNION ALL
			SELECT item_id, product_code, 'REJECTED' AS decision, reason AS observation,
			       actor_username, actor_name, created_at
			FROM rejection_log
		) h`

	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Decision != "" {
		add("h.decision = $%d", f.Decision)
	}
	if f.Actor != "" {
		add("h.actor_username = $%d", f.Actor)
	}
	if !f.From.IsZero() {
		add("h.created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("h.created_at < $%d", f.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY h.created_at DESC"

	entries := []models.HistoryEntry{}
	err := s.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}
