package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"catalog-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var validStores = map[string]struct{}{
	models.StorePending:    {},
	models.StoreApproved:   {},
	models.StoreCorrection: {},
	models.StoreRemoved:    {},
}

// Classification columns accepted for equality filters.
var classificationColumns = map[string]struct{}{
	"grp":       {},
	"category":  {},
	"segment":   {},
	"family":    {},
	"subfamily": {},
}

func checkStore(name string) error {
	if _, ok := validStores[name]; !ok {
		return fmt.Errorf("unknown record store: %s", name)
	}
	return nil
}

// InsertPending inserts a new item into the pending store, stamping the
// registration timestamp and filling the assigned identifier.
func (s *Store) InsertPending(ctx context.Context, item *models.CatalogItem) error {
	query := `
		INSERT INTO catalog_pending (
			reference, code_type, product_code,
			grp, category, segment, family, subfamily,
			supply_label, item, specification, brand, packaging, package_qty,
			quantity, unit, commercial_packaging, commercial_qty,
			description, synonym, keywords, registered_by
		) VALUES (
			:reference, :code_type, :product_code,
			:grp, :category, :segment, :family, :subfamily,
			:supply_label, :item, :specification, :brand, :packaging, :package_qty,
			:quantity, :unit, :commercial_packaging, :commercial_qty,
			:description, :synonym, :keywords, :registered_by
		)
		RETURNING id, registered_at`

	rows, err := s.db.NamedQueryContext(ctx, query, item)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		return fmt.Errorf("insert into catalog_pending returned no row")
	}
	return rows.Scan(&item.ID, &item.RegisteredAt)
}

// GetItem retrieves one item from a named store.
func (s *Store) GetItem(ctx context.Context, storeName string, id int64) (*models.CatalogItem, error) {
	if err := checkStore(storeName); err != nil {
		return nil, err
	}

	var item models.CatalogItem
	err := s.db.GetContext(ctx, &item,
		fmt.Sprintf("SELECT * FROM %s WHERE id = $1", storeName), id)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Store: storeName, IDs: []int64{id}}
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemTx is GetItem inside a transaction, locking the row.
func (s *Store) GetItemTx(ctx context.Context, tx *sqlx.Tx, storeName string, id int64) (*models.CatalogItem, error) {
	if err := checkStore(storeName); err != nil {
		return nil, err
	}

	var item models.CatalogItem
	err := tx.GetContext(ctx, &item,
		fmt.Sprintf("SELECT * FROM %s WHERE id = $1 FOR UPDATE", storeName), id)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Store: storeName, IDs: []int64{id}}
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SelectByIDsTx loads the requested items from a store inside a transaction,
// locking them for the rest of the unit of work. Ids absent from the store
// yield a NotFoundError naming exactly the missing ones: a retried transition
// must fail loudly rather than double-apply.
func (s *Store) SelectByIDsTx(ctx context.Context, tx *sqlx.Tx, storeName string, ids []int64) ([]models.CatalogItem, error) {
	if err := checkStore(storeName); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var items []models.CatalogItem
	err := tx.SelectContext(ctx, &items,
		fmt.Sprintf("SELECT * FROM %s WHERE id = ANY($1) ORDER BY id FOR UPDATE", storeName),
		pq.Array(ids))
	if err != nil {
		return nil, err
	}

	if len(items) != len(ids) {
		found := make(map[int64]struct{}, len(items))
		for _, it := range items {
			found[it.ID] = struct{}{}
		}
		var missing []int64
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &models.NotFoundError{Store: storeName, IDs: missing}
	}
	return items, nil
}

// CopyCommonTx copies the given ids from src to dst using the provided
// common-column list (see CommonColumns).
func (s *Store) CopyCommonTx(ctx context.Context, tx *sqlx.Tx, src, dst string, columns []string, ids []int64) error {
	if err := checkStore(src); err != nil {
		return err
	}
	if err := checkStore(dst); err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("no common columns between %s and %s", src, dst)
	}

	colList := strings.Join(columns, ", ")
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s WHERE id = ANY($1)",
		dst, colList, colList, src)

	res, err := tx.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n != int64(len(ids)) {
		return fmt.Errorf("copied %d of %d rows from %s to %s", n, len(ids), src, dst)
	}
	return nil
}

// DeleteByIDsTx removes ids from a store, returning the number deleted.
func (s *Store) DeleteByIDsTx(ctx context.Context, tx *sqlx.Tx, storeName string, ids []int64) (int64, error) {
	if err := checkStore(storeName); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", storeName), pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StampApprovalTx stamps the approval actor and timestamp on approved rows.
func (s *Store) StampApprovalTx(ctx context.Context, tx *sqlx.Tx, ids []int64, actor models.Actor) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE catalog_approved
		SET approved_by = $1, approved_at = NOW()
		WHERE id = ANY($2)`,
		actor.Name, pq.Array(ids))
	return err
}

// StampRejectionTx stamps rejection metadata and the reason on correction rows.
func (s *Store) StampRejectionTx(ctx context.Context, tx *sqlx.Tx, ids []int64, actor models.Actor, reason string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE catalog_correction
		SET rejected_by = $1, rejected_at = NOW(), reject_reason = $2
		WHERE id = ANY($3)`,
		actor.Name, reason, pq.Array(ids))
	return err
}

// ClearValidationMetaTx clears prior validation metadata after a resubmission
// so the pending store holds a clean record again.
func (s *Store) ClearValidationMetaTx(ctx context.Context, tx *sqlx.Tx, ids []int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE catalog_pending
		SET updated_by = NULL, updated_at = NULL
		WHERE id = ANY($1)`,
		pq.Array(ids))
	return err
}

// ApplyEditsTx updates the given columns of one row. Column names must come
// from the service's edit allow-list; only values travel as parameters.
func (s *Store) ApplyEditsTx(ctx context.Context, tx *sqlx.Tx, storeName string, id int64, columns []string, values []interface{}, actor models.Actor) error {
	if err := checkStore(storeName); err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}
	if len(columns) != len(values) {
		return fmt.Errorf("edit columns/values mismatch: %d vs %d", len(columns), len(values))
	}

	sets := make([]string, 0, len(columns)+2)
	args := make([]interface{}, 0, len(values)+2)
	for i, col := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, values[i])
	}
	sets = append(sets, fmt.Sprintf("updated_by = $%d", len(args)+1), "updated_at = NOW()")
	args = append(args, actor.Username)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		storeName, strings.Join(sets, ", "), len(args))

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.NotFoundError{Store: storeName, IDs: []int64{id}}
	}
	return nil
}

// ListMissingSupplyLabel returns approved items whose supply label was never
// filled in, oldest registrations first so the backlog drains in order.
func (s *Store) ListMissingSupplyLabel(ctx context.Context) ([]models.CatalogItem, error) {
	items := []models.CatalogItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT * FROM catalog_approved
		WHERE btrim(supply_label) = ''
		ORDER BY registered_at ASC, id ASC`)
	return items, err
}

// FillSupplyLabelTx sets the supply label of one approved item, only if it is
// still empty. Reports whether the row changed, so concurrent fills of the
// same backlog never overwrite each other.
func (s *Store) FillSupplyLabelTx(ctx context.Context, tx *sqlx.Tx, id int64, label string, actor models.Actor) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE catalog_approved
		SET supply_label = $1, updated_by = $2, updated_at = NOW()
		WHERE id = $3 AND btrim(supply_label) = ''`,
		label, actor.Username, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CodeExists reports whether a product code is present in a store.
func (s *Store) CodeExists(ctx context.Context, storeName, code string) (bool, error) {
	if err := checkStore(storeName); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE product_code = $1)", storeName), code)
	return exists, err
}

// FetchExistingCodes returns, in one round trip per store, which of the
// candidate codes are already present in pending and approved. Used by batch
// imports to avoid a query per row.
func (s *Store) FetchExistingCodes(ctx context.Context, codes []string) (pending, approved map[string]struct{}, err error) {
	pending = make(map[string]struct{})
	approved = make(map[string]struct{})
	if len(codes) == 0 {
		return pending, approved, nil
	}

	var hits []string
	err = s.db.SelectContext(ctx, &hits,
		"SELECT product_code FROM catalog_pending WHERE product_code = ANY($1)", pq.Array(codes))
	if err != nil {
		return nil, nil, err
	}
	for _, c := range hits {
		pending[c] = struct{}{}
	}

	hits = hits[:0]
	err = s.db.SelectContext(ctx, &hits,
		"SELECT product_code FROM catalog_approved WHERE product_code = ANY($1)", pq.Array(codes))
	if err != nil {
		return nil, nil, err
	}
	for _, c := range hits {
		approved[c] = struct{}{}
	}
	return pending, approved, nil
}

// Filter narrows a store listing. Zero values mean "no filter".
type Filter struct {
	RegisteredBy   string
	ProductCode    string
	Keyword        string
	Classification map[string]string
}

// buildListQuery assembles the parametrized listing statement. Classification
// keys outside the known column set are rejected rather than interpolated.
func buildListQuery(storeName string, f Filter) (string, []interface{}, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.RegisteredBy != "" {
		add("registered_by = $%d", f.RegisteredBy)
	}
	if f.ProductCode != "" {
		add("product_code = $%d", strings.TrimSpace(f.ProductCode))
	}
	if f.Keyword != "" {
		add("keywords ILIKE $%d", "%"+f.Keyword+"%")
	}
	for col, val := range f.Classification {
		if _, ok := classificationColumns[col]; !ok {
			return "", nil, fmt.Errorf("unknown classification column: %s", col)
		}
		add(col+" = $%d", val)
	}

	query := fmt.Sprintf("SELECT * FROM %s", storeName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY registered_at DESC, id DESC"
	return query, args, nil
}

// ListItems returns the current contents of a store, filtered.
func (s *Store) ListItems(ctx context.Context, storeName string, f Filter) ([]models.CatalogItem, error) {
	if err := checkStore(storeName); err != nil {
		return nil, err
	}

	query, args, err := buildListQuery(storeName, f)
	if err != nil {
		return nil, err
	}

	items := []models.CatalogItem{}
	err = s.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

// ListRemoved returns the removed archive joined with the latest removal log
// entry per item.
func (s *Store) ListRemoved(ctx context.Context) ([]models.RemovedItem, error) {
	items := []models.RemovedItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT r.*,
		       l.reason         AS removal_reason,
		       l.actor_username AS removed_by,
		       l.created_at     AS removed_at
		FROM catalog_removed r
		LEFT JOIN LATERAL (
			SELECT reason, actor_username, created_at
			FROM removal_log
			WHERE removal_log.item_id = r.id
			ORDER BY created_at DESC
			LIMIT 1
		) l ON TRUE
		ORDER BY l.created_at DESC NULLS LAST, r.id DESC`)
	return items, err
}
