package models

import "time"

// CatalogItem represents one purchasable supply moving through the review pipeline.
// The same column set is shared by all four stores; stage metadata columns are
// nullable and only populated by the store that owns them.
type CatalogItem struct {
	ID        int64  `db:"id" json:"id"`
	Reference string `db:"reference" json:"reference,omitempty"`

	CodeType    string `db:"code_type" json:"code_type"`
	ProductCode string `db:"product_code" json:"product_code"`

	Group     string `db:"grp" json:"group"`
	Category  string `db:"category" json:"category"`
	Segment   string `db:"segment" json:"segment"`
	Family    string `db:"family" json:"family"`
	Subfamily string `db:"subfamily" json:"subfamily"`

	SupplyLabel   string  `db:"supply_label" json:"supply_label,omitempty"`
	Item          string  `db:"item" json:"item"`
	Specification string  `db:"specification" json:"specification"`
	Brand         string  `db:"brand" json:"brand"`
	Packaging     string  `db:"packaging" json:"packaging"`
	PackageQty    int     `db:"package_qty" json:"package_qty"`
	Quantity      float64 `db:"quantity" json:"quantity"`
	Unit          string  `db:"unit" json:"unit"`

	CommercialPackaging string `db:"commercial_packaging" json:"commercial_packaging"`
	CommercialQty       int    `db:"commercial_qty" json:"commercial_qty"`

	// Derived fields, recomputed by the lifecycle core, never edited directly.
	Description string `db:"description" json:"description"`
	Synonym     string `db:"synonym" json:"synonym"`
	Keywords    string `db:"keywords" json:"keywords"`

	RegisteredBy string    `db:"registered_by" json:"registered_by"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`

	ApprovedBy   *string    `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	RejectedBy   *string    `db:"rejected_by" json:"rejected_by,omitempty"`
	RejectedAt   *time.Time `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectReason *string    `db:"reject_reason" json:"reject_reason,omitempty"`
	UpdatedBy    *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Actor identifies who requested a transition. Passed explicitly into every
// operation; the core holds no ambient session.
type Actor struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Record stores. An item id exists in exactly one of these at a time.
const (
	StorePending    = "catalog_pending"
	StoreApproved   = "catalog_approved"
	StoreCorrection = "catalog_correction"
	StoreRemoved    = "catalog_removed"
)

// ValidationLog records an approval or resubmission decision.
type ValidationLog struct {
	ID            int64     `db:"id" json:"id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	ProductCode   string    `db:"product_code" json:"product_code"`
	Decision      string    `db:"decision" json:"decision"`
	Origin        string    `db:"origin" json:"origin"`
	Destination   string    `db:"destination" json:"destination"`
	Observation   string    `db:"observation" json:"observation"`
	ActorUsername string    `db:"actor_username" json:"actor_username"`
	ActorName     string    `db:"actor_name" json:"actor_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RejectionLog records a rejection into the correction store.
type RejectionLog struct {
	ID            int64     `db:"id" json:"id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	ProductCode   string    `db:"product_code" json:"product_code"`
	Origin        string    `db:"origin" json:"origin"`
	Destination   string    `db:"destination" json:"destination"`
	Reason        string    `db:"reason" json:"reason"`
	ActorUsername string    `db:"actor_username" json:"actor_username"`
	ActorName     string    `db:"actor_name" json:"actor_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// UpdateLog records an in-place edit of an approved item, with the changed
// column names and full before/after snapshots.
type UpdateLog struct {
	ID             int64     `db:"id" json:"id"`
	ItemID         int64     `db:"item_id" json:"item_id"`
	ProductCode    string    `db:"product_code" json:"product_code"`
	ChangedColumns string    `db:"changed_columns" json:"changed_columns"`
	Before         []byte    `db:"before_snapshot" json:"before_snapshot"`
	After          []byte    `db:"after_snapshot" json:"after_snapshot"`
	ActorUsername  string    `db:"actor_username" json:"actor_username"`
	ActorName      string    `db:"actor_name" json:"actor_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// RemovalLog records an archival out of the approved catalog. Product code and
// supply label are denormalized for quick lookup after the row leaves the store.
type RemovalLog struct {
	ID            int64     `db:"id" json:"id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	ProductCode   string    `db:"product_code" json:"product_code"`
	SupplyLabel   string    `db:"supply_label" json:"supply_label"`
	Reason        string    `db:"reason" json:"reason"`
	ActorUsername string    `db:"actor_username" json:"actor_username"`
	ActorName     string    `db:"actor_name" json:"actor_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Decision kinds stored in validation_log.
const (
	DecisionApproved    = "APPROVED"
	DecisionResubmitted = "RESUBMITTED"
)

// RemovedItem is a removed row joined with its latest removal log entry.
type RemovedItem struct {
	CatalogItem
	RemovalReason *string    `db:"removal_reason" json:"removal_reason,omitempty"`
	RemovedBy     *string    `db:"removed_by" json:"removed_by,omitempty"`
	RemovedAt     *time.Time `db:"removed_at" json:"removed_at,omitempty"`
}

// HistoryEntry is one row of the combined validation/rejection history.
type HistoryEntry struct {
	ItemID        int64     `db:"item_id" json:"item_id"`
	ProductCode   string    `db:"product_code" json:"product_code"`
	Decision      string    `db:"decision" json:"decision"`
	Observation   string    `db:"observation" json:"observation"`
	ActorUsername string    `db:"actor_username" json:"actor_username"`
	ActorName     string    `db:"actor_name" json:"actor_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
