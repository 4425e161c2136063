package service

import (
	"testing"

	"catalog-service/internal/derive"
	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func sampleItem() *models.CatalogItem {
	return &models.CatalogItem{
		ID:                  7,
		CodeType:            "EAN",
		ProductCode:         "789100001",
		Group:               "ALIMENTOS",
		Category:            "MERCEARIA",
		Segment:             "BASICO",
		Subfamily:           "ARROZ",
		Family:              "GRAOS",
		Item:                "ARROZ BRANCO",
		Specification:       "TIPO: 1",
		Brand:               "MARCA X",
		Packaging:           "SACO",
		PackageQty:          1,
		Quantity:            5,
		Unit:                "KG",
		CommercialPackaging: "FARDO",
		CommercialQty:       12,
	}
}

func TestValidateRequired(t *testing.T) {
	item := sampleItem()
	assert.NoError(t, validateRequired(item))

	// Reference and supply label stay optional.
	item.Reference = ""
	item.SupplyLabel = ""
	assert.NoError(t, validateRequired(item))

	item.Brand = "  "
	item.Quantity = 0
	err := validateRequired(item)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Missing, "brand")
	assert.Contains(t, verr.Missing, "quantity")
	assert.NotContains(t, verr.Missing, "product_code")
}

func TestComputeDerived(t *testing.T) {
	item := sampleItem()
	computeDerived(item)

	assert.Equal(t, "1", item.Description)
	assert.Equal(t, "ARROZ BRANCO 1 MARCA X 5KG COMERCIALIZADO EM SACO COM 12 FARDO", item.Synonym)
	assert.Equal(t, "ARROZ, ARROZ BRANCO, MARCA X, SACO, 5KG", item.Keywords)
}

func TestFlagBatchDuplicates(t *testing.T) {
	flagged := FlagBatchDuplicates([]string{"A", "B", "A", "C", "B", "A"})

	// Every occurrence of a repeated code is flagged, including the first:
	// nothing in the batch says which row is the right one.
	assert.Contains(t, flagged, 0)
	assert.Contains(t, flagged, 1)
	assert.Contains(t, flagged, 2)
	assert.Contains(t, flagged, 4)
	assert.Contains(t, flagged, 5)
	assert.NotContains(t, flagged, 3)

	assert.Empty(t, FlagBatchDuplicates([]string{"A", "B", "C"}))
	// Blank codes fail validation separately; they never collide with each other.
	assert.Empty(t, FlagBatchDuplicates([]string{"", " ", ""}))
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, uniqueIDs([]int64{3, 1, 3, 2, 1, 3}))
	assert.Equal(t, []int64{9}, uniqueIDs([]int64{9}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestSanitizeEditsFiltersAllowlist(t *testing.T) {
	svc := &LifecycleService{logger: zap.NewNop()}
	item := sampleItem()

	cols, vals, changed := svc.sanitizeEdits(item, FieldEdits{
		"brand":        "MARCA Y",
		"synonym":      "HANDCRAFTED", // derived, not editable
		"approved_by":  "someone",     // audit metadata, not editable
		"product_code": item.ProductCode,
	})

	assert.Equal(t, []string{"brand"}, cols)
	assert.Equal(t, []interface{}{"MARCA Y"}, vals)
	assert.Equal(t, []string{"brand"}, changed)
}

func TestSanitizeEditsSkipsUnchangedValues(t *testing.T) {
	svc := &LifecycleService{logger: zap.NewNop()}
	item := sampleItem()

	cols, _, changed := svc.sanitizeEdits(item, FieldEdits{
		"brand":    "MARCA X",
		"quantity": float64(5),
	})
	assert.Empty(t, cols)
	assert.Empty(t, changed)

	cols, _, changed = svc.sanitizeEdits(item, FieldEdits{
		"quantity": float64(2),
		"unit":     "L",
	})
	assert.Equal(t, []string{"quantity", "unit"}, cols)
	assert.Equal(t, []string{"quantity", "unit"}, changed)
}

func TestSanitizeEditsDeterministicOrder(t *testing.T) {
	svc := &LifecycleService{logger: zap.NewNop()}
	item := sampleItem()

	for i := 0; i < 10; i++ {
		cols, _, _ := svc.sanitizeEdits(item, FieldEdits{
			"unit":     "L",
			"brand":    "MARCA Z",
			"category": "BEBIDAS",
		})
		assert.Equal(t, []string{"brand", "category", "unit"}, cols)
	}
}

func TestRecomputePlanFromChangedColumns(t *testing.T) {
	// Editing only the brand leaves the description alone but refreshes
	// synonym and keywords.
	r := derive.Needed([]string{"brand"})
	assert.False(t, r.Description)
	assert.True(t, r.Synonym)
	assert.True(t, r.Keywords)

	r = derive.Needed([]string{"specification"})
	assert.True(t, r.Description)
	assert.True(t, r.Synonym)

	r = derive.Needed([]string{"reference"})
	assert.False(t, r.Any())
}

func TestApproveTransition(t *testing.T) {
	// Requires a live database for the copy/stamp/log/delete unit.
	t.Skip("Requires Postgres instance")
}
