package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpecification(t *testing.T) {
	pairs, dropped := ParseSpecification("A: 1; B: 2")
	assert.Equal(t, []SpecPair{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}}, pairs)
	assert.Zero(t, dropped)

	pairs, dropped = ParseSpecification("")
	assert.Empty(t, pairs)
	assert.Zero(t, dropped)

	// Malformed segments (no colon) are dropped, not an error
	pairs, dropped = ParseSpecification("COR: AZUL; SEM VALOR; PESO: 2KG")
	assert.Len(t, pairs, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "AZUL", pairs[0].Value)
	assert.Equal(t, "2KG", pairs[1].Value)
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "1 2", Description("A: 1; B: 2"))
	assert.Equal(t, "", Description(""))
	assert.Equal(t, "AZUL 500ML", Description("COR: AZUL; VOLUME: 500ML"))
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder("-"))
	assert.True(t, IsPlaceholder("--"))
	assert.True(t, IsPlaceholder(" - - "))
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("   "))
	assert.False(t, IsPlaceholder("MARCA"))
	assert.False(t, IsPlaceholder("A-B"))
}

func TestQuantityToken(t *testing.T) {
	assert.Equal(t, "2KG", QuantityToken(2, "KG"))
	assert.Equal(t, "2.5KG", QuantityToken(2.5, "KG"))
	assert.Equal(t, "", QuantityToken(0, "KG"))
	assert.Equal(t, "", QuantityToken(-1, "KG"))
}

func TestSynonymOmitsPlaceholdersAndUnitCommercialQty(t *testing.T) {
	got := Synonym("ITEM", "DESC", "-", 2, "KG", "-", 1, "CX")
	assert.Equal(t, "ITEM DESC 2KG", got)
}

func TestSynonymFull(t *testing.T) {
	got := Synonym("ARROZ", "BRANCO TIPO1", "MARCA X", 5, "KG", "SACO", 12, "FARDO")
	assert.Equal(t, "ARROZ BRANCO TIPO1 MARCA X 5KG COMERCIALIZADO EM SACO COM 12 FARDO", got)
}

func TestSynonymCollapsesWhitespace(t *testing.T) {
	got := Synonym("  ITEM ", " DESC  COM ESPACO ", "", 0, "", "", 0, "")
	assert.Equal(t, "ITEM DESC COM ESPACO", got)
}

func TestKeywordsSubfamilyFallback(t *testing.T) {
	got := Keywords("-", "ITEM", "MARCA", "CAIXA", 0, "KG", "FAMILIA")
	assert.Equal(t, "FAMILIA, ITEM, MARCA, CAIXA", got)
}

func TestKeywordsWithQuantityToken(t *testing.T) {
	got := Keywords("SUB", "ITEM", "MARCA", "CAIXA", 2, "KG", "FAMILIA")
	assert.Equal(t, "SUB, ITEM, MARCA, CAIXA, 2KG", got)
}

func TestKeywordsSkipsEmptyParts(t *testing.T) {
	got := Keywords("SUB", "ITEM", "-", "-", 0, "", "FAMILIA")
	assert.Equal(t, "SUB, ITEM", got)
}

func TestNeeded(t *testing.T) {
	r := Needed([]string{"specification"})
	assert.True(t, r.Description)
	assert.True(t, r.Synonym)
	assert.False(t, r.Keywords)

	r = Needed([]string{"subfamily"})
	assert.False(t, r.Description)
	assert.False(t, r.Synonym)
	assert.True(t, r.Keywords)

	r = Needed([]string{"brand", "quantity"})
	assert.False(t, r.Description)
	assert.True(t, r.Synonym)
	assert.True(t, r.Keywords)

	// Unrelated derived fields stay untouched
	r = Needed([]string{"reference", "code_type"})
	assert.False(t, r.Any())
}
