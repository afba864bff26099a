package vocab_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/okonen/lingoclash/internal/game/vocab"
)

func validItem() vocab.Item {
	return vocab.Item{
		ID:        "animals/perro",
		Word:      "perro",
		Gloss:     "dog",
		Level:     2,
		Category:  vocab.Regular,
		BasePower: 25,
	}
}

func TestNewComplexityLevel(t *testing.T) {
	for n := 1; n <= 5; n++ {
		level, err := vocab.NewComplexityLevel(n)
		require.NoError(t, err)
		assert.Equal(t, vocab.ComplexityLevel(n), level)
		assert.True(t, level.Valid())
	}
	for _, bad := range []int{0, 6, -1, 100} {
		_, err := vocab.NewComplexityLevel(bad)
		assert.ErrorIs(t, err, vocab.ErrInvalidComplexityLevel, "n=%d", bad)
	}
}

func TestParseCategory(t *testing.T) {
	got, err := vocab.ParseCategory("regular")
	require.NoError(t, err)
	assert.Equal(t, vocab.Regular, got)

	got, err = vocab.ParseCategory("special")
	require.NoError(t, err)
	assert.Equal(t, vocab.Special, got)

	for _, bad := range []string{"", "Regular", "rare"} {
		_, err := vocab.ParseCategory(bad)
		assert.ErrorIs(t, err, vocab.ErrInvalidCategory, "label=%q", bad)
	}
}

func TestValidateBasePower(t *testing.T) {
	assert.NoError(t, vocab.ValidateBasePower(0.5))
	assert.NoError(t, vocab.ValidateBasePower(40))
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, vocab.ValidateBasePower(bad), vocab.ErrInvalidBasePower, "v=%v", bad)
	}
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, validItem().Validate())

	noID := validItem()
	noID.ID = ""
	assert.Error(t, noID.Validate())

	noWord := validItem()
	noWord.Word = ""
	assert.Error(t, noWord.Validate())

	badLevel := validItem()
	badLevel.Level = 9
	assert.ErrorIs(t, badLevel.Validate(), vocab.ErrInvalidComplexityLevel)

	badCategory := validItem()
	badCategory.Category = vocab.Category(3)
	assert.ErrorIs(t, badCategory.Validate(), vocab.ErrInvalidCategory)

	badPower := validItem()
	badPower.BasePower = -2
	assert.ErrorIs(t, badPower.Validate(), vocab.ErrInvalidBasePower)
}

func TestItem_Validate_Property_AcceptsAuthoringDomain(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		item := validItem()
		item.Level = vocab.ComplexityLevel(rapid.IntRange(1, 5).Draw(rt, "level"))
		item.Category = rapid.SampledFrom([]vocab.Category{vocab.Regular, vocab.Special}).Draw(rt, "category")
		item.BasePower = rapid.Float64Range(0.1, 1000).Draw(rt, "base_power")
		assert.NoError(rt, item.Validate())
	})
}
