package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIngredients(t *testing.T) {
	t.Run("trims lowercases and drops empties", func(t *testing.T) {
		got := NormalizeIngredients([]string{"  Peanut Butter ", "SUGAR", "", "   "})
		assert.Equal(t, []string{"peanut butter", "sugar"}, got)
	})

	t.Run("sorts output", func(t *testing.T) {
		got := NormalizeIngredients([]string{"salt", "flour", "milk"})
		assert.Equal(t, []string{"flour", "milk", "salt"}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeIngredients([]string{"Milk", "Flour "})
		twice := NormalizeIngredients(once)
		assert.Equal(t, once, twice)
	})

	t.Run("permutation invariant", func(t *testing.T) {
		a := NormalizeIngredients([]string{"milk", "flour", "salt"})
		b := NormalizeIngredients([]string{"SALT", " flour", "Milk"})
		assert.Equal(t, a, b)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, NormalizeIngredients(nil))
		assert.Empty(t, NormalizeIngredients([]string{"", "  "}))
	})
}

func TestContentHash(t *testing.T) {
	t.Run("equal lists yield equal keys", func(t *testing.T) {
		a := ContentHash(NormalizeIngredients([]string{"Milk", "flour"}))
		b := ContentHash(NormalizeIngredients([]string{"flour", "milk "}))
		assert.Equal(t, a, b)
	})

	t.Run("different lists yield different keys", func(t *testing.T) {
		a := ContentHash([]string{"flour", "milk"})
		b := ContentHash([]string{"flour", "salt"})
		assert.NotEqual(t, a, b)
	})

	t.Run("fixed-length hex digest", func(t *testing.T) {
		key := ContentHash([]string{"milk"})
		assert.Len(t, key, 64)
		assert.Regexp(t, "^[0-9a-f]+$", key)
	})
}
