package services

import (
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Cotton Kurta, for Men! (summer)")

	assert.True(t, keywords["cotton"])
	assert.True(t, keywords["kurta"])
	assert.True(t, keywords["men"])
	assert.True(t, keywords["summer"])
	// Mots trop courts filtrés
	assert.False(t, keywords["a"])
	assert.True(t, keywords["for"]) // 3 lettres, gardé
}

func TestExtractKeywordsShortWords(t *testing.T) {
	keywords := ExtractKeywords("a un of")
	assert.Empty(t, keywords)
}

func TestScoreProduct(t *testing.T) {
	keywords := ExtractKeywords("cotton kurta ethnic wear")

	p := models.Product{
		Name:        "Cotton Kurta",
		Category:    "Ethnic",
		SubCategory: "Kurta",
		Description: "Comfortable cotton wear for summer",
	}

	// nom: cotton(2) + kurta(2), catégorie: "ethnic"(3),
	// sous-catégorie: "kurta"(2), description: cotton(1) + wear(1)
	assert.Equal(t, 11, ScoreProduct(keywords, p))

	p.Bestseller = true
	assert.Equal(t, 12, ScoreProduct(keywords, p))
}

func TestScoreProductNoOverlap(t *testing.T) {
	keywords := ExtractKeywords("running shoes")
	p := models.Product{
		Name:     "Silk Saree",
		Category: "Ethnic",
	}
	assert.Equal(t, 0, ScoreProduct(keywords, p))
}
