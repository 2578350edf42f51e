package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Ashu2380/mykart-sub001/internal/database"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const productIndex = "products"

// IndexProduct pousse (ou remplace) le document produit dans Elasticsearch.
// Best-effort : l'index est un accélérateur de recherche, pas la source
// de vérité.
func IndexProduct(ctx context.Context, p models.Product) {
	if database.Elastic == nil {
		return
	}

	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("⚠️ Erreur sérialisation produit %s: %v", p.ID, err)
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		log.Printf("⚠️ Erreur indexation produit %s: %v", p.ID, err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Indexation produit %s refusée: %s", p.ID, res.Status())
	}
}

// RemoveProductFromIndex retire un produit supprimé de l'index. Best-effort.
func RemoveProductFromIndex(ctx context.Context, productID string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: productIndex, DocumentID: productID}
	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		log.Printf("⚠️ Erreur suppression index produit %s: %v", productID, err)
		return
	}
	res.Body.Close()
}

// SearchProducts interroge Elasticsearch (multi_match sur nom, description
// et catégories). Retourne une erreur si l'index est indisponible : le
// handler retombe alors sur une recherche MongoDB.
func SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if database.Elastic == nil {
		return nil, fmt.Errorf("elasticsearch non configuré")
	}
	if limit <= 0 {
		limit = 20
	}

	var buf bytes.Buffer
	search := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "description", "category^2", "subCategory"},
				"fuzziness": "AUTO",
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(search); err != nil {
		return nil, err
	}

	res, err := database.Elastic.Search(
		database.Elastic.Search.WithContext(ctx),
		database.Elastic.Search.WithIndex(productIndex),
		database.Elastic.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("recherche elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}

// ExtractKeywords découpe un texte en mots-clés exploitables par le
// scoring des recommandations (minuscule, mots de 3+ lettres).
func ExtractKeywords(text string) map[string]bool {
	keywords := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if len(word) >= 3 {
			keywords[word] = true
		}
	}
	return keywords
}

// ScoreProduct : score heuristique d'un produit candidat contre un sac de
// mots-clés (nom pondéré x2, catégorie x3, description x1).
func ScoreProduct(keywords map[string]bool, p models.Product) int {
	score := 0
	for word := range ExtractKeywords(p.Name) {
		if keywords[word] {
			score += 2
		}
	}
	if keywords[strings.ToLower(p.Category)] {
		score += 3
	}
	if keywords[strings.ToLower(p.SubCategory)] {
		score += 2
	}
	for word := range ExtractKeywords(p.Description) {
		if keywords[word] {
			score++
		}
	}
	if p.Bestseller {
		score++ // léger bonus de popularité
	}
	return score
}
