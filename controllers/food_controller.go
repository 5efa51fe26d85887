package controllers

import (
	"net/http"
	"strings"

	"github.com/kthiza/protein-tracking-app/nutrition"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Table *nutrition.Table
}

func NewFoodController(table *nutrition.Table) *FoodController {
	return &FoodController{Table: table}
}

// Suggestions returns the known food names grouped by category, optionally
// narrowed by a ?q= prefix for autocomplete.
func (fc *FoodController) Suggestions(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	grouped := fc.Table.ByCategory()
	out := make(map[string][]string, len(grouped))
	for cat, names := range grouped {
		if q == "" {
			out[string(cat)] = names
			continue
		}
		var matched []string
		for _, name := range names {
			if strings.Contains(name, q) {
				matched = append(matched, name)
			}
		}
		if len(matched) > 0 {
			out[string(cat)] = matched
		}
	}

	c.JSON(http.StatusOK, gin.H{"foods": out})
}

// Detail returns the per-100g values for a single food.
func (fc *FoodController) Detail(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Param("name")))
	entry, ok := fc.Table.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     entry.Name,
		"protein":  entry.Protein,
		"calories": entry.Calories,
		"category": entry.Category,
	})
}
