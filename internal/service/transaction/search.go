package transaction

import (
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// FilterGoods returns the entries whose name contains query, ignoring case.
// An empty query returns the whole catalog. The input slice is never modified.
//
// This is a linear scan on every keystroke; fine for catalogs of a few
// thousand entries.
func FilterGoods(catalog []models.Goods, query string) []models.Goods {
	if query == "" {
		return catalog
	}

	needle := strings.ToLower(query)
	filtered := make([]models.Goods, 0, len(catalog))
	for _, g := range catalog {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// Search updates the query and returns the matching suggestions.
func (f *Form) Search(query string) []models.Goods {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.query = query
	f.hideSuggestions = false
	f.filtered = FilterGoods(f.catalog, query)
	return f.filtered
}

// SelectSuggestion copies the catalog entry into the draft, puts its name in
// the search box and hides the suggestion list. The parent is not refreshed:
// nothing changed on the backend yet.
func (f *Form) SelectSuggestion(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.mode != models.ModeUpdate {
		return ErrWrongMode
	}

	goods, ok := findGoods(f.catalog, id)
	if !ok {
		return ErrUnknownGoods
	}

	f.draft.FillFromGoods(goods)
	f.query = goods.Name
	f.filtered = nil
	f.hideSuggestions = true
	return nil
}

func findGoods(catalog []models.Goods, id int64) (models.Goods, bool) {
	for _, g := range catalog {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goods{}, false
}
