package transaction

import "github.com/mamadbah2/stockdesk/internal/domain/models"

// SelectCreate activates the goods registration workflow.
func (f *Form) SelectCreate() { f.selectMode(models.ModeCreate) }

// SelectUpdate activates the update/delete workflow.
func (f *Form) SelectUpdate() { f.selectMode(models.ModeUpdate) }

// SelectStockIn activates stock-in recording.
func (f *Form) SelectStockIn() { f.selectMode(models.ModeStockIn) }

// SelectStockOut activates stock-out recording.
func (f *Form) SelectStockOut() { f.selectMode(models.ModeStockOut) }

// SelectMode dispatches to the matching Select* action.
func (f *Form) SelectMode(m models.Mode) {
	switch m {
	case models.ModeUpdate:
		f.SelectUpdate()
	case models.ModeStockIn:
		f.SelectStockIn()
	case models.ModeStockOut:
		f.SelectStockOut()
	default:
		f.SelectCreate()
	}
}

// Mode returns the active mode.
func (f *Form) Mode() models.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *Form) selectMode(next models.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Leaving Update drops the search so it does not resurface stale.
	if f.mode == models.ModeUpdate && next != models.ModeUpdate {
		f.query = ""
		f.hideSuggestions = false
		f.filtered = FilterGoods(f.catalog, "")
	}
	f.mode = next
}
