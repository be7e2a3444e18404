package models

// TransactionDraft is the in-progress form input. It is sent as-is to the
// stock and update endpoints, so the json names follow the backend.
type TransactionDraft struct {
	GoodsID            int64  `json:"mercadoria_id"`
	Quantity           string `json:"quantidade"`
	Timestamp          string `json:"data_hora"`
	Location           string `json:"local"`
	Name               string `json:"nome"`
	RegistrationNumber string `json:"numero_registro"`
	Manufacturer       string `json:"fabricante"`
	Type               string `json:"tipo"`
	Description        string `json:"descricao"`
}

// HasSelection reports whether the draft references a catalog entry.
func (d TransactionDraft) HasSelection() bool {
	return d.GoodsID != 0
}

// FillFromGoods copies every goods field into the draft, keeping quantity,
// timestamp and location untouched.
func (d *TransactionDraft) FillFromGoods(g Goods) {
	d.GoodsID = g.ID
	d.Name = g.Name
	d.RegistrationNumber = g.RegistrationNumber
	d.Manufacturer = g.Manufacturer
	d.Type = g.Type
	d.Description = g.Description
}

// ResetMovement clears only the movement fields after a stock transaction.
// Goods details stay in place.
func (d *TransactionDraft) ResetMovement() {
	d.GoodsID = 0
	d.Quantity = ""
	d.Timestamp = ""
	d.Location = ""
}

// Clear empties every field.
func (d *TransactionDraft) Clear() {
	*d = TransactionDraft{}
}
