package models

import "fmt"

// Mode enumerates the four mutually exclusive form workflows.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
	ModeStockIn
	ModeStockOut
)

var modeSlugs = map[Mode]string{
	ModeCreate:   "create",
	ModeUpdate:   "update",
	ModeStockIn:  "stock-in",
	ModeStockOut: "stock-out",
}

var modeTitles = map[Mode]string{
	ModeCreate:   "Cadastrar Nova Mercadoria",
	ModeUpdate:   "Atualizar Mercadoria",
	ModeStockIn:  "Registrar Entrada",
	ModeStockOut: "Registrar Saída",
}

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeCreate, ModeUpdate, ModeStockIn, ModeStockOut}
}

// String returns the URL slug of the mode.
func (m Mode) String() string {
	if s, ok := modeSlugs[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Title is the heading shown while the mode is active.
func (m Mode) Title() string {
	return modeTitles[m]
}

// IsStock reports whether the mode records a stock movement.
func (m Mode) IsStock() bool {
	return m == ModeStockIn || m == ModeStockOut
}

// ParseMode maps a URL slug back to a Mode.
func ParseMode(slug string) (Mode, error) {
	for m, s := range modeSlugs {
		if s == slug {
			return m, nil
		}
	}
	return ModeCreate, fmt.Errorf("unknown mode %q", slug)
}
