package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Goods is a catalog entry (mercadoria) as exposed by the inventory backend.
type Goods struct {
	ID                 int64  `json:"id" bson:"id"`
	Name               string `json:"nome" bson:"nome"`
	RegistrationNumber string `json:"numero_registro" bson:"numero_registro"`
	Manufacturer       string `json:"fabricante" bson:"fabricante"`
	Type               string `json:"tipo" bson:"tipo"`
	Description        string `json:"descricao" bson:"descricao"`
}

// goodsTupleLen is the number of positional fields the backend sends per row:
// [id, name, registrationNumber, manufacturer, type, description].
const goodsTupleLen = 6

// UnmarshalJSON accepts either the backend's positional row or an object.
func (g *Goods) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return g.decodeTuple(trimmed)
	}

	type plain Goods
	var out plain
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fmt.Errorf("decode goods object: %w", err)
	}
	*g = Goods(out)
	return nil
}

func (g *Goods) decodeTuple(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("decode goods row: %w", err)
	}
	if len(row) < goodsTupleLen {
		return fmt.Errorf("goods row has %d fields, want %d", len(row), goodsTupleLen)
	}

	id, err := decodeID(row[0])
	if err != nil {
		return err
	}

	fields := make([]string, goodsTupleLen-1)
	for i := range fields {
		fields[i], err = decodeText(row[i+1])
		if err != nil {
			return fmt.Errorf("goods row field %d: %w", i+1, err)
		}
	}

	*g = Goods{
		ID:                 id,
		Name:               fields[0],
		RegistrationNumber: fields[1],
		Manufacturer:       fields[2],
		Type:               fields[3],
		Description:        fields[4],
	}
	return nil
}

func decodeID(raw json.RawMessage) (int64, error) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("goods id: %w", err)
	}
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(t)
	default:
		return 0, fmt.Errorf("goods id has unexpected type %T", v)
	}
	id, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("goods id %q: %w", n, err)
	}
	return id, nil
}

// decodeText turns a JSON scalar into its display text; null becomes "".
func decodeText(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}
