package models

import "time"

// ActivityKind names the mutation recorded in the activity journal.
type ActivityKind string

const (
	ActivityStockIn  ActivityKind = "stock_in"
	ActivityStockOut ActivityKind = "stock_out"
	ActivityUpdate   ActivityKind = "update"
	ActivityDelete   ActivityKind = "delete"
	ActivityRegister ActivityKind = "register"
)

// ActivityOutcome summarizes how the backend answered.
type ActivityOutcome string

const (
	OutcomeSucceeded ActivityOutcome = "succeeded"
	OutcomeRejected  ActivityOutcome = "rejected"
	OutcomeFailed    ActivityOutcome = "failed"
)

// ActivityRecord is one completed mutation issued from a form session.
type ActivityRecord struct {
	SessionID string          `bson:"session_id" json:"session_id"`
	Kind      ActivityKind    `bson:"kind" json:"kind"`
	GoodsID   int64           `bson:"goods_id" json:"goods_id"`
	GoodsName string          `bson:"goods_name" json:"goods_name"`
	Quantity  string          `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Location  string          `bson:"location,omitempty" json:"location,omitempty"`
	Outcome   ActivityOutcome `bson:"outcome" json:"outcome"`
	Message   string          `bson:"message" json:"message"`
	At        time.Time       `bson:"at" json:"at"`
}
