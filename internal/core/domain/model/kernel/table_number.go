package kernel

import "restaurant/internal/pkg/errs"

const (
	MinTableNumber = 1
	MaxTableNumber = 999
)

// TableNumber identifies a dining table.
type TableNumber int

// NewTableNumber validates that n lies within [MinTableNumber, MaxTableNumber].
func NewTableNumber(n int) (TableNumber, error) {
	t := TableNumber(n)
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return t, nil
}

// Validate rejects table numbers outside 1..999.
func (t TableNumber) Validate() error {
	if t < MinTableNumber || t > MaxTableNumber {
		return errs.NewValueIsOutOfRangeError("table number", int(t), MinTableNumber, MaxTableNumber)
	}
	return nil
}

// Int returns the table number as an int.
func (t TableNumber) Int() int {
	return int(t)
}
