package model

import (
	"github.com/shopspring/decimal"
)

type Medicine struct {
	Base
	Name  string          `db:"name" json:"name"`
	Unit  *string         `db:"unit" json:"unit,omitempty"`
	Price decimal.Decimal `db:"price" json:"price"`
}
