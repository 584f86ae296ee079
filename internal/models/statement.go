// Package models holds the row schemas of the NAB Trade export and the Xero
// statement import, and the monetary rules used to derive the Tx column.
package models

import "strings"

// Column positions in a NAB Trade "Cash Account Transactions" record.
const (
	ColDate = iota
	ColType
	ColDescription
	ColDebit
	ColCredit
	ColBalance

	// InputFieldCount is the number of fields every NAB Trade data record carries.
	InputFieldCount
)

// Column names shared by both layouts.
const (
	ColumnDate        = "Date"
	ColumnType        = "Type"
	ColumnDescription = "Description"
	ColumnTx          = "Tx"
	ColumnDebit       = "Debit"
	ColumnCredit      = "Credit"
	ColumnBalance     = "Balance"
)

// InputHeader is the column layout of a NAB Trade export.
var InputHeader = []string{ColumnDate, ColumnType, ColumnDescription, ColumnDebit, ColumnCredit, ColumnBalance}

// OutputHeader is the header row written to every converted file.
var OutputHeader = []string{ColumnDate, ColumnType, ColumnDescription, ColumnTx, ColumnDebit, ColumnCredit, ColumnBalance}

// NabTradeRow is one data record of a NAB Trade export.
// Monetary fields are kept exactly as exported.
type NabTradeRow struct {
	Date        string
	Type        string
	Description string
	Debit       string
	Credit      string
	Balance     string
}

// NewNabTradeRow maps a positional record onto named fields. The record must
// have InputFieldCount fields; callers check the shape first.
func NewNabTradeRow(record []string) NabTradeRow {
	return NabTradeRow{
		Date:        record[ColDate],
		Type:        record[ColType],
		Description: record[ColDescription],
		Debit:       record[ColDebit],
		Credit:      record[ColCredit],
		Balance:     record[ColBalance],
	}
}

// XeroRow is one data record of a Xero statement import file.
// The csv tags define the output header; their order is the column order.
type XeroRow struct {
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Description string `csv:"Description"`
	Tx          string `csv:"Tx"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	Balance     string `csv:"Balance"`
}

// ToXero builds the output row for r with the given, already formatted, Tx value.
// Debit, Credit and Balance are copied verbatim.
func (r NabTradeRow) ToXero(tx string) XeroRow {
	return XeroRow{
		Date:        r.Date,
		Type:        r.Type,
		Description: r.Description,
		Tx:          tx,
		Debit:       r.Debit,
		Credit:      r.Credit,
		Balance:     r.Balance,
	}
}

// IsOutputHeader reports whether record is the header this tool writes,
// which marks a file that has already been converted.
func IsOutputHeader(record []string) bool {
	if len(record) != len(OutputHeader) {
		return false
	}
	for i, name := range OutputHeader {
		if strings.TrimSpace(record[i]) != name {
			return false
		}
	}
	return true
}
