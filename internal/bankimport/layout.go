package bankimport

// amountColumns describes how a statement layout encodes the movement amount.
type amountColumns int

const (
	// signedColumn is a single column carrying a signed value ("-588,74").
	signedColumn amountColumns = iota
	// debitCredit splits debits and credits into two columns.
	debitCredit
)

// Layout describes the column set of one bank export format. The parser
// matches layouts against the header row; adding a bank format means adding
// a layout here.
type Layout struct {
	Name     string
	Date     string
	Desc     string
	Amounts  amountColumns
	Amount   string // signedColumn
	Debit    string // debitCredit
	Credit   string // debitCredit
	DateForm string
}

func (l Layout) required() []string {
	cols := []string{l.Date, l.Desc}

	switch l.Amounts {
	case signedColumn:
		cols = append(cols, l.Amount)
	case debitCredit:
		cols = append(cols, l.Debit, l.Credit)
	}

	return cols
}

// layouts is ordered most-specific first so the extrato format is not
// shadowed by the plain conta one.
var layouts = []Layout{
	{
		Name:     "cgd-cartao",
		Date:     "Data",
		Desc:     "Descrição",
		Amounts:  debitCredit,
		Debit:    "Débito",
		Credit:   "Crédito",
		DateForm: "02-01-2006",
	},
	{
		Name:     "cgd-extrato",
		Date:     "Data mov.",
		Desc:     "Descrição",
		Amounts:  signedColumn,
		Amount:   "Movimento",
		DateForm: "02-01-2006",
	},
	{
		Name:     "cgd-conta",
		Date:     "Data mov.",
		Desc:     "Descrição",
		Amounts:  signedColumn,
		Amount:   "Montante",
		DateForm: "02-01-2006",
	},
}
