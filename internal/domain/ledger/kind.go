package ledger

// Kind classifies a category or transaction as money coming in or going out
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// IsValid returns true if the kind is a known value
func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// String returns the string representation
func (k Kind) String() string {
	return string(k)
}
