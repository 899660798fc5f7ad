package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// displayTime is the layout used for dates in statements and history views.
const displayTime = "2006-01-02 15:04:05"

const (
	statementWidth = 80
	sectionWidth   = 40
)

// RecentHistory returns the most recent limit transactions in
// reverse-chronological order. A limit of zero or less yields an empty
// slice. It is a pure projection of the account snapshot and never
// mutates it.
func RecentHistory(a *Account, limit int) []Transaction {
	n := len(a.Transactions)
	if limit < 0 {
		limit = 0
	}
	if limit > n {
		limit = n
	}
	out := make([]Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, a.Transactions[i])
	}
	return out
}

// SignedAmount renders an amount with the sign implied by the transaction
// kind: credits as +$x, debits as -$x, neutral kinds as $x.
func SignedAmount(k TxKind, amount decimal.Decimal) string {
	switch {
	case k.Credit():
		return "+$" + amount.StringFixed(2)
	case k.Debit():
		return "-$" + amount.StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatTransaction renders one numbered history entry.
func FormatTransaction(index int, tx Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d. %s\n", index, tx.Kind.Title())
	fmt.Fprintf(&b, "     Amount: %s\n", SignedAmount(tx.Kind, tx.Amount))
	fmt.Fprintf(&b, "     Description: %s\n", tx.Description)
	if tx.Counterparty != "" {
		fmt.Fprintf(&b, "     Counterparty: %s\n", tx.Counterparty)
	}
	fmt.Fprintf(&b, "     Date: %s\n", tx.Timestamp.Format(displayTime))
	fmt.Fprintf(&b, "     Balance After: $%s\n", tx.BalanceAfter.StringFixed(2))
	return b.String()
}

// FormatStatement produces the complete account statement: header, summary,
// and the full reverse-chronological transaction list. It is a pure function
// of the account snapshot and is safe to call with zero transactions.
func FormatStatement(a *Account, generatedAt time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", statementWidth)
	thin := strings.Repeat("-", sectionWidth)
	wide := strings.Repeat("-", statementWidth)

	b.WriteString(rule + "\n")
	b.WriteString("SECURE BANK - ACCOUNT STATEMENT\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("ACCOUNT INFORMATION\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Account Holder: %s\n", a.Name)
	fmt.Fprintf(&b, "Username: %s\n", a.Username)
	fmt.Fprintf(&b, "Account Status: %s\n", titled(string(a.Status)))
	fmt.Fprintf(&b, "Current Balance: $%s\n", a.Balance.StringFixed(2))
	fmt.Fprintf(&b, "Account Created: %s\n", a.CreatedAt.Format(displayTime))
	if a.ClosedAt != nil {
		fmt.Fprintf(&b, "Account Closed: %s\n", a.ClosedAt.Format(displayTime))
	}
	fmt.Fprintf(&b, "Statement Generated: %s\n\n", generatedAt.Format(displayTime))

	if len(a.Transactions) == 0 {
		b.WriteString("No transactions found.\n\n")
	} else {
		credits := decimal.Zero
		debits := decimal.Zero
		for _, tx := range a.Transactions {
			switch {
			case tx.Kind.Credit():
				credits = credits.Add(tx.Amount)
			case tx.Kind.Debit():
				debits = debits.Add(tx.Amount)
			}
		}

		b.WriteString("TRANSACTION SUMMARY\n")
		b.WriteString(thin + "\n")
		fmt.Fprintf(&b, "Total Transactions: %d\n", len(a.Transactions))
		fmt.Fprintf(&b, "Total Credits: $%s\n", credits.StringFixed(2))
		fmt.Fprintf(&b, "Total Debits: $%s\n", debits.StringFixed(2))
		fmt.Fprintf(&b, "Net Amount: $%s\n\n", credits.Sub(debits).StringFixed(2))

		b.WriteString("TRANSACTION DETAILS\n")
		b.WriteString(wide + "\n")
		for i, tx := range RecentHistory(a, len(a.Transactions)) {
			b.WriteString(FormatTransaction(i+1, tx))
			b.WriteString(wide + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Thank you for banking with Secure Bank!\n")
	b.WriteString(rule + "\n")
	return b.String()
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
