package importer

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfold-dev/bankfold/internal/importing"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// OFXParser reads OFX 1.x statement exports. OFX is SGML-ish: value
// tags are often left unclosed, so the file is scanned with regular
// expressions rather than an XML decoder.
type OFXParser struct{}

var (
	stmtRsRe  = regexp.MustCompile(`(?is)<STMTRS>(.*?)</STMTRS>`)
	ledgerRe  = regexp.MustCompile(`(?is)<LEDGERBAL>(.*?)</LEDGERBAL>`)
	availRe   = regexp.MustCompile(`(?is)<AVAILBAL>(.*?)</AVAILBAL>`)
	stmtTrnRe = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	tagRe     = regexp.MustCompile(`(?i)<([A-Z0-9]+)>([^<\r\n]+)`)
)

// Format returns the parser name.
func (p *OFXParser) Format() string { return "ofx" }

// CanParse claims files with an .ofx extension.
func (p *OFXParser) CanParse(fileName string) bool {
	return strings.HasSuffix(strings.ToLower(fileName), ".ofx")
}

// Parse reads the statement. Each STMTRS block contributes its ledger
// balance (or, failing that, its available balance) as a declared
// balance and its STMTTRN entries as transactions. Accounts are
// derived from the distinct account numbers seen.
func (p *OFXParser) Parse(r io.Reader) (importing.TransactionImport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return importing.TransactionImport{}, fmt.Errorf("reading statement: %w", err)
	}

	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return importing.TransactionImport{}, model.ErrEmptyImportFile
	}

	currency := readTag(content, "CURDEF")
	if currency == "" {
		return importing.TransactionImport{}, model.ErrOfxCurrencyNotFound
	}

	statements := stmtRsRe.FindAllStringSubmatch(content, -1)
	if len(statements) == 0 {
		return importing.TransactionImport{}, model.ErrOfxNoTransactionFound
	}

	var transactions []importing.Transaction
	balances := make(map[string][]importing.Balance)
	var accountOrder []string
	seenAccounts := make(map[string]bool)

	recordAccount := func(number string) {
		key := strings.ToLower(number)
		if !seenAccounts[key] {
			seenAccounts[key] = true
			accountOrder = append(accountOrder, number)
		}
	}

	for _, statement := range statements {
		body := statement[1]
		statementAccount := readTag(body, "ACCTID")
		if statementAccount != "" {
			recordAccount(statementAccount)
			if balance, ok := readBalance(ledgerRe, body, currency); ok {
				balances[strings.ToLower(statementAccount)] = append(balances[strings.ToLower(statementAccount)], balance)
			} else if balance, ok := readBalance(availRe, body, currency); ok {
				balances[strings.ToLower(statementAccount)] = append(balances[strings.ToLower(statementAccount)], balance)
			}
		}

		for _, entry := range stmtTrnRe.FindAllStringSubmatch(body, -1) {
			block := entry[1]
			transactionID := readTag(block, "FITID")
			rawAmount := readTag(block, "TRNAMT")
			rawDate := readTag(block, "DTPOSTED")
			transactionType := readTag(block, "TRNTYPE")

			accountNumber := readTag(block, "ACCTID")
			if accountNumber == "" {
				accountNumber = statementAccount
			}
			description := readTag(block, "NAME")
			if description == "" {
				description = readTag(block, "MEMO")
			}
			if description == "" {
				description = transactionID
			}

			amount, amountOK := parseAmount(rawAmount, transactionType)
			date, dateOK := parseDate(rawDate)
			if transactionID == "" || rawAmount == "" || rawDate == "" ||
				accountNumber == "" || description == "" || !amountOK || !dateOK {
				return importing.TransactionImport{}, model.ErrOfxInvalidTransaction
			}

			recordAccount(accountNumber)
			transactions = append(transactions, importing.Transaction{
				TransactionID: transactionID,
				Amount:        amount,
				Date:          date,
				Description:   description,
				AccountNumber: accountNumber,
				Currency:      currency,
			})
		}
	}

	if len(transactions) == 0 {
		return importing.TransactionImport{}, model.ErrOfxNoTransactionFound
	}

	accounts := make([]importing.Account, 0, len(accountOrder))
	for _, number := range accountOrder {
		accounts = append(accounts, importing.Account{
			AccountNumber: number,
			Name:          number,
			Balances:      balances[strings.ToLower(number)],
		})
	}

	return importing.TransactionImport{Accounts: accounts, Transactions: transactions}, nil
}

// readBalance extracts a declared balance from the first block the
// given regexp matches (LEDGERBAL or AVAILBAL).
func readBalance(re *regexp.Regexp, body, currency string) (importing.Balance, bool) {
	match := re.FindStringSubmatch(body)
	if match == nil {
		return importing.Balance{}, false
	}

	block := match[1]
	rawAmount := readTag(block, "BALAMT")
	rawDate := readTag(block, "DTASOF")
	amount, amountOK := parseAmount(rawAmount, "")
	date, dateOK := parseDate(rawDate)
	if rawAmount == "" || rawDate == "" || !amountOK || !dateOK {
		return importing.Balance{}, false
	}

	return importing.Balance{Date: date, Amount: amount, Currency: currency}, true
}

// readTag returns the trimmed value of the first matching tag, or "".
func readTag(content, tag string) string {
	for _, match := range tagRe.FindAllStringSubmatch(content, -1) {
		if strings.EqualFold(match[1], tag) {
			return strings.TrimSpace(match[2])
		}
	}
	return ""
}

// debit transaction types whose amounts some banks report unsigned.
var debitTypes = map[string]bool{
	"DEBIT":       true,
	"PAYMENT":     true,
	"DIRECTDEBIT": true,
	"FEE":         true,
	"ATM":         true,
	"WITHDRAWAL":  true,
}

// parseAmount parses an OFX amount, accepting a comma decimal
// separator. Positive amounts on debit-typed transactions are negated.
func parseAmount(raw, transactionType string) (decimal.Decimal, bool) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}

	if amount.IsPositive() && debitTypes[strings.ToUpper(strings.TrimSpace(transactionType))] {
		amount = amount.Neg()
	}
	return amount, true
}

// parseDate reads the leading yyyymmdd digits of an OFX timestamp.
// Trailing time and timezone qualifiers are ignored.
func parseDate(raw string) (time.Time, bool) {
	digits := raw
	for i, r := range raw {
		if r < '0' || r > '9' {
			digits = raw[:i]
			break
		}
	}
	if len(digits) < 8 {
		return time.Time{}, false
	}

	date, err := time.Parse("20060102", digits[:8])
	if err != nil {
		return time.Time{}, false
	}
	return date.UTC(), true
}
