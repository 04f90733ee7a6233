// Package ofx imports OFX and QFX bank and credit card statements as ledger
// records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/storage"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned when a transaction type implies nothing better.
const DefaultCategory = "Uncategorized"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)

	// Prefixes banks put in front of the merchant name.
	merchantPrefixes = []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	genericNames = map[string]bool{
		"DEBIT":           true,
		"CREDIT":          true,
		"PURCHASE":        true,
		"PAYMENT":         true,
		"POS TRANSACTION": true,
		"CARD PURCHASE":   true,
	}

	typeCategories = map[string]string{
		"INT":    "Interest",
		"DIV":    "Interest",
		"FEE":    "Bank Fees",
		"SRVCHG": "Bank Fees",
		"ATM":    "Cash",
	}
)

// Parser converts OFX statements into records.
type Parser struct {
	category string
}

// NewParser creates a parser that files uncategorizable transactions under
// category, or DefaultCategory when category is empty.
func NewParser(category string) *Parser {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return &Parser{category: category}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes omit the closing bracket of a bare tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its transactions as records.
// Record ids combine the account and the bank's transaction id, so importing
// the same statement twice yields the same ids.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Record, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList != nil {
				records = append(records, p.convertAll(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))...)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList != nil {
				records = append(records, p.convertAll(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))...)
			}
		}
	}

	slog.InfoContext(ctx, "Parsed OFX file",
		"total_records", len(records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return records, nil
}

func (p *Parser) convertAll(txns []ofxgo.Transaction, accountID string) []model.Record {
	records := make([]model.Record, 0, len(txns))
	for _, tx := range txns {
		r, err := p.convertTransaction(tx, accountID)
		if err != nil {
			slog.Warn("Skipping OFX transaction",
				"account", accountID,
				"fitid", string(tx.FiTID),
				"error", err)
			continue
		}
		records = append(records, r)
	}
	return records
}

// convertTransaction maps one OFX transaction to a record. Negative amounts
// are expenses.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, accountID string) (model.Record, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid amount: %w", err)
	}

	kind := model.KindIncome
	if amount.IsNegative() {
		kind = model.KindExpense
	}

	id := string(tx.FiTID)
	if id == "" {
		id = uuid.NewString()
	} else if accountID != "" {
		id = accountID + "-" + id
	}

	description := p.extractMerchantName(tx)
	if description == "" {
		description = tx.TrnType.String()
	}
	if runes := []rune(description); len(runes) > storage.MaxDescriptionLength {
		description = string(runes[:storage.MaxDescriptionLength])
	}

	category := p.category
	if c, ok := typeCategories[tx.TrnType.String()]; ok {
		category = c
	}

	return model.Record{
		ID:          id,
		Date:        model.Day(tx.DtPosted.Time),
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
	}, nil
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually the cleanest name.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && genericNames[strings.ToUpper(name)] {
		name = strings.TrimSpace(string(tx.Memo))
	}

	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id ofxgo.String) {
		if id != "" && !seen[string(id)] {
			seen[string(id)] = true
			accounts = append(accounts, string(id))
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(stmt.CCAcctFrom.AcctID)
		}
	}

	return accounts, nil
}
