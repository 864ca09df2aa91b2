// Package roles defines the closed vocabulary of calculation roles.
// Every role is tagged to exactly one statement type and carries a short
// definition used to prompt the classifier. This vocabulary bounds
// everything the classifier may emit: no code path introduces a role
// string outside it.
package roles

import "statement_engine/pkg/core/statement"

// Income statement roles.
const (
	ISRevenueTotal    = "IS_REVENUE_TOTAL"
	ISCostOfGoods     = "IS_COST_OF_GOODS"
	ISGrossProfit     = "IS_GROSS_PROFIT"
	ISRAndD           = "IS_RESEARCH_DEVELOPMENT"
	ISSGA             = "IS_SGA"
	ISOperatingIncome = "IS_OPERATING_INCOME"
	ISInterestExpense = "IS_INTEREST_EXPENSE"
	ISPretaxIncome    = "IS_PRETAX_INCOME"
	ISTaxExpense      = "IS_TAX_EXPENSE"
	ISNetIncome       = "IS_NET_INCOME"
	ISEPSBasic        = "IS_EPS_BASIC"
	ISEPSDiluted      = "IS_EPS_DILUTED"
	ISSharesBasic     = "IS_SHARES_BASIC"
	ISSharesDiluted   = "IS_SHARES_DILUTED"
)

// Balance sheet roles.
const (
	BSCash                 = "BS_CASH"
	BSShortTermInvestments = "BS_SHORT_TERM_INVESTMENTS"
	BSAccountsReceivable   = "BS_ACCOUNTS_RECEIVABLE"
	BSInventory            = "BS_INVENTORY"
	BSTotalCurrentAssets   = "BS_TOTAL_CURRENT_ASSETS"
	BSPPENet               = "BS_PPE_NET"
	BSGoodwill             = "BS_GOODWILL"
	BSIntangibles          = "BS_INTANGIBLES"
	BSTotalAssets          = "BS_TOTAL_ASSETS"
	BSAccountsPayable      = "BS_ACCOUNTS_PAYABLE"
	BSAPAndAccrued         = "BS_AP_AND_ACCRUED"
	BSAccruedLiabilities   = "BS_ACCRUED_LIABILITIES"
	BSShortTermDebt        = "BS_SHORT_TERM_DEBT"
	BSTotalCurrentLiab     = "BS_TOTAL_CURRENT_LIABILITIES"
	BSLongTermDebt         = "BS_LONG_TERM_DEBT"
	BSTotalLiabilities     = "BS_TOTAL_LIABILITIES"
	BSCommonStockAPIC      = "BS_COMMON_STOCK_APIC"
	BSRetainedEarnings     = "BS_RETAINED_EARNINGS"
	BSTreasuryStock        = "BS_TREASURY_STOCK"
	BSTotalEquity          = "BS_TOTAL_EQUITY"
)

// Cash flow roles.
const (
	CFNetIncomeStart = "CF_NET_INCOME_START"
	CFDepreciation   = "CF_DEPRECIATION_AMORTIZATION"
	CFStockComp      = "CF_STOCK_COMPENSATION"
	CFNetOperating   = "CF_NET_OPERATING"
	CFCapex          = "CF_CAPEX"
	CFAcquisitions   = "CF_ACQUISITIONS"
	CFNetInvesting   = "CF_NET_INVESTING"
	CFDebtIssuance   = "CF_DEBT_ISSUANCE"
	CFDebtRepayment  = "CF_DEBT_REPAYMENT"
	CFShareBuybacks  = "CF_SHARE_REPURCHASES"
	CFDividendsPaid  = "CF_DIVIDENDS_PAID"
	CFNetFinancing   = "CF_NET_FINANCING"
	CFFXEffect       = "CF_FX_EFFECT"
	CFNetChange      = "CF_NET_CHANGE_IN_CASH"
)

type roleInfo struct {
	statement  statement.Type
	definition string
}

// vocabulary is the single source of truth. Definitions are written for
// the classifier prompt: short, unambiguous, analyst vocabulary.
var vocabulary = map[string]roleInfo{
	ISRevenueTotal:    {statement.Income, "Total revenue / net sales for the period (the top line, all segments combined)."},
	ISCostOfGoods:     {statement.Income, "Cost of goods sold / cost of revenue."},
	ISGrossProfit:     {statement.Income, "Gross profit (revenue minus cost of revenue)."},
	ISRAndD:           {statement.Income, "Research and development expense."},
	ISSGA:             {statement.Income, "Selling, general and administrative expense (combined or total operating SG&A)."},
	ISOperatingIncome: {statement.Income, "Operating income / income from operations."},
	ISInterestExpense: {statement.Income, "Interest expense on borrowings."},
	ISPretaxIncome:    {statement.Income, "Income before income taxes."},
	ISTaxExpense:      {statement.Income, "Provision for income taxes."},
	ISNetIncome:       {statement.Income, "Net income attributable to the company (the bottom line)."},
	ISEPSBasic:        {statement.Income, "Basic earnings per share."},
	ISEPSDiluted:      {statement.Income, "Diluted earnings per share."},
	ISSharesBasic:     {statement.Income, "Weighted-average basic shares outstanding."},
	ISSharesDiluted:   {statement.Income, "Weighted-average diluted shares outstanding."},

	BSCash:                 {statement.Balance, "Cash and cash equivalents."},
	BSShortTermInvestments: {statement.Balance, "Short-term / marketable investments, current."},
	BSAccountsReceivable:   {statement.Balance, "Accounts receivable, net, current."},
	BSInventory:            {statement.Balance, "Inventories, net."},
	BSTotalCurrentAssets:   {statement.Balance, "Total current assets."},
	BSPPENet:               {statement.Balance, "Property, plant and equipment, net of accumulated depreciation."},
	BSGoodwill:             {statement.Balance, "Goodwill."},
	BSIntangibles:          {statement.Balance, "Intangible assets other than goodwill, net."},
	BSTotalAssets:          {statement.Balance, "Total assets."},
	BSAccountsPayable:      {statement.Balance, "Accounts payable, trade, current."},
	BSAPAndAccrued:         {statement.Balance, "Combined accounts payable and accrued liabilities line (proxy when AP is not reported separately)."},
	BSAccruedLiabilities:   {statement.Balance, "Accrued liabilities, current."},
	BSShortTermDebt:        {statement.Balance, "Short-term borrowings and current maturities of long-term debt."},
	BSTotalCurrentLiab:     {statement.Balance, "Total current liabilities."},
	BSLongTermDebt:         {statement.Balance, "Long-term debt, noncurrent."},
	BSTotalLiabilities:     {statement.Balance, "Total liabilities."},
	BSCommonStockAPIC:      {statement.Balance, "Common stock and additional paid-in capital."},
	BSRetainedEarnings:     {statement.Balance, "Retained earnings or accumulated deficit."},
	BSTreasuryStock:        {statement.Balance, "Treasury stock, at cost."},
	BSTotalEquity:          {statement.Balance, "Total stockholders' equity."},

	CFNetIncomeStart: {statement.CashFlow, "Net income as the starting line of operating activities."},
	CFDepreciation:   {statement.CashFlow, "Depreciation and amortization add-back."},
	CFStockComp:      {statement.CashFlow, "Share-based compensation add-back."},
	CFNetOperating:   {statement.CashFlow, "Net cash provided by (used in) operating activities."},
	CFCapex:          {statement.CashFlow, "Capital expenditures / purchases of property, plant and equipment."},
	CFAcquisitions:   {statement.CashFlow, "Cash paid for business acquisitions, net of cash acquired."},
	CFNetInvesting:   {statement.CashFlow, "Net cash provided by (used in) investing activities."},
	CFDebtIssuance:   {statement.CashFlow, "Proceeds from issuance of debt."},
	CFDebtRepayment:  {statement.CashFlow, "Repayments of debt."},
	CFShareBuybacks:  {statement.CashFlow, "Payments for repurchases of common stock."},
	CFDividendsPaid:  {statement.CashFlow, "Dividends paid to shareholders."},
	CFNetFinancing:   {statement.CashFlow, "Net cash provided by (used in) financing activities."},
	CFFXEffect:       {statement.CashFlow, "Effect of exchange rate changes on cash."},
	CFNetChange:      {statement.CashFlow, "Net increase (decrease) in cash and equivalents."},
}

// IsValidRole reports whether id is part of the closed vocabulary.
func IsValidRole(id string) bool {
	_, ok := vocabulary[id]
	return ok
}

// IsValidRoleFor reports whether id is valid for the given statement type.
func IsValidRoleFor(id string, st statement.Type) bool {
	info, ok := vocabulary[id]
	return ok && info.statement == st
}

// RolesForStatement returns the allowed role set for a statement type.
func RolesForStatement(st statement.Type) map[string]bool {
	out := make(map[string]bool)
	for id, info := range vocabulary {
		if info.statement == st {
			out[id] = true
		}
	}
	return out
}

// Definition returns the human-readable definition for a role, or the
// empty string for an unknown id.
func Definition(id string) string {
	return vocabulary[id].definition
}
