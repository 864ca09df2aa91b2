package validate

import "statement_engine/pkg/core/roles"

// DefaultRequirements covers the inputs a standard valuation model
// pulls from the three statements. Teams with extra needs load their
// own set via LoadRequirements.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Variable:      "revenue",
			Statement:     "income",
			ExpectedRoles: []string{roles.ISRevenueTotal},
		},
		{
			Variable:      "operating_income",
			Statement:     "income",
			ExpectedRoles: []string{roles.ISOperatingIncome},
			ComputedFrom:  []string{roles.ISGrossProfit, roles.ISRAndD, roles.ISSGA},
		},
		{
			Variable:      "net_income",
			Statement:     "income",
			ExpectedRoles: []string{roles.ISNetIncome},
		},
		{
			Variable:      "diluted_shares",
			Statement:     "income",
			ExpectedRoles: []string{roles.ISSharesDiluted},
			ProxyRoles:    []string{roles.ISSharesBasic},
		},
		{
			Variable:      "cash_and_equivalents",
			Statement:     "balance",
			ExpectedRoles: []string{roles.BSCash},
		},
		{
			Variable:      "accounts_payable",
			Statement:     "balance",
			ExpectedRoles: []string{roles.BSAccountsPayable},
			ProxyRoles:    []string{roles.BSAPAndAccrued},
		},
		{
			Variable:      "total_assets",
			Statement:     "balance",
			ExpectedRoles: []string{roles.BSTotalAssets},
		},
		{
			Variable:      "total_debt",
			Statement:     "balance",
			ComputedFrom:  []string{roles.BSShortTermDebt, roles.BSLongTermDebt},
			ProxyRoles:    []string{roles.BSLongTermDebt},
		},
		{
			Variable:      "total_equity",
			Statement:     "balance",
			ExpectedRoles: []string{roles.BSTotalEquity},
		},
		{
			Variable:      "operating_cash_flow",
			Statement:     "cash_flow",
			ExpectedRoles: []string{roles.CFNetOperating},
		},
		{
			Variable:      "capital_expenditures",
			Statement:     "cash_flow",
			ExpectedRoles: []string{roles.CFCapex},
		},
		{
			Variable:      "dividends_paid",
			Statement:     "cash_flow",
			ExpectedRoles: []string{roles.CFDividendsPaid},
		},
	}
}
