package classify

import (
	"statement_engine/pkg/core/roles"
	"statement_engine/pkg/core/statement"
)

// ruleTable maps standardized us-gaap concepts 1:1 to roles per
// statement type. Concepts covered here never reach the language-model
// fallback, which keeps classification deterministic for the common
// case. NetIncomeLoss appears in two tables on purpose: its role depends
// on which statement presents it.
var ruleTable = map[statement.Type]map[string][]string{
	statement.Income: {
		"us-gaap:Revenues": {roles.ISRevenueTotal},
		"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax": {roles.ISRevenueTotal},
		"us-gaap:CostOfRevenue":                                       {roles.ISCostOfGoods},
		"us-gaap:CostOfGoodsAndServicesSold":                          {roles.ISCostOfGoods},
		"us-gaap:GrossProfit":                                         {roles.ISGrossProfit},
		"us-gaap:ResearchAndDevelopmentExpense":                       {roles.ISRAndD},
		"us-gaap:SellingGeneralAndAdministrativeExpense":              {roles.ISSGA},
		"us-gaap:OperatingIncomeLoss":                                 {roles.ISOperatingIncome},
		"us-gaap:InterestExpense":                                     {roles.ISInterestExpense},
		"us-gaap:IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest": {roles.ISPretaxIncome},
		"us-gaap:IncomeTaxExpenseBenefit":                         {roles.ISTaxExpense},
		"us-gaap:NetIncomeLoss":                                   {roles.ISNetIncome},
		"us-gaap:EarningsPerShareBasic":                           {roles.ISEPSBasic},
		"us-gaap:EarningsPerShareDiluted":                         {roles.ISEPSDiluted},
		"us-gaap:WeightedAverageNumberOfSharesOutstandingBasic":   {roles.ISSharesBasic},
		"us-gaap:WeightedAverageNumberOfDilutedSharesOutstanding": {roles.ISSharesDiluted},
	},
	statement.Balance: {
		"us-gaap:CashAndCashEquivalentsAtCarryingValue":        {roles.BSCash},
		"us-gaap:ShortTermInvestments":                         {roles.BSShortTermInvestments},
		"us-gaap:AccountsReceivableNetCurrent":                 {roles.BSAccountsReceivable},
		"us-gaap:InventoryNet":                                 {roles.BSInventory},
		"us-gaap:AssetsCurrent":                                {roles.BSTotalCurrentAssets},
		"us-gaap:PropertyPlantAndEquipmentNet":                 {roles.BSPPENet},
		"us-gaap:Goodwill":                                     {roles.BSGoodwill},
		"us-gaap:FiniteLivedIntangibleAssetsNet":               {roles.BSIntangibles},
		"us-gaap:Assets":                                       {roles.BSTotalAssets},
		"us-gaap:AccountsPayableCurrent":                       {roles.BSAccountsPayable},
		"us-gaap:AccountsPayableAndAccruedLiabilitiesCurrent":  {roles.BSAPAndAccrued},
		"us-gaap:AccruedLiabilitiesCurrent":                    {roles.BSAccruedLiabilities},
		"us-gaap:ShortTermBorrowings":                          {roles.BSShortTermDebt},
		"us-gaap:LongTermDebtCurrent":                          {roles.BSShortTermDebt},
		"us-gaap:LiabilitiesCurrent":                           {roles.BSTotalCurrentLiab},
		"us-gaap:LongTermDebtNoncurrent":                       {roles.BSLongTermDebt},
		"us-gaap:Liabilities":                                  {roles.BSTotalLiabilities},
		"us-gaap:CommonStocksIncludingAdditionalPaidInCapital": {roles.BSCommonStockAPIC},
		"us-gaap:RetainedEarningsAccumulatedDeficit":           {roles.BSRetainedEarnings},
		"us-gaap:TreasuryStockCommonValue":                     {roles.BSTreasuryStock},
		"us-gaap:StockholdersEquity":                           {roles.BSTotalEquity},
		"us-gaap:StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest": {roles.BSTotalEquity},
	},
	statement.CashFlow: {
		"us-gaap:NetIncomeLoss":                               {roles.CFNetIncomeStart},
		"us-gaap:DepreciationDepletionAndAmortization":        {roles.CFDepreciation},
		"us-gaap:ShareBasedCompensation":                      {roles.CFStockComp},
		"us-gaap:NetCashProvidedByUsedInOperatingActivities":  {roles.CFNetOperating},
		"us-gaap:PaymentsToAcquirePropertyPlantAndEquipment":  {roles.CFCapex},
		"us-gaap:PaymentsToAcquireBusinessesNetOfCashAcquired": {roles.CFAcquisitions},
		"us-gaap:NetCashProvidedByUsedInInvestingActivities":  {roles.CFNetInvesting},
		"us-gaap:ProceedsFromIssuanceOfLongTermDebt":          {roles.CFDebtIssuance},
		"us-gaap:RepaymentsOfLongTermDebt":                    {roles.CFDebtRepayment},
		"us-gaap:PaymentsForRepurchaseOfCommonStock":          {roles.CFShareBuybacks},
		"us-gaap:PaymentsOfDividendsCommonStock":              {roles.CFDividendsPaid},
		"us-gaap:PaymentsOfDividends":                         {roles.CFDividendsPaid},
		"us-gaap:NetCashProvidedByUsedInFinancingActivities":  {roles.CFNetFinancing},
		"us-gaap:EffectOfExchangeRateOnCashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents":                          {roles.CFFXEffect},
		"us-gaap:CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect": {roles.CFNetChange},
	},
}

// RuleRoles returns the deterministic role mapping for a concept, or nil
// when the concept must fall through to the language-model classifier.
func RuleRoles(st statement.Type, concept string) []string {
	table, ok := ruleTable[st]
	if !ok {
		return nil
	}
	mapped, ok := table[concept]
	if !ok {
		return nil
	}
	out := make([]string, len(mapped))
	copy(out, mapped)
	return out
}
