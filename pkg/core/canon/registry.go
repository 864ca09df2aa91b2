// Package canon holds the canonical presentation order for each
// statement type. The tables are manually curated to mirror standard
// statement layout and never change at runtime.
package canon

import "statement_engine/pkg/core/statement"

// incomeOrder: revenue down to per-share data.
var incomeOrder = []string{
	"us-gaap:Revenues",
	"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax",
	"us-gaap:CostOfRevenue",
	"us-gaap:CostOfGoodsAndServicesSold",
	"us-gaap:GrossProfit",
	"us-gaap:ResearchAndDevelopmentExpense",
	"us-gaap:SellingGeneralAndAdministrativeExpense",
	"us-gaap:OperatingExpenses",
	"us-gaap:OperatingIncomeLoss",
	"us-gaap:InterestExpense",
	"us-gaap:NonoperatingIncomeExpense",
	"us-gaap:IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
	"us-gaap:IncomeTaxExpenseBenefit",
	"us-gaap:NetIncomeLoss",
	"us-gaap:EarningsPerShareBasic",
	"us-gaap:EarningsPerShareDiluted",
	"us-gaap:WeightedAverageNumberOfSharesOutstandingBasic",
	"us-gaap:WeightedAverageNumberOfDilutedSharesOutstanding",
}

// balanceOrder: assets before liabilities before equity.
var balanceOrder = []string{
	"us-gaap:CashAndCashEquivalentsAtCarryingValue",
	"us-gaap:ShortTermInvestments",
	"us-gaap:AccountsReceivableNetCurrent",
	"us-gaap:InventoryNet",
	"us-gaap:OtherAssetsCurrent",
	"us-gaap:AssetsCurrent",
	"us-gaap:LongTermInvestments",
	"us-gaap:PropertyPlantAndEquipmentNet",
	"us-gaap:Goodwill",
	"us-gaap:FiniteLivedIntangibleAssetsNet",
	"us-gaap:OtherAssetsNoncurrent",
	"us-gaap:Assets",
	"us-gaap:AccountsPayableCurrent",
	"us-gaap:AccountsPayableAndAccruedLiabilitiesCurrent",
	"us-gaap:AccruedLiabilitiesCurrent",
	"us-gaap:ContractWithCustomerLiabilityCurrent",
	"us-gaap:ShortTermBorrowings",
	"us-gaap:LongTermDebtCurrent",
	"us-gaap:OtherLiabilitiesCurrent",
	"us-gaap:LiabilitiesCurrent",
	"us-gaap:LongTermDebtNoncurrent",
	"us-gaap:OperatingLeaseLiabilityNoncurrent",
	"us-gaap:DeferredIncomeTaxLiabilitiesNet",
	"us-gaap:OtherLiabilitiesNoncurrent",
	"us-gaap:Liabilities",
	"us-gaap:CommonStocksIncludingAdditionalPaidInCapital",
	"us-gaap:RetainedEarningsAccumulatedDeficit",
	"us-gaap:TreasuryStockCommonValue",
	"us-gaap:AccumulatedOtherComprehensiveIncomeLossNetOfTax",
	"us-gaap:MinorityInterest",
	"us-gaap:StockholdersEquity",
	"us-gaap:StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	"us-gaap:LiabilitiesAndStockholdersEquity",
}

// cashFlowOrder: operating before investing before financing.
var cashFlowOrder = []string{
	"us-gaap:NetIncomeLoss",
	"us-gaap:DepreciationDepletionAndAmortization",
	"us-gaap:ShareBasedCompensation",
	"us-gaap:DeferredIncomeTaxExpenseBenefit",
	"us-gaap:IncreaseDecreaseInAccountsReceivable",
	"us-gaap:IncreaseDecreaseInInventories",
	"us-gaap:IncreaseDecreaseInAccountsPayable",
	"us-gaap:NetCashProvidedByUsedInOperatingActivities",
	"us-gaap:PaymentsToAcquirePropertyPlantAndEquipment",
	"us-gaap:PaymentsToAcquireBusinessesNetOfCashAcquired",
	"us-gaap:PaymentsToAcquireInvestments",
	"us-gaap:ProceedsFromSaleMaturityAndCollectionsOfInvestments",
	"us-gaap:NetCashProvidedByUsedInInvestingActivities",
	"us-gaap:ProceedsFromIssuanceOfLongTermDebt",
	"us-gaap:RepaymentsOfLongTermDebt",
	"us-gaap:PaymentsForRepurchaseOfCommonStock",
	"us-gaap:PaymentsOfDividendsCommonStock",
	"us-gaap:PaymentsOfDividends",
	"us-gaap:NetCashProvidedByUsedInFinancingActivities",
	"us-gaap:EffectOfExchangeRateOnCashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	"us-gaap:CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect",
}

// OrderFor returns the canonical presentation order for a statement
// type. Unknown types return an empty list; the assembler then sorts
// every tag alphabetically.
func OrderFor(st statement.Type) []string {
	var table []string
	switch st {
	case statement.Income:
		table = incomeOrder
	case statement.Balance:
		table = balanceOrder
	case statement.CashFlow:
		table = cashFlowOrder
	default:
		return nil
	}
	// Copy so callers can never reorder the registry.
	out := make([]string, len(table))
	copy(out, table)
	return out
}

var membership = buildMembership()

func buildMembership() map[statement.Type]map[string]bool {
	out := make(map[statement.Type]map[string]bool)
	for _, st := range []statement.Type{statement.Income, statement.Balance, statement.CashFlow} {
		set := make(map[string]bool)
		for _, tag := range OrderFor(st) {
			set[tag] = true
		}
		out[st] = set
	}
	return out
}

// Contains reports whether a tag is registered for the statement type.
// A tag may belong to more than one statement (NetIncomeLoss opens the
// cash flow statement and closes the income statement).
func Contains(st statement.Type, tag string) bool {
	return membership[st][tag]
}
