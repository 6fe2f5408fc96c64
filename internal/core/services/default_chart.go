package services

import "github.com/SscSPs/manna/internal/core/domain"

type defaultAccount struct {
	code       string
	name       string
	typ        domain.AccountType
	parentCode string
}

// defaultChart is the small-business chart created by SeedDefaultChart.
// Parents are listed before their children.
var defaultChart = []defaultAccount{
	{"1000", "Cash and Cash Equivalents", domain.Asset, ""},
	{"1010", "Business Checking", domain.Asset, "1000"},
	{"1020", "Business Savings", domain.Asset, "1000"},
	{"1030", "Petty Cash", domain.Asset, "1000"},
	{"1100", "Accounts Receivable", domain.Asset, ""},
	{"1200", "Inventory", domain.Asset, ""},
	{"1500", "Equipment", domain.Asset, ""},
	{"1510", "Accumulated Depreciation", domain.ContraAsset, "1500"},
	{"1600", "Vehicles", domain.Asset, ""},
	{"2000", "Accounts Payable", domain.Liability, ""},
	{"2100", "Credit Card Payable", domain.Liability, ""},
	{"2200", "Sales Tax Payable", domain.Liability, ""},
	{"2500", "Loans Payable", domain.Liability, ""},
	{"3000", "Owner's Equity", domain.Equity, ""},
	{"3100", "Owner's Draws", domain.ContraEquity, "3000"},
	{"3900", "Retained Earnings", domain.Equity, ""},
	{"4000", "Sales Revenue", domain.Revenue, ""},
	{"4100", "Service Revenue", domain.Revenue, ""},
	{"4500", "Interest Income", domain.Revenue, ""},
	{"4900", "Sales Returns and Allowances", domain.ContraRevenue, "4000"},
	{"5000", "Cost of Goods Sold", domain.Expense, ""},
	{"6000", "Operating Expenses", domain.Expense, ""},
	{"6100", "Advertising", domain.Expense, "6000"},
	{"6150", "Car and Truck Expenses", domain.Expense, "6000"},
	{"6200", "Contract Labor", domain.Expense, "6000"},
	{"6250", "Depreciation Expense", domain.Expense, "6000"},
	{"6300", "Insurance", domain.Expense, "6000"},
	{"6350", "Interest Expense", domain.Expense, "6000"},
	{"6400", "Legal and Professional Services", domain.Expense, "6000"},
	{"6450", "Office Expenses", domain.Expense, "6000"},
	{"6500", "Rent or Lease", domain.Expense, "6000"},
	{"6550", "Repairs and Maintenance", domain.Expense, "6000"},
	{"6600", "Supplies", domain.Expense, "6000"},
	{"6650", "Taxes and Licenses", domain.Expense, "6000"},
	{"6700", "Travel", domain.Expense, "6000"},
	{"6750", "Meals", domain.Expense, "6000"},
	{"6800", "Utilities", domain.Expense, "6000"},
	{"6850", "Home Office", domain.Expense, "6000"},
	{"6900", "Bank Fees", domain.Expense, "6000"},
	{"6999", "Other Expenses", domain.Expense, "6000"},
}
