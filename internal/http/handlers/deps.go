package handlers

import "shopledger/internal/ledger"

type Deps struct {
	Dashboard *DashboardHandler
	Products  *ProductHandler
	Sales     *SaleHandler
	Purchases *PurchaseHandler
	Reports   *ReportHandler
}

func NewDeps(eng *ledger.Engine) *Deps {
	return &Deps{
		Dashboard: &DashboardHandler{Ledger: eng},
		Products:  &ProductHandler{Ledger: eng},
		Sales:     &SaleHandler{Ledger: eng},
		Purchases: &PurchaseHandler{Ledger: eng},
		Reports:   &ReportHandler{Ledger: eng},
	}
}
