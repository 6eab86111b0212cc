package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingLineResponse detalle de un módulo en el resumen de facturación.
type BillingLineResponse struct {
	ModuleName string          `json:"module_name"`
	Price      decimal.Decimal `json:"price"`
	Overridden bool            `json:"overridden"`
}

// BillingSummaryResponse total mensual de la empresa con detalle por módulo.
type BillingSummaryResponse struct {
	CompanyID    string                `json:"company_id"`
	Currency     string                `json:"currency"`
	MonthlyTotal decimal.Decimal       `json:"monthly_total"`
	Lines        []BillingLineResponse `json:"lines"`
}

// SetCustomPriceRequest override de precio para (empresa, módulo).
type SetCustomPriceRequest struct {
	Price         decimal.Decimal `json:"price" validate:"required"`
	Notes         string          `json:"notes"`
	EffectiveDate *time.Time      `json:"effective_date"`
}
