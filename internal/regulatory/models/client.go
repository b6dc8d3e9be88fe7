package models

import (
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// EntityType classifies the legal form of an onboarding client.
type EntityType string

const (
	EntityHedgeFund         EntityType = "hedge_fund"
	EntityInvestmentAdvisor EntityType = "investment_advisor"
	EntityPensionFund       EntityType = "pension_fund"
	EntityInsuranceCompany  EntityType = "insurance_company"
	EntityBank              EntityType = "bank"
	EntityCorporate         EntityType = "corporate"
)

// IsValid reports whether t is a member of the enumeration.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityHedgeFund, EntityInvestmentAdvisor, EntityPensionFund,
		EntityInsuranceCompany, EntityBank, EntityCorporate:
		return true
	}
	return false
}

// ProductApproval records one product the client is approved to trade.
type ProductApproval struct {
	ProductName  string    `json:"product_name"`
	ProductType  string    `json:"product_type"`
	ApprovalDate time.Time `json:"approval_date"`
	RiskTier     string    `json:"risk_tier"`
}

// ClientProfile is the imported view of an onboarding client.
//
// Invariants:
//   - ClientID is non-empty
//   - EntityType is a valid enumeration member
//   - AUMUSD is non-negative
//
// A profile is immutable once imported into a workflow; the importing
// workflow owns it.
type ClientProfile struct {
	ClientID      domain.ClientID   `json:"client_id"`
	EntityName    string            `json:"entity_name"`
	EntityType    EntityType        `json:"entity_type"`
	Jurisdiction  string            `json:"jurisdiction"`
	AUMUSD        float64           `json:"aum_usd"`
	BusinessType  string            `json:"business_type"`
	ContactPerson string            `json:"contact_person"`
	Email         string            `json:"email"`
	Products      []ProductApproval `json:"products,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Validate enforces profile invariants before the profile enters a store or
// a classification run.
func (p *ClientProfile) Validate() error {
	if p.ClientID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client_id is required")
	}
	if p.EntityName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "entity_name is required")
	}
	if !p.EntityType.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid entity_type %q", p.EntityType)
	}
	if p.Jurisdiction == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "jurisdiction is required")
	}
	if p.AUMUSD < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "aum_usd must be non-negative")
	}
	if p.BusinessType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "business_type is required")
	}
	return nil
}

// ProductTypes returns the distinct product-type tags across approvals,
// preserving first-seen order.
func (p *ClientProfile) ProductTypes() []string {
	seen := make(map[string]struct{}, len(p.Products))
	types := make([]string, 0, len(p.Products))
	for _, prod := range p.Products {
		if _, ok := seen[prod.ProductType]; ok {
			continue
		}
		seen[prod.ProductType] = struct{}{}
		types = append(types, prod.ProductType)
	}
	return types
}

// Clone returns a deep copy so store reads never alias caller-held state.
func (p *ClientProfile) Clone() *ClientProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Products = append([]ProductApproval(nil), p.Products...)
	return &cp
}
