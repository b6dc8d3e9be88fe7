// Package rules holds the process-wide regulation rule set: for each
// regulation, the applicability conditions and the documents it demands.
// The catalog is loaded once at startup and read-only thereafter.
package rules

import (
	"github.com/naveenbxyz/iclm/internal/regulatory/models"
)

// Registry is the read-only rule set consulted by the classifier and the
// workflow engine. Declaration order is preserved; classifier output follows it.
type Registry struct {
	rules  []models.RegulationRule
	byName map[string]int
}

// NewRegistry builds a registry over the given rules. Later duplicates of a
// regulation name are ignored; the first declaration wins.
func NewRegistry(catalog []models.RegulationRule) *Registry {
	r := &Registry{byName: make(map[string]int, len(catalog))}
	for _, rule := range catalog {
		if _, exists := r.byName[rule.Name]; exists {
			continue
		}
		r.byName[rule.Name] = len(r.rules)
		r.rules = append(r.rules, rule)
	}
	return r
}

// Default returns a registry over the built-in catalog.
func Default() *Registry {
	return NewRegistry(Catalog())
}

// All returns the rules in declaration order. The slice is a copy; the
// underlying rules are shared and must not be mutated.
func (r *Registry) All() []models.RegulationRule {
	return append([]models.RegulationRule(nil), r.rules...)
}

// Get returns the rule for a regulation name.
func (r *Registry) Get(name string) (models.RegulationRule, bool) {
	i, ok := r.byName[name]
	if !ok {
		return models.RegulationRule{}, false
	}
	return r.rules[i], true
}

// Len reports the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Catalog returns the built-in regulation rule set in declaration order.
//
// Condition semantics: an empty jurisdiction set or the "*" wildcard matches
// any jurisdiction; an empty entity-type or product-type set places no
// constraint; MinAUMUSD of zero always passes.
func Catalog() []models.RegulationRule {
	return []models.RegulationRule{
		{
			Name:          "MiFID II",
			Jurisdictions: []string{"EU", "UK"},
			EntityTypes:   []models.EntityType{models.EntityHedgeFund, models.EntityInvestmentAdvisor, models.EntityBank},
			ProductTypes:  []string{"derivatives", "equities", "fixed_income"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "regulatory_compliance_statement", Required: true, Description: "Signed MiFID II compliance attestation"},
				{DocumentType: "best_execution_policy", Required: true, Description: "Best execution policy document"},
				{DocumentType: "client_categorization_notice", Required: false, Description: "Professional client categorization notice"},
			},
		},
		{
			Name:          "AIFMD",
			Jurisdictions: []string{"EU", "UK"},
			EntityTypes:   []models.EntityType{models.EntityHedgeFund},
			MinAUMUSD:     100_000_000,
			Documents: []models.DocumentRequirement{
				{DocumentType: "fund_prospectus", Required: true, Description: "Alternative investment fund prospectus"},
				{DocumentType: "depositary_agreement", Required: true, Description: "Depositary appointment agreement"},
			},
		},
		{
			Name:          "UCITS",
			Jurisdictions: []string{"EU"},
			EntityTypes:   []models.EntityType{models.EntityInvestmentAdvisor},
			ProductTypes:  []string{"funds"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "fund_prospectus", Required: true, Description: "UCITS fund prospectus"},
				{DocumentType: "key_investor_information", Required: true, Description: "Key investor information document"},
			},
		},
		{
			Name:          "EMIR",
			Jurisdictions: []string{"EU", "UK"},
			ProductTypes:  []string{"derivatives"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "regulatory_compliance_statement", Required: true, Description: "EMIR reporting compliance attestation"},
				{DocumentType: "lei_confirmation", Required: true, Description: "Legal entity identifier confirmation"},
			},
		},
		{
			Name:          "CRD IV",
			Jurisdictions: []string{"EU", "UK"},
			EntityTypes:   []models.EntityType{models.EntityBank},
			Documents: []models.DocumentRequirement{
				{DocumentType: "capital_adequacy_report", Required: true, Description: "Capital adequacy assessment report"},
			},
		},
		{
			Name:          "Solvency II",
			Jurisdictions: []string{"EU", "UK"},
			EntityTypes:   []models.EntityType{models.EntityInsuranceCompany},
			Documents: []models.DocumentRequirement{
				{DocumentType: "solvency_report", Required: true, Description: "Solvency and financial condition report"},
			},
		},
		{
			Name:          "FATCA",
			Jurisdictions: []string{"US", "GLOBAL"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "w8_ben_e", Required: true, Description: "IRS form W-8BEN-E"},
				{DocumentType: "tax_residency_certification", Required: true, Description: "Tax residency self-certification"},
			},
		},
		{
			Name:          "CRS",
			Jurisdictions: []string{models.JurisdictionAny},
			Documents: []models.DocumentRequirement{
				{DocumentType: "tax_residency_certification", Required: true, Description: "Common reporting standard self-certification"},
			},
		},
		{
			Name:          "AML/KYC",
			Jurisdictions: []string{models.JurisdictionAny},
			Documents: []models.DocumentRequirement{
				{DocumentType: "entity_registration_certificate", Required: true, Description: "Certificate of incorporation or registration"},
				{DocumentType: "beneficial_ownership_declaration", Required: true, Description: "Ultimate beneficial ownership declaration"},
				{DocumentType: "regulatory_compliance_statement", Required: true, Description: "AML program attestation"},
			},
		},
		{
			Name:          "GDPR",
			Jurisdictions: []string{"EU", "UK"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "data_processing_agreement", Required: true, Description: "Data processing agreement"},
			},
		},
		{
			Name:        "Basel III",
			EntityTypes: []models.EntityType{models.EntityBank},
			Documents: []models.DocumentRequirement{
				{DocumentType: "capital_adequacy_report", Required: true, Description: "Basel III capital and liquidity disclosure"},
			},
		},
		{
			Name:          "SFDR",
			Jurisdictions: []string{"EU"},
			EntityTypes:   []models.EntityType{models.EntityHedgeFund, models.EntityInvestmentAdvisor, models.EntityPensionFund},
			Documents: []models.DocumentRequirement{
				{DocumentType: "sustainability_disclosure", Required: true, Description: "Sustainable finance disclosure statement"},
			},
		},
		{
			Name:          "MAR",
			Jurisdictions: []string{"EU", "UK"},
			ProductTypes:  []string{"equities", "derivatives"},
			Documents: []models.DocumentRequirement{
				{DocumentType: "market_conduct_policy", Required: true, Description: "Market abuse prevention policy"},
			},
		},
		{
			Name:          "CASS",
			Jurisdictions: []string{"UK"},
			EntityTypes:   []models.EntityType{models.EntityInvestmentAdvisor, models.EntityBank},
			Documents: []models.DocumentRequirement{
				{DocumentType: "client_asset_acknowledgement", Required: true, Description: "Client asset acknowledgement letter"},
			},
		},
	}
}
