package models

// JurisdictionAny is the wildcard entry in a rule's jurisdiction set; a rule
// carrying it applies in every jurisdiction.
const JurisdictionAny = "*"

// DocumentRequirement names one document a regulation demands.
type DocumentRequirement struct {
	DocumentType string `json:"document_type"`
	Required     bool   `json:"required"`
	Description  string `json:"description"`
}

// RegulationRule declares when a regulation applies and what it demands.
//
// Every condition category is optional; an unspecified category is vacuously
// satisfied. The rule applies only when all specified categories pass.
type RegulationRule struct {
	Name          string                `json:"name"`
	Jurisdictions []string              `json:"jurisdictions,omitempty"`
	EntityTypes   []EntityType          `json:"entity_types,omitempty"`
	MinAUMUSD     float64               `json:"min_aum_usd,omitempty"`
	ProductTypes  []string              `json:"product_types,omitempty"`
	Documents     []DocumentRequirement `json:"documents,omitempty"`
}

// AppliesTo evaluates the rule's conditions against a profile. Pure; the
// classifier relies on this being deterministic.
func (r *RegulationRule) AppliesTo(profile *ClientProfile) bool {
	if !r.jurisdictionMatches(profile.Jurisdiction) {
		return false
	}
	if !r.entityTypeMatches(profile.EntityType) {
		return false
	}
	if profile.AUMUSD < r.MinAUMUSD {
		return false
	}
	return r.productTypesMatch(profile.ProductTypes())
}

// RequiredDocumentTypes returns the types of documents the rule marks required,
// in declaration order.
func (r *RegulationRule) RequiredDocumentTypes() []string {
	var types []string
	for _, doc := range r.Documents {
		if doc.Required {
			types = append(types, doc.DocumentType)
		}
	}
	return types
}

func (r *RegulationRule) jurisdictionMatches(jurisdiction string) bool {
	if len(r.Jurisdictions) == 0 {
		return true
	}
	for _, j := range r.Jurisdictions {
		if j == JurisdictionAny || j == jurisdiction {
			return true
		}
	}
	return false
}

func (r *RegulationRule) entityTypeMatches(entityType EntityType) bool {
	if len(r.EntityTypes) == 0 {
		return true
	}
	for _, t := range r.EntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}

func (r *RegulationRule) productTypesMatch(profileTypes []string) bool {
	if len(r.ProductTypes) == 0 {
		return true
	}
	for _, want := range r.ProductTypes {
		for _, have := range profileTypes {
			if want == have {
				return true
			}
		}
	}
	return false
}
