package handler

import (
	"time"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

type productApprovalRequest struct {
	ProductName  string `json:"product_name"`
	ProductType  string `json:"product_type"`
	ApprovalDate string `json:"approval_date,omitempty"`
	RiskTier     string `json:"risk_tier,omitempty"`
}

type triggerClassificationRequest struct {
	ClientID      string                   `json:"client_id"`
	EntityName    string                   `json:"entity_name"`
	EntityType    string                   `json:"entity_type"`
	Jurisdiction  string                   `json:"jurisdiction"`
	AUMUSD        float64                  `json:"aum_usd"`
	BusinessType  string                   `json:"business_type"`
	ContactPerson string                   `json:"contact_person,omitempty"`
	Email         string                   `json:"email,omitempty"`
	Products      []productApprovalRequest `json:"products,omitempty"`
}

// toProfile maps the request onto a domain profile. Field-level invariants are
// enforced by the profile's own Validate; only shape problems are caught here.
func (req *triggerClassificationRequest) toProfile() (*models.ClientProfile, error) {
	profile := &models.ClientProfile{
		ClientID:      domain.ClientID(req.ClientID),
		EntityName:    req.EntityName,
		EntityType:    models.EntityType(req.EntityType),
		Jurisdiction:  req.Jurisdiction,
		AUMUSD:        req.AUMUSD,
		BusinessType:  req.BusinessType,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
	}
	for _, p := range req.Products {
		approval := models.ProductApproval{
			ProductName: p.ProductName,
			ProductType: p.ProductType,
			RiskTier:    p.RiskTier,
		}
		if p.ProductType == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_type is required for each product")
		}
		if p.ApprovalDate != "" {
			date, err := time.Parse("2006-01-02", p.ApprovalDate)
			if err != nil {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
					"invalid approval_date %q, expected YYYY-MM-DD", p.ApprovalDate)
			}
			approval.ApprovalDate = date
		}
		profile.Products = append(profile.Products, approval)
	}
	return profile, nil
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}
