package upstream

import (
	"time"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
)

// SeedDemoClients loads a small demo book into the memory registry so the
// service is exercisable without a client master connection.
func SeedDemoClients(registry *MemoryRegistry) {
	now := time.Now()
	for _, profile := range []*models.ClientProfile{
		{
			ClientID:      "CLIENT-001",
			EntityName:    "Quantum Fund Ltd.",
			EntityType:    models.EntityHedgeFund,
			Jurisdiction:  "EU",
			AUMUSD:        250_000_000,
			BusinessType:  "investment management",
			ContactPerson: "Elena Moreau",
			Email:         "ops@quantumfund.example",
			Products: []models.ProductApproval{
				{ProductName: "OTC Interest Rate Swaps", ProductType: "derivatives", ApprovalDate: now.AddDate(-1, 0, 0), RiskTier: "high"},
				{ProductName: "European Equities", ProductType: "equities", ApprovalDate: now.AddDate(-2, 0, 0), RiskTier: "medium"},
			},
			CreatedAt: now,
		},
		{
			ClientID:      "CLIENT-002",
			EntityName:    "Global Investments PLC",
			EntityType:    models.EntityBank,
			Jurisdiction:  "UK",
			AUMUSD:        1_200_000_000,
			BusinessType:  "investment banking",
			ContactPerson: "James Okafor",
			Email:         "onboarding@globalinv.example",
			Products: []models.ProductApproval{
				{ProductName: "FX Forwards", ProductType: "derivatives", ApprovalDate: now.AddDate(0, -6, 0), RiskTier: "medium"},
			},
			CreatedAt: now,
		},
		{
			ClientID:      "CLIENT-003",
			EntityName:    "Pinnacle Corp.",
			EntityType:    models.EntityCorporate,
			Jurisdiction:  "SG",
			AUMUSD:        40_000_000,
			BusinessType:  "treasury operations",
			ContactPerson: "Mei Lin Tan",
			Email:         "treasury@pinnacle.example",
			CreatedAt:     now,
		},
	} {
		registry.Register(profile)
	}
}
