package handler

import (
	"time"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

type classificationSummary struct {
	ClassificationID domain.ClassificationID `json:"classification_id"`
	ClientID         domain.ClientID         `json:"client_id"`
	ClientName       string                  `json:"client_name,omitempty"`
	Status           models.CheckStatus      `json:"status"`
	Progress         float64                 `json:"overall_progress"`
	TotalChecks      int                     `json:"total_checks"`
	CreatedAt        time.Time               `json:"created_at"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
}

type listClassificationsResponse struct {
	Classifications []classificationSummary `json:"classifications"`
}

type classificationDetail struct {
	*models.RegulatoryClassification
	ClientName string `json:"client_name,omitempty"`
}

func toClassificationSummary(record *models.RegulatoryClassification, clientName string) classificationSummary {
	return classificationSummary{
		ClassificationID: record.ClassificationID,
		ClientID:         record.ClientID,
		ClientName:       clientName,
		Status:           record.Status,
		Progress:         record.Progress,
		TotalChecks:      record.TotalChecks(),
		CreatedAt:        record.CreatedAt,
		CompletedAt:      record.CompletedAt,
	}
}

func toClassificationDetail(record *models.RegulatoryClassification, clientName string) classificationDetail {
	return classificationDetail{RegulatoryClassification: record, ClientName: clientName}
}
