package checks

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/upstream"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// dqPassThreshold is the minimum field score considered passing.
const dqPassThreshold = 0.8

// maxIssuesPerField caps the issue descriptions carried on a failing check.
const maxIssuesPerField = 2

// DataQualityChecker turns per-field assessments from the DQ platform into
// check records, one per monitored field, in catalog order.
type DataQualityChecker struct {
	service upstream.DataQualityService
}

// NewDataQualityChecker constructs a checker with its collaborator.
func NewDataQualityChecker(service upstream.DataQualityService) *DataQualityChecker {
	return &DataQualityChecker{service: service}
}

// Check assesses one regulation. Fields absent from the assessment fail with
// an explanatory issue rather than vanishing from the record.
func (c *DataQualityChecker) Check(ctx context.Context, clientID domain.ClientID, regulation string) ([]models.DataQualityCheck, error) {
	assessment, err := c.service.Assess(ctx, clientID, regulation)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "data quality assessment failed for "+regulation)
	}

	now := time.Now()
	checks := make([]models.DataQualityCheck, 0, len(upstream.MonitoredFields))
	for _, field := range upstream.MonitoredFields {
		check := models.DataQualityCheck{
			CheckID:        domain.NewCheckID(),
			RegulationName: regulation,
			FieldName:      field,
			CreatedAt:      now,
			CompletedAt:    &now,
		}
		quality, assessed := assessment[field]
		switch {
		case !assessed:
			check.Status = models.CheckStatusFailed
			check.Issues = []string{"field not assessed by data quality service"}
		case quality.Score >= dqPassThreshold:
			check.Status = models.CheckStatusPassed
			check.Score = quality.Score
		default:
			check.Status = models.CheckStatusFailed
			check.Score = quality.Score
			issues := quality.Issues
			if len(issues) > maxIssuesPerField {
				issues = issues[:maxIssuesPerField]
			}
			check.Issues = append([]string(nil), issues...)
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// CheckAll fans out over regulations concurrently; output order follows the
// input regulation order, with each regulation's fields in catalog order.
func (c *DataQualityChecker) CheckAll(ctx context.Context, clientID domain.ClientID, regulations []string) ([]models.DataQualityCheck, error) {
	perRegulation := make([][]models.DataQualityCheck, len(regulations))
	g, gctx := errgroup.WithContext(ctx)
	for i, regulation := range regulations {
		g.Go(func() error {
			checks, err := c.Check(gctx, clientID, regulation)
			if err != nil {
				return err
			}
			perRegulation[i] = checks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.DataQualityCheck
	for _, checks := range perRegulation {
		out = append(out, checks...)
	}
	return out, nil
}
