package upstream

import (
	"context"
	"fmt"

	"github.com/naveenbxyz/iclm/pkg/domain"
)

// The static collaborators below are the in-process defaults used when no
// upstream endpoint is configured. They are fully deterministic: same inputs,
// same outputs, no delays. Production deployments configure the HTTP clients
// instead.

// StaticDocuments serves a synthesized compliance statement per
// (client, regulation) pair.
type StaticDocuments struct{}

// Fetch implements DocumentFetcher.
func (StaticDocuments) Fetch(_ context.Context, clientID domain.ClientID, regulation string) (*Document, error) {
	return &Document{
		DocumentID:   domain.DocumentID(fmt.Sprintf("DOC-%s-%s", clientID, regulation)),
		DocumentType: "regulatory_compliance_statement",
		Content: fmt.Sprintf(
			"Compliance statement for %s under %s. Entity registration verified. "+
				"Business activities approved. Financial thresholds met. "+
				"Reporting obligations acknowledged.", clientID, regulation),
		Metadata: map[string]string{"source_system": "static"},
	}, nil
}

// StaticAnalyzer approves every document with full confidence. Pair it with
// scripted test doubles when exercising the manual-review branch.
type StaticAnalyzer struct{}

// Analyze implements DocumentAnalyzer.
func (StaticAnalyzer) Analyze(_ context.Context, _ string, regulation string) (*Analysis, error) {
	return &Analysis{
		IsCompliant: true,
		Confidence:  0.95,
		Findings: []string{
			fmt.Sprintf("Document matches expected %s compliance format", regulation),
			"Entity registration information present",
			"Signature and authorization sections validated",
		},
	}, nil
}

// StaticDataQuality scores every monitored field at 0.9.
type StaticDataQuality struct{}

// Assess implements DataQualityService.
func (StaticDataQuality) Assess(_ context.Context, _ domain.ClientID, _ string) (map[string]FieldQuality, error) {
	fields := make(map[string]FieldQuality, len(MonitoredFields))
	for _, field := range MonitoredFields {
		fields[field] = FieldQuality{Score: 0.9}
	}
	return fields, nil
}

// StaticCompleteness reports every required document as available.
type StaticCompleteness struct{}

// Check implements DocumentCompletenessService.
func (StaticCompleteness) Check(_ context.Context, _ domain.ClientID, _ string, requiredDocs []string) (map[string]bool, error) {
	availability := make(map[string]bool, len(requiredDocs))
	for _, doc := range requiredDocs {
		availability[doc] = true
	}
	return availability, nil
}

// MonitoredFields is the fixed data-quality field catalog. The DQ checker
// iterates it in this order so check output is reproducible.
var MonitoredFields = []string{
	"entity_name",
	"registration_number",
	"jurisdiction",
	"business_address",
	"contact_information",
	"financial_data",
	"regulatory_permissions",
	"reporting_obligations",
}
