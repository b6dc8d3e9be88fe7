package upstream

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the postgres driver used by sql.Open below.
	_ "github.com/lib/pq"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// PostgresRegistry resolves client profiles from the firm's client master in
// PostgreSQL. Schema: client_profiles(client_id PK, entity_name, entity_type,
// jurisdiction, aum_usd, business_type, contact_person, email, created_at)
// and product_approvals(client_id FK, product_name, product_type,
// approval_date, risk_tier, position).
type PostgresRegistry struct {
	db *sql.DB
}

// NewPostgresRegistry opens a connection pool against the given DSN.
func NewPostgresRegistry(dsn string) (*PostgresRegistry, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping registry database: %w", err)
	}
	return &PostgresRegistry{db: db}, nil
}

// Lookup implements ClientRegistry.
func (r *PostgresRegistry) Lookup(ctx context.Context, clientID domain.ClientID) (*models.ClientProfile, error) {
	const profileQuery = `
		SELECT client_id, entity_name, entity_type, jurisdiction, aum_usd,
		       business_type, contact_person, email, created_at
		FROM client_profiles
		WHERE client_id = $1`

	profile := &models.ClientProfile{}
	err := r.db.QueryRowContext(ctx, profileQuery, clientID.String()).Scan(
		&profile.ClientID,
		&profile.EntityName,
		&profile.EntityType,
		&profile.Jurisdiction,
		&profile.AUMUSD,
		&profile.BusinessType,
		&profile.ContactPerson,
		&profile.Email,
		&profile.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "client %s not found in registry", clientID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "registry lookup failed")
	}

	const productsQuery = `
		SELECT product_name, product_type, approval_date, risk_tier
		FROM product_approvals
		WHERE client_id = $1
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, productsQuery, clientID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "registry product lookup failed")
	}
	defer rows.Close()

	for rows.Next() {
		var approval models.ProductApproval
		if err := rows.Scan(&approval.ProductName, &approval.ProductType, &approval.ApprovalDate, &approval.RiskTier); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "registry product scan failed")
		}
		profile.Products = append(profile.Products, approval)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "registry product iteration failed")
	}
	return profile, nil
}

// Close releases the connection pool.
func (r *PostgresRegistry) Close() error { return r.db.Close() }
