// Package classifier determines which regulations apply to a client profile.
// Classification is a pure function of the rule registry and the profile:
// no I/O, no randomness, declaration-ordered output.
package classifier

import (
	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/regulatory/rules"
)

// Classifier evaluates profiles against the process-wide rule registry.
type Classifier struct {
	registry *rules.Registry
}

// New constructs a classifier over the given registry.
func New(registry *rules.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify returns the names of all applicable regulations in rule
// declaration order. A regulation appears at most once.
func (c *Classifier) Classify(profile *models.ClientProfile) []string {
	var applicable []string
	for _, rule := range c.registry.All() {
		if rule.AppliesTo(profile) {
			applicable = append(applicable, rule.Name)
		}
	}
	return applicable
}
