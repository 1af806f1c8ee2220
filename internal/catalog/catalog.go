package catalog

import "go.uber.org/fx"

const UnknownPackage = "Unknown Package"

// Description is the project metadata derived from a package at purchase
// time. It is immutable on the project afterwards.
type Description struct {
	Type         string
	Category     string
	Requirements []string
	Deliverables []string
}

// Defaults are the fallbacks for unrecognized packages. The four fields are
// deliberately independent: the legacy tables each chose their own default
// and product has not confirmed they should be unified.
type Defaults struct {
	Type         string
	Category     string
	Requirements []string
	Deliverables []string
}

// Catalog maps paid amounts to package names and package names to project
// metadata.
type Catalog struct {
	amounts      map[int64]string
	descriptions map[string]Description
	defaults     Defaults
}

func New() *Catalog {
	return NewWithDefaults(Defaults{
		Type:         "Local SEO",
		Category:     "Local SEO",
		Requirements: []string{"Business Information"},
		Deliverables: []string{"SEO Optimization"},
	})
}

func NewWithDefaults(defaults Defaults) *Catalog {
	return &Catalog{
		amounts: map[int64]string{
			249: "Map PowerBoost",
			347: "Cloud Stack Boost",
			299: "Local Citations",
			849: "Platinum Local SEO",
			1:   "Test",
		},
		descriptions: map[string]Description{
			"Map PowerBoost": {
				Type:         "Google Maps Optimization",
				Category:     "Local SEO",
				Requirements: []string{"Business Information", "Service Areas", "Target Keywords"},
				Deliverables: []string{"GMB Optimization", "Map Rankings", "Traffic Reports"},
			},
			"Cloud Stack Boost": {
				Type:         "Advanced Maps Integration",
				Category:     "Technical SEO",
				Requirements: []string{"Website Access", "Business Details", "Target Locations"},
				Deliverables: []string{"Cloud Stack Setup", "Map Embeds", "Performance Analytics"},
			},
			"Local Citations": {
				Type:         "Citation Building",
				Category:     "Local SEO",
				Requirements: []string{"Business Information", "Service Categories", "Local Areas"},
				Deliverables: []string{"Citation Listings", "Consistency Reports", "Local Rankings"},
			},
			"Platinum Local SEO": {
				Type:         "Comprehensive Local SEO",
				Category:     "Local SEO",
				Requirements: []string{"Business Information", "Service Areas", "Target Keywords", "Website Access"},
				Deliverables: []string{"GMB Optimization", "Citation Building", "Map Rankings", "Traffic Reports"},
			},
			"Test": {
				Type:         "Test Service",
				Category:     "Test",
				Requirements: []string{"Test Requirements"},
				Deliverables: []string{"Test Deliverables"},
			},
		},
		defaults: defaults,
	}
}

// Classify maps an amount in minor units (cents) to a package name. Only
// exact whole-dollar amounts match the table.
func (c *Catalog) Classify(amountCents int64) string {
	if amountCents%100 != 0 {
		return UnknownPackage
	}
	if name, ok := c.amounts[amountCents/100]; ok {
		return name
	}
	return UnknownPackage
}

// Describe looks up the four metadata fields for a package. Each field
// falls back to its own default independently when the package is
// unrecognized.
func (c *Catalog) Describe(packageName string) Description {
	if d, ok := c.descriptions[packageName]; ok {
		return d
	}
	return Description{
		Type:         c.defaults.Type,
		Category:     c.defaults.Category,
		Requirements: c.defaults.Requirements,
		Deliverables: c.defaults.Deliverables,
	}
}

// OneTime reports whether a package is billed once rather than monthly.
// Only the Test package is a one-time purchase.
func (c *Catalog) OneTime(packageName string) bool {
	return packageName == "Test"
}

var Module = fx.Module("catalog",
	fx.Provide(New),
)
