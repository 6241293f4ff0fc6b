// Package constants holds the hiring-pipeline enumerations as a single
// configuration artifact. Every layer that validates or displays a status,
// position, or source reads from here.
package constants

// Catalog is the set of form enumerations shared between the intake form
// and the staff pipeline. Statuses are ordered by pipeline progression;
// ordering is informational, any transition between members is allowed.
type Catalog struct {
	Positions []string `json:"positions"`
	Statuses  []string `json:"statuses"`
	Sources   []string `json:"sources"`
}

// Default returns the built-in catalog. Kept behind a constructor so a
// deployment can swap the lists without touching validation code.
func Default() *Catalog {
	return &Catalog{
		Positions: []string{
			"Master Technician (A-Tech)", "B-Tech", "C-Tech", "Lube Technician",
			"Transmission Technician", "GS Technician", "Tire Technician",
			"Service Advisor", "Service Writer (Junior Advisor)", "Service Manager",
			"General Manager", "Customer Service Agent", "Parts Manager",
			"Parts Runner", "Shop Foreman / Lead Tech", "Shop Porter",
			"Bookkeeper", "Marketing Coordinator", "Other",
		},
		Statuses: []string{
			"NEW", "CONTACTED", "PHONE_SCREEN", "IN_PERSON_1", "IN_PERSON_2",
			"TECH_TEST", "OFFER_SENT", "OFFER_ACCEPTED", "HIRED", "REJECTED",
		},
		Sources: []string{
			"Website", "Google", "Indeed", "Facebook", "TikTok",
			"Referral", "Walk-in", "ZipRecruiter", "Returning Applicant", "Other",
		},
	}
}

// InitialStatus is the status every new applicant starts in.
const InitialStatus = "NEW"

// DefaultSource names the intake channel assumed when a submission does
// not carry one.
const DefaultSource = "website"

// ValidStatus reports whether s is a member of the status enumeration.
func (c *Catalog) ValidStatus(s string) bool {
	return contains(c.Statuses, s)
}

// ValidSource reports whether s is a member of the source enumeration.
func (c *Catalog) ValidSource(s string) bool {
	return contains(c.Sources, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
