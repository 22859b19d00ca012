package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Venture struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Sector               string        `json:"sector"`
	Location             string        `json:"location"`
	Stage                VentureStage  `json:"stage"`
	Status               VentureStatus `json:"status"`
	FundingRaised        float64       `json:"fundingRaised"`
	FundingSought        float64       `json:"fundingSought"`
	TeamSize             int           `json:"teamSize"`
	ContactEmail         string        `json:"contactEmail,omitempty"`
	ContactPhone         string        `json:"contactPhone,omitempty"`
	Website              string        `json:"website,omitempty"`
	OperationalReadiness string        `json:"operationalReadiness,omitempty"`
	CapitalReadiness     string        `json:"capitalReadiness,omitempty"`
	CreatedByID          string        `json:"createdById"`
	AssignedToID         *string       `json:"assignedToId,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

// Validate checks the invariants every persisted venture must satisfy:
// non-empty name/sector/location, enum membership for stage and status,
// a well-formed contact email when one is present, and a creator.
func (v *Venture) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("venture name is required")
	}
	if v.Sector == "" {
		return fmt.Errorf("venture sector is required")
	}
	if v.Location == "" {
		return fmt.Errorf("venture location is required")
	}
	if !ValidVentureStages[v.Stage] {
		return fmt.Errorf("invalid venture stage %q", v.Stage)
	}
	if !ValidVentureStatuses[v.Status] {
		return fmt.Errorf("invalid venture status %q", v.Status)
	}
	if v.ContactEmail != "" && !ValidEmail(v.ContactEmail) {
		return fmt.Errorf("contact email %q is not a valid address", v.ContactEmail)
	}
	if v.CreatedByID == "" {
		return fmt.Errorf("venture creator is required")
	}
	return nil
}

// ValidEmail reports whether s is an acceptable contact email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "email") == nil
}
