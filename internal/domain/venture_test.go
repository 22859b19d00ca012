package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validVenture() *Venture {
	return &Venture{
		ID:          "v-1",
		Name:        "Solar Sisters",
		Sector:      "CleanTech",
		Location:    "Phnom Penh, Cambodia",
		Stage:       StageScreening,
		Status:      VentureActive,
		CreatedByID: "u-1",
	}
}

func TestVenture_Validate(t *testing.T) {
	assert.NoError(t, validVenture().Validate())
}

func TestVenture_Validate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Venture)
	}{
		{"empty name", func(v *Venture) { v.Name = "" }},
		{"empty sector", func(v *Venture) { v.Sector = "" }},
		{"empty location", func(v *Venture) { v.Location = "" }},
		{"no creator", func(v *Venture) { v.CreatedByID = "" }},
		{"bad stage", func(v *Venture) { v.Stage = "LAUNCHPAD" }},
		{"bad status", func(v *Venture) { v.Status = "DORMANT" }},
		{"bad email", func(v *Venture) { v.ContactEmail = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVenture()
			tt.mutate(v)
			assert.Error(t, v.Validate())
		})
	}
}

func TestVenture_Validate_OptionalEmail(t *testing.T) {
	v := validVenture()
	v.ContactEmail = ""
	assert.NoError(t, v.Validate(), "empty contact email is allowed")

	v.ContactEmail = "founder@example.org"
	assert.NoError(t, v.Validate())
}
