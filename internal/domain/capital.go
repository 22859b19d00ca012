package domain

import (
	"fmt"
	"time"
)

type CapitalType string

const (
	CapitalGrant  CapitalType = "GRANT"
	CapitalEquity CapitalType = "EQUITY"
	CapitalDebt   CapitalType = "DEBT"
	CapitalOther  CapitalType = "OTHER"
)

var ValidCapitalTypes = map[CapitalType]bool{
	CapitalGrant: true, CapitalEquity: true, CapitalDebt: true, CapitalOther: true,
}

type CapitalStatus string

const (
	CapitalRequested CapitalStatus = "REQUESTED"
	CapitalApproved  CapitalStatus = "APPROVED"
	CapitalDisbursed CapitalStatus = "DISBURSED"
	CapitalDeclined  CapitalStatus = "DECLINED"
)

var ValidCapitalStatuses = map[CapitalStatus]bool{
	CapitalRequested: true, CapitalApproved: true,
	CapitalDisbursed: true, CapitalDeclined: true,
}

// CapitalActivity is a capital-facilitation request or event tied to a
// venture (a grant application, an equity round, a debt facility).
type CapitalActivity struct {
	ID        string        `json:"id"`
	VentureID string        `json:"ventureId"`
	Type      CapitalType   `json:"type"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    CapitalStatus `json:"status"`
	Note      string        `json:"note,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *CapitalActivity) Validate() error {
	if c.VentureID == "" {
		return fmt.Errorf("capital activity venture ID is required")
	}
	if !ValidCapitalTypes[c.Type] {
		return fmt.Errorf("invalid capital activity type %q", c.Type)
	}
	if !ValidCapitalStatuses[c.Status] {
		return fmt.Errorf("invalid capital activity status %q", c.Status)
	}
	if c.Amount < 0 {
		return fmt.Errorf("capital amount must be non-negative, got %v", c.Amount)
	}
	return nil
}
