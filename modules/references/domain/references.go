package domain

import "context"

// AgencyTier is one level of the toptier/subtier/office hierarchy.
type AgencyTier struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Abbreviation *string `json:"abbreviation"`
}

// AgencyDetails is the nested descriptor attached to award responses.
// Agency identity is always looked up, never derived.
type AgencyDetails struct {
	ID               int64      `json:"id"`
	ToptierAgency    AgencyTier `json:"toptier_agency"`
	SubtierAgency    AgencyTier `json:"subtier_agency"`
	OfficeAgencyName *string    `json:"office_agency_name"`
}

// OfficerSlotCount reflects the upstream schema: five compensation slots,
// not a variable-length list.
const OfficerSlotCount = 5

type OfficerSlot struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
}

// OfficerSlots always holds exactly five entries, empty slots included.
type OfficerSlots [OfficerSlotCount]OfficerSlot

type CFDAProgram struct {
	ProgramNumber string
	ProgramTitle  *string
	Objectives    *string
}

type AgencyRepository interface {
	// FetchAgency returns nil without error when the agency id does not resolve.
	FetchAgency(ctx context.Context, agencyID int64) (*AgencyDetails, error)
}

type LegalEntityRepository interface {
	// FetchBusinessCategories returns an empty set when the legal entity is missing.
	FetchBusinessCategories(ctx context.Context, legalEntityID int64) ([]string, error)
	// FetchOfficers returns five empty slots when the officers row is missing.
	FetchOfficers(ctx context.Context, legalEntityID int64) (OfficerSlots, error)
}

type CFDARepository interface {
	// FetchProgram returns nil without error when the program number is unknown.
	FetchProgram(ctx context.Context, programNumber string) (*CFDAProgram, error)
}
