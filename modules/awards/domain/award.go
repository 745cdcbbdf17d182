// Package domain holds the public response shapes of the award detail
// endpoint. Field order in these structs is part of the API contract: it
// mirrors the order the fields are assembled in, variant by variant.
//
// These types are the only thing a caller ever sees. The working rows that
// carry internal lookup keys between the fetch and assembly stages live in
// pkg/projection and never marshal.
package domain

import (
	references "github.com/fedspend/awards-api/modules/references/domain"
)

// Variant is the award's stored category driving response dispatch.
type Variant string

const (
	VariantAssistance Variant = "assistance"
	VariantContract   Variant = "contract"
	VariantIDV        Variant = "idv"
)

type PeriodOfPerformance struct {
	StartDate      *string `json:"period_of_performance_start_date"`
	CurrentEndDate *string `json:"period_of_performance_current_end_date"`
}

// IDVDates groups ordering-period dates, not performance-period dates: the
// start date comes from the award row, the last-modified and end dates from
// the latest transaction.
type IDVDates struct {
	StartDate        *string `json:"start_date"`
	LastModifiedDate *string `json:"last_modified_date"`
	EndDate          *string `json:"end_date"`
}

type RecipientLocation struct {
	LocationCountryCode *string `json:"location_country_code"`
	CountryName         *string `json:"country_name"`
	StateCode           *string `json:"state_code"`
	CityName            *string `json:"city_name"`
	CountyName          *string `json:"county_name"`
	AddressLine1        *string `json:"address_line1"`
	AddressLine2        *string `json:"address_line2"`
	AddressLine3        *string `json:"address_line3"`
	CongressionalCode   *string `json:"congressional_code"`
	Zip4                *string `json:"zip4"`
	Zip5                *string `json:"zip5"`
	ForeignPostalCode   *string `json:"foreign_postal_code"`
	ForeignProvince     *string `json:"foreign_province"`
}

type Recipient struct {
	RecipientHash           string            `json:"recipient_hash"`
	RecipientName           *string           `json:"recipient_name"`
	RecipientUniqueID       *string           `json:"recipient_unique_id"`
	ParentRecipientUniqueID *string           `json:"parent_recipient_unique_id"`
	ParentRecipientName     *string           `json:"parent_recipient_name"`
	BusinessCategories      []string          `json:"business_categories"`
	Location                RecipientLocation `json:"location"`
}

// PlaceOfPerformance carries no address lines; a performance site is a
// geography, not a mailing address.
type PlaceOfPerformance struct {
	LocationCountryCode *string `json:"location_country_code"`
	CountryName         *string `json:"country_name"`
	CountyName          *string `json:"county_name"`
	CityName            *string `json:"city_name"`
	StateCode           *string `json:"state_code"`
	CongressionalCode   *string `json:"congressional_code"`
	Zip4                *string `json:"zip4"`
	Zip5                *string `json:"zip5"`
	ForeignProvince     *string `json:"foreign_province"`
}

type ExecutiveDetails struct {
	Officers references.OfficerSlots `json:"officers"`
}

// ParentAwardSummary describes an IDV's parent. When the parent link exists
// but the parent award row is gone, the link ids are populated and the
// summary fields stay null.
type ParentAwardSummary struct {
	AgencyID               *string `json:"agency_id"`
	AwardID                int64   `json:"award_id"`
	GeneratedUniqueAwardID string  `json:"generated_unique_award_id"`
	IDVTypeDescription     *string `json:"idv_type_description"`
	MultipleOrSingleAwDesc *string `json:"multiple_or_single_aw_desc"`
	PIID                   *string `json:"piid"`
	TypeOfIDCDescription   *string `json:"type_of_idc_description"`
}

// ContractTransactionData is the latest_transaction_contract_data block of
// contract and IDV responses.
type ContractTransactionData struct {
	IDVTypeDescription       *string `json:"idv_type_description"`
	TypeOfIDCDescription     *string `json:"type_of_idc_description"`
	ReferencedIDVAgencyIden  *string `json:"referenced_idv_agency_iden"`
	MultipleOrSingleAwDesc   *string `json:"multiple_or_single_aw_desc"`
	SolicitationIdentifier   *string `json:"solicitation_identifier"`
	SolicitationProcedures   *string `json:"solicitation_procedures"`
	NumberOfOffersReceived   *string `json:"number_of_offers_received"`
	ExtentCompeted           *string `json:"extent_competed"`
	ExtentCompeteDescription *string `json:"extent_compete_description"`
	TypeSetAsideDescription  *string `json:"type_set_aside_description"`
	TypeOfContractPricDesc   *string `json:"type_of_contract_pric_desc"`
	CommercialItemAcquisitio *string `json:"commercial_item_acquisitio"`
	CommercialItemTestProgr  *string `json:"commercial_item_test_progr"`
	ProductOrServiceCode     *string `json:"product_or_service_code"`
	ProductOrServiceCoDesc   *string `json:"product_or_service_co_desc"`
	NAICS                    *string `json:"naics"`
	NAICSDescription         *string `json:"naics_description"`
	DODClaimantProgramCode   *string `json:"dod_claimant_program_code"`
	ProgramAcronym           *string `json:"program_acronym"`
	SubcontractingPlan       *string `json:"subcontracting_plan"`
	MajorProgram             *string `json:"major_program"`
	ClingerCohenActPlaDesc   *string `json:"clinger_cohen_act_pla_desc"`
	InformationTechnologDesc *string `json:"information_technolog_desc"`
	SeaTransportationDesc    *string `json:"sea_transportation_desc"`
	LaborStandardsDescrip    *string `json:"labor_standards_descrip"`
	CostOrPricingDataDesc    *string `json:"cost_or_pricing_data_desc"`
	DomesticOrForeignEDesc   *string `json:"domestic_or_foreign_e_desc"`
	ForeignFundingDesc       *string `json:"foreign_funding_desc"`
	InteragencyContractDesc  *string `json:"interagency_contract_desc"`
	PriceEvaluationAdjustmen *string `json:"price_evaluation_adjustmen"`
}

// AssistanceResponse is the FABS award detail shape.
type AssistanceResponse struct {
	ID                     *int64                     `json:"id"`
	GeneratedUniqueAwardID *string                    `json:"generated_unique_award_id"`
	FAIN                   *string                    `json:"fain"`
	URI                    *string                    `json:"uri"`
	Category               *string                    `json:"category"`
	Type                   *string                    `json:"type"`
	TypeDescription        *string                    `json:"type_description"`
	Description            *string                    `json:"description"`
	TotalObligation        *float64                   `json:"total_obligation"`
	TotalSubsidyCost       *float64                   `json:"total_subsidy_cost"`
	SubawardCount          *int64                     `json:"subaward_count"`
	TotalSubawardAmount    *float64                   `json:"total_subaward_amount"`
	DateSigned             *string                    `json:"date_signed"`
	CFDANumber             *string                    `json:"cfda_number"`
	CFDATitle              *string                    `json:"cfda_title"`
	CFDAObjectives         *string                    `json:"cfda_objectives"`
	FundingAgency          *references.AgencyDetails  `json:"funding_agency"`
	AwardingAgency         *references.AgencyDetails  `json:"awarding_agency"`
	PeriodOfPerformance    PeriodOfPerformance        `json:"period_of_performance"`
	Recipient              Recipient                  `json:"recipient"`
	PlaceOfPerformance     PlaceOfPerformance         `json:"place_of_performance"`
}

// ContractResponse is the FPDS award detail shape.
type ContractResponse struct {
	ID                            *int64                    `json:"id"`
	GeneratedUniqueAwardID        *string                   `json:"generated_unique_award_id"`
	PIID                          *string                   `json:"piid"`
	Category                      *string                   `json:"category"`
	Type                          *string                   `json:"type"`
	TypeDescription               *string                   `json:"type_description"`
	Description                   *string                   `json:"description"`
	TotalObligation               *float64                  `json:"total_obligation"`
	BaseAndAllOptionsValue        *float64                  `json:"base_and_all_options_value"`
	SubawardCount                 *int64                    `json:"subaward_count"`
	TotalSubawardAmount           *float64                  `json:"total_subaward_amount"`
	DateSigned                    *string                   `json:"date_signed"`
	ExecutiveDetails              ExecutiveDetails          `json:"executive_details"`
	LatestTransactionContractData ContractTransactionData   `json:"latest_transaction_contract_data"`
	FundingAgency                 *references.AgencyDetails `json:"funding_agency"`
	AwardingAgency                *references.AgencyDetails `json:"awarding_agency"`
	PeriodOfPerformance           PeriodOfPerformance       `json:"period_of_performance"`
	Recipient                     Recipient                 `json:"recipient"`
	PlaceOfPerformance            PlaceOfPerformance        `json:"place_of_performance"`
}

// IDVResponse is the contract shape with parent linkage and ordering-period
// dates in place of the performance period.
type IDVResponse struct {
	ID                            *int64                    `json:"id"`
	GeneratedUniqueAwardID        *string                   `json:"generated_unique_award_id"`
	PIID                          *string                   `json:"piid"`
	Category                      *string                   `json:"category"`
	Type                          *string                   `json:"type"`
	TypeDescription               *string                   `json:"type_description"`
	Description                   *string                   `json:"description"`
	TotalObligation               *float64                  `json:"total_obligation"`
	BaseAndAllOptionsValue        *float64                  `json:"base_and_all_options_value"`
	SubawardCount                 *int64                    `json:"subaward_count"`
	TotalSubawardAmount           *float64                  `json:"total_subaward_amount"`
	DateSigned                    *string                   `json:"date_signed"`
	ParentAward                   *ParentAwardSummary       `json:"parent_award"`
	ParentGeneratedUniqueAwardID  *string                   `json:"parent_generated_unique_award_id"`
	ExecutiveDetails              ExecutiveDetails          `json:"executive_details"`
	LatestTransactionContractData ContractTransactionData   `json:"latest_transaction_contract_data"`
	FundingAgency                 *references.AgencyDetails `json:"funding_agency"`
	AwardingAgency                *references.AgencyDetails `json:"awarding_agency"`
	IDVDates                      IDVDates                  `json:"idv_dates"`
	Recipient                     Recipient                 `json:"recipient"`
	PlaceOfPerformance            PlaceOfPerformance        `json:"place_of_performance"`
}

// Response is the variant-tagged result of an assembly. Exactly one of the
// three shapes is set.
type Response struct {
	Variant    Variant             `json:"-"`
	Assistance *AssistanceResponse `json:"-"`
	Contract   *ContractResponse   `json:"-"`
	IDV        *IDVResponse        `json:"-"`
}

// Body returns the variant's payload for encoding.
func (r *Response) Body() any {
	switch r.Variant {
	case VariantAssistance:
		return r.Assistance
	case VariantContract:
		return r.Contract
	case VariantIDV:
		return r.IDV
	}
	return nil
}
