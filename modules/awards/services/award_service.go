package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fedspend/awards-api/modules/awards/domain"
	references "github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/pkg/projection"
)

// RecipientResolver yields the stable recipient identity token.
type RecipientResolver interface {
	Resolve(ctx context.Context, recipientUniqueID, recipientName *string) (string, error)
}

// AwardService assembles the denormalized award detail response. It is the
// only component that calls the resolvers; resolvers never call each other.
type AwardService struct {
	awards        domain.Repository
	agencies      references.AgencyRepository
	legalEntities references.LegalEntityRepository
	cfda          references.CFDARepository
	identity      RecipientResolver
}

func NewAwardService(
	awards domain.Repository,
	agencies references.AgencyRepository,
	legalEntities references.LegalEntityRepository,
	cfda references.CFDARepository,
	identity RecipientResolver,
) *AwardService {
	return &AwardService{
		awards:        awards,
		agencies:      agencies,
		legalEntities: legalEntities,
		cfda:          cfda,
		identity:      identity,
	}
}

// Assemble builds the response for one award, dispatching on its stored
// category. Returns domain.ErrAwardNotFound when the identifier matches
// nothing.
func (s *AwardService) Assemble(ctx context.Context, requestedAward string) (*domain.Response, error) {
	ident := domain.ParseIdentifier(requestedAward)

	variantRow, err := s.awards.FetchVariant(ctx, ident)
	if err != nil {
		return nil, err
	}

	switch classifyVariant(variantRow) {
	case domain.VariantIDV:
		idv, err := s.assembleIDV(ctx, ident)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Variant: domain.VariantIDV, IDV: idv}, nil
	case domain.VariantContract:
		contract, err := s.assembleContract(ctx, ident)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Variant: domain.VariantContract, Contract: contract}, nil
	default:
		assistance, err := s.assembleAssistance(ctx, ident)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Variant: domain.VariantAssistance, Assistance: assistance}, nil
	}
}

func classifyVariant(row *domain.AwardVariantRow) domain.Variant {
	if row.Type != nil && strings.HasPrefix(*row.Type, "IDV") {
		return domain.VariantIDV
	}
	if row.Category != nil && *row.Category == "contract" {
		return domain.VariantContract
	}
	return domain.VariantAssistance
}

func (s *AwardService) assembleAssistance(ctx context.Context, ident domain.Identifier) (*domain.AssistanceResponse, error) {
	award, err := s.awards.FetchAssistanceAward(ctx, ident)
	if err != nil {
		return nil, err
	}

	resp := &domain.AssistanceResponse{
		ID:                     award.Int64("id"),
		GeneratedUniqueAwardID: award.String("generated_unique_award_id"),
		FAIN:                   award.String("fain"),
		URI:                    award.String("uri"),
		Category:               award.String("category"),
		Type:                   award.String("type"),
		TypeDescription:        award.String("type_description"),
		Description:            award.String("description"),
		TotalObligation:        award.Float64("total_obligation"),
		TotalSubsidyCost:       award.Float64("total_subsidy_cost"),
		SubawardCount:          award.Int64("subaward_count"),
		TotalSubawardAmount:    award.Float64("total_subaward_amount"),
		DateSigned:             award.Date("date_signed"),
		PeriodOfPerformance: domain.PeriodOfPerformance{
			StartDate:      award.Date("_start_date"),
			CurrentEndDate: award.Date("_end_date"),
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.FundingAgency, err = s.resolveAgency(gctx, award.Int64("_funding_agency"))
		return err
	})
	g.Go(func() (err error) {
		resp.AwardingAgency, err = s.resolveAgency(gctx, award.Int64("_awarding_agency"))
		return err
	})
	g.Go(func() error {
		trxID := award.Int64("_trx")
		if trxID == nil {
			// The award row exists, so this is a broken latest-transaction
			// reference, not a missing award.
			return errors.Errorf("award %s has no latest transaction", ident)
		}
		trx, err := s.awards.FetchAssistanceTransaction(gctx, *trxID)
		if err != nil {
			return err
		}

		resp.CFDANumber = trx.String("cfda_number")
		resp.CFDATitle = trx.String("cfda_title")
		resp.PlaceOfPerformance = buildPlaceOfPerformance(trx)

		tg, tctx := errgroup.WithContext(gctx)
		tg.Go(func() error {
			if resp.CFDANumber == nil {
				return nil
			}
			program, err := s.cfda.FetchProgram(tctx, *resp.CFDANumber)
			if err != nil {
				return err
			}
			if program != nil {
				resp.CFDAObjectives = program.Objectives
			}
			return nil
		})
		tg.Go(func() (err error) {
			resp.Recipient, err = s.buildRecipient(tctx, trx, award.Int64("_lei"))
			return err
		})
		return tg.Wait()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AwardService) assembleContract(ctx context.Context, ident domain.Identifier) (*domain.ContractResponse, error) {
	award, err := s.awards.FetchContractAward(ctx, ident)
	if err != nil {
		return nil, err
	}

	resp := &domain.ContractResponse{
		ID:                     award.Int64("id"),
		GeneratedUniqueAwardID: award.String("generated_unique_award_id"),
		PIID:                   award.String("piid"),
		Category:               award.String("category"),
		Type:                   award.String("type"),
		TypeDescription:        award.String("type_description"),
		Description:            award.String("description"),
		TotalObligation:        award.Float64("total_obligation"),
		BaseAndAllOptionsValue: award.Float64("base_and_all_options_value"),
		SubawardCount:          award.Int64("subaward_count"),
		TotalSubawardAmount:    award.Float64("total_subaward_amount"),
		DateSigned:             award.Date("date_signed"),
		PeriodOfPerformance: domain.PeriodOfPerformance{
			StartDate:      award.Date("_start_date"),
			CurrentEndDate: award.Date("_end_date"),
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.ExecutiveDetails, err = s.resolveOfficers(gctx, award.Int64("_lei"))
		return err
	})
	g.Go(func() (err error) {
		resp.FundingAgency, err = s.resolveAgency(gctx, award.Int64("_funding_agency"))
		return err
	})
	g.Go(func() (err error) {
		resp.AwardingAgency, err = s.resolveAgency(gctx, award.Int64("_awarding_agency"))
		return err
	})
	g.Go(func() error {
		trxID := award.Int64("_trx")
		if trxID == nil {
			// The award row exists, so this is a broken latest-transaction
			// reference, not a missing award.
			return errors.Errorf("award %s has no latest transaction", ident)
		}
		trx, err := s.awards.FetchContractTransaction(gctx, *trxID)
		if err != nil {
			return err
		}
		resp.LatestTransactionContractData = buildContractTransactionData(trx)
		resp.PlaceOfPerformance = buildPlaceOfPerformance(trx)
		resp.Recipient, err = s.buildRecipient(gctx, trx, award.Int64("_lei"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AwardService) assembleIDV(ctx context.Context, ident domain.Identifier) (*domain.IDVResponse, error) {
	award, err := s.awards.FetchContractAward(ctx, ident)
	if err != nil {
		return nil, err
	}

	resp := &domain.IDVResponse{
		ID:                     award.Int64("id"),
		GeneratedUniqueAwardID: award.String("generated_unique_award_id"),
		PIID:                   award.String("piid"),
		Category:               award.String("category"),
		Type:                   award.String("type"),
		TypeDescription:        award.String("type_description"),
		Description:            award.String("description"),
		TotalObligation:        award.Float64("total_obligation"),
		BaseAndAllOptionsValue: award.Float64("base_and_all_options_value"),
		SubawardCount:          award.Int64("subaward_count"),
		TotalSubawardAmount:    award.Float64("total_subaward_amount"),
		DateSigned:             award.Date("date_signed"),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		guai := award.String("generated_unique_award_id")
		if guai == nil {
			return nil
		}
		parent, err := s.awards.FetchParentAward(gctx, *guai)
		if err != nil {
			return err
		}
		resp.ParentAward, resp.ParentGeneratedUniqueAwardID = renderParent(parent)
		return nil
	})
	g.Go(func() (err error) {
		resp.ExecutiveDetails, err = s.resolveOfficers(gctx, award.Int64("_lei"))
		return err
	})
	g.Go(func() (err error) {
		resp.FundingAgency, err = s.resolveAgency(gctx, award.Int64("_funding_agency"))
		return err
	})
	g.Go(func() (err error) {
		resp.AwardingAgency, err = s.resolveAgency(gctx, award.Int64("_awarding_agency"))
		return err
	})
	g.Go(func() error {
		trxID := award.Int64("_trx")
		if trxID == nil {
			// The award row exists, so this is a broken latest-transaction
			// reference, not a missing award.
			return errors.Errorf("award %s has no latest transaction", ident)
		}
		trx, err := s.awards.FetchIDVTransaction(gctx, *trxID)
		if err != nil {
			return err
		}
		resp.LatestTransactionContractData = buildContractTransactionData(trx)
		resp.PlaceOfPerformance = buildPlaceOfPerformance(trx)
		// Ordering-period dates: start from the award row, the rest from the
		// transaction. This is not the contract path's performance period.
		resp.IDVDates = domain.IDVDates{
			StartDate:        award.Date("_start_date"),
			LastModifiedDate: trx.Date("_last_modified_date"),
			EndDate:          trx.Date("_end_date"),
		}
		resp.Recipient, err = s.buildRecipient(gctx, trx, award.Int64("_lei"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AwardService) resolveAgency(ctx context.Context, agencyID *int64) (*references.AgencyDetails, error) {
	if agencyID == nil {
		return nil, nil
	}
	return s.agencies.FetchAgency(ctx, *agencyID)
}

func (s *AwardService) resolveOfficers(ctx context.Context, legalEntityID *int64) (domain.ExecutiveDetails, error) {
	if legalEntityID == nil {
		// The roster shape is fixed at five slots regardless of data sparsity.
		return domain.ExecutiveDetails{}, nil
	}
	slots, err := s.legalEntities.FetchOfficers(ctx, *legalEntityID)
	if err != nil {
		return domain.ExecutiveDetails{}, err
	}
	return domain.ExecutiveDetails{Officers: slots}, nil
}

func (s *AwardService) buildRecipient(ctx context.Context, trx projection.Row, legalEntityID *int64) (domain.Recipient, error) {
	name := trx.String("_recipient_name")
	uniqueID := trx.String("_recipient_unique_id")

	hash, err := s.identity.Resolve(ctx, uniqueID, name)
	if err != nil {
		return domain.Recipient{}, err
	}

	categories := []string{}
	if legalEntityID != nil {
		categories, err = s.legalEntities.FetchBusinessCategories(ctx, *legalEntityID)
		if err != nil {
			return domain.Recipient{}, err
		}
	}

	return domain.Recipient{
		RecipientHash:           hash,
		RecipientName:           name,
		RecipientUniqueID:       uniqueID,
		ParentRecipientUniqueID: trx.String("_parent_recipient_unique_id"),
		ParentRecipientName:     trx.String("_parent_recipient_name"),
		BusinessCategories:      categories,
		Location: domain.RecipientLocation{
			LocationCountryCode: trx.String("_rl_location_country_code"),
			CountryName:         trx.String("_rl_country_name"),
			StateCode:           trx.String("_rl_state_code"),
			CityName:            trx.String("_rl_city_name"),
			CountyName:          trx.String("_rl_county_name"),
			AddressLine1:        trx.String("_rl_address_line1"),
			AddressLine2:        trx.String("_rl_address_line2"),
			AddressLine3:        trx.String("_rl_address_line3"),
			CongressionalCode:   trx.String("_rl_congressional_code"),
			Zip4:                trx.String("_rl_zip4"),
			Zip5:                trx.String("_rl_zip5"),
			ForeignPostalCode:   trx.String("_rl_foreign_postal_code"),
			ForeignProvince:     trx.String("_rl_foreign_province"),
		},
	}, nil
}

func buildPlaceOfPerformance(trx projection.Row) domain.PlaceOfPerformance {
	return domain.PlaceOfPerformance{
		LocationCountryCode: trx.String("_pop_location_country_code"),
		CountryName:         trx.String("_pop_country_name"),
		CountyName:          trx.String("_pop_county_name"),
		CityName:            trx.String("_pop_city_name"),
		StateCode:           trx.String("_pop_state_code"),
		CongressionalCode:   trx.String("_pop_congressional_code"),
		Zip4:                trx.String("_pop_zip4"),
		Zip5:                trx.String("_pop_zip5"),
		ForeignProvince:     trx.String("_pop_foreign_province"),
	}
}

func buildContractTransactionData(trx projection.Row) domain.ContractTransactionData {
	return domain.ContractTransactionData{
		IDVTypeDescription:       trx.String("idv_type_description"),
		TypeOfIDCDescription:     trx.String("type_of_idc_description"),
		ReferencedIDVAgencyIden:  trx.String("referenced_idv_agency_iden"),
		MultipleOrSingleAwDesc:   trx.String("multiple_or_single_aw_desc"),
		SolicitationIdentifier:   trx.String("solicitation_identifier"),
		SolicitationProcedures:   trx.String("solicitation_procedures"),
		NumberOfOffersReceived:   trx.String("number_of_offers_received"),
		ExtentCompeted:           trx.String("extent_competed"),
		ExtentCompeteDescription: trx.String("extent_compete_description"),
		TypeSetAsideDescription:  trx.String("type_set_aside_description"),
		TypeOfContractPricDesc:   trx.String("type_of_contract_pric_desc"),
		CommercialItemAcquisitio: trx.String("commercial_item_acquisitio"),
		CommercialItemTestProgr:  trx.String("commercial_item_test_progr"),
		ProductOrServiceCode:     trx.String("product_or_service_code"),
		ProductOrServiceCoDesc:   trx.String("product_or_service_co_desc"),
		NAICS:                    trx.String("naics"),
		NAICSDescription:         trx.String("naics_description"),
		DODClaimantProgramCode:   trx.String("dod_claimant_program_code"),
		ProgramAcronym:           trx.String("program_acronym"),
		SubcontractingPlan:       trx.String("subcontracting_plan"),
		MajorProgram:             trx.String("major_program"),
		ClingerCohenActPlaDesc:   trx.String("clinger_cohen_act_pla_desc"),
		InformationTechnologDesc: trx.String("information_technolog_desc"),
		SeaTransportationDesc:    trx.String("sea_transportation_desc"),
		LaborStandardsDescrip:    trx.String("labor_standards_descrip"),
		CostOrPricingDataDesc:    trx.String("cost_or_pricing_data_desc"),
		DomesticOrForeignEDesc:   trx.String("domestic_or_foreign_e_desc"),
		ForeignFundingDesc:       trx.String("foreign_funding_desc"),
		InteragencyContractDesc:  trx.String("interagency_contract_desc"),
		PriceEvaluationAdjustmen: trx.String("price_evaluation_adjustmen"),
	}
}

func renderParent(parent *domain.ParentLookup) (*domain.ParentAwardSummary, *string) {
	switch parent.State {
	case domain.ParentNone:
		return nil, nil
	case domain.ParentDangling:
		guai := parent.GeneratedUniqueAwardID
		return &domain.ParentAwardSummary{
			AwardID:                parent.AwardID,
			GeneratedUniqueAwardID: guai,
		}, &guai
	default:
		guai := parent.GeneratedUniqueAwardID
		return parent.Summary, &guai
	}
}
