package services_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedspend/awards-api/modules/awards/domain"
	"github.com/fedspend/awards-api/modules/awards/services"
	references "github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/pkg/mapping"
	"github.com/fedspend/awards-api/pkg/projection"
)

type fakeAwardRepo struct {
	variant     *domain.AwardVariantRow
	variantErr  error
	award       projection.Row
	awardErr    error
	transaction projection.Row
	parent      *domain.ParentLookup

	idvTransactionCalled bool
}

func (f *fakeAwardRepo) FetchVariant(_ context.Context, _ domain.Identifier) (*domain.AwardVariantRow, error) {
	return f.variant, f.variantErr
}

func (f *fakeAwardRepo) FetchAssistanceAward(_ context.Context, _ domain.Identifier) (projection.Row, error) {
	return f.award, f.awardErr
}

func (f *fakeAwardRepo) FetchContractAward(_ context.Context, _ domain.Identifier) (projection.Row, error) {
	return f.award, f.awardErr
}

func (f *fakeAwardRepo) FetchAssistanceTransaction(_ context.Context, _ int64) (projection.Row, error) {
	return f.transaction, nil
}

func (f *fakeAwardRepo) FetchContractTransaction(_ context.Context, _ int64) (projection.Row, error) {
	return f.transaction, nil
}

func (f *fakeAwardRepo) FetchIDVTransaction(_ context.Context, _ int64) (projection.Row, error) {
	f.idvTransactionCalled = true
	return f.transaction, nil
}

func (f *fakeAwardRepo) FetchParentAward(_ context.Context, _ string) (*domain.ParentLookup, error) {
	if f.parent != nil {
		return f.parent, nil
	}
	return &domain.ParentLookup{State: domain.ParentNone}, nil
}

type fakeAgencyRepo struct {
	agencies map[int64]*references.AgencyDetails
}

func (f *fakeAgencyRepo) FetchAgency(_ context.Context, agencyID int64) (*references.AgencyDetails, error) {
	return f.agencies[agencyID], nil
}

type fakeLegalEntityRepo struct {
	categories []string
	officers   references.OfficerSlots

	categoriesCalls int
}

func (f *fakeLegalEntityRepo) FetchBusinessCategories(_ context.Context, _ int64) ([]string, error) {
	f.categoriesCalls++
	if f.categories == nil {
		return []string{}, nil
	}
	return f.categories, nil
}

func (f *fakeLegalEntityRepo) FetchOfficers(_ context.Context, _ int64) (references.OfficerSlots, error) {
	return f.officers, nil
}

type fakeCFDARepo struct {
	programs map[string]*references.CFDAProgram
}

func (f *fakeCFDARepo) FetchProgram(_ context.Context, programNumber string) (*references.CFDAProgram, error) {
	return f.programs[programNumber], nil
}

type fakeResolver struct {
	token string
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ *string) (string, error) {
	return f.token, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newService(repo *fakeAwardRepo, agencies *fakeAgencyRepo, entities *fakeLegalEntityRepo, cfda *fakeCFDARepo) *services.AwardService {
	if agencies == nil {
		agencies = &fakeAgencyRepo{}
	}
	if entities == nil {
		entities = &fakeLegalEntityRepo{}
	}
	if cfda == nil {
		cfda = &fakeCFDARepo{}
	}
	return services.NewAwardService(repo, agencies, entities, cfda, &fakeResolver{token: "11111111-2222-3333-4444-555555555555"})
}

func assistanceTransactionRow() projection.Row {
	return projection.Row{
		"cfda_number":                "10.001",
		"cfda_title":                 "Agricultural Research",
		"_recipient_name":            "ACME CORP",
		"_recipient_unique_id":       "000000123",
		"_parent_recipient_name":     "ACME HOLDINGS",
		"_rl_location_country_code":  "USA",
		"_rl_country_name":           "UNITED STATES",
		"_rl_state_code":             "VA",
		"_rl_city_name":              "ARLINGTON",
		"_rl_address_line1":          "1 MAIN ST",
		"_pop_location_country_code": "USA",
		"_pop_state_code":            "MD",
		"_pop_city_name":             "BETHESDA",
		"_pop_zip5":                  "20810",
	}
}

func TestAwardService_NotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{variantErr: domain.ErrAwardNotFound}
	svc := newService(repo, nil, nil, nil)

	_, err := svc.Assemble(context.Background(), "CONT_AWD_MISSING")
	require.ErrorIs(t, err, domain.ErrAwardNotFound)
}

func TestAwardService_AssembleAssistance(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{
			Category: mapping.Pointer("grant"),
			Type:     mapping.Pointer("04"),
		},
		award: projection.Row{
			"id":                        int64(42),
			"generated_unique_award_id": "ASST_NON_12345",
			"fain":                      "12345",
			"category":                  "grant",
			"type":                      "04",
			"total_obligation":          float64(1500000),
			"date_signed":               date("2019-03-01"),
			"_trx":                      int64(9001),
			"_lei":                      int64(77),
			"_funding_agency":           int64(5),
			"_awarding_agency":          int64(6),
			"_start_date":               date("2019-03-15"),
			"_end_date":                 date("2021-03-14"),
		},
		transaction: assistanceTransactionRow(),
	}
	agencies := &fakeAgencyRepo{agencies: map[int64]*references.AgencyDetails{
		5: {ID: 5, ToptierAgency: references.AgencyTier{Name: mapping.Pointer("Department of Agriculture")}},
		6: {ID: 6, ToptierAgency: references.AgencyTier{Name: mapping.Pointer("Department of Energy")}},
	}}
	entities := &fakeLegalEntityRepo{categories: []string{"small_business"}}
	cfda := &fakeCFDARepo{programs: map[string]*references.CFDAProgram{
		"10.001": {ProgramNumber: "10.001", Objectives: mapping.Pointer("To fund research.")},
	}}

	svc := newService(repo, agencies, entities, cfda)
	resp, err := svc.Assemble(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, domain.VariantAssistance, resp.Variant)
	require.NotNil(t, resp.Assistance)

	body := resp.Assistance
	assert.Equal(t, int64(42), *body.ID)
	assert.Equal(t, "12345", *body.FAIN)
	assert.Nil(t, body.URI)
	assert.Equal(t, "10.001", *body.CFDANumber)
	assert.Equal(t, "To fund research.", *body.CFDAObjectives)
	assert.Equal(t, "2019-03-15", *body.PeriodOfPerformance.StartDate)
	assert.Equal(t, "2021-03-14", *body.PeriodOfPerformance.CurrentEndDate)
	assert.Equal(t, "2019-03-01", *body.DateSigned)

	require.NotNil(t, body.FundingAgency)
	assert.Equal(t, "Department of Agriculture", *body.FundingAgency.ToptierAgency.Name)
	require.NotNil(t, body.AwardingAgency)
	assert.Equal(t, "Department of Energy", *body.AwardingAgency.ToptierAgency.Name)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", body.Recipient.RecipientHash)
	assert.Equal(t, "ACME CORP", *body.Recipient.RecipientName)
	assert.Equal(t, []string{"small_business"}, body.Recipient.BusinessCategories)
	assert.Equal(t, "1 MAIN ST", *body.Recipient.Location.AddressLine1)
	assert.Nil(t, body.Recipient.Location.AddressLine2)

	assert.Equal(t, "BETHESDA", *body.PlaceOfPerformance.CityName)
	assert.Equal(t, "20810", *body.PlaceOfPerformance.Zip5)
}

func TestAwardService_AssembleAssistance_UnknownCFDA(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{Category: mapping.Pointer("grant")},
		award: projection.Row{
			"id":   int64(1),
			"_trx": int64(2),
		},
		transaction: projection.Row{"cfda_number": "99.999"},
	}
	svc := newService(repo, nil, nil, nil)

	resp, err := svc.Assemble(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "99.999", *resp.Assistance.CFDANumber)
	assert.Nil(t, resp.Assistance.CFDAObjectives)
}

func TestAwardService_AssembleContract(t *testing.T) {
	t.Parallel()

	officers := references.OfficerSlots{}
	officers[0] = references.OfficerSlot{Name: mapping.Pointer("J. DOE"), Amount: mapping.Pointer(250000.0)}

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{
			Category: mapping.Pointer("contract"),
			Type:     mapping.Pointer("D"),
		},
		award: projection.Row{
			"id":                         int64(7),
			"generated_unique_award_id":  "CONT_AWD_777",
			"piid":                       "W91ABC",
			"base_and_all_options_value": float64(2000000),
			"_trx":                       int64(300),
			"_lei":                       int64(55),
			"_start_date":                date("2018-01-01"),
			"_end_date":                  date("2020-12-31"),
		},
		transaction: projection.Row{
			"naics":                     "541511",
			"naics_description":         "CUSTOM COMPUTER PROGRAMMING",
			"extent_competed":           "A",
			"number_of_offers_received": "3",
			"_recipient_name":           "ACME CORP",
			"_pop_state_code":           "TX",
		},
	}
	entities := &fakeLegalEntityRepo{officers: officers}

	svc := newService(repo, nil, entities, nil)
	resp, err := svc.Assemble(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, domain.VariantContract, resp.Variant)

	body := resp.Contract
	assert.Equal(t, "W91ABC", *body.PIID)
	assert.Equal(t, 2000000.0, *body.BaseAndAllOptionsValue)
	assert.Equal(t, "541511", *body.LatestTransactionContractData.NAICS)
	assert.Equal(t, "3", *body.LatestTransactionContractData.NumberOfOffersReceived)
	assert.Equal(t, "2018-01-01", *body.PeriodOfPerformance.StartDate)
	assert.Equal(t, "TX", *body.PlaceOfPerformance.StateCode)

	assert.Equal(t, "J. DOE", *body.ExecutiveDetails.Officers[0].Name)
	assert.Nil(t, body.ExecutiveDetails.Officers[1].Name)
}

func TestAwardService_AssembleContract_NoLegalEntity(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{Category: mapping.Pointer("contract")},
		award: projection.Row{
			"id":   int64(8),
			"_trx": int64(1),
		},
		transaction: projection.Row{},
	}
	entities := &fakeLegalEntityRepo{}

	svc := newService(repo, nil, entities, nil)
	resp, err := svc.Assemble(context.Background(), "8")
	require.NoError(t, err)

	// Without a legal entity there is nothing to look up, but the roster
	// still comes back as five empty slots and the categories as an empty set.
	for _, slot := range resp.Contract.ExecutiveDetails.Officers {
		assert.Nil(t, slot.Name)
		assert.Nil(t, slot.Amount)
	}
	assert.NotNil(t, resp.Contract.Recipient.BusinessCategories)
	assert.Empty(t, resp.Contract.Recipient.BusinessCategories)
	assert.Zero(t, entities.categoriesCalls)
}

func TestAwardService_AssembleIDV(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{
			Category: mapping.Pointer("idv"),
			Type:     mapping.Pointer("IDV_B_A"),
		},
		award: projection.Row{
			"id":                        int64(9),
			"generated_unique_award_id": "CONT_IDV_999",
			"piid":                      "GS00Q",
			"_trx":                      int64(501),
			"_start_date":               date("2017-05-01"),
		},
		transaction: projection.Row{
			"idv_type_description": "GWAC",
			"_last_modified_date":  date("2019-08-20"),
			"_end_date":            date("2027-04-30"),
		},
		parent: &domain.ParentLookup{
			State:                  domain.ParentFound,
			AwardID:                1000,
			GeneratedUniqueAwardID: "CONT_IDV_PARENT",
			Summary: &domain.ParentAwardSummary{
				AwardID:                1000,
				GeneratedUniqueAwardID: "CONT_IDV_PARENT",
				PIID:                   mapping.Pointer("GS00P"),
			},
		},
	}

	svc := newService(repo, nil, nil, nil)
	resp, err := svc.Assemble(context.Background(), "9")
	require.NoError(t, err)
	require.Equal(t, domain.VariantIDV, resp.Variant)

	body := resp.IDV
	assert.True(t, repo.idvTransactionCalled)
	assert.Equal(t, "GWAC", *body.LatestTransactionContractData.IDVTypeDescription)

	// Ordering-period dates blend the award row and the latest transaction.
	assert.Equal(t, "2017-05-01", *body.IDVDates.StartDate)
	assert.Equal(t, "2019-08-20", *body.IDVDates.LastModifiedDate)
	assert.Equal(t, "2027-04-30", *body.IDVDates.EndDate)

	require.NotNil(t, body.ParentAward)
	assert.Equal(t, int64(1000), body.ParentAward.AwardID)
	assert.Equal(t, "GS00P", *body.ParentAward.PIID)
	require.NotNil(t, body.ParentGeneratedUniqueAwardID)
	assert.Equal(t, "CONT_IDV_PARENT", *body.ParentGeneratedUniqueAwardID)
}

func TestAwardService_AssembleIDV_NoParent(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{Type: mapping.Pointer("IDV_A")},
		award: projection.Row{
			"id":                        int64(10),
			"generated_unique_award_id": "CONT_IDV_10",
			"_trx":                      int64(1),
		},
		transaction: projection.Row{},
	}

	svc := newService(repo, nil, nil, nil)
	resp, err := svc.Assemble(context.Background(), "10")
	require.NoError(t, err)

	assert.Nil(t, resp.IDV.ParentAward)
	assert.Nil(t, resp.IDV.ParentGeneratedUniqueAwardID)
}

func TestAwardService_AssembleIDV_DanglingParent(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{Type: mapping.Pointer("IDV_A")},
		award: projection.Row{
			"id":                        int64(11),
			"generated_unique_award_id": "CONT_IDV_11",
			"_trx":                      int64(1),
		},
		transaction: projection.Row{},
		parent: &domain.ParentLookup{
			State:                  domain.ParentDangling,
			AwardID:                2000,
			GeneratedUniqueAwardID: "CONT_IDV_GONE",
		},
	}

	svc := newService(repo, nil, nil, nil)
	resp, err := svc.Assemble(context.Background(), "11")
	require.NoError(t, err)

	// The link ids survive; the summary fields stay null.
	require.NotNil(t, resp.IDV.ParentAward)
	assert.Equal(t, int64(2000), resp.IDV.ParentAward.AwardID)
	assert.Equal(t, "CONT_IDV_GONE", resp.IDV.ParentAward.GeneratedUniqueAwardID)
	assert.Nil(t, resp.IDV.ParentAward.PIID)
	assert.Nil(t, resp.IDV.ParentAward.IDVTypeDescription)
	require.NotNil(t, resp.IDV.ParentGeneratedUniqueAwardID)
	assert.Equal(t, "CONT_IDV_GONE", *resp.IDV.ParentGeneratedUniqueAwardID)
}

func TestAwardService_MissingLatestTransaction(t *testing.T) {
	t.Parallel()

	// An award row with a NULL latest-transaction reference is a data
	// defect in an award that exists: it must surface as an internal error,
	// never as a not-found result.
	tests := []struct {
		name    string
		variant *domain.AwardVariantRow
	}{
		{"assistance", &domain.AwardVariantRow{Category: mapping.Pointer("grant")}},
		{"contract", &domain.AwardVariantRow{Category: mapping.Pointer("contract")}},
		{"idv", &domain.AwardVariantRow{Type: mapping.Pointer("IDV_A")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeAwardRepo{
				variant: tt.variant,
				award: projection.Row{
					"id":                        int64(3),
					"generated_unique_award_id": "CONT_AWD_3",
				},
			}
			svc := newService(repo, nil, nil, nil)

			_, err := svc.Assemble(context.Background(), "3")
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrAwardNotFound)
			assert.Contains(t, err.Error(), "no latest transaction")
		})
	}
}

func TestAwardService_VariantDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category *string
		awdType  *string
		want     domain.Variant
	}{
		{"idv type wins over category", mapping.Pointer("contract"), mapping.Pointer("IDV_B"), domain.VariantIDV},
		{"contract category", mapping.Pointer("contract"), mapping.Pointer("D"), domain.VariantContract},
		{"grant falls through to assistance", mapping.Pointer("grant"), mapping.Pointer("04"), domain.VariantAssistance},
		{"nil category and type", nil, nil, domain.VariantAssistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeAwardRepo{
				variant: &domain.AwardVariantRow{Category: tt.category, Type: tt.awdType},
				award: projection.Row{
					"id":                        int64(1),
					"generated_unique_award_id": "X",
					"_trx":                      int64(1),
				},
				transaction: projection.Row{},
			}
			svc := newService(repo, nil, nil, nil)

			resp, err := svc.Assemble(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Variant)
			assert.NotNil(t, resp.Body())
		})
	}
}

func TestAwardService_InternalKeysNeverMarshal(t *testing.T) {
	t.Parallel()

	repo := &fakeAwardRepo{
		variant: &domain.AwardVariantRow{Category: mapping.Pointer("grant")},
		award: projection.Row{
			"id":               int64(1),
			"_trx":             int64(2),
			"_lei":             int64(3),
			"_funding_agency":  int64(4),
			"_awarding_agency": int64(5),
			"_start_date":      date("2020-01-01"),
		},
		transaction: assistanceTransactionRow(),
	}
	svc := newService(repo, nil, nil, nil)

	resp, err := svc.Assemble(context.Background(), "1")
	require.NoError(t, err)

	raw, err := json.Marshal(resp.Body())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), `"_`), "internal working keys must not appear in the response: %s", raw)
}
