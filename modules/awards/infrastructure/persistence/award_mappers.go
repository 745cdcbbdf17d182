package persistence

import (
	"github.com/fedspend/awards-api/pkg/projection"
)

// Variant field catalogues. External names are the keys of the working row
// the assemblers read; "_"-prefixed names carry lookup keys between stages
// and never reach a response. The catalogues are validated at package init,
// so a duplicate or missing name fails at startup rather than per request.

func col(name string) projection.Field {
	return projection.Field{External: name, Source: name}
}

func ann(external, source string) projection.Field {
	return projection.Field{External: external, Source: source, Computed: true}
}

// awardInternalFields are the lookup keys every award fetch carries.
var awardInternalFields = []projection.Field{
	ann("_trx", "latest_transaction_id"),
	ann("_lei", "recipient_id"),
	ann("_funding_agency", "funding_agency_id"),
	ann("_awarding_agency", "awarding_agency_id"),
	ann("_start_date", "period_of_performance_start_date"),
	ann("_end_date", "period_of_performance_current_end_date"),
}

var FABSAwardFields = projection.MustCatalog(append([]projection.Field{
	col("id"),
	col("generated_unique_award_id"),
	col("fain"),
	col("uri"),
	col("category"),
	col("type"),
	col("type_description"),
	col("description"),
	col("total_obligation"),
	col("total_subsidy_cost"),
	col("subaward_count"),
	col("total_subaward_amount"),
	col("date_signed"),
}, awardInternalFields...)...)

var FPDSAwardFields = projection.MustCatalog(append([]projection.Field{
	col("id"),
	col("generated_unique_award_id"),
	col("piid"),
	col("category"),
	col("type"),
	col("type_description"),
	col("description"),
	col("total_obligation"),
	col("base_and_all_options_value"),
	col("subaward_count"),
	col("total_subaward_amount"),
	col("date_signed"),
}, awardInternalFields...)...)

// recipientInternalFields map the transaction's recipient columns to the
// working-row keys the recipient sub-object is built from.
var recipientInternalFields = []projection.Field{
	ann("_recipient_name", "awardee_or_recipient_legal"),
	ann("_recipient_unique_id", "awardee_or_recipient_uniqu"),
	ann("_parent_recipient_name", "ultimate_parent_legal_enti"),
	ann("_parent_recipient_unique_id", "ultimate_parent_unique_ide"),
	ann("_rl_location_country_code", "legal_entity_country_code"),
	ann("_rl_country_name", "legal_entity_country_name"),
	ann("_rl_state_code", "legal_entity_state_code"),
	ann("_rl_city_name", "legal_entity_city_name"),
	ann("_rl_county_name", "legal_entity_county_name"),
	ann("_rl_address_line1", "legal_entity_address_line1"),
	ann("_rl_address_line2", "legal_entity_address_line2"),
	ann("_rl_address_line3", "legal_entity_address_line3"),
	ann("_rl_congressional_code", "legal_entity_congressional"),
	ann("_rl_zip4", "legal_entity_zip_last4"),
	ann("_rl_zip5", "legal_entity_zip5"),
	ann("_rl_foreign_postal_code", "legal_entity_foreign_posta"),
	ann("_rl_foreign_province", "legal_entity_foreign_provi"),
}

var placeOfPerformanceInternalFields = []projection.Field{
	ann("_pop_location_country_code", "place_of_perform_country_c"),
	ann("_pop_country_name", "place_of_perform_country_n"),
	ann("_pop_county_name", "place_of_perform_county_na"),
	ann("_pop_city_name", "place_of_performance_city"),
	ann("_pop_state_code", "place_of_perfor_state_code"),
	ann("_pop_congressional_code", "place_of_performance_congr"),
	ann("_pop_zip4", "place_of_performance_zip4a"),
	ann("_pop_zip5", "place_of_performance_zip5"),
	ann("_pop_foreign_province", "place_of_performance_forei"),
}

var FABSAssistanceFields = projection.MustCatalog(append(append([]projection.Field{
	col("cfda_number"),
	col("cfda_title"),
}, recipientInternalFields...), placeOfPerformanceInternalFields...)...)

var FPDSContractFields = projection.MustCatalog(append(append([]projection.Field{
	col("idv_type_description"),
	col("type_of_idc_description"),
	col("referenced_idv_agency_iden"),
	col("multiple_or_single_aw_desc"),
	col("solicitation_identifier"),
	col("solicitation_procedures"),
	col("number_of_offers_received"),
	col("extent_competed"),
	col("extent_compete_description"),
	col("type_set_aside_description"),
	col("type_of_contract_pric_desc"),
	col("commercial_item_acquisitio"),
	col("commercial_item_test_progr"),
	col("product_or_service_code"),
	col("product_or_service_co_desc"),
	col("naics"),
	col("naics_description"),
	col("dod_claimant_program_code"),
	col("program_acronym"),
	col("subcontracting_plan"),
	col("major_program"),
	col("clinger_cohen_act_pla_desc"),
	col("information_technolog_desc"),
	col("sea_transportation_desc"),
	col("labor_standards_descrip"),
	col("cost_or_pricing_data_desc"),
	col("domestic_or_foreign_e_desc"),
	col("foreign_funding_desc"),
	col("interagency_contract_desc"),
	col("price_evaluation_adjustmen"),
}, recipientInternalFields...), placeOfPerformanceInternalFields...)...)

// IDVContractFields regroups the award's start date with the transaction's
// last-modified and ordering-period end dates. IDVs report ordering-period
// semantics, so _end_date deliberately points at a different column than the
// contract path's performance period.
var IDVContractFields = FPDSContractFields.MustExtend(
	ann("_start_date", "period_of_performance_star"),
	ann("_last_modified_date", "last_modified"),
	ann("_end_date", "ordering_period_end_date"),
)
