// Package entities defines the canonical record shapes produced by the
// drug processor from raw OpenFDA responses.
package entities

// PharmacologicClass groups the four pharmacologic class variants that
// OpenFDA exposes as separate openfda fields.
type PharmacologicClass struct {
	MechanismOfAction string `json:"mechanism_of_action"`
	PhysiologicEffect string `json:"physiologic_effect"`
	EstablishedClass  string `json:"established_pharmacologic_class"`
	ChemicalStructure string `json:"chemical_structure"`
}

// Drug is the canonical per-drug record returned by search operations.
// ApplicationType is always derived from ApplicationNumber and DailyMedURL
// from SetID; neither is ever set independently.
type Drug struct {
	SetID                   string             `json:"set_id"`
	GenericName             string             `json:"generic_name"`
	BrandName               string             `json:"brand_name"`
	ManufacturerName        string             `json:"manufacturer_name"`
	ApplicationNumber       string             `json:"application_number"`
	ApplicationType         string             `json:"application_type"`
	DailyMedURL             string             `json:"dailymed_url"`
	Indications             string             `json:"indications"`
	DosageFormsAndStrengths string             `json:"dosage_forms_and_strengths"`
	Route                   string             `json:"route"`
	PharmacologicClass      PharmacologicClass `json:"pharmacologic_class"`
}

// SpecialPopulations holds the narrative label sections covering
// population-specific guidance.
type SpecialPopulations struct {
	Pregnancy      string `json:"pregnancy"`
	NursingMothers string `json:"nursing_mothers"`
	PediatricUse   string `json:"pediatric_use"`
	GeriatricUse   string `json:"geriatric_use"`
}

// DrugDetails extends Drug with the full set of narrative label sections.
// Its JSON keys are a strict superset of Drug's.
type DrugDetails struct {
	Drug
	MechanismOfAction       string             `json:"mechanism_of_action"`
	ClinicalPharmacology    string             `json:"clinical_pharmacology"`
	ClinicalStudies         string             `json:"clinical_studies"`
	DosageAndAdministration string             `json:"dosage_and_administration"`
	Contraindications       string             `json:"contraindications"`
	WarningsAndPrecautions  string             `json:"warnings_and_precautions"`
	AdverseReactions        string             `json:"adverse_reactions"`
	DrugInteractions        string             `json:"drug_interactions"`
	HowSupplied             string             `json:"how_supplied"`
	StorageAndHandling      string             `json:"storage_and_handling"`
	BoxedWarning            string             `json:"boxed_warning"`
	EffectiveTime           string             `json:"effective_time"`
	Version                 string             `json:"version"`
	NctIDs                  []string           `json:"nct_ids"`
	SpecialPopulations      SpecialPopulations `json:"special_populations"`
}

// DosageDetails is a best-effort extraction from free dosage text.
// All fields are advisory; empty means no match, never "validated absent".
type DosageDetails struct {
	Dosage              string `json:"dosage"`
	Frequency           string `json:"frequency"`
	AdministrationRoute string `json:"administration_route"`
}
