package processor

import "github.com/openfda-labs/fdadrugs-api/processor/entities"

// NormalizeDrug builds the canonical record for a raw drug-label result.
// Each field is extracted independently; a malformed field never prevents
// the others from being populated.
func NormalizeDrug(raw map[string]any) entities.Drug {
	openfda := mapValue(raw["openfda"])
	setID := stringValue(raw["set_id"])
	applicationNumber := ExtractListValue(openfda["application_number"])

	return entities.Drug{
		SetID:                   setID,
		GenericName:             CleanGenericName(ExtractListValue(openfda["generic_name"])),
		BrandName:               ExtractListValue(openfda["brand_name"]),
		ManufacturerName:        ExtractListValue(openfda["manufacturer_name"]),
		ApplicationNumber:       applicationNumber,
		ApplicationType:         ApplicationType(applicationNumber),
		DailyMedURL:             DailyMedURL(setID),
		Indications:             CleanTextField(raw["indications_and_usage"]),
		DosageFormsAndStrengths: CleanTextField(raw["dosage_forms_and_strengths"]),
		Route:                   ExtractListValue(openfda["route"]),
		PharmacologicClass: entities.PharmacologicClass{
			MechanismOfAction: ExtractListValue(openfda["pharm_class_moa"]),
			PhysiologicEffect: ExtractListValue(openfda["pharm_class_pe"]),
			EstablishedClass:  ExtractListValue(openfda["pharm_class_epc"]),
			ChemicalStructure: ExtractListValue(openfda["pharm_class_cs"]),
		},
	}
}

// NormalizeDrugDetails builds the detailed record: the canonical fields plus
// the full narrative label sections, label metadata, extracted NCT IDs and
// special-population sections.
func NormalizeDrugDetails(raw map[string]any) entities.DrugDetails {
	return entities.DrugDetails{
		Drug:                    NormalizeDrug(raw),
		MechanismOfAction:       CleanTextField(raw["mechanism_of_action"]),
		ClinicalPharmacology:    CleanTextField(raw["clinical_pharmacology"]),
		ClinicalStudies:         CleanTextField(raw["clinical_studies"]),
		DosageAndAdministration: CleanTextField(raw["dosage_and_administration"]),
		Contraindications:       CleanTextField(raw["contraindications"]),
		WarningsAndPrecautions:  CleanTextField(raw["warnings"]),
		AdverseReactions:        CleanTextField(raw["adverse_reactions"]),
		DrugInteractions:        CleanTextField(raw["drug_interactions"]),
		HowSupplied:             CleanTextField(raw["how_supplied"]),
		StorageAndHandling:      CleanTextField(raw["storage_and_handling"]),
		BoxedWarning:            CleanTextField(raw["boxed_warning"]),
		EffectiveTime:           stringValue(raw["effective_time"]),
		Version:                 stringValue(raw["version"]),
		NctIDs:                  ExtractNCTIDs(CleanTextField(raw["clinical_studies"])),
		SpecialPopulations: entities.SpecialPopulations{
			Pregnancy:      CleanTextField(raw["pregnancy"]),
			NursingMothers: CleanTextField(raw["nursing_mothers"]),
			PediatricUse:   CleanTextField(raw["pediatric_use"]),
			GeriatricUse:   CleanTextField(raw["geriatric_use"]),
		},
	}
}
