package processor

import (
	"fmt"

	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/processor/entities"
)

// NormalizeApplicationHistory maps a raw Drugs@FDA record into an
// ApplicationHistory, preserving product and submission order. Unlike batch
// normalization this fails atomically: any error while mapping yields an
// error record instead of partial output.
func NormalizeApplicationHistory(raw map[string]any) (history entities.ApplicationHistory) {
	applicationNumber := stringValue(raw["application_number"])

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Application history normalization failed", "application_number", applicationNumber, "panic", r)
			history = entities.ApplicationHistory{
				Error:             fmt.Sprint(r),
				ApplicationNumber: applicationNumber,
			}
		}
	}()

	history = entities.ApplicationHistory{
		ApplicationNumber: applicationNumber,
		SponsorName:       stringValue(raw["sponsor_name"]),
		ApplicationType:   ApplicationType(applicationNumber),
		Products:          []entities.Product{},
		Submissions:       []entities.Submission{},
	}

	for _, p := range sliceValue(raw["products"]) {
		product := mapValue(p)
		history.Products = append(history.Products, entities.Product{
			ProductNumber:     stringValue(product["product_number"]),
			BrandName:         ExtractListValue(product["brand_name"]),
			ActiveIngredients: ingredientNames(product["active_ingredients"]),
			DosageForm:        stringValue(product["dosage_form"]),
			Route:             stringValue(product["route"]),
			MarketingStatus:   stringValue(product["marketing_status"]),
		})
	}

	for _, s := range sliceValue(raw["submissions"]) {
		submission := mapValue(s)
		history.Submissions = append(history.Submissions, entities.Submission{
			SubmissionType:                 stringValue(submission["submission_type"]),
			SubmissionNumber:               stringValue(submission["submission_number"]),
			SubmissionStatus:               stringValue(submission["submission_status"]),
			SubmissionStatusDate:           stringValue(submission["submission_status_date"]),
			ReviewPriority:                 stringValue(submission["review_priority"]),
			SubmissionClassCode:            stringValue(submission["submission_class_code"]),
			SubmissionClassCodeDescription: stringValue(submission["submission_class_code_description"]),
		})
	}

	return history
}

// ingredientNames flattens an active_ingredients field into strings.
// Drugs@FDA serves either bare strings or {name, strength} objects.
func ingredientNames(field any) []string {
	names := []string{}
	for _, e := range sliceValue(field) {
		switch v := e.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			name := stringValue(v["name"])
			if strength := stringValue(v["strength"]); strength != "" && name != "" {
				name = name + " " + strength
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
