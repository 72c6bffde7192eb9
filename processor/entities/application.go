package entities

// Product is a single product entry of a Drugs@FDA application record.
type Product struct {
	ProductNumber     string   `json:"product_number"`
	BrandName         string   `json:"brand_name"`
	ActiveIngredients []string `json:"active_ingredients"`
	DosageForm        string   `json:"dosage_form"`
	Route             string   `json:"route"`
	MarketingStatus   string   `json:"marketing_status"`
}

// Submission is a single submission entry of a Drugs@FDA application record.
type Submission struct {
	SubmissionType        string `json:"submission_type"`
	SubmissionNumber      string `json:"submission_number"`
	SubmissionStatus      string `json:"submission_status"`
	SubmissionStatusDate  string `json:"submission_status_date"`
	ReviewPriority        string `json:"review_priority"`
	SubmissionClassCode   string `json:"submission_class_code"`
	SubmissionClassCodeDescription string `json:"submission_class_code_description"`
}

// ApplicationHistory is the normalized Drugs@FDA application record.
// When normalization fails the record carries only Error and
// ApplicationNumber; callers must check Error before using the rest.
type ApplicationHistory struct {
	Error             string       `json:"error,omitempty"`
	ApplicationNumber string       `json:"application_number"`
	SponsorName       string       `json:"sponsor_name"`
	ApplicationType   string       `json:"application_type"`
	Products          []Product    `json:"products"`
	Submissions       []Submission `json:"submissions"`
}
