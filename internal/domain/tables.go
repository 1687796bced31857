package domain

import (
	"github.com/shopspring/decimal"
)

// ConditionRule is the standard annual management cadence for one condition
// family: extra visits, monitoring tests, and risk contribution. Frequencies
// are annual counts at mild severity; severity multipliers scale frequency,
// never unit price.
type ConditionRule struct {
	Chronic bool

	PrimaryCareVisits decimal.Decimal
	SpecialistVisits  decimal.Decimal
	ERVisits          decimal.Decimal
	InpatientAdmits   decimal.Decimal
	LabTests          decimal.Decimal
	ImagingStudies    decimal.Decimal

	SpecialistName string
	MonitoringName string

	RiskPoints int
}

// DefaultConditionRules returns the condition management lookup table keyed
// by lowercase condition name. Unknown conditions are not rejected by the
// engine; they simply miss this table.
func DefaultConditionRules() map[string]ConditionRule {
	return map[string]ConditionRule{
		"diabetes": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(4), // quarterly endocrinologist
			LabTests:          decimal.NewFromInt(4), // quarterly A1c
			SpecialistName:    "Endocrinologist visit",
			MonitoringName:    "Hemoglobin A1c panel",
			RiskPoints:        18,
		},
		"hypertension": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(3),
			LabTests:          decimal.NewFromInt(2),
			MonitoringName:    "Metabolic panel",
			RiskPoints:        10,
		},
		"asthma": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(2),
			ERVisits:          decimal.NewFromFloat(0.5),
			SpecialistName:    "Pulmonologist visit",
			MonitoringName:    "Spirometry",
			LabTests:          decimal.NewFromInt(1),
			RiskPoints:        12,
		},
		"copd": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(3),
			SpecialistVisits:  decimal.NewFromInt(3),
			ERVisits:          decimal.NewFromInt(1),
			InpatientAdmits:   decimal.NewFromFloat(0.3),
			SpecialistName:    "Pulmonologist visit",
			MonitoringName:    "Spirometry",
			LabTests:          decimal.NewFromInt(2),
			ImagingStudies:    decimal.NewFromInt(1),
			RiskPoints:        20,
		},
		"heart disease": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(4),
			ERVisits:          decimal.NewFromFloat(0.5),
			InpatientAdmits:   decimal.NewFromFloat(0.4),
			SpecialistName:    "Cardiologist visit",
			MonitoringName:    "Echocardiogram",
			LabTests:          decimal.NewFromInt(3),
			ImagingStudies:    decimal.NewFromInt(1),
			RiskPoints:        22,
		},
		"atrial fibrillation": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(3),
			SpecialistName:    "Cardiologist visit",
			MonitoringName:    "Electrocardiogram",
			LabTests:          decimal.NewFromInt(4),
			RiskPoints:        15,
		},
		"depression": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(12), // monthly therapy
			SpecialistName:    "Behavioral health visit",
			RiskPoints:        8,
		},
		"anxiety": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(1),
			SpecialistVisits:  decimal.NewFromInt(8),
			SpecialistName:    "Behavioral health visit",
			RiskPoints:        6,
		},
		"arthritis": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(3),
			SpecialistName:    "Rheumatologist visit",
			MonitoringName:    "Inflammatory markers panel",
			LabTests:          decimal.NewFromInt(2),
			ImagingStudies:    decimal.NewFromFloat(0.5),
			RiskPoints:        8,
		},
		"cancer": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(8),
			InpatientAdmits:   decimal.NewFromFloat(0.5),
			SpecialistName:    "Oncologist visit",
			MonitoringName:    "Tumor marker panel",
			LabTests:          decimal.NewFromInt(6),
			ImagingStudies:    decimal.NewFromInt(3),
			RiskPoints:        30,
		},
		"chronic kidney disease": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			SpecialistVisits:  decimal.NewFromInt(4),
			SpecialistName:    "Nephrologist visit",
			MonitoringName:    "Renal function panel",
			LabTests:          decimal.NewFromInt(4),
			RiskPoints:        20,
		},
		"high cholesterol": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(1),
			LabTests:          decimal.NewFromInt(2),
			MonitoringName:    "Lipid panel",
			RiskPoints:        6,
		},
		"obesity": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(2),
			LabTests:          decimal.NewFromInt(1),
			MonitoringName:    "Metabolic panel",
			RiskPoints:        8,
		},
		"migraine": {
			Chronic:           true,
			PrimaryCareVisits: decimal.NewFromInt(1),
			SpecialistVisits:  decimal.NewFromInt(2),
			SpecialistName:    "Neurologist visit",
			ImagingStudies:    decimal.NewFromFloat(0.3),
			RiskPoints:        5,
		},
	}
}

// DefaultServiceCosts returns unit price estimates per service category.
// Unknown categories fall back to CategoryOther's generic-service default.
func DefaultServiceCosts() map[ServiceCategory]decimal.Decimal {
	return map[ServiceCategory]decimal.Decimal{
		CategoryPrimaryCare:           decimal.NewFromInt(165),
		CategorySpecialist:            decimal.NewFromInt(285),
		CategoryEmergency:             decimal.NewFromInt(1450),
		CategoryInpatient:             decimal.NewFromInt(12500),
		CategoryDiagnostics:           decimal.NewFromInt(85),
		CategoryImaging:               decimal.NewFromInt(475),
		CategoryPreventive:            decimal.NewFromInt(25),
		CategoryDrugGeneric:           decimal.NewFromInt(18),
		CategoryDrugPreferredBrand:    decimal.NewFromInt(145),
		CategoryDrugNonPreferredBrand: decimal.NewFromInt(320),
		CategoryDrugSpecialty:         decimal.NewFromInt(1850),
		CategoryOther:                 decimal.NewFromInt(200),
	}
}

// DrugPriceTable prices one monthly fill per drug tier
type DrugPriceTable struct {
	Generic           decimal.Decimal
	PreferredBrand    decimal.Decimal
	NonPreferredBrand decimal.Decimal
	Specialty         decimal.Decimal
}

// DefaultDrugPrices returns per-fill price estimates by tier. Specialty is
// priced materially higher and flagged separately downstream.
func DefaultDrugPrices() DrugPriceTable {
	return DrugPriceTable{
		Generic:           decimal.NewFromInt(18),
		PreferredBrand:    decimal.NewFromInt(145),
		NonPreferredBrand: decimal.NewFromInt(320),
		Specialty:         decimal.NewFromInt(1850),
	}
}

// PreventiveScreening is one age/gender-banded preventive care item
type PreventiveScreening struct {
	Name            string
	MinAge          int
	MaxAge          int    // 0 means no upper bound
	Gender          Gender // empty means any
	AnnualFrequency decimal.Decimal
	UnitCost        decimal.Decimal
}

// DefaultPreventiveSchedule returns the preventive-care schedule. Unit costs
// are near zero or copay-level since preventive care is typically covered.
func DefaultPreventiveSchedule() []PreventiveScreening {
	return []PreventiveScreening{
		{Name: "Annual physical", MinAge: 18, AnnualFrequency: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(25)},
		{Name: "Well-child visit", MinAge: 0, MaxAge: 17, AnnualFrequency: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(25)},
		{Name: "Flu vaccination", MinAge: 0, AnnualFrequency: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(0)},
		{Name: "Cervical cancer screening", MinAge: 21, MaxAge: 65, Gender: Female, AnnualFrequency: decimal.NewFromFloat(0.33), UnitCost: decimal.NewFromInt(35)},
		{Name: "Mammogram", MinAge: 40, Gender: Female, AnnualFrequency: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(0)},
		{Name: "Colorectal cancer screening", MinAge: 45, AnnualFrequency: decimal.NewFromFloat(0.1), UnitCost: decimal.NewFromInt(50)},
		{Name: "Prostate cancer screening", MinAge: 50, Gender: Male, AnnualFrequency: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(0)},
		{Name: "Bone density scan", MinAge: 65, Gender: Female, AnnualFrequency: decimal.NewFromFloat(0.5), UnitCost: decimal.NewFromInt(40)},
	}
}

// DefaultMedicationTiers maps well-known brand medications (lowercase) to
// their typical formulary tier. Medications not listed price as generic
// unless flagged specialty on the profile.
func DefaultMedicationTiers() map[string]ServiceCategory {
	return map[string]ServiceCategory{
		"eliquis":   CategoryDrugPreferredBrand,
		"xarelto":   CategoryDrugPreferredBrand,
		"jardiance": CategoryDrugPreferredBrand,
		"ozempic":   CategoryDrugPreferredBrand,
		"trulicity": CategoryDrugPreferredBrand,
		"symbicort": CategoryDrugPreferredBrand,
		"advair":    CategoryDrugNonPreferredBrand,
		"vyvanse":   CategoryDrugNonPreferredBrand,
		"humira":    CategoryDrugSpecialty,
		"enbrel":    CategoryDrugSpecialty,
		"stelara":   CategoryDrugSpecialty,
		"keytruda":  CategoryDrugSpecialty,
	}
}

// RiskAdjustments holds the non-condition risk score contributions: age
// bands and lifestyle flags adjust the risk score only, never utilization
// counts, so the two outputs stay independently testable.
type RiskAdjustments struct {
	PediatricPoints int // age < 5
	SeniorPoints    int // age > 65
	ElderPoints     int // age > 75 (replaces SeniorPoints)

	SmokerPoints       int
	HeavyAlcoholPoints int
	SedentaryPoints    int // sedentary and age > 30

	ObesityPoints       int // BMI >= 30
	SevereObesityPoints int // BMI >= 40 (replaces ObesityPoints)
	UnderweightPoints   int // BMI < 18.5 and BMI > 0

	MultipleConditionThreshold int
	MultipleConditionPoints    int
}

// DefaultRiskAdjustments returns the standard adjustment point values.
func DefaultRiskAdjustments() RiskAdjustments {
	return RiskAdjustments{
		PediatricPoints:            8,
		SeniorPoints:               10,
		ElderPoints:                15,
		SmokerPoints:               15,
		HeavyAlcoholPoints:         10,
		SedentaryPoints:            5,
		ObesityPoints:              8,
		SevereObesityPoints:        12,
		UnderweightPoints:          5,
		MultipleConditionThreshold: 3,
		MultipleConditionPoints:    10,
	}
}

// BaselineUtilization returns the utilization floor every member starts
// from: one primary-care visit per year, two from age 50.
func BaselineUtilization(age int) map[ServiceCategory]decimal.Decimal {
	visits := decimal.NewFromInt(1)
	if age >= 50 {
		visits = decimal.NewFromInt(2)
	}
	return map[ServiceCategory]decimal.Decimal{
		CategoryPrimaryCare: visits,
	}
}
