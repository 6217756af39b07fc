package kyc

import "simplekyc/internal/core/validation"

// Per-section validation schemas. Messages are part of the form contract:
// clients render them verbatim next to the offending field.
var (
	basicInfoSchema = validation.Schema{
		Section: SectionBasicInfo,
		Fields: []validation.FieldSpec{
			{Name: "firstName", Required: true, RequiredMessage: "First name is required"},
			{Name: "lastName", Required: true, RequiredMessage: "Last name is required"},
			{Name: "middleName", Required: true, RequiredMessage: "Middle name is required"},
			{Name: "dob", Required: true, RequiredMessage: "Date of birth is required", Kind: validation.Date, FormatMessage: "Date must be in DD/MM/YYYY format"},
			{Name: "age", Required: true, RequiredMessage: "Age is required"},
		},
	}

	addressSchema = validation.Schema{
		Section: SectionAddresses,
		Fields: []validation.FieldSpec{
			{Name: "country", Required: true, RequiredMessage: "Country is required"},
			{Name: "city", Required: true, RequiredMessage: "City is required"},
			{Name: "street", Required: true, RequiredMessage: "Street is required"},
			{Name: "state", Required: true, RequiredMessage: "State is required"},
			{Name: "stateCode", Required: true, RequiredMessage: "State code is required"},
			{Name: "postalCode", Required: true, RequiredMessage: "Postal code is required"},
			{Name: "type", Required: true, RequiredMessage: "Address type is required", Enum: AddressTypes, EnumMessage: "Address type is not a valid option"},
		},
	}

	emailSchema = validation.Schema{
		Section: SectionEmails,
		Fields: []validation.FieldSpec{
			{Name: "address", Required: true, RequiredMessage: "Email address is required", Kind: validation.Email, FormatMessage: "Invalid email format"},
			{Name: "type", Required: true, RequiredMessage: "Email type is required", Enum: ContactTypes, EnumMessage: "Email type is not a valid option"},
		},
	}

	phoneSchema = validation.Schema{
		Section: SectionPhones,
		Fields: []validation.FieldSpec{
			{Name: "number", Required: true, RequiredMessage: "Phone number is required"},
			{Name: "type", Required: true, RequiredMessage: "Phone type is required", Enum: ContactTypes, EnumMessage: "Phone type is not a valid option"},
		},
	}

	idDocSchema = validation.Schema{
		Section: SectionIDDocs,
		Fields: []validation.FieldSpec{
			{Name: "type", Required: true, RequiredMessage: "Document type is required"},
			{Name: "number", Required: true, RequiredMessage: "Document number is required"},
			{Name: "expiryDate", Required: true, RequiredMessage: "Expiry date is required", Kind: validation.Date, FormatMessage: "Date must be in DD/MM/YYYY format"},
			{Name: "upload"},
		},
	}

	occupationSchema = validation.Schema{
		Section: SectionOccupations,
		Fields: []validation.FieldSpec{
			{Name: "occupation", Required: true, RequiredMessage: "Occupation is required"},
			{Name: "fromDate", Required: true, RequiredMessage: "From date is required", Kind: validation.Date, FormatMessage: "Date must be in DD/MM/YYYY format"},
			{Name: "toDate", Required: true, RequiredMessage: "To date is required", Kind: validation.Date, FormatMessage: "Date must be in DD/MM/YYYY format"},
		},
	}

	incomeSchema = validation.Schema{
		Section: SectionIncomes,
		Fields: []validation.FieldSpec{
			{Name: "type", Required: true, RequiredMessage: "Income type is required", Enum: IncomeTypes, EnumMessage: "Income type is not a valid option"},
			{Name: "amount", Required: true, RequiredMessage: "Amount is required"},
		},
	}

	assetSchema = validation.Schema{
		Section: SectionAssets,
		Fields: []validation.FieldSpec{
			{Name: "type", Required: true, RequiredMessage: "Asset type is required", Enum: AssetTypes, EnumMessage: "Asset type is not a valid option"},
			{Name: "amount", Required: true, RequiredMessage: "Amount is required"},
		},
	}

	liabilitySchema = validation.Schema{
		Section: SectionLiabilities,
		Fields: []validation.FieldSpec{
			{Name: "type", Required: true, RequiredMessage: "Liability type is required", Enum: LiabilityTypes, EnumMessage: "Liability type is not a valid option"},
			{Name: "amount", Required: true, RequiredMessage: "Amount is required"},
		},
	}

	sourceSchema = validation.Schema{
		Section: SectionSources,
		Fields: []validation.FieldSpec{
			{Name: "type", Required: true, RequiredMessage: "Source type is required", Enum: WealthSourceTypes, EnumMessage: "Source type is not a valid option"},
			{Name: "amount", Required: true, RequiredMessage: "Amount is required"},
		},
	}

	investmentSchema = validation.Schema{
		Section: SectionInvestment,
		Fields: []validation.FieldSpec{
			{Name: "experience", Required: true, RequiredMessage: "Experience is required", Enum: ExperienceLevels, EnumMessage: "Experience is not a valid option"},
			{Name: "riskTolerance", Required: true, RequiredMessage: "Risk tolerance is required", Enum: RiskToleranceLevels, EnumMessage: "Risk tolerance is not a valid option"},
		},
	}
)

var sectionSchemas = map[string]validation.Schema{
	SectionBasicInfo:   basicInfoSchema,
	SectionAddresses:   addressSchema,
	SectionEmails:      emailSchema,
	SectionPhones:      phoneSchema,
	SectionIDDocs:      idDocSchema,
	SectionOccupations: occupationSchema,
	SectionIncomes:     incomeSchema,
	SectionAssets:      assetSchema,
	SectionLiabilities: liabilitySchema,
	SectionSources:     sourceSchema,
	SectionInvestment:  investmentSchema,
}

// SchemaFor returns the validation schema for a section name.
func SchemaFor(section string) (validation.Schema, bool) {
	s, ok := sectionSchemas[section]
	return s, ok
}

// Field-value views. Boolean fields (preferred) are not schema-validated
// and are omitted.

func (b BasicInfo) values() map[string]string {
	return map[string]string{
		"firstName": b.FirstName, "lastName": b.LastName, "middleName": b.MiddleName,
		"dob": b.DOB, "age": b.Age,
	}
}

func (a Address) values() map[string]string {
	return map[string]string{
		"country": a.Country, "city": a.City, "street": a.Street,
		"state": a.State, "stateCode": a.StateCode, "postalCode": a.PostalCode,
		"type": a.Type,
	}
}

func (e Email) values() map[string]string {
	return map[string]string{"address": e.Address, "type": e.Type}
}

func (p Phone) values() map[string]string {
	return map[string]string{"number": p.Number, "type": p.Type}
}

func (d IDDoc) values() map[string]string {
	return map[string]string{"type": d.Type, "number": d.Number, "expiryDate": d.ExpiryDate, "upload": d.Upload}
}

func (o Occupation) values() map[string]string {
	return map[string]string{"occupation": o.Occupation, "fromDate": o.FromDate, "toDate": o.ToDate}
}

func (i Income) values() map[string]string {
	return map[string]string{"type": i.Type, "amount": i.Amount}
}

func (a Asset) values() map[string]string {
	return map[string]string{"type": a.Type, "amount": a.Amount}
}

func (l Liability) values() map[string]string {
	return map[string]string{"type": l.Type, "amount": l.Amount}
}

func (s Source) values() map[string]string {
	return map[string]string{"type": s.Type, "amount": s.Amount}
}

func (i Investment) values() map[string]string {
	return map[string]string{"experience": i.Experience, "riskTolerance": i.RiskTolerance}
}

func rowValues[T interface{ values() map[string]string }](rows []T) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, r := range rows {
		out[i] = r.values()
	}
	return out
}

// SectionValues returns the field-value maps for every row of a section,
// in row order. Singleton sections yield exactly one map.
func (r *Record) SectionValues(section string) ([]map[string]string, bool) {
	switch section {
	case SectionBasicInfo:
		return []map[string]string{r.BasicInfo.values()}, true
	case SectionAddresses:
		return rowValues(r.Addresses), true
	case SectionEmails:
		return rowValues(r.Emails), true
	case SectionPhones:
		return rowValues(r.Phones), true
	case SectionIDDocs:
		return rowValues(r.IDDocs), true
	case SectionOccupations:
		return rowValues(r.Occupations), true
	case SectionIncomes:
		return rowValues(r.Incomes), true
	case SectionAssets:
		return rowValues(r.Assets), true
	case SectionLiabilities:
		return rowValues(r.Liabilities), true
	case SectionSources:
		return rowValues(r.Sources), true
	case SectionInvestment:
		return []map[string]string{r.Investment.values()}, true
	}
	return nil, false
}

// ValidateAll runs every section of the record through the engine and
// merges the results into one error tree keyed by section name.
func (r *Record) ValidateAll() validation.Tree {
	tree := validation.Tree{}
	for _, section := range SectionOrder {
		values, _ := r.SectionValues(section)
		tree[section] = validation.ValidateRows(sectionSchemas[section], values)
	}
	return tree
}
