package kyc

import (
	"strconv"

	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/validation"
	"simplekyc/internal/pkg/dates"
)

// State is the form lifecycle state for one subject.
type State string

const (
	StateUninitialized       State = "uninitialized"
	StateLoading             State = "loading"
	StateSeededFromSaved     State = "seeded_from_saved"
	StateSeededFromDirectory State = "seeded_from_directory"
	StateEditing             State = "editing"
	StateSubmitting          State = "submitting"
	StateSaved               State = "saved"
	StateValidationFailed    State = "validation_failed"
)

// ProfileSeed carries the directory fields used to pre-fill a fresh form
// when no saved record exists.
type ProfileSeed struct {
	FirstName  string
	LastName   string
	MaidenName string
	BirthDate  string // directory-style date, converted on seed
	Age        int
	Email      string
	Phone      string
	Address    *AddressSeed
}

// AddressSeed is the directory address block.
type AddressSeed struct {
	Street     string
	City       string
	State      string
	StateCode  string
	PostalCode string
	Country    string
}

// Form is the per-subject editing model. It owns the record under edit,
// the validation state, and the read-only flag for non-owner viewers.
type Form struct {
	SubjectID int             `json:"subject_id"`
	State     State           `json:"state"`
	ReadOnly  bool            `json:"read_only"`
	Record    Record          `json:"record"`
	Errors    validation.Tree `json:"errors,omitempty"`
}

// NewForm creates an uninitialized form for a subject.
func NewForm(subjectID int, readOnly bool) *Form {
	return &Form{SubjectID: subjectID, State: StateUninitialized, ReadOnly: readOnly}
}

// BeginLoading marks the form as loading while seed data is fetched.
func (f *Form) BeginLoading() {
	f.State = StateLoading
}

// SeedFromRecord seeds the form entirely from a previously saved record.
// Saved data always wins over freshly fetched directory data.
func (f *Form) SeedFromRecord(rec Record) {
	f.Record = rec
	f.Errors = nil
	f.State = StateSeededFromSaved
}

// SeedFromProfile seeds a blank form from a directory profile: basic info
// with the date of birth reformatted and the age derived from it, plus one
// address/email/phone row where the directory has data. All other sections
// start with one default row. A nil seed produces an all-default form.
func (f *Form) SeedFromProfile(seed *ProfileSeed) {
	f.Record = BlankRecord()
	f.Errors = nil
	f.State = StateSeededFromDirectory

	if seed == nil {
		return
	}

	dob := dates.FormatDDMMYYYY(seed.BirthDate)
	age := dates.Age(dob)
	if age == "" && seed.Age > 0 {
		age = strconv.Itoa(seed.Age)
	}
	f.Record.BasicInfo = BasicInfo{
		FirstName:  seed.FirstName,
		LastName:   seed.LastName,
		MiddleName: seed.MaidenName,
		DOB:        dob,
		Age:        age,
	}

	if seed.Address != nil {
		f.Record.Addresses = []Address{{
			Country:    seed.Address.Country,
			City:       seed.Address.City,
			Street:     seed.Address.Street,
			State:      seed.Address.State,
			StateCode:  seed.Address.StateCode,
			PostalCode: seed.Address.PostalCode,
			Type:       "Mailing",
		}}
	}
	if seed.Email != "" {
		f.Record.Emails = []Email{{Address: seed.Email, Type: "Personal", Preferred: true}}
	}
	if seed.Phone != "" {
		f.Record.Phones = []Phone{{Number: seed.Phone, Type: "Personal", Preferred: true}}
	}
}

func removeAt[T any](rows []T, i int) []T {
	return append(rows[:i:i], rows[i+1:]...)
}

func isSingleton(section string) bool {
	return section == SectionBasicInfo || section == SectionInvestment
}

// RowCount returns the number of rows in a repeatable section.
func (f *Form) RowCount(section string) (int, error) {
	values, ok := f.Record.SectionValues(section)
	if !ok {
		return 0, domain.ErrUnknownSection
	}
	return len(values), nil
}

// AddRow appends a fresh default row to a repeatable section. There is no
// upper bound on row count.
func (f *Form) AddRow(section string) error {
	if f.ReadOnly {
		return domain.ErrReadOnly
	}
	switch section {
	case SectionAddresses:
		f.Record.Addresses = append(f.Record.Addresses, DefaultAddress())
	case SectionEmails:
		f.Record.Emails = append(f.Record.Emails, DefaultEmail())
	case SectionPhones:
		f.Record.Phones = append(f.Record.Phones, DefaultPhone())
	case SectionIDDocs:
		f.Record.IDDocs = append(f.Record.IDDocs, DefaultIDDoc())
	case SectionOccupations:
		f.Record.Occupations = append(f.Record.Occupations, DefaultOccupation())
	case SectionIncomes:
		f.Record.Incomes = append(f.Record.Incomes, DefaultIncome())
	case SectionAssets:
		f.Record.Assets = append(f.Record.Assets, DefaultAsset())
	case SectionLiabilities:
		f.Record.Liabilities = append(f.Record.Liabilities, DefaultLiability())
	case SectionSources:
		f.Record.Sources = append(f.Record.Sources, DefaultSource())
	default:
		return domain.ErrUnknownSection
	}
	if f.Errors != nil {
		f.Errors[section] = append(f.Errors[section], validation.RowErrors{})
	}
	f.State = StateEditing
	return nil
}

// RemoveRow deletes the row at index and realigns that section's error
// entries to the new row order. No other renumbering happens.
func (f *Form) RemoveRow(section string, index int) error {
	if f.ReadOnly {
		return domain.ErrReadOnly
	}
	if isSingleton(section) {
		return domain.ErrUnknownSection
	}
	count, err := f.RowCount(section)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return domain.ErrRowIndexOutOfRange
	}
	switch section {
	case SectionAddresses:
		f.Record.Addresses = removeAt(f.Record.Addresses, index)
	case SectionEmails:
		f.Record.Emails = removeAt(f.Record.Emails, index)
	case SectionPhones:
		f.Record.Phones = removeAt(f.Record.Phones, index)
	case SectionIDDocs:
		f.Record.IDDocs = removeAt(f.Record.IDDocs, index)
	case SectionOccupations:
		f.Record.Occupations = removeAt(f.Record.Occupations, index)
	case SectionIncomes:
		f.Record.Incomes = removeAt(f.Record.Incomes, index)
	case SectionAssets:
		f.Record.Assets = removeAt(f.Record.Assets, index)
	case SectionLiabilities:
		f.Record.Liabilities = removeAt(f.Record.Liabilities, index)
	case SectionSources:
		f.Record.Sources = removeAt(f.Record.Sources, index)
	}
	if f.Errors != nil && index < len(f.Errors[section]) {
		f.Errors[section] = removeAt(f.Errors[section], index)
	}
	f.State = StateEditing
	return nil
}

// UpdateField mutates one field of one row. Once a full validation has run,
// the field is immediately re-validated: an invalid value replaces just
// that field's message, and a valid non-empty value clears the whole row's
// errors (the optimistic live-clearing behavior).
func (f *Form) UpdateField(section string, index int, field, value string) error {
	if f.ReadOnly {
		return domain.ErrReadOnly
	}
	if isSingleton(section) {
		index = 0
	} else {
		count, err := f.RowCount(section)
		if err != nil {
			return err
		}
		if index < 0 || index >= count {
			return domain.ErrRowIndexOutOfRange
		}
	}
	if err := f.setField(section, index, field, value); err != nil {
		return err
	}
	f.revalidateField(section, index, field, value)
	f.State = StateEditing
	return nil
}

func (f *Form) revalidateField(section string, index int, field, value string) {
	if f.Errors == nil {
		return
	}
	schema, ok := SchemaFor(section)
	if !ok {
		return
	}
	spec := schema.Field(field)
	if spec == nil {
		return
	}
	rows := f.Errors[section]
	for len(rows) <= index {
		rows = append(rows, validation.RowErrors{})
	}
	if msg := validation.ValidateField(spec, value); msg != "" {
		rows[index][field] = msg
	} else {
		delete(rows[index], field)
		if value != "" {
			rows[index] = validation.RowErrors{}
		}
	}
	f.Errors[section] = rows
}

func parseBoolField(value string) bool {
	b, _ := strconv.ParseBool(value)
	return b
}

func (f *Form) setField(section string, index int, field, value string) error {
	switch section {
	case SectionBasicInfo:
		b := &f.Record.BasicInfo
		switch field {
		case "firstName":
			b.FirstName = value
		case "lastName":
			b.LastName = value
		case "middleName":
			b.MiddleName = value
		case "dob":
			b.DOB = value
			b.Age = dates.Age(value)
		case "age":
			b.Age = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionAddresses:
		a := &f.Record.Addresses[index]
		switch field {
		case "country":
			a.Country = value
		case "city":
			a.City = value
		case "street":
			a.Street = value
		case "state":
			a.State = value
		case "stateCode":
			a.StateCode = value
		case "postalCode":
			a.PostalCode = value
		case "type":
			a.Type = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionEmails:
		e := &f.Record.Emails[index]
		switch field {
		case "address":
			e.Address = value
		case "type":
			e.Type = value
		case "preferred":
			e.Preferred = parseBoolField(value)
		default:
			return domain.ErrInvalidInput
		}
	case SectionPhones:
		p := &f.Record.Phones[index]
		switch field {
		case "number":
			p.Number = value
		case "type":
			p.Type = value
		case "preferred":
			p.Preferred = parseBoolField(value)
		default:
			return domain.ErrInvalidInput
		}
	case SectionIDDocs:
		d := &f.Record.IDDocs[index]
		switch field {
		case "type":
			d.Type = value
		case "number":
			d.Number = value
		case "expiryDate":
			d.ExpiryDate = value
		case "upload":
			d.Upload = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionOccupations:
		o := &f.Record.Occupations[index]
		switch field {
		case "occupation":
			o.Occupation = value
		case "fromDate":
			o.FromDate = value
		case "toDate":
			o.ToDate = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionIncomes:
		i := &f.Record.Incomes[index]
		switch field {
		case "type":
			i.Type = value
		case "amount":
			i.Amount = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionAssets:
		a := &f.Record.Assets[index]
		switch field {
		case "type":
			a.Type = value
		case "amount":
			a.Amount = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionLiabilities:
		l := &f.Record.Liabilities[index]
		switch field {
		case "type":
			l.Type = value
		case "amount":
			l.Amount = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionSources:
		s := &f.Record.Sources[index]
		switch field {
		case "type":
			s.Type = value
		case "amount":
			s.Amount = value
		default:
			return domain.ErrInvalidInput
		}
	case SectionInvestment:
		inv := &f.Record.Investment
		switch field {
		case "experience":
			inv.Experience = value
		case "riskTolerance":
			inv.RiskTolerance = value
		default:
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrUnknownSection
	}
	return nil
}

// Validate runs the full engine across all sections and stores the tree.
func (f *Form) Validate() validation.Tree {
	f.Errors = f.Record.ValidateAll()
	return f.Errors
}

// Submit runs the full validation. On failure the form moves to
// validation-failed with the error tree and first offending section
// exposed; entered data is kept. On success the form is ready to be
// persisted wholesale.
func (f *Form) Submit() (validation.Tree, string, error) {
	if f.ReadOnly {
		return nil, "", domain.ErrReadOnly
	}
	f.State = StateSubmitting
	tree := f.Validate()
	if !tree.IsValid() {
		f.State = StateValidationFailed
		return tree, validation.FirstErrorSection(tree, SectionOrder), domain.ErrInvalidInput
	}
	f.State = StateSaved
	return tree, "", nil
}

// Totals recomputes the derived aggregates for the record under edit.
func (f *Form) Totals() Totals {
	return f.Record.Totals()
}
