package kyc

// Section names. These are the keys of the serialized record and of the
// validation error tree.
const (
	SectionBasicInfo   = "basicInfo"
	SectionAddresses   = "addresses"
	SectionEmails      = "emails"
	SectionPhones      = "phones"
	SectionIDDocs      = "idDocs"
	SectionOccupations = "occupations"
	SectionIncomes     = "incomes"
	SectionAssets      = "assets"
	SectionLiabilities = "liabilities"
	SectionSources     = "sources"
	SectionInvestment  = "investment"
)

// SectionOrder is the fixed priority order used for first-error navigation.
var SectionOrder = []string{
	SectionBasicInfo,
	SectionAddresses,
	SectionEmails,
	SectionPhones,
	SectionIDDocs,
	SectionOccupations,
	SectionIncomes,
	SectionAssets,
	SectionLiabilities,
	SectionSources,
	SectionInvestment,
}

// Option sets for enum-constrained fields.
var (
	ContactTypes        = []string{"Work", "Personal"}
	AddressTypes        = []string{"Mailing", "Work"}
	IncomeTypes         = []string{"Salary", "Investment", "Others"}
	AssetTypes          = []string{"Bond", "Liquidity", "Real Estate", "Others"}
	LiabilityTypes      = []string{"Personal Loan", "Real Estate Loan", "Others"}
	WealthSourceTypes   = []string{"Inheritance", "Donation"}
	ExperienceLevels    = []string{"<5 years", "5–10 years", ">10 years"}
	RiskToleranceLevels = []string{"10%", "30%", "All-in"}
)

// BasicInfo is the singleton identity section.
type BasicInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	DOB        string `json:"dob"`
	Age        string `json:"age"`
}

// Address is one repeatable address row.
type Address struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	State      string `json:"state"`
	StateCode  string `json:"stateCode"`
	PostalCode string `json:"postalCode"`
	Type       string `json:"type"`
}

// Email is one repeatable email row.
type Email struct {
	Address   string `json:"address"`
	Type      string `json:"type"`
	Preferred bool   `json:"preferred"`
}

// Phone is one repeatable phone row.
type Phone struct {
	Number    string `json:"number"`
	Type      string `json:"type"`
	Preferred bool   `json:"preferred"`
}

// IDDoc is one repeatable identification document row.
type IDDoc struct {
	Type       string `json:"type"`
	Number     string `json:"number"`
	ExpiryDate string `json:"expiryDate"`
	Upload     string `json:"upload"`
}

// Occupation is one repeatable occupation row.
type Occupation struct {
	Occupation string `json:"occupation"`
	FromDate   string `json:"fromDate"`
	ToDate     string `json:"toDate"`
}

// Income is one repeatable income row.
type Income struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// Asset is one repeatable asset row.
type Asset struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// Liability is one repeatable liability row.
type Liability struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// Source is one repeatable source-of-wealth row.
type Source struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// Investment is the singleton investment profile section.
type Investment struct {
	Experience    string `json:"experience"`
	RiskTolerance string `json:"riskTolerance"`
}

// Record is the whole KYC submission for one subject. It is persisted
// wholesale as a serialized blob keyed by subject id.
type Record struct {
	BasicInfo   BasicInfo    `json:"basicInfo"`
	Addresses   []Address    `json:"addresses"`
	Emails      []Email      `json:"emails"`
	Phones      []Phone      `json:"phones"`
	IDDocs      []IDDoc      `json:"idDocs"`
	Occupations []Occupation `json:"occupations"`
	Incomes     []Income     `json:"incomes"`
	Assets      []Asset      `json:"assets"`
	Liabilities []Liability  `json:"liabilities"`
	Sources     []Source     `json:"sources"`
	Investment  Investment   `json:"investment"`
}

// Default row templates. New rows and blank forms start from these.

func DefaultAddress() Address       { return Address{Type: "Mailing"} }
func DefaultEmail() Email           { return Email{Type: "Personal"} }
func DefaultPhone() Phone           { return Phone{Type: "Personal"} }
func DefaultIDDoc() IDDoc           { return IDDoc{} }
func DefaultOccupation() Occupation { return Occupation{} }
func DefaultIncome() Income         { return Income{Type: "Salary"} }
func DefaultAsset() Asset           { return Asset{Type: "Liquidity"} }
func DefaultLiability() Liability   { return Liability{Type: "Personal Loan"} }
func DefaultSource() Source         { return Source{Type: "Inheritance"} }

// DefaultInvestment starts at the lowest experience and lowest risk level.
func DefaultInvestment() Investment {
	return Investment{Experience: "<5 years", RiskTolerance: "10%"}
}

// BlankRecord returns a record with exactly one default row per repeatable
// section and default singleton sections.
func BlankRecord() Record {
	return Record{
		Addresses:   []Address{DefaultAddress()},
		Emails:      []Email{DefaultEmail()},
		Phones:      []Phone{DefaultPhone()},
		IDDocs:      []IDDoc{DefaultIDDoc()},
		Occupations: []Occupation{DefaultOccupation()},
		Incomes:     []Income{DefaultIncome()},
		Assets:      []Asset{DefaultAsset()},
		Liabilities: []Liability{DefaultLiability()},
		Sources:     []Source{DefaultSource()},
		Investment:  DefaultInvestment(),
	}
}
