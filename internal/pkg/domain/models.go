package domain

import "time"

// Requester identifies the caller of a catalog or dataset operation.
// A zero ID means the request carried no (valid) identity.
type Requester struct {
	ID    uint
	Admin bool
}

func (r Requester) IsAnonymous() bool {
	return r.ID == 0 && !r.Admin
}

// SchemaProperty describes a single column or property of a dataset's
// underlying data file. Name is fixed at inference time, Type and
// Description start out as null and are filled in later by the owner.
type SchemaProperty struct {
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// SchemaDocument is the stored structural description of a dataset.
type SchemaDocument struct {
	Title      *string          `json:"title"`
	Type       *string          `json:"type"`
	Properties []SchemaProperty `json:"properties"`
	Schema     string           `json:"$schema,omitempty"`
	ID         string           `json:"$id,omitempty"`
}

// PropertyNames returns the ordered list of property names in the document.
func (d SchemaDocument) PropertyNames() []string {
	names := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}
	return names
}

type Distribution struct {
	Title           string
	Description     string
	DownloadURL     string
	Format          string
	AccessURL       string
	DescribedBy     string
	DescribedByType string
	ConformsTo      string
	MediaType       string
}

type Dataset struct {
	ID                  uint
	Identifier          string
	Title               string
	Description         string
	Keywords            []string
	Modified            time.Time
	AccessLevel         string
	BureauCodes         []string
	ProgramCodes        []string
	License             string
	Rights              string
	Spatial             string
	Temporal            string
	AccrualPeriodicity  string
	ConformsTo          string
	DataQuality         string
	DescribedBy         string
	DescribedByType     string
	IsPartOf            string
	Issued              string
	Languages           []string
	LandingPage         string
	PrimaryITInvestment string
	References          string
	SystemOfRecords     string
	Theme               string

	Complete  bool
	Published bool

	Publisher     Publisher
	SchemaID      uint
	Distributions []Distribution
}

// Publisher is the identity that owns a dataset, with references into the
// bureau/division/office hierarchy it registered under.
type Publisher struct {
	ID       uint
	Username string
	Email    string
	Bureau   string
	Division string
	Office   string
}

type Bureau struct {
	ID          string `yaml:"id"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

type Division struct {
	ID          string `yaml:"id"`
	Bureau      string `yaml:"bureau"`
	Name        string `yaml:"name"`
	ProgramCode string `yaml:"programCode"`
}

type Office struct {
	ID       string `yaml:"id"`
	Division string `yaml:"division"`
	Name     string `yaml:"name"`
}
