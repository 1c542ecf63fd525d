package persistence

import (
	"strings"

	"gorm.io/gorm"
)

// Multi-valued dataset fields (keywords, codes, languages) are stored as a
// single delimited text column and split on the way out.
const listSeparator = ";"

func JoinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func SplitList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, listSeparator)
}

// Catalog is the singleton envelope row. At most one exists per deployment.
type Catalog struct {
	gorm.Model
	Context     string
	Identifier  string
	MType       string
	ConformsTo  string
	DescribedBy string
}

// Publisher is a registered user that owns datasets. Bureau, division and
// office hold ids into the organisation registry, not names.
type Publisher struct {
	gorm.Model
	Username   string `gorm:"uniqueIndex"`
	Email      string
	BureauID   string
	DivisionID string
	OfficeID   string
}

// Schema holds the schema document as an opaque JSON blob.
type Schema struct {
	gorm.Model
	DatasetID uint
	Data      string
}

type Distribution struct {
	gorm.Model
	DatasetID       uint
	MType           string
	Title           string
	Description     string
	DownloadURL     string
	DFormat         string
	AccessURL       string
	DescribedBy     string
	DescribedByType string
	ConformsTo      string
	MediaType       string
}

type Dataset struct {
	gorm.Model
	Identifier  string `gorm:"uniqueIndex"`
	MType       string
	Title       string
	Description string

	Keywords     string
	AccessLevel  string
	BureauCodes  string
	ProgramCodes string
	License      string
	Rights       string
	Spatial      string
	Temporal     string

	AccrualPeriodicity  string
	ConformsTo          string
	DataQuality         string
	DescribedBy         string
	DescribedByType     string
	IsPartOf            string
	Issued              string
	Languages           string
	LandingPage         string
	PrimaryITInvestment string
	References          string
	SystemOfRecords     string
	Theme               string

	Complete  bool
	Published bool

	PublisherID   uint
	Publisher     Publisher
	Schema        Schema         `gorm:"constraint:OnDelete:CASCADE"`
	Distributions []Distribution `gorm:"constraint:OnDelete:CASCADE"`
}
