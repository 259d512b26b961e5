// Package xmltype provides the XML Schema built-in simple types as a
// catalog that schema catalogs import under the name "xs".
package xmltype

import (
	"sync"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
)

// CatalogName is the name schema documents import the built-ins under.
const CatalogName = "xs"

const (
	String             xsdfacet.TypeTag = "xs:string"
	NormalizedString   xsdfacet.TypeTag = "xs:normalizedString"
	Token              xsdfacet.TypeTag = "xs:token"
	Language           xsdfacet.TypeTag = "xs:language"
	NMTOKEN            xsdfacet.TypeTag = "xs:NMTOKEN"
	NMTOKENS           xsdfacet.TypeTag = "xs:NMTOKENS"
	Name               xsdfacet.TypeTag = "xs:Name"
	NCName             xsdfacet.TypeTag = "xs:NCName"
	ID                 xsdfacet.TypeTag = "xs:ID"
	QName              xsdfacet.TypeTag = "xs:QName"
	AnyURI             xsdfacet.TypeTag = "xs:anyURI"
	Boolean            xsdfacet.TypeTag = "xs:boolean"
	Decimal            xsdfacet.TypeTag = "xs:decimal"
	Integer            xsdfacet.TypeTag = "xs:integer"
	NonNegativeInteger xsdfacet.TypeTag = "xs:nonNegativeInteger"
	PositiveInteger    xsdfacet.TypeTag = "xs:positiveInteger"
	NonPositiveInteger xsdfacet.TypeTag = "xs:nonPositiveInteger"
	NegativeInteger    xsdfacet.TypeTag = "xs:negativeInteger"
	Long               xsdfacet.TypeTag = "xs:long"
	Int                xsdfacet.TypeTag = "xs:int"
	Short              xsdfacet.TypeTag = "xs:short"
	Byte               xsdfacet.TypeTag = "xs:byte"
	UnsignedInt        xsdfacet.TypeTag = "xs:unsignedInt"
	Double             xsdfacet.TypeTag = "xs:double"
	Float              xsdfacet.TypeTag = "xs:float"
	Date               xsdfacet.TypeTag = "xs:date"
	GYearMonth         xsdfacet.TypeTag = "xs:gYearMonth"
	GYear              xsdfacet.TypeTag = "xs:gYear"
	DateTime           xsdfacet.TypeTag = "xs:dateTime"
	Time               xsdfacet.TypeTag = "xs:time"
)

func minLength(n int) *int { return &n }

// Document returns the definitions of the built-in types.
func Document() catalog.Document {
	return catalog.Document{
		Name: CatalogName,
		Types: []catalog.Def{
			{Name: String, Kind: "string"},
			{Name: NormalizedString, Base: String, Patterns: []string{`[^\n\r\t]*`}},
			{Name: Token, Base: NormalizedString, Patterns: []string{`([^ \n\r\t]+( [^ \n\r\t]+)*)?`}},
			{Name: Language, Base: Token, Patterns: []string{`[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*`}},
			{Name: NMTOKEN, Base: Token, Patterns: []string{`\c+`}},
			{Name: NMTOKENS, List: NMTOKEN, MinLength: minLength(1)},
			{Name: Name, Base: Token, Patterns: []string{`\i\c*`}},
			{Name: NCName, Base: Name, Patterns: []string{`[^:]*`}},
			{Name: ID, Base: NCName},
			{Name: QName, Kind: "string", PatternGroups: [][]string{{`\i\c*`, `[^:]+(:[^:\d.\-][^:]*)?`}}},
			{Name: AnyURI, Kind: "string", Patterns: []string{`[^\s]*`}},
			{Name: Boolean, Kind: "boolean"},
			{Name: Decimal, Kind: "decimal"},
			{Name: Integer, Kind: "integer"},
			{Name: NonNegativeInteger, Base: Integer, MinInclusive: "0"},
			{Name: PositiveInteger, Base: NonNegativeInteger, MinInclusive: "1"},
			{Name: NonPositiveInteger, Base: Integer, MaxInclusive: "0"},
			{Name: NegativeInteger, Base: NonPositiveInteger, MaxInclusive: "-1"},
			{Name: Long, Base: Integer, MinInclusive: "-9223372036854775808", MaxInclusive: "9223372036854775807"},
			{Name: Int, Base: Long, MinInclusive: "-2147483648", MaxInclusive: "2147483647"},
			{Name: Short, Base: Int, MinInclusive: "-32768", MaxInclusive: "32767"},
			{Name: Byte, Base: Short, MinInclusive: "-128", MaxInclusive: "127"},
			{Name: UnsignedInt, Base: NonNegativeInteger, MaxInclusive: "4294967295"},
			{Name: Double, Kind: "double"},
			{Name: Float, Kind: "double"},
			{Name: Date, Kind: "date"},
			{Name: GYearMonth, Kind: "gYearMonth"},
			{Name: GYear, Kind: "gYear"},
			{Name: DateTime, Kind: "dateTime"},
			{Name: Time, Kind: "time"},
		},
	}
}

// Compile builds the built-in catalog with opts.
func Compile(opts catalog.Options) (*catalog.Catalog, error) {
	return catalog.Compile(Document(), opts)
}

// Catalog returns the shared built-in catalog compiled with default options.
var Catalog = sync.OnceValue(func() *catalog.Catalog {
	return catalog.MustCompile(Document(), catalog.Options{})
})
