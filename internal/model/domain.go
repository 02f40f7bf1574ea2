package model

// DomainKind classifies the value space of a parameter.
type DomainKind string

const (
	// DomainDiscrete is a finite, unordered set of named values (enum members).
	DomainDiscrete DomainKind = "discrete"
	// DomainOrdered is a totally ordered value type (numbers, dates).
	DomainOrdered DomainKind = "ordered"
	// DomainOpaque is a closed family of atomic named predicates.
	DomainOpaque DomainKind = "opaque"
)

// OrderedKind refines an ordered domain.
type OrderedKind string

const (
	// OrderedInteger values are discrete: adjacent integers leave no gap.
	OrderedInteger OrderedKind = "integer"
	// OrderedReal values are continuous.
	OrderedReal OrderedKind = "real"
	// OrderedDateTime values are continuous and written as DateTime creations.
	OrderedDateTime OrderedKind = "datetime"
)

// Domain describes the value space of one parameter.
type Domain struct {
	Kind     DomainKind
	TypeName string

	// Values lists the members of a discrete domain in declaration order.
	Values []string

	Ordered  OrderedKind
	MinText  string
	MaxText  string
	MinValue string
	MaxValue string

	// Family lists the declared atomic predicates of an opaque domain.
	Family []string
}

// Parameter is one formal argument of a tested member.
type Parameter struct {
	Name   string
	Domain Domain
}

// MemberKind identifies what sort of member a signature denotes.
type MemberKind string

// Supported member kinds.
const (
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
	MemberIndexer     MemberKind = "indexer"
	MemberGetter      MemberKind = "getter"
	MemberSetter      MemberKind = "setter"
)

// Member is a tested member, identified by its signature.
type Member struct {
	Signature  string
	Kind       MemberKind
	Parameters []Parameter
	// Ignore lists diagnostic codes silenced for this member, or "all".
	Ignore []string
}

// ImplicitParameter is the target of cases declared for a member without
// parameters, e.g. a property getter checked against atomic predicates.
func ImplicitParameter() Parameter {
	return Parameter{Domain: Domain{Kind: DomainOpaque}}
}

type orderedBuiltin struct {
	kind     OrderedKind
	min, max string
}

var orderedBuiltins = map[string]orderedBuiltin{
	"sbyte":    {OrderedInteger, "-128", "127"},
	"byte":     {OrderedInteger, "0", "255"},
	"short":    {OrderedInteger, "-32768", "32767"},
	"ushort":   {OrderedInteger, "0", "65535"},
	"int":      {OrderedInteger, "-2147483648", "2147483647"},
	"uint":     {OrderedInteger, "0", "4294967295"},
	"long":     {OrderedInteger, "-9223372036854775808", "9223372036854775807"},
	"ulong":    {OrderedInteger, "0", "18446744073709551615"},
	"float":    {OrderedReal, "-3.40282347e38", "3.40282347e38"},
	"double":   {OrderedReal, "-1.7976931348623157e308", "1.7976931348623157e308"},
	"decimal":  {OrderedReal, "-79228162514264337593543950335", "79228162514264337593543950335"},
	"DateTime": {OrderedDateTime, "new DateTime(1, 1, 1)", "new DateTime(9999, 12, 31, 23, 59, 59)"},
}

// BuiltinDomain returns the domain of a well-known type name.
func BuiltinDomain(typeName string) (Domain, bool) {
	if typeName == "bool" {
		return Domain{Kind: DomainDiscrete, TypeName: typeName, Values: []string{"false", "true"}}, true
	}

	b, ok := orderedBuiltins[typeName]
	if !ok {
		return Domain{}, false
	}

	return Domain{
		Kind:     DomainOrdered,
		TypeName: typeName,
		Ordered:  b.kind,
		MinText:  typeName + ".MinValue",
		MaxText:  typeName + ".MaxValue",
		MinValue: b.min,
		MaxValue: b.max,
	}, true
}
