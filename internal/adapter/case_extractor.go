package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/casecov/internal/model"
)

// CaseExtractor produces the members and declared cases found under a set
// of paths.
type CaseExtractor interface {
	Extract(ctx context.Context, paths []m.Path, exclude []string) (m.CaseSet, error)
}

// caseFile is the on-disk layout of a `*.cases.yaml` file.
type caseFile struct {
	Types typeDecls `yaml:"types"`
	// Ignore silences diagnostic codes for every member of the file.
	Ignore  []string     `yaml:"ignore"`
	Members []memberDecl `yaml:"members"`
	Cases   []caseDecl   `yaml:"cases"`
}

type typeDecls struct {
	Enums     map[string][]string  `yaml:"enums"`
	Families  map[string][]string  `yaml:"families"`
	Constants map[string]string    `yaml:"constants"`
	Ordered   map[string]rangeDecl `yaml:"ordered"`
}

// rangeDecl declares a custom ordered type by its bounds.
type rangeDecl struct {
	Kind m.OrderedKind `yaml:"kind"`
	Min  string        `yaml:"min"`
	Max  string        `yaml:"max"`
}

type memberDecl struct {
	Signature  string       `yaml:"signature"`
	Kind       m.MemberKind `yaml:"kind"`
	Parameters []paramDecl  `yaml:"parameters"`
	Ignore     []string     `yaml:"ignore"`
	line       int
}

type paramDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type caseDecl struct {
	Member    string   `yaml:"member"`
	Test      string   `yaml:"test"`
	When      string   `yaml:"when"`
	Locations []string `yaml:"locations"`
	line      int
	column    int
}

func (d *memberDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain memberDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}

	d.line = value.Line

	return nil
}

func (d *caseDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain caseDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}

	d.line, d.column = value.Line, value.Column

	return nil
}

// YAMLCaseExtractor reads members and cases from `*.cases.yaml` files.
type YAMLCaseExtractor struct {
	fs SourceFSAdapter
}

// NewYAMLCaseExtractor constructs a YAMLCaseExtractor on top of a filesystem adapter.
func NewYAMLCaseExtractor(fs SourceFSAdapter) *YAMLCaseExtractor {
	return &YAMLCaseExtractor{fs: fs}
}

type loadedFile struct {
	path m.Path
	file caseFile
}

// Extract parses every case file under paths. Types declared in any file
// are visible to all of them.
func (e *YAMLCaseExtractor) Extract(ctx context.Context, paths []m.Path, exclude []string) (m.CaseSet, error) {
	files, err := e.fs.Find(paths, exclude)
	if err != nil {
		return m.CaseSet{}, fmt.Errorf("find case files: %w", err)
	}

	loaded := make([]loadedFile, 0, len(files))
	types := typeDecls{
		Enums:     map[string][]string{},
		Families:  map[string][]string{},
		Constants: map[string]string{},
		Ordered:   map[string]rangeDecl{},
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return m.CaseSet{}, err
		}

		data, err := e.fs.ReadFile(path)
		if err != nil {
			return m.CaseSet{}, fmt.Errorf("read %s: %w", path, err)
		}

		var f caseFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return m.CaseSet{}, fmt.Errorf("decode %s: %w", path, err)
		}

		mergeTypes(&types, f.Types)
		loaded = append(loaded, loadedFile{path: path, file: f})
	}

	var set m.CaseSet

	seen := map[string]m.Path{}

	for _, lf := range loaded {
		for _, md := range lf.file.Members {
			if prev, ok := seen[md.Signature]; ok {
				return m.CaseSet{}, fmt.Errorf("%s:%d: member %q already declared in %s", lf.path, md.line, md.Signature, prev)
			}

			seen[md.Signature] = lf.path
			member := types.member(md)
			member.Ignore = append(append([]string{}, lf.file.Ignore...), md.Ignore...)
			set.Members = append(set.Members, member)
		}

		for _, cd := range lf.file.Cases {
			c, err := types.caseOf(lf.path, cd)
			if err != nil {
				return m.CaseSet{}, err
			}

			set.Cases = append(set.Cases, c)
		}
	}

	sort.SliceStable(set.Members, func(i, j int) bool {
		return set.Members[i].Signature < set.Members[j].Signature
	})

	return set, nil
}

func mergeTypes(dst *typeDecls, src typeDecls) {
	for k, v := range src.Enums {
		dst.Enums[k] = v
	}

	for k, v := range src.Families {
		dst.Families[k] = v
	}

	for k, v := range src.Constants {
		dst.Constants[k] = v
	}

	for k, v := range src.Ordered {
		dst.Ordered[k] = v
	}
}

func (t typeDecls) member(md memberDecl) m.Member {
	kind := md.Kind
	if kind == "" {
		kind = m.MemberMethod
	}

	member := m.Member{Signature: md.Signature, Kind: kind}
	for _, pd := range md.Parameters {
		member.Parameters = append(member.Parameters, m.Parameter{Name: pd.Name, Domain: t.domain(pd.Type)})
	}

	return member
}

// domain resolves a parameter type name. Unknown types are opaque.
func (t typeDecls) domain(typeName string) m.Domain {
	if d, ok := m.BuiltinDomain(typeName); ok {
		return d
	}

	if values, ok := t.Enums[typeName]; ok {
		return m.Domain{Kind: m.DomainDiscrete, TypeName: typeName, Values: values}
	}

	if r, ok := t.Ordered[typeName]; ok {
		kind := r.Kind
		if kind == "" {
			kind = m.OrderedInteger
		}

		return m.Domain{
			Kind:     m.DomainOrdered,
			TypeName: typeName,
			Ordered:  kind,
			MinText:  typeName + ".MinValue",
			MaxText:  typeName + ".MaxValue",
			MinValue: r.Min,
			MaxValue: r.Max,
		}
	}

	return m.Domain{Kind: m.DomainOpaque, TypeName: typeName, Family: t.Families[typeName]}
}

func (t typeDecls) caseOf(path m.Path, cd caseDecl) (m.Case, error) {
	expr, err := parseCaseExpr(cd.When, t.Constants)
	if err != nil {
		return m.Case{}, fmt.Errorf("%s:%d: parse case %q: %w", path, cd.line, cd.When, err)
	}

	c := m.Case{Member: cd.Member, Name: cd.Test, Expr: expr}

	for _, text := range cd.Locations {
		loc, err := parseLocation(text)
		if err != nil {
			return m.Case{}, fmt.Errorf("%s:%d: %w", path, cd.line, err)
		}

		c.Locations = append(c.Locations, loc)
	}

	if len(c.Locations) == 0 {
		c.Locations = []m.Location{{File: path, Line: cd.line, Column: cd.column}}
	}

	return c, nil
}

// parseLocation reads `file:line` or `file:line:column`.
func parseLocation(text string) (m.Location, error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 {
		return m.Location{}, fmt.Errorf("location %q: expected file:line", text)
	}

	nums := []int{}

	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}

		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}

	if len(nums) == 0 {
		return m.Location{}, fmt.Errorf("location %q: expected file:line", text)
	}

	loc := m.Location{File: m.Path(strings.Join(parts, ":")), Line: nums[0]}
	if len(nums) == 2 {
		loc.Column = nums[1]
	}

	return loc, nil
}
