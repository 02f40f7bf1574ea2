package adapter_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/casecov/internal/adapter"
	adaptermocks "github.com/mouse-blink/casecov/internal/adapter/mocks"
	m "github.com/mouse-blink/casecov/internal/model"
)

const typesFile = `types:
  enums:
    Color: [Red, Green, Blue]
  families:
    Criteria: [IsBelowMin, IsMin, AboveMin]
  constants:
    Class1.Limit1: "10"
  ordered:
    Percent:
      kind: integer
      min: "0"
      max: "100"
`

const calcFile = `members:
  - signature: Calc.Add(int, int)
    parameters:
      - name: i
        type: Criteria
      - name: j
        type: Criteria
  - signature: Paint.Fill(Color, Percent)
    kind: method
    parameters:
      - name: color
        type: Color
      - name: opacity
        type: Percent
  - signature: Class1.Check(int)
    ignore: [NotAConstant]
    parameters:
      - name: value
        type: int
cases:
  - member: Calc.Add(int, int)
    test: AddsAboveMin
    when: i:Criteria.AboveMin & j:Criteria.AboveMin
  - member: Class1.Check(int)
    test: ChecksLow
    when: BelowOrEqual(Class1.Limit1)
    locations: ["Class1Tests.cs:12:5"]
`

func TestYAMLCaseExtractor_Extract(t *testing.T) {
	root := t.TempDir()
	writeCaseFile(t, filepath.Join(root, "types.cases.yaml"), typesFile)
	writeCaseFile(t, filepath.Join(root, "calc.cases.yaml"), calcFile)

	extractor := adapter.NewYAMLCaseExtractor(adapter.NewLocalSourceFSAdapter())

	set, err := extractor.Extract(context.Background(), []m.Path{m.Path(root)}, nil)
	require.NoError(t, err)

	require.Len(t, set.Members, 3)
	assert.Equal(t, "Calc.Add(int, int)", set.Members[0].Signature)
	assert.Equal(t, m.MemberMethod, set.Members[0].Kind)
	assert.Equal(t, m.Domain{
		Kind:     m.DomainOpaque,
		TypeName: "Criteria",
		Family:   []string{"IsBelowMin", "IsMin", "AboveMin"},
	}, set.Members[0].Parameters[0].Domain)

	check := set.Members[1]
	assert.Equal(t, "Class1.Check(int)", check.Signature)
	assert.Equal(t, m.DomainOrdered, check.Parameters[0].Domain.Kind)
	assert.Equal(t, []string{"NotAConstant"}, check.Ignore)

	paint := set.Members[2]
	assert.Equal(t, m.DomainDiscrete, paint.Parameters[0].Domain.Kind)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, paint.Parameters[0].Domain.Values)
	assert.Equal(t, "100", paint.Parameters[1].Domain.MaxValue)
	assert.Equal(t, m.OrderedInteger, paint.Parameters[1].Domain.Ordered)

	require.Len(t, set.Cases, 2)

	add := set.Cases[0]
	assert.Equal(t, "AddsAboveMin", add.Name)
	assert.Equal(t, m.OpAnd, add.Expr.Op)
	assert.Equal(t, []m.Location{{File: m.Path(filepath.Join(root, "calc.cases.yaml")), Line: 21, Column: 5}}, add.Locations)

	low := set.Cases[1]
	assert.Equal(t, "10", low.Expr.Leaf.Criteria[0].Hi.Value)
	assert.Equal(t, []m.Location{{File: "Class1Tests.cs", Line: 12, Column: 5}}, low.Locations)
}

func TestYAMLCaseExtractor_Errors(t *testing.T) {
	t.Run("syntax error carries the file and line", func(t *testing.T) {
		root := t.TempDir()
		writeCaseFile(t, filepath.Join(root, "bad.cases.yaml"), "cases:\n  - member: M\n    when: i:Value(1) &\n")

		_, err := adapter.NewYAMLCaseExtractor(adapter.NewLocalSourceFSAdapter()).Extract(context.Background(), []m.Path{m.Path(root)}, nil)

		require.ErrorIs(t, err, adapter.ErrCaseSyntax)
		assert.Contains(t, err.Error(), "bad.cases.yaml:2")
	})

	t.Run("duplicate member", func(t *testing.T) {
		root := t.TempDir()
		decl := "members:\n  - signature: M()\n"
		writeCaseFile(t, filepath.Join(root, "a.cases.yaml"), decl)
		writeCaseFile(t, filepath.Join(root, "b.cases.yaml"), decl)

		_, err := adapter.NewYAMLCaseExtractor(adapter.NewLocalSourceFSAdapter()).Extract(context.Background(), []m.Path{m.Path(root)}, nil)

		assert.ErrorContains(t, err, "already declared")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		root := t.TempDir()
		writeCaseFile(t, filepath.Join(root, "a.cases.yaml"), "members: [\n")

		_, err := adapter.NewYAMLCaseExtractor(adapter.NewLocalSourceFSAdapter()).Extract(context.Background(), []m.Path{m.Path(root)}, nil)

		assert.ErrorContains(t, err, "decode")
	})

	t.Run("find error", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().Find(mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := adapter.NewYAMLCaseExtractor(fs).Extract(context.Background(), []m.Path{"x"}, nil)

		assert.ErrorContains(t, err, "find case files")
	})

	t.Run("read error", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().Find(mock.Anything, mock.Anything).Return([]m.Path{"a.cases.yaml"}, nil)
		fs.EXPECT().ReadFile(m.Path("a.cases.yaml")).Return(nil, os.ErrPermission)

		_, err := adapter.NewYAMLCaseExtractor(fs).Extract(context.Background(), []m.Path{"x"}, nil)

		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().Find(mock.Anything, mock.Anything).Return([]m.Path{"a.cases.yaml"}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := adapter.NewYAMLCaseExtractor(fs).Extract(ctx, []m.Path{"x"}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func writeCaseFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
