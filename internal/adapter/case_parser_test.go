package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/casecov/internal/model"
)

func TestParseCaseExpr_Leaves(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want m.Leaf
	}{
		{
			name: "bound value",
			src:  "i:Value(3)",
			want: m.Leaf{Path: "i", Criteria: []m.Criterion{m.ValueOf("3")}},
		},
		{
			name: "qualified inclusive range",
			src:  "value:int.Range(0, 10)",
			want: m.Leaf{Path: "value", TypeName: "int", Criteria: []m.Criterion{m.RangeOf("0", true, "10", true)}},
		},
		{
			name: "four argument range",
			src:  "Range(int.MinValue, false, int.MaxValue, true)",
			want: m.Leaf{Criteria: []m.Criterion{m.RangeOf("int.MinValue", false, "int.MaxValue", true)}},
		},
		{
			name: "chained criteria",
			src:  "BelowOrEqual(0).Above(10)",
			want: m.Leaf{Criteria: []m.Criterion{m.RangeOf("", true, "0", true), m.RangeOf("10", false, "", true)}},
		},
		{
			name: "date creation argument",
			src:  "DateTime.Below(new DateTime(2019, 6, 21))",
			want: m.Leaf{TypeName: "DateTime", Criteria: []m.Criterion{m.RangeOf("", true, "new DateTime(2019, 6, 21)", false)}},
		},
		{
			name: "atomic with family",
			src:  "i:Criteria.IsMin",
			want: m.Leaf{Path: "i", TypeName: "Criteria", Criteria: []m.Criterion{m.AtomicOf("IsMin")}},
		},
		{
			name: "values",
			src:  "c:Values(Red, Green)",
			want: m.Leaf{Path: "c", Criteria: []m.Criterion{m.ValuesOf("Red", "Green")}},
		},
		{
			name: "error case",
			src:  "Below(0).ErrorCase()",
			want: m.Leaf{Criteria: []m.Criterion{m.RangeOf("", true, "0", false)}, ErrorCase: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parseCaseExpr(tt.src, nil)
			require.NoError(t, err)
			require.Equal(t, m.OpLeaf, expr.Op)

			tt.want.Text = tt.src
			assert.Equal(t, tt.want, *expr.Leaf)
		})
	}
}

func TestParseCaseExpr_Structure(t *testing.T) {
	expr, err := parseCaseExpr("i:Value(1) & (j:Value(2) | j:Value(3)) || k:Value(4)", nil)
	require.NoError(t, err)

	require.Equal(t, m.OpOr, expr.Op)
	require.Len(t, expr.Operands, 2)

	and := expr.Operands[0]
	require.Equal(t, m.OpAnd, and.Op)
	require.Len(t, and.Operands, 2)
	assert.Equal(t, "i", and.Operands[0].Leaf.Path)
	assert.Equal(t, m.OpOr, and.Operands[1].Op)

	var paths []string
	for _, leaf := range expr.Leaves() {
		paths = append(paths, leaf.Path)
	}

	assert.Equal(t, []string{"i", "j", "j", "k"}, paths)
}

func TestParseCaseExpr_ResolvesConstants(t *testing.T) {
	constants := map[string]string{"Class1.Limit1": "10"}

	expr, err := parseCaseExpr("BelowOrEqual(Class1.Limit1)", constants)
	require.NoError(t, err)

	assert.Equal(t, m.Bound{Text: "Class1.Limit1", Value: "10"}, expr.Leaf.Criteria[0].Hi)
}

func TestParseCaseExpr_KeepsUnsupportedPathsForValidation(t *testing.T) {
	expr, err := parseCaseExpr("i + 1:Value(1)", nil)
	require.NoError(t, err)

	assert.Equal(t, "i + 1", expr.Leaf.Path)
}

func TestParseCaseExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"dangling operator", "i:Value(1) &"},
		{"unclosed group", "(i:Value(1)"},
		{"unknown criterion", "i:Between(1, 2)"},
		{"wrong arity", "i:Range(1, 2, 3)"},
		{"bad inclusivity flag", "i:Range(1, yes, 2, no)"},
		{"double binding", "i:j:Value(1)"},
		{"trailing input", "i:Value(1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCaseExpr(tt.src, nil)
			assert.ErrorIs(t, err, ErrCaseSyntax)
		})
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := parseLocation("CalcTests.cs:42:7")
	require.NoError(t, err)
	assert.Equal(t, m.Location{File: "CalcTests.cs", Line: 42, Column: 7}, loc)

	loc, err = parseLocation(`C:\src\CalcTests.cs:12`)
	require.NoError(t, err)
	assert.Equal(t, m.Location{File: `C:\src\CalcTests.cs`, Line: 12}, loc)

	_, err = parseLocation("CalcTests.cs")
	assert.Error(t, err)
}
