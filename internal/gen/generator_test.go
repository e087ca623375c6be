package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/capability"
	"newtype-generator/internal/guard"
	"newtype-generator/internal/model"
)

func scoreWrapper() model.Wrapper {
	w := model.Wrapper{
		Name:    "Score",
		Package: "quality",
		Doc:     "Score is a quality score in percent.",
		Inner:   model.KindFloat64,
		Sanitizers: []model.Sanitizer{
			{Kind: model.SanitizerClamp, Min: -1000, Max: 1000},
		},
		Validators: []model.Validator{
			{Kind: model.ValidatorMin, Bound: 0},
			{Kind: model.ValidatorMax, Bound: 100},
		},
	}

	for _, c := range []model.Capability{
		model.CapEq, model.CapOrd, model.CapDisplay, model.CapFromStr, model.CapTryFrom,
	} {
		w.AddCapability(c)
	}

	return w
}

func TestGenerate_Score(t *testing.T) {
	g := NewGenerator(Config{}, model.Features{})

	files, diags := g.Generate([]model.Wrapper{scoreWrapper()})
	require.False(t, diags.HasErrors(), "unexpected: %v", diags.Error())
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "score.go", file.Filename)

	src := string(file.Content)

	assert.Contains(t, src, "// Code generated by newtype-generator. DO NOT EDIT.")
	assert.Contains(t, src, "package quality")
	assert.Contains(t, src, "// Score is a quality score in percent.")
	assert.Contains(t, src, "// Score is comparable with ==.")
	assert.Contains(t, src, "type Score struct {\n\tinner float64\n}")

	// Constructor: sanitize in order, then validate in order.
	assert.Contains(t, src, "func NewScore(raw float64) (Score, error) {")
	assert.Contains(t, src, "v = min(max(v, -1000), 1000)")
	assert.Contains(t, src, "if v < 0 {\n\t\treturn Score{}, ScoreErrorTooSmall\n\t}")
	assert.Contains(t, src, "if v > 100 {\n\t\treturn Score{}, ScoreErrorTooBig\n\t}")
	assert.Contains(t, src, "return Score{inner: v}, nil")
	assert.Less(t,
		indexOf(t, src, "v = min(max(v, -1000), 1000)"),
		indexOf(t, src, "if v < 0 {"))
	assert.Less(t,
		indexOf(t, src, "if v < 0 {"),
		indexOf(t, src, "if v > 100 {"))

	assert.Contains(t, src, "func (n Score) IntoInner() float64 {")
	assert.Contains(t, src, "func (n Score) Compare(other Score) int {")
	assert.Contains(t, src, "func (n Score) String() string {")
	assert.Contains(t, src, "func ParseScore(s string) (Score, error) {")
	assert.Contains(t, src, "func ScoreTryFromFloat64(raw float64) (Score, error) {")

	// Error enum: one variant per validator, declaration order. Search
	// inside the enum section: the constructor body mentions the
	// variants too.
	enum := src[indexOf(t, src, "type ScoreError int"):]
	assert.Contains(t, enum, "ScoreErrorTooSmall ScoreError = iota + 1")
	assert.Less(t,
		indexOf(t, enum, "ScoreErrorTooSmall"),
		indexOf(t, enum, "ScoreErrorTooBig"))
	assert.Contains(t, src, `return "too small"`)
	assert.Contains(t, src, `return "too big"`)

	// No skip-validation constructor was requested.
	assert.NotContains(t, src, "NewScoreUnchecked")
}

func TestGenerate_Infallible(t *testing.T) {
	w := model.Wrapper{
		Name:        "Weight",
		Package:     "quality",
		Inner:       model.KindFloat64,
		DefaultExpr: "1",
		Sanitizers: []model.Sanitizer{
			{Kind: model.SanitizerClamp, Min: 0, Max: 1},
		},
	}
	w.AddCapability(model.CapInto)
	w.AddCapability(model.CapFrom)
	w.AddCapability(model.CapDefault)

	g := NewGenerator(Config{}, model.Features{})

	files, diags := g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors(), "unexpected: %v", diags.Error())
	require.Len(t, files, 1)

	src := string(files[0].Content)

	// Infallible shape: no error return, no error type.
	assert.Contains(t, src, "func NewWeight(raw float64) Weight {")
	assert.Contains(t, src, "return Weight{inner: v}")
	assert.NotContains(t, src, "WeightError")
	assert.NotContains(t, src, ", error)")

	assert.Contains(t, src, "func (n Weight) Float64() float64 {")
	assert.Contains(t, src, "func WeightFromFloat64(raw float64) Weight {")
	assert.Contains(t, src, "func DefaultWeight() Weight {\n\treturn NewWeight(1)\n}")
}

func TestGenerate_Unchecked(t *testing.T) {
	w := model.Wrapper{
		Name:         "Score",
		Inner:        model.KindFloat64,
		NewUnchecked: true,
		Validators:   []model.Validator{{Kind: model.ValidatorMin, Bound: 0}},
	}

	g := NewGenerator(Config{}, model.Features{NewUnchecked: true})

	files, diags := g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors(), "unexpected: %v", diags.Error())
	require.Len(t, files, 1)

	src := string(files[0].Content)
	assert.Contains(t, src, "func NewScoreUnchecked(raw float64) Score {")
	assert.Contains(t, src, "return Score{inner: raw}")
}

func TestGenerate_FiniteImportsMath(t *testing.T) {
	w := model.Wrapper{
		Name:       "Celsius",
		Inner:      model.KindFloat64,
		Validators: []model.Validator{{Kind: model.ValidatorFinite}},
	}

	g := NewGenerator(Config{}, model.Features{})

	files, diags := g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors(), "unexpected: %v", diags.Error())
	require.Len(t, files, 1)

	src := string(files[0].Content)
	assert.Contains(t, src, "\"math\"")
	assert.Contains(t, src, "if math.IsNaN(v) || math.IsInf(v, 0) {")
	assert.Contains(t, src, "CelsiusErrorNotFinite")
	assert.Contains(t, src, `return "not finite"`)
}

func TestGenerate_SiblingIsolation(t *testing.T) {
	broken := model.Wrapper{
		Name:  "Broken",
		Inner: model.KindFloat64,
		Validators: []model.Validator{
			{Kind: model.ValidatorMin, Bound: 0},
			{Kind: model.ValidatorMin, Bound: 10},
		},
	}

	g := NewGenerator(Config{}, model.Features{})

	files, diags := g.Generate([]model.Wrapper{broken, scoreWrapper()})
	require.True(t, diags.HasErrors())
	assert.Equal(t, "duplicate_validator", diags.Errors[0].Code)
	assert.Equal(t, "Broken", diags.Errors[0].Wrapper)

	// The healthy sibling still generates.
	require.Len(t, files, 1)
	assert.Equal(t, "score.go", files[0].Filename)
}

func TestGenerate_DuplicateArtifact(t *testing.T) {
	// "ScoreValue" and "scoreValue" both snake-case to score_value.go; the
	// later wrapper must not silently overwrite the earlier artifact.
	first := model.Wrapper{Name: "ScoreValue", Inner: model.KindFloat64}
	second := model.Wrapper{Name: "scoreValue", Inner: model.KindFloat64}

	g := NewGenerator(Config{}, model.Features{})

	files, diags := g.Generate([]model.Wrapper{first, second})
	require.True(t, diags.HasErrors())
	assert.Equal(t, "duplicate_artifact", diags.Errors[0].Code)
	assert.Equal(t, "scoreValue", diags.Errors[0].Wrapper)
	assert.Contains(t, diags.Errors[0].Message, "score_value.go")
	assert.Contains(t, diags.Errors[0].Message, `"ScoreValue"`)

	require.Len(t, files, 1)
	assert.Equal(t, "score_value.go", files[0].Filename)
}

func TestGenerate_FeatureGatedBlocks(t *testing.T) {
	w := model.Wrapper{
		Name:    "Celsius",
		Package: "limits",
		Inner:   model.KindFloat64,
		Validators: []model.Validator{
			{Kind: model.ValidatorMin, Bound: -90},
			{Kind: model.ValidatorMax, Bound: 60},
		},
	}
	for _, c := range []model.Capability{
		model.CapAsRef, model.CapSerialize, model.CapDeserialize,
		model.CapJSONSchema, model.CapArbitrary,
	} {
		w.AddCapability(c)
	}

	g := NewGenerator(Config{}, model.Features{Serde: true, Schema: true, Arbitrary: true})

	files, diags := g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors(), "unexpected: %v", diags.Error())
	require.Len(t, files, 1)

	src := string(files[0].Content)

	assert.Contains(t, src, "\"encoding/json\"")
	assert.Contains(t, src, "\"math/rand\"")

	assert.Contains(t, src, "func (n Celsius) Get() float64 {")
	assert.Contains(t, src, "func (n Celsius) MarshalJSON() ([]byte, error) {")

	// Deserialization re-runs the full constructor chain.
	assert.Contains(t, src, "func (n *Celsius) UnmarshalJSON(data []byte) error {")
	assert.Contains(t, src, "parsed, err := NewCelsius(raw)")

	// The schema carries the validator bounds.
	assert.Contains(t, src, `{"type":"number","minimum":-90,"maximum":60}`)

	// Fallible sampler: draw from the validated range, reject through the
	// constructor.
	assert.Contains(t, src, "func ArbitraryCelsius(r *rand.Rand) Celsius {")
	assert.Contains(t, src, "raw := float64(-90 + r.Float64()*(60-(-90)))")
	assert.Contains(t, src, "n, err := NewCelsius(raw)")
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(Config{}, model.Features{})

	first, diags := g.Generate([]model.Wrapper{scoreWrapper()})
	require.False(t, diags.HasErrors())

	second, diags := g.Generate([]model.Wrapper{scoreWrapper()})
	require.False(t, diags.HasErrors())

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])
}

func TestGenerate_PackagePrecedence(t *testing.T) {
	w := model.Wrapper{Name: "Ratio", Inner: model.KindFloat64}

	g := NewGenerator(Config{PackageName: "override"}, model.Features{})
	files, diags := g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors())
	assert.Contains(t, string(files[0].Content), "package override")

	g = NewGenerator(Config{}, model.Features{})
	files, diags = g.Generate([]model.Wrapper{w})
	require.False(t, diags.HasErrors())
	assert.Contains(t, string(files[0].Content), "package newtypes")
}

func TestErrorTypeName(t *testing.T) {
	assert.Equal(t, "ScoreError", ErrorTypeName("Score"))
}

func TestRenderErrorType_VariantOrder(t *testing.T) {
	src, err := renderErrorType("Celsius", []model.Validator{
		{Kind: model.ValidatorMin, Bound: -90},
		{Kind: model.ValidatorMax, Bound: 60},
		{Kind: model.ValidatorFinite},
		{Kind: model.ValidatorWith, Expr: "ok"},
	})
	require.NoError(t, err)

	assert.Contains(t, src, "CelsiusErrorTooSmall CelsiusError = iota + 1")

	prev := -1
	for _, variant := range []string{
		"CelsiusErrorTooSmall", "CelsiusErrorTooBig", "CelsiusErrorNotFinite", "CelsiusErrorInvalid",
	} {
		idx := indexOf(t, src, variant)
		assert.Greater(t, idx, prev, "variant %s out of order", variant)
		prev = idx
	}

	assert.Contains(t, src, `return "invalid"`)
}

func TestCollectImports(t *testing.T) {
	grd := guard.Guard{
		Kind:       guard.WithValidation,
		Validators: []model.Validator{{Kind: model.ValidatorFinite}},
	}

	resolved := capability.Resolved{Irregular: []model.Capability{model.CapDisplay, model.CapFromStr}}

	imports := collectImports(grd, resolved)
	assert.Equal(t, []string{"fmt", "math", "strconv"}, imports)

	imports = collectImports(guard.Guard{Kind: guard.WithoutValidation}, capability.Resolved{})
	assert.Empty(t, imports)
}

func indexOf(t *testing.T, src, needle string) int {
	t.Helper()

	idx := strings.Index(src, needle)
	require.GreaterOrEqual(t, idx, 0, "missing %q", needle)

	return idx
}
