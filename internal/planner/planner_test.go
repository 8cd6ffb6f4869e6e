package planner

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/lifehack/internal/models"
)

func TestOffsetMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "Should parse hours", input: "3h", want: 180},
		{name: "Should parse days", input: "2d", want: 2880},
		{name: "Should parse weeks", input: "1w", want: 10080},
		{name: "Should parse minutes", input: "45m", want: 45},
		{name: "Should parse zero offset", input: "0h", want: 0},
		{name: "Should parse multi-digit days", input: "14d", want: 20160},
		{name: "Should reject bare number", input: "30", wantErr: true},
		{name: "Should reject empty string", input: "", wantErr: true},
		{name: "Should reject unit only", input: "h", wantErr: true},
		{name: "Should reject unknown unit", input: "5y", wantErr: true},
		{name: "Should reject negative offset", input: "-1d", wantErr: true},
		{name: "Should reject non-numeric prefix", input: "xd", wantErr: true},
		{name: "Should reject upper case unit", input: "2H", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OffsetMinutes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOffset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetMinutes_UnitMultipliers(t *testing.T) {
	for n := 0; n <= 20; n++ {
		h, err := OffsetMinutes(strconv.Itoa(n) + "h")
		require.NoError(t, err)
		d, err := OffsetMinutes(strconv.Itoa(n) + "d")
		require.NoError(t, err)
		w, err := OffsetMinutes(strconv.Itoa(n) + "w")
		require.NoError(t, err)

		assert.Equal(t, n*60, h)
		assert.Equal(t, n*1440, d)
		assert.Equal(t, n*10080, w)
	}
}

func TestParseDueOffset(t *testing.T) {
	d, err := ParseDueOffset("2h")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, d)
}

func TestTemplateFor(t *testing.T) {
	t.Run("Should match category case-insensitively", func(t *testing.T) {
		tpl := TemplateFor("  Finance ")
		assert.Equal(t, "finance", tpl.Category)
		assert.Equal(t, "Create and maintain a personal monthly budget", tpl.Summary)
	})

	t.Run("Should fall back to general for unknown category", func(t *testing.T) {
		tpl := TemplateFor("gardening")
		assert.Equal(t, DefaultCategory, tpl.Category)
		assert.Equal(t, "Solve your daily life problem with a structured approach", tpl.Summary)
	})

	t.Run("Should return a copy of the steps", func(t *testing.T) {
		tpl := TemplateFor("shopping")
		tpl.Steps[0].Title = "mutated"
		assert.Equal(t, "Create a meal plan", TemplateFor("shopping").Steps[0].Title)
	})

	t.Run("Every template offset should parse", func(t *testing.T) {
		for _, c := range Categories() {
			tpl := TemplateFor(c)
			require.Len(t, tpl.Steps, 6, c)
			for i, s := range tpl.Steps {
				assert.Equal(t, i+1, s.StepID)
				_, err := OffsetMinutes(s.DueOffset)
				assert.NoError(t, err, "%s step %d", c, s.StepID)
			}
		}
	})
}

func TestGenerate(t *testing.T) {
	problem := models.Problem{ID: 7, Title: "Groceries every week", Category: "SHOPPING"}
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	a := Generate(problem, t1)
	b := Generate(problem, t2)

	assert.Equal(t, int64(7), a.ProblemID)
	assert.Equal(t, t1, a.GeneratedAt)
	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, "Optimize your weekly grocery shopping to save time and money", a.Summary)
}

func TestGenerate_UnknownCategory(t *testing.T) {
	plan := Generate(models.Problem{ID: 1, Category: "unknown"}, time.Now())
	assert.Equal(t, TemplateFor(DefaultCategory).Steps, plan.Steps)
}

func TestMaterialize(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	plan := models.Plan{
		ID: 3,
		Steps: []models.PlanStep{
			{StepID: 1, Title: "a", DueOffset: "0h"},
			{StepID: 2, Title: "b", DueOffset: "1h"},
			{StepID: 3, Title: "c", DueOffset: "2h"},
		},
	}

	drafts, err := Materialize(plan, base)
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	for i, want := range []time.Duration{0, 60 * time.Minute, 120 * time.Minute} {
		assert.Equal(t, int64(3), drafts[i].PlanID)
		assert.Equal(t, i+1, drafts[i].StepID)
		assert.Equal(t, want, drafts[i].DueAt.Sub(base))
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{drafts[0].Title, drafts[1].Title, drafts[2].Title})
}

func TestMaterialize_InvalidOffset(t *testing.T) {
	plan := models.Plan{Steps: []models.PlanStep{{StepID: 1, Title: "a", DueOffset: "30"}}}
	_, err := Materialize(plan, time.Now())
	assert.ErrorIs(t, err, ErrInvalidOffset)
}
