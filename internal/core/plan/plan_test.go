package plan

import (
	"encoding/json"
	"testing"

	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/core/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register(registry.Definition{
		Sheet:    "Create Fail Modes",
		Name:     "Create Fail Mode",
		Required: []string{"Fail Mode Name", "Fail Mode Description"},
		Optional: []string{"Severity"},
		Template: `im createissue --field='Name'={{ field . "Fail Mode Name" | shq }} --field='Description'={{ field . "Fail Mode Description" | shq }}`,
	}))
	require.NoError(t, r.Register(registry.Definition{
		Sheet:    "Create Causes",
		Name:     "Create Cause",
		Required: []string{"Cause Name"},
		Template: `im createissue --field='Name'={{ field . "Cause Name" | shq }}`,
	}))
	return r
}

func testWorkbook() *workbook.Workbook {
	wb := workbook.New()
	wb.SetTable("Create Fail Modes", &workbook.Table{
		Columns: []string{"Fail Mode Name", "Fail Mode Description", "Severity", "Agent Status"},
		Rows: []workbook.Row{
			{"Fail Mode Name": "Pump stalls", "Fail Mode Description": "Jams", "Severity": "High", "Agent Status": ""},
			{"Fail Mode Name": "Seal leaks", "Fail Mode Description": "Drips", "Agent Status": "Completed"},
			{"Fail Mode Name": "", "Fail Mode Description": "", "Agent Status": ""}, // blank spacer
			{"Fail Mode Name": "Valve sticks", "Fail Mode Description": "Stuck shut", "Agent Status": "what even"},
		},
	})
	wb.SetTable("Create Causes", &workbook.Table{
		Columns: []string{"Cause Name", "Agent Status"},
		Rows: []workbook.Row{
			{"Cause Name": "Debris ingress", "Agent Status": ""},
		},
	})
	return wb
}

func validated() validate.Result { return validate.Result{} }

func TestPlan_RequiresValidation(t *testing.T) {
	invalid := validate.Result{Errors: []validate.Error{{Kind: validate.KindMissingSheet}}}

	_, _, err := Plan(testWorkbook(), testRegistry(t), Selection{}, invalid)

	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestPlan_EligibleRowsOnly(t *testing.T) {
	ops, skipped, err := Plan(testWorkbook(), testRegistry(t), Selection{}, validated())
	require.NoError(t, err)

	// Completed and unrecognized rows are skipped; the blank row plans
	// nothing but is not counted as skipped.
	assert.Equal(t, 2, skipped)
	require.Len(t, ops, 2)

	assert.Equal(t, "Create Fail Mode", ops[0].Operation)
	assert.Equal(t, "Create Fail Modes", ops[0].Sheet)
	assert.Equal(t, 2, ops[0].Row)
	assert.Contains(t, ops[0].Command, "--field='Name'='Pump stalls'")

	assert.Equal(t, "Create Cause", ops[1].Operation)
	assert.Equal(t, 2, ops[1].Row)
}

func TestPlan_Selection(t *testing.T) {
	sel := NewSelection([]string{"Create Cause"})

	ops, skipped, err := Plan(testWorkbook(), testRegistry(t), sel, validated())
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, "Create Cause", ops[0].Operation)
	assert.Zero(t, skipped, "unselected sheets contribute no skips")
}

func TestPlan_SelectionGlob(t *testing.T) {
	sel := NewSelection([]string{"Create Fail*"})

	ops, _, err := Plan(testWorkbook(), testRegistry(t), sel, validated())
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, "Create Fail Mode", ops[0].Operation)
}

func TestPlan_InputDataOrderAndContent(t *testing.T) {
	ops, _, err := Plan(testWorkbook(), testRegistry(t), NewSelection([]string{"Create Fail Mode"}), validated())
	require.NoError(t, err)
	require.Len(t, ops, 1)

	data := ops[0].InputData
	require.Len(t, data, 3)
	assert.Equal(t, "Fail Mode Name", data[0].Column)
	assert.Equal(t, "Fail Mode Description", data[1].Column)
	assert.Equal(t, "Severity", data[2].Column)
	assert.Equal(t, "High", data.Get("Severity"))
}

func TestPlan_CommandRenderingIsIdempotent(t *testing.T) {
	reg := testRegistry(t)
	ops, _, err := Plan(testWorkbook(), reg, Selection{}, validated())
	require.NoError(t, err)

	for _, op := range ops {
		def, err := reg.Get(op.Sheet)
		require.NoError(t, err)

		row := workbook.Row{}
		for _, fv := range op.InputData {
			row[fv.Column] = fv.Value
		}

		again, err := def.BuildCommand(row)
		require.NoError(t, err)
		assert.Equal(t, op.Command, again, "re-rendering the captured input must reproduce the command")
	}
}

func TestPlan_ZeroEligibleRowsIsSuccess(t *testing.T) {
	wb := workbook.New()
	wb.SetTable("Create Fail Modes", &workbook.Table{
		Columns: []string{"Fail Mode Name", "Fail Mode Description", "Agent Status"},
	})
	wb.SetTable("Create Causes", &workbook.Table{
		Columns: []string{"Cause Name", "Agent Status"},
	})

	ops, skipped, err := Plan(wb, testRegistry(t), Selection{}, validated())

	require.NoError(t, err)
	assert.Empty(t, ops)
	assert.Zero(t, skipped)
}

func TestInputData_MarshalPreservesOrder(t *testing.T) {
	data := InputData{
		{Column: "Zulu Column", Value: "z"},
		{Column: "Alpha Column", Value: `a "quoted"`},
	}

	bits, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Equal(t, `{"Zulu Column":"z","Alpha Column":"a \"quoted\""}`, string(bits))
}

func TestDocument_Contract(t *testing.T) {
	doc := Document{Operations: []Operation{{
		Operation: "Create Fail Mode",
		Sheet:     "Create Fail Modes",
		Row:       2,
		Command:   "im createissue",
		InputData: InputData{{Column: "Fail Mode Name", Value: "x"}},
	}}}

	bits, err := json.Marshal(doc)
	require.NoError(t, err)

	want := `{"operations":[{"operation":"Create Fail Mode","sheet":"Create Fail Modes","row":2,"command":"im createissue","input_data":{"Fail Mode Name":"x"}}]}`
	assert.JSONEq(t, want, string(bits))
}
