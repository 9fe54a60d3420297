package fmca

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmc-tools/fmca/internal/core/config"
	"github.com/fmc-tools/fmca/internal/core/execute"
	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/executil"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register(registry.Definition{
		Sheet:    "Create Fail Modes",
		Name:     "Create Fail Mode",
		Required: []string{"Fail Mode Name"},
		Template: `im createissue --field='Name'={{ field . "Fail Mode Name" | shq }}`,
	}))
	return r
}

func testService(t *testing.T, runner executil.Runner) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewService(testRegistry(t), &cfg, runner, zerolog.Nop())
}

func testStore(t *testing.T, rows ...map[string]string) *jsonfile.WorkbookStore {
	t.Helper()
	s := jsonfile.NewWorkbookStore(filepath.Join(t.TempDir(), "wb.json"))
	require.NoError(t, s.Write(jsonfile.WorkbookFile{Sheets: []jsonfile.SheetData{{
		Name:    "Create Fail Modes",
		Columns: []string{"Fail Mode Name", "Agent Status"},
		Rows:    rows,
	}}}))
	return s
}

func TestService_BuildPlan(t *testing.T) {
	svc := testService(t, &executil.RecordingRunner{})
	store := testStore(t,
		map[string]string{"Fail Mode Name": "Pump stalls", "Agent Status": ""},
		map[string]string{"Fail Mode Name": "Seal leaks", "Agent Status": "Completed"},
	)

	wb, err := store.Load()
	require.NoError(t, err)

	doc, skipped, err := svc.BuildPlan(wb, nil)
	require.NoError(t, err)

	require.Len(t, doc.Operations, 1)
	assert.Equal(t, 1, skipped)
	assert.Contains(t, doc.Operations[0].Command, "'Pump stalls'")
}

func TestService_BuildPlan_ValidationBlocks(t *testing.T) {
	svc := testService(t, &executil.RecordingRunner{})

	// Sheet lacks the Agent Status column.
	s := jsonfile.NewWorkbookStore(filepath.Join(t.TempDir(), "wb.json"))
	require.NoError(t, s.Write(jsonfile.WorkbookFile{Sheets: []jsonfile.SheetData{{
		Name:    "Create Fail Modes",
		Columns: []string{"Fail Mode Name"},
	}}}))
	wb, err := s.Load()
	require.NoError(t, err)

	_, _, err = svc.BuildPlan(wb, nil)

	var failed *validate.FailedError
	require.ErrorAs(t, err, &failed)
	require.Len(t, failed.Result.Errors, 1)
	assert.Equal(t, validate.KindMissingColumn, failed.Result.Errors[0].Kind)
}

func TestService_BuildPlan_UnknownSelection(t *testing.T) {
	svc := testService(t, &executil.RecordingRunner{})
	store := testStore(t)
	wb, err := store.Load()
	require.NoError(t, err)

	_, _, err = svc.BuildPlan(wb, []string{"Create Widget"})
	assert.ErrorContains(t, err, "matches nothing")
}

func TestService_Run_DryRunAudits(t *testing.T) {
	runner := &executil.RecordingRunner{}
	svc := testService(t, runner)
	store := testStore(t,
		map[string]string{"Fail Mode Name": "a", "Agent Status": ""},
		map[string]string{"Fail Mode Name": "b", "Agent Status": ""},
		map[string]string{"Fail Mode Name": "c", "Agent Status": ""},
	)

	summary, err := svc.Run(context.Background(), RunRequest{
		Store:  store,
		DryRun: true,
		WWID:   "ab1234",
	})
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	_, _, simulated := summary.Counts()
	assert.Equal(t, 3, simulated)

	require.Len(t, summary.Records, 3)
	for _, rec := range summary.Records {
		assert.Equal(t, "Simulated", rec.Status)
		assert.Empty(t, rec.CLIOutput)
	}

	assert.Empty(t, runner.Commands, "dry run never reaches the external tool")

	// The ledger was created and holds exactly the three records.
	wb, err := store.Load()
	require.NoError(t, err)
	ledger, ok := wb.Table("Change Log")
	require.True(t, ok)
	assert.Len(t, ledger.Rows, 3)
}

func TestService_Run_FailureMidBatchContinues(t *testing.T) {
	runner := &executil.RecordingRunner{
		Results: map[string]executil.Result{
			`im createissue --field='Name'='b'`: {ExitCode: 1, Stderr: "Error: invalid field"},
		},
		Default: executil.Result{ExitCode: 0, Stdout: "Created FM-20240115-0007"},
	}
	svc := testService(t, runner)
	store := testStore(t,
		map[string]string{"Fail Mode Name": "a", "Agent Status": ""},
		map[string]string{"Fail Mode Name": "b", "Agent Status": ""},
		map[string]string{"Fail Mode Name": "c", "Agent Status": ""},
	)

	summary, err := svc.Run(context.Background(), RunRequest{Store: store, WWID: "ab1234"})
	require.NoError(t, err)

	succeeded, failed, _ := summary.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Len(t, runner.Commands, 3, "third command still attempted")

	wb, err := store.Load()
	require.NoError(t, err)
	ledger, ok := wb.Table("Change Log")
	require.True(t, ok)
	require.Len(t, ledger.Rows, 3)
	assert.Equal(t, "Success", ledger.Rows[0].Get("Status"))
	assert.Equal(t, "Failed", ledger.Rows[1].Get("Status"))
	assert.Equal(t, "Success", ledger.Rows[2].Get("Status"))
}

func TestService_Run_ZeroEligibleRowsIsSuccess(t *testing.T) {
	svc := testService(t, &executil.RecordingRunner{})
	store := testStore(t,
		map[string]string{"Fail Mode Name": "done already", "Agent Status": "Completed"},
	)

	summary, err := svc.Run(context.Background(), RunRequest{Store: store, WWID: "ab1234"})
	require.NoError(t, err)

	assert.Empty(t, summary.Results)
	assert.Equal(t, 1, summary.Skipped)
}

func TestService_Run_PlanModeNeverAudits(t *testing.T) {
	svc := testService(t, &executil.RecordingRunner{})
	store := testStore(t,
		map[string]string{"Fail Mode Name": "a", "Agent Status": ""},
	)

	wb, err := store.Load()
	require.NoError(t, err)
	_, _, err = svc.BuildPlan(wb, nil)
	require.NoError(t, err)

	wb, err = store.Load()
	require.NoError(t, err)
	_, ok := wb.Table("Change Log")
	assert.False(t, ok, "plan mode must not create or grow the ledger")
}

func TestRunSummary_Counts(t *testing.T) {
	summary := &RunSummary{Results: []execute.Result{
		{Status: execute.StatusSuccess},
		{Status: execute.StatusFailure},
		{Status: execute.StatusFailure},
		{Status: execute.StatusSimulated},
	}}

	succeeded, failed, simulated := summary.Counts()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, simulated)
}
