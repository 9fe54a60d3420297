package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		row     map[string]string
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "hello {{ .Name }}",
			row:  map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name: "field function with spaces in column name",
			tmpl: `--field='Name'={{ field . "Fail Mode Name" | shq }}`,
			row:  map[string]string{"Fail Mode Name": "Pump stalls"},
			want: `--field='Name'='Pump stalls'`,
		},
		{
			name:    "field function errors on missing column",
			tmpl:    `{{ field . "Missing Column" }}`,
			row:     map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			row:     map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Name }",
			row:     map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name: "empty value is valid",
			tmpl: "prefix{{ .Name }}suffix",
			row:  map[string]string{"Name": ""},
			want: "prefixsuffix",
		},
		{
			name: "shq function with spaces",
			tmpl: "echo {{ .Prompt | shq }}",
			row:  map[string]string{"Prompt": "hello world"},
			want: "echo 'hello world'",
		},
		{
			name: "shq function with single quotes",
			tmpl: "echo {{ .Prompt | shq }}",
			row:  map[string]string{"Prompt": "it's a test"},
			want: `echo 'it'\''s a test'`,
		},
		{
			name: "shq function with empty string",
			tmpl: "echo {{ .Prompt | shq }}",
			row:  map[string]string{"Prompt": ""},
			want: "echo ''",
		},
		{
			name: "shq function with shell metacharacters",
			tmpl: "echo {{ .Prompt | shq }}",
			row:  map[string]string{"Prompt": "a; rm -rf $HOME && `id`"},
			want: "echo 'a; rm -rf $HOME && `id`'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.row)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ToolFunction(t *testing.T) {
	got, err := Render("{{ im }} createissue", nil)
	require.NoError(t, err)
	assert.Equal(t, "im createissue", got)

	SetTool("/opt/rvs/bin/im")
	t.Cleanup(func() { SetTool("") })

	got, err = Render("{{ im }} createissue", nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/rvs/bin/im createissue", got)
}

func TestRender_Deterministic(t *testing.T) {
	// Rendering the same template against the same row must always produce
	// an identical command string.
	tmpl := `im createissue --field='Name'={{ field . "Name" | shq }}`
	row := map[string]string{"Name": "O-ring 'A' cracks"}

	first, err := Render(tmpl, row)
	require.NoError(t, err)

	for range 5 {
		got, err := Render(tmpl, row)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}
