package registry

// Builtin returns a registry populated with the stock FM&C operations.
// The sheet schemas and `im` command shapes mirror the modification
// template workbook this tool is built around.
func Builtin() *Registry {
	r := New()

	defs := []Definition{
		{
			Sheet: "Create Fail Modes",
			Name:  "Create Fail Mode",
			Required: []string{
				"Functional System ID",
				"Functional System Name",
				"Fail Mode ID",
				"Fail Mode Name",
				"Fail Mode Description",
			},
			Optional: []string{"Comments", "Priority", "Severity"},
			Template: `{{ im }} createissue --type='Fail Mode'` +
				` --field='Functional System ID'={{ field . "Functional System ID" | shq }}` +
				` --field='Name'={{ field . "Fail Mode Name" | shq }}` +
				` --field='Description'={{ field . "Fail Mode Description" | shq }}`,
		},
		{
			Sheet: "Create Causes",
			Name:  "Create Cause",
			Required: []string{
				"Fail Mode ID",
				"Cause ID",
				"Cause Name",
				"Cause Description",
			},
			Optional: []string{"Comments", "Probability", "Impact"},
			Template: `{{ im }} createissue --type='Cause'` +
				` --field='Fail Mode ID'={{ field . "Fail Mode ID" | shq }}` +
				` --field='Name'={{ field . "Cause Name" | shq }}` +
				` --field='Description'={{ field . "Cause Description" | shq }}`,
		},
		{
			Sheet: "Create Controls",
			Name:  "Create Control",
			Required: []string{
				"Cause ID",
				"Control ID",
				"Control Name",
				"Control Description",
				"Control Type",
			},
			Optional: []string{"Comments", "Effectiveness", "Implementation Status"},
			Template: `{{ im }} createissue --type='Control'` +
				` --field='Control Type'={{ field . "Control Type" | shq }}` +
				` --field='Name'={{ field . "Control Name" | shq }}` +
				` --field='Description'={{ field . "Control Description" | shq }}`,
		},
		{
			Sheet: "Create Control Causes",
			Name:  "Create Control Cause",
			Required: []string{
				"Control ID",
				"Cause ID",
			},
			Optional: []string{"Comments", "Relationship Type"},
			Template: `{{ im }} createrelationship --type='Control-Cause'` +
				` --field='Control ID'={{ field . "Control ID" | shq }}` +
				` --field='Cause ID'={{ field . "Cause ID" | shq }}`,
		},
	}

	for _, def := range defs {
		// Builtin definitions have unique sheets; a failure here is a bug.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}

	return r
}
