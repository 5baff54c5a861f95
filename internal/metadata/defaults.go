package metadata

// DefaultSchema returns the recognized problem.yaml keys and their default
// values, mirroring the problemtools configuration. A nil value marks a
// mandatory key that has no default.
func DefaultSchema() map[string]any {
	return map[string]any{
		"name": nil, // mandatory

		"uuid":         "",
		"type":         "pass-fail",
		"author":       "",
		"source":       "",
		"source_url":   "",
		"license":      "unknown",
		"rights_owner": "",
		"keywords":     "",
		"limits": map[string]any{
			"time_multiplier":    5,
			"time_safety_margin": 2,
			"memory":             2048,
			"output":             8,
			"compilation_time":   60,
			"compilation_memory": 2048,
			"validation_time":    60,
			"validation_memory":  2048,
			"validation_output":  8,
		},
		"validation":      "default",
		"validator_flags": "",
		"grading": map[string]any{
			"objective":             "max",
			"show_test_data_groups": false,
		},
		"languages": "all",
	}
}

// unusualSettings are keys whose presence in problem.yaml deserves a closer
// look even when the value is legal.
var unusualSettings = map[string]bool{
	"validation":               true,
	"type":                     true,
	"limits/memory":            true,
	"limits/output":            true,
	"limits/compilation_time":  true,
	"limits/validation_time":   true,
	"limits/validation_memory": true,
	"limits/validation_output": true,
}
