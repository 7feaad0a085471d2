package config

import "strings"

// EnvStatus is the state of one expected variable / État d'une variable attendue
type EnvStatus string

const (
	EnvSet     EnvStatus = "set"
	EnvEmpty   EnvStatus = "empty"
	EnvMissing EnvStatus = "missing"
	EnvPadded  EnvStatus = "whitespace"
)

// EnvVar describes an expected environment variable
type EnvVar struct {
	Name        string
	Description string
	Sensitive   bool
	Required    bool
	EmptyOK     bool
}

// EnvCheck is the result for one variable
type EnvCheck struct {
	Var    EnvVar
	Status EnvStatus
	Value  string // masked when sensitive
}

// OK reports whether the check should not fail the run.
func (c EnvCheck) OK() bool {
	return !(c.Var.Required && c.Status == EnvMissing)
}

// ExpectedEnv lists the variables a deployment is expected to define
var ExpectedEnv = []EnvVar{
	{Name: "DB_TYPE", Description: "database engine (sqlite, mysql, postgres)"},
	{Name: "DB_HOST", Description: "database host", Required: true},
	{Name: "DB_USER", Description: "database user", Required: true},
	{Name: "DB_PASSWORD", Description: "database password", Sensitive: true, Required: true, EmptyOK: true},
	{Name: "DB_NAME", Description: "database name", Required: true},
	{Name: "DB_PORT", Description: "database port", Required: true},
	{Name: "PORT", Description: "HTTP port", Required: true},
	{Name: "NODE_ENV", Description: "environment", Required: true},
	{Name: "JWT_SECRET", Description: "JWT signing secret", Sensitive: true, Required: true},
	{Name: "JWT_EXPIRES_IN", Description: "token lifetime", Required: true},
	{Name: "ALLOWED_ORIGINS", Description: "CORS origins", Required: true},
}

// CheckEnv inspects every expected variable with lookup (os.LookupEnv in production).
// Vérifie chaque variable attendue.
func CheckEnv(lookup func(string) (string, bool)) []EnvCheck {
	out := make([]EnvCheck, 0, len(ExpectedEnv))
	for _, v := range ExpectedEnv {
		value, ok := lookup(v.Name)
		check := EnvCheck{Var: v}
		switch {
		case !ok:
			check.Status = EnvMissing
		case value == "":
			check.Status = EnvEmpty
		case strings.TrimSpace(value) != value:
			check.Status = EnvPadded
		default:
			check.Status = EnvSet
		}
		if ok && value != "" {
			check.Value = value
			if v.Sensitive {
				check.Value = "[hidden]"
			}
		}
		out = append(out, check)
	}
	return out
}
