package validate

import (
	"fmt"
	"strings"
	"time"
)

// Severity mirrors the upstream rule catalogue.
const (
	SeverityStrict  = "strict"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule is one row-level check. Check returns nil when the row passes, or a
// short description of the violation.
type Rule struct {
	ID       string
	Column   string
	Severity string
	Check    func(row map[string]interface{}) *string
}

var uncertDomain = map[string]bool{
	"1. Low Value":    true,
	"2. Middle Value": true,
	"3. High Value":   true,
}

// DefaultRules is the fixed rule set run after every load. Rule ids continue
// the upstream RE-numbered catalogue.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			ID: "RE0001", Column: "wk_id", Severity: SeverityStrict,
			Check: nonEmpty("wk_id"),
		},
		{
			ID: "RE0002", Column: "field_id", Severity: SeverityStrict,
			Check: nonEmpty("field_id"),
		},
		{
			ID: "RE0003", Column: "project_id", Severity: SeverityStrict,
			Check: nonEmpty("project_id"),
		},
		{
			ID: "RE0004", Column: "report_year", Severity: SeverityStrict,
			Check: func(row map[string]interface{}) *string {
				year := intValue(row["report_year"])
				if year < 2019 || year > time.Now().Year()+1 {
					return violation(fmt.Sprintf("report_year %d outside plausible range", year))
				}
				return nil
			},
		},
		{
			ID: "RE0005", Column: "project_class", Severity: SeverityWarning,
			Check: func(row map[string]interface{}) *string {
				c := strValue(row["project_class"])
				if c == "" || !strings.ContainsAny(c[:1], "123") {
					return violation(fmt.Sprintf("project_class %q outside known code set", c))
				}
				return nil
			},
		},
		{
			ID: "RE0006", Column: "uncert_lvl", Severity: SeverityWarning,
			Check: func(row map[string]interface{}) *string {
				u := strValue(row["uncert_lvl"])
				if !uncertDomain[u] {
					return violation(fmt.Sprintf("uncert_lvl %q outside known code set", u))
				}
				return nil
			},
		},
		{
			ID: "RE0015", Column: "project_level", Severity: SeverityWarning,
			Check: func(row map[string]interface{}) *string {
				l := strValue(row["project_level"])
				if l == "" || !strings.ContainsAny(l[:1], "EXA") {
					return violation(fmt.Sprintf("project_level %q outside known code set", l))
				}
				return nil
			},
		},
	}

	// Recoverables and reserves must not go negative; ids follow the
	// upstream catalogue (RE0007..RE0012).
	nonNegative := []struct {
		id  string
		col string
	}{
		{"RE0007", "rec_oil"},
		{"RE0008", "rec_con"},
		{"RE0009", "rec_ga"},
		{"RE0010", "rec_gn"},
		{"RE0011", "res_oil"},
		{"RE0012", "res_con"},
		{"RE0013", "res_ga"},
		{"RE0014", "res_gn"},
	}
	for _, nn := range nonNegative {
		col := nn.col
		rules = append(rules, Rule{
			ID: nn.id, Column: col, Severity: SeverityStrict,
			Check: func(row map[string]interface{}) *string {
				if floatValue(row[col]) < 0 {
					return violation(fmt.Sprintf("%s is negative", col))
				}
				return nil
			},
		})
	}
	return rules
}

func nonEmpty(col string) func(map[string]interface{}) *string {
	return func(row map[string]interface{}) *string {
		if strValue(row[col]) == "" {
			return violation(col + " is empty")
		}
		return nil
	}
}

func violation(msg string) *string {
	return &msg
}

func strValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func floatValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
