package migrate

import "fmt"

// Stage labels derived from the leading character of project_level.
const (
	StageExploitation = "1. Exploitation"
	StageExploration  = "2. Exploration"
	StageAbandoned    = "3. Abandoned"
)

// ProjectResources is the declared migration sequence for the
// project_resources table. Order is fixed: columns are added before the
// transformations that populate them.
func ProjectResources() []Migration {
	return []Migration{
		AddIdempotentColumn("project_resources", "project_stage", "TEXT"),
		AddIdempotentColumn("project_resources", "is_discovered", "INTEGER"),
		AddIdempotentColumn("project_resources", "record_uuid", "TEXT"),
		DeriveFromPrefix("project_resources", "project_stage", "project_level", []PrefixValue{
			{Prefix: "E", Value: StageExploitation},
			{Prefix: "X", Value: StageExploration},
			{Prefix: "A", Value: StageAbandoned},
		}),
		DeriveFromPrefix("project_resources", "is_discovered", "project_class", []PrefixValue{
			{Prefix: "1", Value: 1},
			{Prefix: "2", Value: 1},
			{Prefix: "3", Value: 0},
		}),
		GenerateSurrogateID("project_resources", "record_uuid"),
	}
}

// ProjectTimeseries is the declared migration sequence for the
// project_timeseries table.
func ProjectTimeseries() []Migration {
	return []Migration{
		AddIdempotentColumn("project_timeseries", "record_uuid", "TEXT"),
		GenerateSurrogateID("project_timeseries", "record_uuid"),
	}
}

// ForTable returns the migration sequence for a loadable table.
func ForTable(table string) ([]Migration, error) {
	switch table {
	case "project_resources":
		return ProjectResources(), nil
	case "project_timeseries":
		return ProjectTimeseries(), nil
	default:
		return nil, fmt.Errorf("no migrations declared for table %s", table)
	}
}
