package validate

import (
	"sort"

	"esdc-backend/internal/models"
)

func sortResults(results []models.ValidationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.ReportYear != b.ReportYear {
			return a.ReportYear < b.ReportYear
		}
		if a.WkName != b.WkName {
			return a.WkName < b.WkName
		}
		if a.FieldName != b.FieldName {
			return a.FieldName < b.FieldName
		}
		if a.ProjectName != b.ProjectName {
			return a.ProjectName < b.ProjectName
		}
		return a.UncertLvl < b.UncertLvl
	})
}
