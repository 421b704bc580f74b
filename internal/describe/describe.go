package describe

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"esdc-backend/internal/report"
)

// The describer turns report rows into the standard Indonesian status
// paragraphs used in yearly reserve bulletins. Only middle-value rows are
// narrated, matching the upstream publication.

const middleValue = "2. Middle Value"

const grrLabel = "Government of Indonesia Recoverable Resources (GRR)"

// Service reads report rows and renders paragraphs.
type Service struct {
	Reports *report.Service
}

// Describe renders paragraphs for the national or field grain. Other kinds
// have no narrative form.
func (s *Service) Describe(ctx context.Context, kind report.TableKind) ([]string, error) {
	switch kind {
	case report.KindNational:
		res, err := s.Reports.Run(ctx, kind, 3, report.Filter{}, nil)
		if err != nil {
			return nil, err
		}
		return National(res), nil
	case report.KindField:
		res, err := s.Reports.Run(ctx, kind, 3, report.Filter{}, nil)
		if err != nil {
			return nil, err
		}
		return Field(res), nil
	default:
		return nil, &report.QueryError{Msg: fmt.Sprintf("no narrative form for %s reports", kind)}
	}
}

// National renders one paragraph per national middle-value row, newest
// report year first.
func National(res *report.Result) []string {
	rows := middleRows(res)
	sort.SliceStable(rows, func(i, j int) bool {
		yi, yj := intOf(rows[i]["report_year"]), intOf(rows[j]["report_year"])
		if yi != yj {
			return yi > yj
		}
		return strOf(rows[i]["project_class"]) < strOf(rows[j]["project_class"])
	})

	var out []string
	for _, row := range rows {
		class := classLabel(strOf(row["project_class"]))
		stage := stageLabel(strOf(row["project_stage"]))
		p := fmt.Sprintf("Berdasarkan laporan status 31.12.%d,", intOf(row["report_year"]))
		if class == grrLabel {
			p = fmt.Sprintf("%s cadangan nasional 2P (proven + probable reserves)"+
				" minyak sebesar %d MMSTB (juta barel)"+
				" dan gas sebesar %d BSCF (milyar kaki kubik)."+
				" Potensi %s untuk %s secara nasional"+
				" minyak sebesar %d MMSTB (juta barel)"+
				" dan gas sebesar %d BSCF (milyar kaki kubik).",
				p,
				roundThousand(floatOf(row["reserves_oc"])),
				round(floatOf(row["reserves_an"])),
				class, stage,
				roundThousand(floatOf(row["resources_oc"])),
				round(floatOf(row["resources_an"])),
			)
		} else {
			p = fmt.Sprintf("%s Potensi %s untuk %s secara nasional"+
				" minyak sebesar %d MMSTB (juta barel)"+
				" dan gas sebesar %d BSCF (milyar kaki kubik).",
				p, class, stage,
				roundThousand(floatOf(row["resources_oc"])),
				round(floatOf(row["resources_an"])),
			)
		}
		out = append(out, p)
	}
	return out
}

// Field renders one paragraph per field middle-value row, newest report year
// first, grouped by working area and field.
func Field(res *report.Result) []string {
	rows := middleRows(res)
	sort.SliceStable(rows, func(i, j int) bool {
		yi, yj := intOf(rows[i]["report_year"]), intOf(rows[j]["report_year"])
		if yi != yj {
			return yi > yj
		}
		if a, b := strOf(rows[i]["wk_name"]), strOf(rows[j]["wk_name"]); a != b {
			return a < b
		}
		if a, b := strOf(rows[i]["field_name"]), strOf(rows[j]["field_name"]); a != b {
			return a < b
		}
		return strOf(rows[i]["project_class"]) < strOf(rows[j]["project_class"])
	})

	var out []string
	for _, row := range rows {
		class := classLabel(strOf(row["project_class"]))
		stage := stageLabel(strOf(row["project_stage"]))

		p := fmt.Sprintf("Berdasarkan laporan status 31.12.%d, lapangan %s"+
			" (field id: %s lat: %v long: %v)"+
			" berada di wilayah kerja %s dengan operator %s.",
			intOf(row["report_year"]), strOf(row["field_name"]),
			strOf(row["field_id"]), row["field_lat"], row["field_long"],
			strOf(row["wk_name"]), strOf(row["operator_name"]),
		)
		if basin := strOf(row["basin86"]); basin != "" {
			p = fmt.Sprintf("%s Lapangan ini berada di cekungan migas %s. Lapangan ini", p, basin)
		} else {
			p = p + " Lapangan ini"
		}

		resOC := floatOf(row["resources_oc"])
		resAN := floatOf(row["resources_an"])
		if class == grrLabel {
			p = fmt.Sprintf("%s memiliki cadangan 2P (proven + probable reserves)"+
				" minyak sebesar %d MSTB dan gas sebesar %d BSCF."+
				" Lapangan ini juga memiliki potensi %s"+
				" minyak sebesar %d MSTB dan gas sebesar %d BSCF.",
				p,
				round(floatOf(row["reserves_oc"])), round(floatOf(row["reserves_an"])),
				class, round(resOC), round(resAN),
			)
		} else if resOC+resAN > 0 {
			p = fmt.Sprintf("%s memiliki potensi %s untuk %s"+
				" minyak sebesar %d MSTB dan gas sebesar %d BSCF."+
				" Total proyek dalam klasifikasi %s untuk %s sebanyak %d proyek.",
				p, class, stage, round(resOC), round(resAN),
				class, stage, intOf(row["project_count"]),
			)
		} else {
			p = fmt.Sprintf("%s tidak memiliki potensi %s untuk %s.", p, class, stage)
		}

		p = fmt.Sprintf("%s Volume Initial Oil in Place (IOIP) sebesar %d MSTB dan"+
			" volume Initial Gas in Place (IGIP) sebesar %d BSCF.",
			p, round(floatOf(row["ioip"])), round(floatOf(row["igip"])),
		)
		if floatOf(row["cprd_sls_oc"])+floatOf(row["cprd_sls_an"]) > 0 {
			p = fmt.Sprintf("%s Produksi kumulatif minyak sebesar %d MSTB,"+
				" sedangkan gas sebesar %d BSCF.",
				p, round(floatOf(row["cprd_sls_oc"])), round(floatOf(row["cprd_sls_an"])),
			)
		}
		out = append(out, p)
	}
	return out
}

func middleRows(res *report.Result) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, row := range res.Rows {
		if strOf(row["uncert_lvl"]) == middleValue {
			rows = append(rows, row)
		}
	}
	return rows
}

// classLabel strips the "N. " numbering, except for class 1 which has the
// bulletin's canonical long name.
func classLabel(class string) string {
	if strings.HasPrefix(class, "1") {
		return grrLabel
	}
	if len(class) > 3 {
		return class[3:]
	}
	return class
}

func stageLabel(stage string) string {
	if len(stage) > 3 {
		return stage[3:]
	}
	return stage
}

func round(v float64) int {
	return int(math.Round(v))
}

func roundThousand(v float64) int {
	return int(math.Round(v / 1000))
}

func strOf(v interface{}) string {
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

func intOf(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func floatOf(v interface{}) float64 {
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
