package classify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Category is the semantic grouping assigned to a benchmark measurement.
type Category int

const (
	Unclassified Category = iota
	ParseThroughput
	ComparisonVariant
	QueryOperation
	MemoryUsage
	DelimiterMethod
)

func (c Category) String() string {
	switch c {
	case ParseThroughput:
		return "parse"
	case ComparisonVariant:
		return "comparison"
	case QueryOperation:
		return "operation"
	case MemoryUsage:
		return "memory"
	case DelimiterMethod:
		return "delimiter"
	default:
		return "unclassified"
	}
}

// Group marker segments produced by the criterion bench suites.
const (
	comparisonGroup = "parser_comparison"
	parseGroup      = "bibtex_parser"
	parsingGroup    = "parsing"
	operationsGroup = "operations"
	memoryGroup     = "memory_usage"
	delimiterGroup  = "delimiter_throughput"
)

// referenceVariants lists the implementations we compare against. Anything
// else under the comparison group is treated as a candidate.
var referenceVariants = map[string]bool{
	"nom-bibtex": true,
	"nom_bibtex": true,
}

// Measurement is a single classified benchmark result.
//
// Entries is set for ParseThroughput, ComparisonVariant and DelimiterMethod;
// Key for QueryOperation and MemoryUsage; Variant and Reference only for
// ComparisonVariant; Method only for DelimiterMethod.
type Measurement struct {
	Category  Category
	Raw       string // benchmark name as loaded
	Entries   int
	Key       string
	Variant   string
	Reference bool
	Method    string
	NsPerOp   float64
}

// Name reconstructs the canonical benchmark name for the measurement.
// Classifying the result again yields the same category and parameters.
func (m Measurement) Name() string {
	switch m.Category {
	case ParseThroughput:
		return fmt.Sprintf("%s/parse/%d", parseGroup, m.Entries)
	case ComparisonVariant:
		return fmt.Sprintf("%s/%s/%d", comparisonGroup, m.Variant, m.Entries)
	case DelimiterMethod:
		return fmt.Sprintf("%s/%s/%d", delimiterGroup, m.Method, m.Entries)
	case QueryOperation, MemoryUsage:
		return m.Key
	default:
		return m.Raw
	}
}

// rule is one classification step. Rules are evaluated in order and the
// first match wins; that ordering is part of the contract and must not be
// rearranged.
type rule struct {
	name  string
	match func(name string, segs []string) (Measurement, bool)
}

var rules = []rule{
	{"comparison-group", matchComparison},
	{"direct-parse", matchParse},
	{"operations-group", matchOperations},
	{"memory-group", matchMemoryGroup},
	{"delimiter-group", matchDelimiter},
	{"bare-integer", matchBareInteger},
	{"operation-keyword", matchOperationKeyword},
	{"memory-keyword", matchMemoryKeyword},
}

// Classify assigns exactly one category to a benchmark name. It never
// fails: names that match no rule come back as Unclassified.
func Classify(name string, nsPerOp float64) Measurement {
	segs := strings.Split(name, "/")
	for _, r := range rules {
		if m, ok := r.match(name, segs); ok {
			m.Raw = name
			m.NsPerOp = nsPerOp
			return m
		}
	}
	return Measurement{Category: Unclassified, Raw: name, NsPerOp: nsPerOp}
}

func matchComparison(name string, segs []string) (Measurement, bool) {
	idx := indexOf(segs, comparisonGroup)
	if idx < 0 || len(segs) < 3 {
		return Measurement{}, false
	}
	entries, ok := parseEntries(segs[len(segs)-1])
	if !ok {
		// Malformed trailing segment: let later rules have a shot.
		return Measurement{}, false
	}
	variant := strings.Join(segs[idx+1:len(segs)-1], "/")
	if variant == "" {
		return Measurement{}, false
	}
	return Measurement{
		Category:  ComparisonVariant,
		Entries:   entries,
		Variant:   variant,
		Reference: referenceVariants[variant],
	}, true
}

func matchParse(name string, segs []string) (Measurement, bool) {
	// bibtex_parser/parse/<N> from the comparison suite, parsing/<N> from
	// the standalone parser suite.
	if len(segs) >= 3 && segs[0] == parseGroup && segs[1] == "parse" {
		if entries, ok := parseEntries(segs[len(segs)-1]); ok {
			return Measurement{Category: ParseThroughput, Entries: entries}, true
		}
	}
	if len(segs) == 2 && segs[0] == parsingGroup {
		if entries, ok := parseEntries(segs[1]); ok {
			return Measurement{Category: ParseThroughput, Entries: entries}, true
		}
	}
	return Measurement{}, false
}

func matchOperations(name string, segs []string) (Measurement, bool) {
	if indexOf(segs, operationsGroup) < 0 {
		return Measurement{}, false
	}
	return Measurement{Category: QueryOperation, Key: name}, true
}

func matchMemoryGroup(name string, segs []string) (Measurement, bool) {
	if indexOf(segs, memoryGroup) < 0 {
		return Measurement{}, false
	}
	return Measurement{Category: MemoryUsage, Key: name}, true
}

func matchDelimiter(name string, segs []string) (Measurement, bool) {
	if len(segs) < 3 || segs[0] != delimiterGroup {
		return Measurement{}, false
	}
	entries, ok := parseEntries(segs[len(segs)-1])
	if !ok {
		return Measurement{}, false
	}
	method := strings.Join(segs[1:len(segs)-1], "/")
	return Measurement{Category: DelimiterMethod, Method: method, Entries: entries}, true
}

func matchBareInteger(name string, segs []string) (Measurement, bool) {
	if len(segs) != 1 {
		return Measurement{}, false
	}
	if entries, ok := parseEntries(name); ok {
		return Measurement{Category: ParseThroughput, Entries: entries}, true
	}
	return Measurement{}, false
}

func matchOperationKeyword(name string, segs []string) (Measurement, bool) {
	if !strings.Contains(name, "find_by") {
		return Measurement{}, false
	}
	return Measurement{Category: QueryOperation, Key: name}, true
}

func matchMemoryKeyword(name string, segs []string) (Measurement, bool) {
	if !strings.Contains(name, "memory") && !strings.Contains(name, "expansion") {
		return Measurement{}, false
	}
	return Measurement{Category: MemoryUsage, Key: name}, true
}

func parseEntries(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func indexOf(segs []string, want string) int {
	for i, s := range segs {
		if s == want {
			return i
		}
	}
	return -1
}

// All classifies every entry of a raw result map. The result is sorted by
// raw name so that identical input always yields identical output.
func All(raw map[string]float64) []Measurement {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Measurement, 0, len(names))
	for _, name := range names {
		out = append(out, Classify(name, raw[name]))
	}
	return out
}
