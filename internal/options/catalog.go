package options

import "strings"

// Name identifies one recognized harness option.
type Name string

// The recognized option names, in catalog order.
const (
	APIKey                 Name = "API_KEY"
	StitchHost             Name = "STITCH_HOST"
	NumIters               Name = "NUM_ITERS"
	Hostname               Name = "HOSTNAME"
	DocSizes               Name = "DOC_SIZES"
	NumDocs                Name = "NUM_DOCS"
	DataGranularity        Name = "DATA_GRANULARITY"
	NumOutliers            Name = "NUM_OUTLIERS"
	OutputStdout           Name = "OUTPUT_STDOUT"
	OutputStitch           Name = "OUTPUT_STITCH"
	OutputRaw              Name = "OUTPUT_RAW"
	ChangeEventPercentages Name = "CHANGE_EVENT_PERCENTAGES"
	ConflictPercentages    Name = "CONFLICT_PERCENTAGES"
)

// DefaultEnvPrefix is prepended to every option name when reading the environment.
const DefaultEnvPrefix = "PERF_"

// Kind describes the shape a value is expected to have. It only drives
// Check and display; resolution never looks at it.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindBool
	KindList
	KindIntList
	KindFloatList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindIntList:
		return "integer list"
	case KindFloatList:
		return "number list"
	default:
		return "text"
	}
}

// Spec is the catalog metadata for one option.
type Spec struct {
	Name        Name
	Kind        Kind
	Secret      bool
	// Wrapped options are exposed in parenthesized form: text not already
	// enclosed in one outer pair of parentheses gains one, so "x" resolves to
	// "(x)" rather than its literal text.
	Wrapped     bool
	Description string
}

var catalog = []Spec{
	{Name: APIKey, Kind: KindText, Secret: true, Description: "API key used to authenticate the harness"},
	{Name: StitchHost, Kind: KindText, Description: "base URL of the backend under test"},
	{Name: NumIters, Kind: KindInt, Description: "iterations per measured run"},
	{Name: Hostname, Kind: KindText, Description: "host label attached to reported results"},
	{Name: DocSizes, Kind: KindIntList, Description: "document sizes in bytes"},
	{Name: NumDocs, Kind: KindIntList, Description: "document counts per run"},
	{Name: DataGranularity, Kind: KindInt, Description: "sampling granularity of collected data"},
	{Name: NumOutliers, Kind: KindInt, Description: "outliers discarded from each end of a sample"},
	{Name: OutputStdout, Kind: KindBool, Description: "print results to stdout"},
	{Name: OutputStitch, Kind: KindBool, Description: "upload results to the backend"},
	{Name: OutputRaw, Kind: KindList, Wrapped: true, Description: "raw output selectors"},
	{Name: ChangeEventPercentages, Kind: KindFloatList, Wrapped: true, Description: "fractions of documents receiving change events"},
	{Name: ConflictPercentages, Kind: KindFloatList, Wrapped: true, Description: "fractions of change events that conflict"},
}

var catalogIndex = func() map[Name]int {
	idx := make(map[Name]int, len(catalog))
	for i, spec := range catalog {
		idx[spec.Name] = i
	}
	return idx
}()

// Names returns the recognized option names in catalog order.
func Names() []Name {
	out := make([]Name, len(catalog))
	for i, spec := range catalog {
		out[i] = spec.Name
	}
	return out
}

// Specs returns a copy of the catalog.
func Specs() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// SpecFor returns the catalog entry for name.
func SpecFor(name Name) (Spec, bool) {
	i, ok := catalogIndex[name]
	if !ok {
		return Spec{}, false
	}
	return catalog[i], true
}

// ParseName maps user input such as "num_iters" or "PERF_NUM_ITERS" onto a
// catalog name. The prefix is stripped only when the remainder is a known name.
func ParseName(raw, prefix string) (Name, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := catalogIndex[Name(key)]; ok {
		return Name(key), nil
	}
	if p := strings.ToUpper(prefix); p != "" && strings.HasPrefix(key, p) {
		if _, ok := catalogIndex[Name(key[len(p):])]; ok {
			return Name(key[len(p):]), nil
		}
	}
	return "", &UnknownNameError{Name: raw}
}
