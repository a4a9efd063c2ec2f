package options

// Link-time definitions. Set them with, for example:
//
//	go build -ldflags "-X github.com/eugenenazirov/perfconfig/internal/options.buildNumIters=5"
//
// An empty string means undefined; -X cannot express a defined empty value.
var (
	buildAPIKey                 string
	buildStitchHost             string
	buildNumIters               string
	buildHostname               string
	buildDocSizes               string
	buildNumDocs                string
	buildDataGranularity        string
	buildNumOutliers            string
	buildOutputStdout           string
	buildOutputStitch           string
	buildOutputRaw              string
	buildChangeEventPercentages string
	buildConflictPercentages    string
)

func buildDefinitions() map[Name]string {
	return map[Name]string{
		APIKey:                 buildAPIKey,
		StitchHost:             buildStitchHost,
		NumIters:               buildNumIters,
		Hostname:               buildHostname,
		DocSizes:               buildDocSizes,
		NumDocs:                buildNumDocs,
		DataGranularity:        buildDataGranularity,
		NumOutliers:            buildNumOutliers,
		OutputStdout:           buildOutputStdout,
		OutputStitch:           buildOutputStitch,
		OutputRaw:              buildOutputRaw,
		ChangeEventPercentages: buildChangeEventPercentages,
		ConflictPercentages:    buildConflictPercentages,
	}
}

// BuildSource exposes the non-empty link-time definitions.
func BuildSource() Source {
	defs := make(MapSource)
	for name, value := range buildDefinitions() {
		if value != "" {
			defs[name] = value
		}
	}
	return defs
}
