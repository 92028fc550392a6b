// FILE: loglens/src/internal/aggregate/definition.go
package aggregate

import (
	"loglens/src/internal/core"
)

// ChartKind is the default visualisation hint for an aggregation.
type ChartKind string

const (
	ChartPie            ChartKind = "pie"
	ChartHorizontalBar  ChartKind = "horizontalBar"
	ChartRawDataEntries ChartKind = "rawDataEntries"
)

// Aggregation groups, selected by the capabilities of a log format
const (
	GroupDefault   = "default"
	GroupHTTP      = "http"
	GroupReferer   = "referer"
	GroupUserAgent = "useragent"
	GroupGeo       = "geo"
)

// Func computes a distribution directly, for aggregations that are not a plain field grouping.
type Func func(records []core.Record) Result

// Definition describes a named aggregation. Field based definitions are
// driven through ExtractBy; Custom overrides that when set.
type Definition struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	AxisLabel   string    `json:"axis_label"`
	Chart       ChartKind `json:"chart"`
	Field       string    `json:"field,omitempty"`
	Unknown     string    `json:"unknown,omitempty"`
	AppendField string    `json:"append_field,omitempty"`
	Custom      Func      `json:"-"`
}

// Run applies the definition to records.
func (d Definition) Run(records []core.Record) Result {
	if d.Custom != nil {
		return d.Custom(records)
	}
	return ExtractBy(records, d.Field, d.Unknown, d.AppendField)
}

func by(name, title string, chart ChartKind, field, unknown string) Definition {
	return Definition{
		Name:      name,
		Title:     title,
		AxisLabel: "Requests",
		Chart:     chart,
		Field:     field,
		Unknown:   unknown,
	}
}

func byPair(name, title, field, appendField string) Definition {
	d := by(name, title, ChartPie, field, labelUnknown)
	d.AppendField = appendField
	return d
}

var groupOrder = []string{GroupDefault, GroupHTTP, GroupReferer, GroupUserAgent, GroupGeo}

var groups = map[string][]Definition{
	GroupDefault: {
		{
			Name:      "rawLogLine",
			Title:     "Raw Logs",
			AxisLabel: "Log Line",
			Chart:     ChartRawDataEntries,
			Custom:    RawLines,
		},
	},
	GroupHTTP: {
		by("remoteHost", "Remote Host (Unique Visitors)", ChartRawDataEntries, core.FieldRemoteHost, labelUnknown),
		by("resources", "Requested Resources", ChartHorizontalBar, core.FieldResource, labelUnknown),
		{
			Name:      "methods",
			Title:     "Request Methods",
			AxisLabel: "Methods",
			Chart:     ChartHorizontalBar,
			Field:     core.FieldMethod,
			Unknown:   labelUnknown,
		},
		by("responseStatusCode", "Response Status Code", ChartHorizontalBar, core.FieldStatusCode, labelUnknown),
	},
	GroupReferer: {
		{Name: "refererByDomain", Title: "Referer By Domain", AxisLabel: "Requests", Chart: ChartHorizontalBar, Custom: RefererByDomain},
		{Name: "searchTerms", Title: "Search Terms", AxisLabel: "Requests", Chart: ChartHorizontalBar, Custom: SearchTerms},
		{Name: "searchTermsByService", Title: "Search Terms by Service", AxisLabel: "Requests", Chart: ChartHorizontalBar, Custom: SearchTermsByService},
		by("allReferers", "All Referers", ChartHorizontalBar, core.FieldReferer, labelDirectRequest),
	},
	GroupUserAgent: {
		by("browser", "Browser", ChartPie, core.FieldUABrowserName, labelUnknown),
		byPair("browserVersion", "Browser Version", core.FieldUABrowserName, core.FieldUABrowserVersion),
		by("cpuArchitecture", "CPU Architecture", ChartPie, core.FieldUACPUArchitecture, labelUnknown),
		by("deviceType", "Device Type", ChartPie, core.FieldUADeviceType, labelUnknown),
		by("deviceVendor", "Device Vendor", ChartPie, core.FieldUADeviceVendor, labelUnknown),
		byPair("deviceModel", "Device Model", core.FieldUADeviceVendor, core.FieldUADeviceModel),
		by("engine", "Engine", ChartPie, core.FieldUAEngineName, labelUnknown),
		byPair("engineVersion", "Engine Version", core.FieldUAEngineName, core.FieldUAEngineVersion),
		by("os", "OS", ChartPie, core.FieldUAOSName, labelUnknown),
		byPair("osVersion", "OS Version", core.FieldUAOSName, core.FieldUAOSVersion),
		by("allUserAgents", "All User Agents", ChartHorizontalBar, core.FieldUserAgent, labelUnknown),
	},
	GroupGeo: {
		by("timeZone", "Timezone", ChartPie, core.FieldTimeZone, labelUnknown),
		by("continentCode", "Continent Code", ChartPie, core.FieldContinentCode, labelUnknown),
		by("continent", "Continent", ChartPie, core.FieldContinent, labelUnknown),
		by("countryCode", "Country Code", ChartPie, core.FieldCountryCode, labelUnknown),
		by("country", "Country", ChartPie, core.FieldCountry, labelUnknown),
		by("provinceCode", "Province Code", ChartPie, core.FieldProvinceCode, labelUnknown),
		by("province", "Province", ChartPie, core.FieldProvince, labelUnknown),
		by("postalCode", "Postal Code", ChartPie, core.FieldPostalCode, labelUnknown),
		by("city", "City", ChartPie, core.FieldCity, labelUnknown),
		byPair("countryProvince", "Country and Province", core.FieldCountry, core.FieldProvince),
		byPair("countryCity", "Country and City", core.FieldCountry, core.FieldCity),
		byPair("countryPostalCode", "Country and Postal Code", core.FieldCountry, core.FieldPostalCode),
		byPair("provinceCity", "Province and City", core.FieldProvince, core.FieldCity),
	},
}

// Groups returns the known group names in display order.
func Groups() []string {
	out := make([]string, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// ForGroups returns the definitions of the named groups in display order.
// Unknown group names are ignored.
func ForGroups(names ...string) []Definition {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []Definition
	for _, g := range groupOrder {
		if wanted[g] {
			out = append(out, groups[g]...)
		}
	}
	return out
}

// Lookup finds a definition by name within the named groups.
func Lookup(name string, groupNames ...string) (Definition, bool) {
	for _, d := range ForGroups(groupNames...) {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
