// FILE: loglens/src/internal/core/const.go
package core

// Sentinel written by web servers for an empty field
const MissingValue = "-"

// Field names shared by the access log formats, the aggregations and the geo enrichment.
const (
	FieldLine = "line"

	FieldRemoteHost = "remoteHost"
	FieldIdentUser  = "identUser"
	FieldUser       = "user"
	FieldTime       = "time"
	FieldRequest    = "request"
	FieldMethod     = "method"
	FieldResource   = "resource"
	FieldProtocol   = "protocol"
	FieldStatusCode = "statusCode"
	FieldBytes      = "bytes"
	FieldReferer    = "referer"
	FieldUserAgent  = "userAgent"

	FieldUABrowserName     = "uaBrowserName"
	FieldUABrowserVersion  = "uaBrowserVersion"
	FieldUACPUArchitecture = "uaCpuArchitecture"
	FieldUADeviceModel     = "uaDeviceModel"
	FieldUADeviceType      = "uaDeviceType"
	FieldUADeviceVendor    = "uaDeviceVendor"
	FieldUAEngineName      = "uaEngineName"
	FieldUAEngineVersion   = "uaEngineVersion"
	FieldUAOSName          = "uaOsName"
	FieldUAOSVersion       = "uaOsVersion"

	FieldTimeZone      = "timeZone"
	FieldContinentCode = "continentCode"
	FieldContinent     = "continent"
	FieldCountryCode   = "countryCode"
	FieldCountry       = "country"
	FieldProvinceCode  = "provinceCode"
	FieldProvince      = "province"
	FieldPostalCode    = "postalCode"
	FieldCity          = "city"
)

// IsMissing reports whether a field value counts as absent for grouping purposes.
func IsMissing(value string, ok bool) bool {
	return !ok || value == "" || value == MissingValue
}
