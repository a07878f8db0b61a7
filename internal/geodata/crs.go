package geodata

import (
	"strings"

	"github.com/geoqa/geoqa/schema"
)

// wellKnownCRS maps common EPSG codes to their reference system metadata.
// Codes outside this table still round-trip; they just carry no name, units
// or kind classification.
var wellKnownCRS = map[string]schema.CRSInfo{
	"EPSG:4326":  {Code: "EPSG:4326", Name: "WGS 84", Units: "degree", Geographic: true},
	"EPSG:4269":  {Code: "EPSG:4269", Name: "NAD83", Units: "degree", Geographic: true},
	"EPSG:3857":  {Code: "EPSG:3857", Name: "WGS 84 / Pseudo-Mercator", Units: "metre", Projected: true},
	"EPSG:2154":  {Code: "EPSG:2154", Name: "RGF93 / Lambert-93", Units: "metre", Projected: true},
	"EPSG:25832": {Code: "EPSG:25832", Name: "ETRS89 / UTM zone 32N", Units: "metre", Projected: true},
	"EPSG:27700": {Code: "EPSG:27700", Name: "OSGB36 / British National Grid", Units: "metre", Projected: true},
	"EPSG:32633": {Code: "EPSG:32633", Name: "WGS 84 / UTM zone 33N", Units: "metre", Projected: true},
}

// crsFromCode builds a CRSInfo for an authority code like "EPSG:4326".
func crsFromCode(code string) *schema.CRSInfo {
	if known, ok := wellKnownCRS[code]; ok {
		info := known
		return &info
	}
	return &schema.CRSInfo{Code: code}
}

// parseCRSName resolves a legacy GeoJSON crs name string to a CRSInfo.
// Accepted forms are OGC URNs ("urn:ogc:def:crs:EPSG::3857"), plain
// authority codes ("EPSG:4326") and the CRS84 alias. Anything else counts
// as no declaration.
func parseCRSName(name string) *schema.CRSInfo {
	name = strings.TrimSpace(name)

	if strings.HasPrefix(strings.ToLower(name), "urn:ogc:def:crs:") {
		parts := strings.Split(name, ":")
		// urn:ogc:def:crs:<authority>:<version>:<code>
		if len(parts) != 7 {
			return nil
		}
		name = parts[4] + ":" + parts[6]
	}

	authority, code, found := strings.Cut(name, ":")
	if !found {
		if strings.EqualFold(name, "CRS84") {
			return crsFromCode("EPSG:4326")
		}
		return nil
	}

	authority = strings.ToUpper(authority)
	if authority == "OGC" && strings.EqualFold(code, "CRS84") {
		// CRS84 is WGS 84 with lon/lat axis order, which is how GeoJSON
		// coordinates read anyway.
		return crsFromCode("EPSG:4326")
	}
	return crsFromCode(authority + ":" + code)
}
