// Package country resolves country codes to IANA timezone identifiers.
//
// Codes are ISO 3166-1 alpha-3, optionally suffixed with a region letter for
// countries spanning several timezones (e.g. "USA-E" for US Eastern). A bare
// code for a multi-zone country resolves to its primary zone.
package country

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Entry is a resolved country: its input code, display name, and the IANA
// timezone identifier it maps to. Immutable once resolved.
type Entry struct {
	Code string
	Name string
	Zone string
}

// ErrUnknownCode is returned when a code matches neither the multi-zone
// table nor the alpha-3 table.
var ErrUnknownCode = errors.New("unknown country code")

// multiZone disambiguates countries that span several timezones. The suffix
// picks the region: E/C/M/P for east/central/mountain/pacific, W for west.
var multiZone = map[string]Entry{
	"USA-E": {Code: "USA-E", Name: "United States (Eastern)", Zone: "America/New_York"},
	"USA-C": {Code: "USA-C", Name: "United States (Central)", Zone: "America/Chicago"},
	"USA-M": {Code: "USA-M", Name: "United States (Mountain)", Zone: "America/Denver"},
	"USA-P": {Code: "USA-P", Name: "United States (Pacific)", Zone: "America/Los_Angeles"},
	"RUS-W": {Code: "RUS-W", Name: "Russia (Western)", Zone: "Europe/Moscow"},
	"RUS-C": {Code: "RUS-C", Name: "Russia (Central)", Zone: "Asia/Yekaterinburg"},
	"RUS-E": {Code: "RUS-E", Name: "Russia (Eastern)", Zone: "Asia/Vladivostok"},
	"CAN-E": {Code: "CAN-E", Name: "Canada (Eastern)", Zone: "America/Toronto"},
	"CAN-C": {Code: "CAN-C", Name: "Canada (Central)", Zone: "America/Winnipeg"},
	"CAN-M": {Code: "CAN-M", Name: "Canada (Mountain)", Zone: "America/Edmonton"},
	"CAN-P": {Code: "CAN-P", Name: "Canada (Pacific)", Zone: "America/Vancouver"},
	"BRA-E": {Code: "BRA-E", Name: "Brazil (Eastern)", Zone: "America/Sao_Paulo"},
	"BRA-C": {Code: "BRA-C", Name: "Brazil (Central)", Zone: "America/Manaus"},
	"CHN-E": {Code: "CHN-E", Name: "China (Eastern)", Zone: "Asia/Shanghai"},
	"CHN-W": {Code: "CHN-W", Name: "China (Western)", Zone: "Asia/Urumqi"},
	"AUS-E": {Code: "AUS-E", Name: "Australia (Eastern)", Zone: "Australia/Sydney"},
	"AUS-C": {Code: "AUS-C", Name: "Australia (Central)", Zone: "Australia/Adelaide"},
	"AUS-W": {Code: "AUS-W", Name: "Australia (Western)", Zone: "Australia/Perth"},
}

// countries maps ISO alpha-3 codes to a display name and the country's
// primary IANA zone. Multi-zone countries appear with their primary zone so
// bare codes still resolve.
var countries = map[string]Entry{
	// Americas
	"USA": {Name: "United States", Zone: "America/New_York"},
	"CAN": {Name: "Canada", Zone: "America/Toronto"},
	"MEX": {Name: "Mexico", Zone: "America/Mexico_City"},
	"GTM": {Name: "Guatemala", Zone: "America/Guatemala"},
	"BLZ": {Name: "Belize", Zone: "America/Belize"},
	"SLV": {Name: "El Salvador", Zone: "America/El_Salvador"},
	"HND": {Name: "Honduras", Zone: "America/Tegucigalpa"},
	"NIC": {Name: "Nicaragua", Zone: "America/Managua"},
	"CRI": {Name: "Costa Rica", Zone: "America/Costa_Rica"},
	"PAN": {Name: "Panama", Zone: "America/Panama"},
	"CUB": {Name: "Cuba", Zone: "America/Havana"},
	"JAM": {Name: "Jamaica", Zone: "America/Jamaica"},
	"HTI": {Name: "Haiti", Zone: "America/Port-au-Prince"},
	"DOM": {Name: "Dominican Republic", Zone: "America/Santo_Domingo"},
	"PRI": {Name: "Puerto Rico", Zone: "America/Puerto_Rico"},
	"TTO": {Name: "Trinidad and Tobago", Zone: "America/Port_of_Spain"},
	"COL": {Name: "Colombia", Zone: "America/Bogota"},
	"VEN": {Name: "Venezuela", Zone: "America/Caracas"},
	"GUY": {Name: "Guyana", Zone: "America/Guyana"},
	"SUR": {Name: "Suriname", Zone: "America/Paramaribo"},
	"ECU": {Name: "Ecuador", Zone: "America/Guayaquil"},
	"PER": {Name: "Peru", Zone: "America/Lima"},
	"BRA": {Name: "Brazil", Zone: "America/Sao_Paulo"},
	"BOL": {Name: "Bolivia", Zone: "America/La_Paz"},
	"PRY": {Name: "Paraguay", Zone: "America/Asuncion"},
	"CHL": {Name: "Chile", Zone: "America/Santiago"},
	"ARG": {Name: "Argentina", Zone: "America/Argentina/Buenos_Aires"},
	"URY": {Name: "Uruguay", Zone: "America/Montevideo"},

	// Europe
	"ISL": {Name: "Iceland", Zone: "Atlantic/Reykjavik"},
	"IRL": {Name: "Ireland", Zone: "Europe/Dublin"},
	"GBR": {Name: "United Kingdom", Zone: "Europe/London"},
	"PRT": {Name: "Portugal", Zone: "Europe/Lisbon"},
	"ESP": {Name: "Spain", Zone: "Europe/Madrid"},
	"FRA": {Name: "France", Zone: "Europe/Paris"},
	"BEL": {Name: "Belgium", Zone: "Europe/Brussels"},
	"NLD": {Name: "Netherlands", Zone: "Europe/Amsterdam"},
	"LUX": {Name: "Luxembourg", Zone: "Europe/Luxembourg"},
	"DEU": {Name: "Germany", Zone: "Europe/Berlin"},
	"CHE": {Name: "Switzerland", Zone: "Europe/Zurich"},
	"AUT": {Name: "Austria", Zone: "Europe/Vienna"},
	"ITA": {Name: "Italy", Zone: "Europe/Rome"},
	"MLT": {Name: "Malta", Zone: "Europe/Malta"},
	"DNK": {Name: "Denmark", Zone: "Europe/Copenhagen"},
	"NOR": {Name: "Norway", Zone: "Europe/Oslo"},
	"SWE": {Name: "Sweden", Zone: "Europe/Stockholm"},
	"FIN": {Name: "Finland", Zone: "Europe/Helsinki"},
	"EST": {Name: "Estonia", Zone: "Europe/Tallinn"},
	"LVA": {Name: "Latvia", Zone: "Europe/Riga"},
	"LTU": {Name: "Lithuania", Zone: "Europe/Vilnius"},
	"POL": {Name: "Poland", Zone: "Europe/Warsaw"},
	"CZE": {Name: "Czechia", Zone: "Europe/Prague"},
	"SVK": {Name: "Slovakia", Zone: "Europe/Bratislava"},
	"HUN": {Name: "Hungary", Zone: "Europe/Budapest"},
	"SVN": {Name: "Slovenia", Zone: "Europe/Ljubljana"},
	"HRV": {Name: "Croatia", Zone: "Europe/Zagreb"},
	"BIH": {Name: "Bosnia and Herzegovina", Zone: "Europe/Sarajevo"},
	"SRB": {Name: "Serbia", Zone: "Europe/Belgrade"},
	"MNE": {Name: "Montenegro", Zone: "Europe/Podgorica"},
	"MKD": {Name: "North Macedonia", Zone: "Europe/Skopje"},
	"ALB": {Name: "Albania", Zone: "Europe/Tirane"},
	"GRC": {Name: "Greece", Zone: "Europe/Athens"},
	"BGR": {Name: "Bulgaria", Zone: "Europe/Sofia"},
	"ROU": {Name: "Romania", Zone: "Europe/Bucharest"},
	"MDA": {Name: "Moldova", Zone: "Europe/Chisinau"},
	"UKR": {Name: "Ukraine", Zone: "Europe/Kyiv"},
	"BLR": {Name: "Belarus", Zone: "Europe/Minsk"},
	"RUS": {Name: "Russia", Zone: "Europe/Moscow"},
	"CYP": {Name: "Cyprus", Zone: "Asia/Nicosia"},
	"TUR": {Name: "Turkey", Zone: "Europe/Istanbul"},

	// Africa
	"MAR": {Name: "Morocco", Zone: "Africa/Casablanca"},
	"DZA": {Name: "Algeria", Zone: "Africa/Algiers"},
	"TUN": {Name: "Tunisia", Zone: "Africa/Tunis"},
	"LBY": {Name: "Libya", Zone: "Africa/Tripoli"},
	"EGY": {Name: "Egypt", Zone: "Africa/Cairo"},
	"SEN": {Name: "Senegal", Zone: "Africa/Dakar"},
	"CIV": {Name: "Côte d'Ivoire", Zone: "Africa/Abidjan"},
	"GHA": {Name: "Ghana", Zone: "Africa/Accra"},
	"NGA": {Name: "Nigeria", Zone: "Africa/Lagos"},
	"CMR": {Name: "Cameroon", Zone: "Africa/Douala"},
	"ETH": {Name: "Ethiopia", Zone: "Africa/Addis_Ababa"},
	"KEN": {Name: "Kenya", Zone: "Africa/Nairobi"},
	"TZA": {Name: "Tanzania", Zone: "Africa/Dar_es_Salaam"},
	"UGA": {Name: "Uganda", Zone: "Africa/Kampala"},
	"RWA": {Name: "Rwanda", Zone: "Africa/Kigali"},
	"COD": {Name: "DR Congo", Zone: "Africa/Kinshasa"},
	"AGO": {Name: "Angola", Zone: "Africa/Luanda"},
	"ZMB": {Name: "Zambia", Zone: "Africa/Lusaka"},
	"ZWE": {Name: "Zimbabwe", Zone: "Africa/Harare"},
	"MOZ": {Name: "Mozambique", Zone: "Africa/Maputo"},
	"BWA": {Name: "Botswana", Zone: "Africa/Gaborone"},
	"NAM": {Name: "Namibia", Zone: "Africa/Windhoek"},
	"ZAF": {Name: "South Africa", Zone: "Africa/Johannesburg"},
	"MUS": {Name: "Mauritius", Zone: "Indian/Mauritius"},
	"MDG": {Name: "Madagascar", Zone: "Indian/Antananarivo"},

	// Middle East
	"ISR": {Name: "Israel", Zone: "Asia/Jerusalem"},
	"JOR": {Name: "Jordan", Zone: "Asia/Amman"},
	"LBN": {Name: "Lebanon", Zone: "Asia/Beirut"},
	"SYR": {Name: "Syria", Zone: "Asia/Damascus"},
	"IRQ": {Name: "Iraq", Zone: "Asia/Baghdad"},
	"SAU": {Name: "Saudi Arabia", Zone: "Asia/Riyadh"},
	"KWT": {Name: "Kuwait", Zone: "Asia/Kuwait"},
	"BHR": {Name: "Bahrain", Zone: "Asia/Bahrain"},
	"QAT": {Name: "Qatar", Zone: "Asia/Qatar"},
	"ARE": {Name: "United Arab Emirates", Zone: "Asia/Dubai"},
	"OMN": {Name: "Oman", Zone: "Asia/Muscat"},
	"YEM": {Name: "Yemen", Zone: "Asia/Aden"},
	"IRN": {Name: "Iran", Zone: "Asia/Tehran"},

	// Asia
	"GEO": {Name: "Georgia", Zone: "Asia/Tbilisi"},
	"ARM": {Name: "Armenia", Zone: "Asia/Yerevan"},
	"AZE": {Name: "Azerbaijan", Zone: "Asia/Baku"},
	"KAZ": {Name: "Kazakhstan", Zone: "Asia/Almaty"},
	"UZB": {Name: "Uzbekistan", Zone: "Asia/Tashkent"},
	"TKM": {Name: "Turkmenistan", Zone: "Asia/Ashgabat"},
	"KGZ": {Name: "Kyrgyzstan", Zone: "Asia/Bishkek"},
	"TJK": {Name: "Tajikistan", Zone: "Asia/Dushanbe"},
	"AFG": {Name: "Afghanistan", Zone: "Asia/Kabul"},
	"PAK": {Name: "Pakistan", Zone: "Asia/Karachi"},
	"IND": {Name: "India", Zone: "Asia/Kolkata"},
	"LKA": {Name: "Sri Lanka", Zone: "Asia/Colombo"},
	"NPL": {Name: "Nepal", Zone: "Asia/Kathmandu"},
	"BTN": {Name: "Bhutan", Zone: "Asia/Thimphu"},
	"BGD": {Name: "Bangladesh", Zone: "Asia/Dhaka"},
	"MMR": {Name: "Myanmar", Zone: "Asia/Yangon"},
	"THA": {Name: "Thailand", Zone: "Asia/Bangkok"},
	"LAO": {Name: "Laos", Zone: "Asia/Vientiane"},
	"KHM": {Name: "Cambodia", Zone: "Asia/Phnom_Penh"},
	"VNM": {Name: "Vietnam", Zone: "Asia/Ho_Chi_Minh"},
	"MYS": {Name: "Malaysia", Zone: "Asia/Kuala_Lumpur"},
	"SGP": {Name: "Singapore", Zone: "Asia/Singapore"},
	"IDN": {Name: "Indonesia", Zone: "Asia/Jakarta"},
	"PHL": {Name: "Philippines", Zone: "Asia/Manila"},
	"BRN": {Name: "Brunei", Zone: "Asia/Brunei"},
	"CHN": {Name: "China", Zone: "Asia/Shanghai"},
	"MNG": {Name: "Mongolia", Zone: "Asia/Ulaanbaatar"},
	"HKG": {Name: "Hong Kong", Zone: "Asia/Hong_Kong"},
	"MAC": {Name: "Macao", Zone: "Asia/Macau"},
	"TWN": {Name: "Taiwan", Zone: "Asia/Taipei"},
	"KOR": {Name: "South Korea", Zone: "Asia/Seoul"},
	"PRK": {Name: "North Korea", Zone: "Asia/Pyongyang"},
	"JPN": {Name: "Japan", Zone: "Asia/Tokyo"},

	// Oceania
	"AUS": {Name: "Australia", Zone: "Australia/Sydney"},
	"NZL": {Name: "New Zealand", Zone: "Pacific/Auckland"},
	"PNG": {Name: "Papua New Guinea", Zone: "Pacific/Port_Moresby"},
	"FJI": {Name: "Fiji", Zone: "Pacific/Fiji"},
	"SLB": {Name: "Solomon Islands", Zone: "Pacific/Guadalcanal"},
	"VUT": {Name: "Vanuatu", Zone: "Pacific/Efate"},
	"WSM": {Name: "Samoa", Zone: "Pacific/Apia"},
	"TON": {Name: "Tonga", Zone: "Pacific/Tongatapu"},
}

// Resolve maps a country code to its Entry. Multi-zone sub-codes take
// priority over the alpha-3 table. Codes are case insensitive.
func Resolve(code string) (Entry, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Entry{}, fmt.Errorf("%w: empty code", ErrUnknownCode)
	}

	if entry, ok := multiZone[normalized]; ok {
		return entry, nil
	}

	if entry, ok := countries[normalized]; ok {
		entry.Code = normalized
		return entry, nil
	}

	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
}

// All returns every known entry, multi-zone sub-codes included, sorted by
// display name. The wizard uses this as its selection list.
func All() []Entry {
	entries := make([]Entry, 0, len(countries)+len(multiZone))
	for code, entry := range countries {
		entry.Code = code
		entries = append(entries, entry)
	}
	for _, entry := range multiZone {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
