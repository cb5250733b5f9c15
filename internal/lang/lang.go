// Package lang defines the closed set of language codes the translation
// pipeline accepts. Codes outside this set are rejected at the API
// boundary before any provider call is made.
package lang

import "sort"

// Auto requests source-language detection instead of a fixed code.
const Auto = "auto"

// supported maps language codes to display names. The set covers the 22
// scheduled Indian languages plus English.
var supported = map[string]string{
	"hi":  "Hindi",
	"bn":  "Bengali",
	"te":  "Telugu",
	"mr":  "Marathi",
	"ta":  "Tamil",
	"ur":  "Urdu",
	"gu":  "Gujarati",
	"kn":  "Kannada",
	"ml":  "Malayalam",
	"or":  "Odia",
	"pa":  "Punjabi",
	"as":  "Assamese",
	"mai": "Maithili",
	"sa":  "Sanskrit",
	"ks":  "Kashmiri",
	"ne":  "Nepali",
	"sd":  "Sindhi",
	"kok": "Konkani",
	"doi": "Dogri",
	"mni": "Manipuri",
	"sat": "Santali",
	"brx": "Bodo",
	"en":  "English",
}

// IsSupported reports whether code is one of the supported language codes.
func IsSupported(code string) bool {
	_, ok := supported[code]
	return ok
}

// Name returns the display name for a supported code, or the code itself.
func Name(code string) string {
	if name, ok := supported[code]; ok {
		return name
	}
	return code
}

// Codes returns the supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// All returns a copy of the code ⇒ name mapping.
func All() map[string]string {
	out := make(map[string]string, len(supported))
	for code, name := range supported {
		out[code] = name
	}
	return out
}
