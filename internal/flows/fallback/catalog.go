// Package fallback holds the canned messages shown when a flow cannot
// produce a real answer.
package fallback

import (
	"fmt"
	"sort"

	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
)

// Banner marks a message produced because of an error
const Banner = "⚠️ **Demo Mode**\n\n"

// inputPreviewLen bounds how much of the user input is echoed back
const inputPreviewLen = 100

const connectionHint = "This is a demo response. Please check your API connection."

var templates = map[string]string{
	types.FlowQNA: "**Medical Q&A Response**\n\n" +
		"Your question: %s...\n\n" + connectionHint,

	types.FlowReport: "**Report Analysis**\n\n" +
		"Your report analysis request: %s...\n\n" + connectionHint,

	types.FlowPrescription: "**Prescription Analysis**\n\n" +
		"Your prescription analysis request: %s...\n\n" + connectionHint,

	types.FlowBill: "**Bill Audit**\n\n" +
		"Your bill audit request: %s...\n\n" + connectionHint,

	types.FlowHospital: "**Hospital Finder Results**\n\n" +
		"Based on your search: %s...\n\n" +
		"**Recommended Hospitals:**\n\n" +
		"1. **City General Hospital** ⭐4.7\n" +
		"   - Distance: 2.3 km\n" +
		"   - Multi-specialty | 24/7 Emergency\n" +
		"   - Contact: +91 12345 67890\n\n" +
		"2. **Speciality Medical Center** ⭐4.5\n" +
		"   - Distance: 4.1 km\n" +
		"   - Advanced Equipment | Expert Surgeons\n" +
		"   - Contact: +91 12345 67891\n\n" +
		"3. **Community Health Clinic** ⭐4.3\n" +
		"   - Distance: 1.8 km\n" +
		"   - Affordable | Quick Service\n" +
		"   - Contact: +91 12345 67892\n\n" +
		"*" + connectionHint + "*",
}

// generic is used for keys without their own entry
const generic = "Demo response - API connection issue"

// Render returns the fallback message for key.
// isError prefixes the demo banner.
func Render(key, input string, isError bool) string {
	prefix := ""
	if isError {
		prefix = Banner
	}

	tmpl, ok := templates[key]
	if !ok {
		return prefix + generic
	}
	return prefix + fmt.Sprintf(tmpl, preview(input))
}

// Has reports whether key has a dedicated entry
func Has(key string) bool {
	_, ok := templates[key]
	return ok
}

// Keys returns the keys with dedicated entries, sorted
func Keys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// preview truncates input to inputPreviewLen runes
func preview(input string) string {
	runes := []rune(input)
	if len(runes) <= inputPreviewLen {
		return input
	}
	return string(runes[:inputPreviewLen])
}
