package content

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Fingerprint hashes front matter fields and body with mdfp. Fields are serialized as
// YAML with sorted keys so equal content always yields the same value.
func Fingerprint(fields map[string]any, body []byte) string {
	fm := ""
	if len(fields) > 0 {
		canonical := make(map[string]any, len(fields))
		for k, v := range fields {
			if k == mdfp.FingerprintField {
				continue
			}
			canonical[k] = v
		}
		if out, err := yaml.Marshal(canonical); err == nil {
			fm = strings.TrimSuffix(string(out), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body))
}
