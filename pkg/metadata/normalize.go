package metadata

import "strings"

// normalize turns form input such as " in progress" or "in-progress" into
// the stored enum spelling IN_PROGRESS.
func normalize(value string) string {
	replacer := strings.NewReplacer(" ", "_", "-", "_")
	return replacer.Replace(strings.ToUpper(strings.TrimSpace(value)))
}

func lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
