package mdhtml

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxFrontMatterProbeBytes = 64 * 1024

// SplitFrontMatter splits a leading front-matter block off the document and
// decodes it into a metadata map. Recognized delimiters are "---" (YAML)
// and ";;;" (JSON); "+++" (TOML) is stripped but not decoded. The second
// line must look like metadata or the whole input is treated as body, the
// same probe rule the delimiter scan applies to oversized openings.
func SplitFrontMatter(src string) (map[string]any, string) {
	lines := splitLines(src)
	if len(lines) < 2 {
		return nil, src
	}
	delim, ok := frontMatterDelimiter(lines[0])
	if !ok || !frontMatterMetadataLikely(lines[1]) {
		return nil, src
	}
	closing := -1
	probed := len(lines[0]) + 1
	for i := 1; i < len(lines); i++ {
		probed += len(lines[i]) + 1
		if probed > maxFrontMatterProbeBytes {
			break
		}
		if strings.TrimSpace(lines[i]) == delim {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, src
	}
	raw := strings.Join(lines[1:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")
	return decodeFrontMatter(delim, raw), body
}

func frontMatterDelimiter(line string) (string, bool) {
	switch strings.TrimSpace(trimBOMString(line)) {
	case "---":
		return "---", true
	case "+++":
		return "+++", true
	case ";;;":
		return ";;;", true
	default:
		return "", false
	}
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.Contains(trimmed, ":") || strings.Contains(trimmed, "=")
}

func decodeFrontMatter(delim, raw string) map[string]any {
	meta := make(map[string]any)
	switch delim {
	case "---":
		if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
			return nil
		}
	case ";;;":
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return nil
		}
	default:
		return nil
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func trimBOMString(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
