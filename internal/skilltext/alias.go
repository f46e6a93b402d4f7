package skilltext

// aliases maps a canonical skill name to the spellings job postings
// actually use. Keys and values are in normalized form.
var aliases = map[string][]string{
	"go":               {"golang"},
	"javascript":       {"js", "ecmascript"},
	"typescript":       {"ts"},
	"python":           {"py"},
	"kubernetes":       {"k8s"},
	"postgresql":       {"postgres", "psql"},
	"c#":               {"csharp", "c sharp"},
	"c++":              {"cpp", "c plus plus"},
	"node.js":          {"nodejs", "node"},
	"react":            {"reactjs", "react.js"},
	"vue":              {"vuejs", "vue.js"},
	"docker":           {"containerization"},
	"aws":              {"amazon web services"},
	"gcp":              {"google cloud", "google cloud platform"},
	"ci cd":            {"cicd", "ci cd pipelines", "continuous integration"},
	"sql":              {"structured query language"},
	"machine learning": {"ml"},
}

// reverse maps every alias back to its canonical form.
var reverse = func() map[string]string {
	m := make(map[string]string, len(aliases)*2)
	for canonical, alts := range aliases {
		for _, a := range alts {
			m[a] = canonical
		}
	}
	return m
}()

// Aliases returns the alternate spellings of a normalized skill name,
// or nil if none are known.
func Aliases(normalized string) []string {
	if v, ok := aliases[normalized]; ok {
		out := make([]string, len(v))
		copy(out, v)
		return out
	}
	return nil
}

// Canonical folds an alias to its canonical skill name. Unknown names
// come back unchanged.
func Canonical(normalized string) string {
	if c, ok := reverse[normalized]; ok {
		return c
	}
	return normalized
}
