package classify

import "regexp"

// rule is one entry of the ordered classification table. Match receives the
// lowercased URL path; the first matching rule across the whole table wins.
type rule struct {
	match    func(path string) bool
	priority int
	category string
	reason   string
}

var (
	datedBlogPath = regexp.MustCompile(`/\d{4}/\d{2}(/|$)`)
	paginationRe  = regexp.MustCompile(`/page/\d+`)
)

// binaryExtensions are file suffixes that never carry indexable page content.
var binaryExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".zip", ".gz", ".tar", ".mp3", ".mp4", ".mov", ".css", ".js",
}

// nonContentSubdomains host labels whose pages are transactional, not
// educational, and therefore excluded outright.
var nonContentSubdomains = []string{
	"shop", "store", "shopdiabetes", "community", "professional", "donations",
}

// excludedPathMarkers are path fragments belonging to operational surfaces.
var excludedPathMarkers = []string{
	"/admin", "/login", "/logout", "/signin", "/signup", "/register",
	"/search", "/user/", "/account", "/cart", "/checkout", "/donate",
}

// spanishRules carry the localized translations of the core educational
// sections. They sit ahead of the English table so localized core content is
// never shadowed by the lower-priority generic Spanish fallback.
var spanishRules = []rule{
	{matchPrefix("/es/sobre-la-diabetes"), 90, "spanish-core-education", "localized core education section"},
	{matchPrefix("/es/vivir-con-diabetes"), 85, "spanish-living", "localized living section"},
	{matchPrefix("/es/salud-y-bienestar"), 82, "spanish-health-wellness", "localized health and wellness section"},
	{matchPrefix("/es/alimentos-y-nutricion"), 80, "spanish-nutrition", "localized nutrition section"},
}

// englishRules are ordered by descending priority: core education first,
// second-tier topic sections next, resource/advocacy/pregnancy sections last.
var englishRules = []rule{
	{matchPrefix("/about-diabetes"), 95, "core-education", "core education section"},
	{matchPrefix("/newly-diagnosed"), 92, "core-education", "newly diagnosed section"},
	{matchPrefix("/living-with-diabetes"), 90, "living", "living with diabetes section"},
	{matchPrefix("/health-wellness"), 85, "health-wellness", "health and wellness section"},
	{matchPrefix("/food-nutrition"), 85, "nutrition", "food and nutrition section"},
	{matchPrefix("/fitness"), 80, "fitness", "fitness section"},
	{matchPrefix("/weight-management"), 75, "weight-management", "weight management section"},
	{matchPrefix("/tools-and-resources"), 65, "resources", "tools and resources section"},
	{matchPrefix("/pregnancy"), 62, "pregnancy", "pregnancy section"},
	{matchPrefix("/advocacy"), 60, "advocacy", "advocacy section"},
}

func matchPrefix(prefix string) func(string) bool {
	return func(path string) bool {
		if len(path) < len(prefix) {
			return false
		}
		if path[:len(prefix)] != prefix {
			return false
		}
		// "/fitness" must not match "/fitness-gear".
		return len(path) == len(prefix) || path[len(prefix)] == '/'
	}
}
