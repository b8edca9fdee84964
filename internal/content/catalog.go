package content

// Topics is the static catalog behind GET /api/topics, used by Scroll mode.
var Topics = map[string][]string{
	"Science & Technology": {
		"Artificial Intelligence", "Space Exploration", "Quantum Physics",
		"Biotechnology", "Climate Science", "Computer Science",
	},
	"History & Culture": {
		"Ancient Civilizations", "World Wars", "Art History",
		"Philosophy", "Archaeology", "Cultural Studies",
	},
	"Health & Wellness": {
		"Nutrition Science", "Mental Health", "Exercise Science",
		"Medical Breakthroughs", "Psychology", "Mindfulness",
	},
	"Business & Economics": {
		"Entrepreneurship", "Economics", "Finance",
		"Marketing", "Innovation", "Leadership",
	},
	"Arts & Literature": {
		"Creative Writing", "Visual Arts", "Music Theory",
		"Film Studies", "Poetry", "Literary Analysis",
	},
	"Mathematics & Logic": {
		"Pure Mathematics", "Statistics", "Logic Puzzles",
		"Mathematical History", "Applied Mathematics", "Problem Solving",
	},
}

// CSSubtopic describes one Computer Science track. Concepts are generated
// on demand and cached in the store, so the static catalog ships them empty.
type CSSubtopic struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// CSSubtopics is the catalog behind GET /api/cs-subtopics.
var CSSubtopics = map[string]CSSubtopic{
	"Data Structures": {
		Icon:        "🗂️",
		Description: "Master the fundamental building blocks of efficient algorithms",
	},
	"Computer Architecture": {
		Icon:        "🖥️",
		Description: "Understand how computers work from transistors to processors",
	},
	"Computer Networks": {
		Icon:        "🌐",
		Description: "Learn how computers communicate across the internet",
	},
	"Operating Systems": {
		Icon:        "⚙️",
		Description: "Explore how software manages hardware resources",
	},
}
