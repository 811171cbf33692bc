package i18n

var tables = map[Language]map[string]string{
	German: {
		"site.title":          "KI-Tool-Verzeichnis",
		"site.tagline":        "Die besten KI-Werkzeuge auf einen Blick",
		"search.placeholder":  "Tools durchsuchen…",
		"filter.all":          "Alle",
		"filter.free":         "Nur kostenlose",
		"filter.apply":        "Filtern",
		"grid.empty":          "Keine Tools gefunden.",
		"grid.count":          "Tools",
		"card.free":           "Kostenlos",
		"card.premium":        "Premium",
		"card.open":           "Tool öffnen",
		"card.details":        "Details",
		"card.close":          "Schließen",
		"card.flip":           "Mehr erfahren",
		"card.rating":         "Bewertung",
		"card.no_description": "Keine Beschreibung verfügbar.",
		"modal.close":         "Schließen",
		"modal.tags":          "Tags",
		"modal.back":          "Zurück zur Übersicht",
		"category.text":       "Text",
		"category.image":      "Bild",
		"category.code":       "Code",
		"category.audio":      "Audio",
		"category.video":      "Video",
		"category.data":       "Daten",
		"category.other":      "Andere",
		"lang.toggle":         "English",
		"footer.updated":      "Zuletzt aktualisiert",
		"error.not_found":     "Tool nicht gefunden.",
	},
	English: {
		"site.title":          "AI Tool Directory",
		"site.tagline":        "The best AI tools at a glance",
		"search.placeholder":  "Search tools…",
		"filter.all":          "All",
		"filter.free":         "Free only",
		"filter.apply":        "Filter",
		"grid.empty":          "No tools found.",
		"grid.count":          "tools",
		"card.free":           "Free",
		"card.premium":        "Premium",
		"card.open":           "Open tool",
		"card.details":        "Details",
		"card.close":          "Close",
		"card.flip":           "Learn more",
		"card.rating":         "Rating",
		"card.no_description": "No description available.",
		"modal.close":         "Close",
		"modal.tags":          "Tags",
		"modal.back":          "Back to overview",
		"category.text":       "Text",
		"category.image":      "Image",
		"category.code":       "Code",
		"category.audio":      "Audio",
		"category.video":      "Video",
		"category.data":       "Data",
		"category.other":      "Other",
		"lang.toggle":         "Deutsch",
		"footer.updated":      "Last updated",
		"error.not_found":     "Tool not found.",
	},
}
