package seed

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const seedPassword = "asdffdsa"

var firstNames = []string{
	"Alice", "Bruno", "Clara", "Deniz", "Elif", "Felix", "Greta", "Hakan",
	"Ines", "Jonas", "Kerem", "Lena", "Mert", "Nora", "Omar", "Priya",
	"Quinn", "Rosa", "Selin", "Tomas",
}

var lastNames = []string{
	"Andersson", "Brown", "Costa", "Demir", "Eriksen", "Fischer", "Garcia",
	"Hoffmann", "Ivanova", "Jensen", "Kaya", "Larsen", "Moreau", "Novak",
	"Okafor", "Petrov", "Quintero", "Rossi", "Schmidt", "Tanaka",
}

var titleWords = []string{
	"Understanding", "Building", "Scaling", "Debugging", "Designing",
	"Testing", "Deploying", "Refactoring", "Migrating", "Securing",
}

var titleTopics = []string{
	"REST APIs", "Microservices", "Web Applications", "Database Schemas",
	"CI Pipelines", "Authentication Flows", "Frontend Components",
	"Cloud Infrastructure", "Search Indexes", "Background Workers",
	"Developer Tooling", "Design Systems",
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
}

var commentTexts = []string{
	"Great write-up, thanks for sharing.",
	"This solved a problem I had been stuck on for days.",
	"Interesting approach, though I would structure it differently.",
	"Could you expand on the second section a bit more?",
	"Bookmarked. The examples are really clear.",
	"I ran into the same issue last month, wish I had read this earlier.",
	"Solid overview for anyone getting started with this.",
	"The trade-offs section is the best part of this post.",
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

func pastDate(maxDays int) time.Time {
	return time.Now().AddDate(0, 0, -rand.Intn(maxDays)-1)
}

func futureDate(maxDays int) time.Time {
	return time.Now().AddDate(0, 0, rand.Intn(maxDays)+1)
}

func fullName() string {
	return pick(firstNames) + " " + pick(lastNames)
}

func emailFor(name string, n int) string {
	return slugify(name) + "-" + strconv.Itoa(n) + "@example.com"
}

func paragraphs(count int) string {
	var b strings.Builder
	for p := 0; p < count; p++ {
		if p > 0 {
			b.WriteString("\n\n")
		}
		words := 40 + rand.Intn(40)
		for w := 0; w < words; w++ {
			if w > 0 {
				b.WriteString(" ")
			}
			b.WriteString(pick(loremWords))
		}
		b.WriteString(".")
	}
	return b.String()
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}
