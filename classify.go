package departures

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Category string

const (
	CategoryEurostar       Category = "eurostar"
	CategoryLyria          Category = "lyria"
	CategoryOuigoClassique Category = "ouigo-classique"
	CategoryOuigo          Category = "ouigo"
	CategoryInoui          Category = "inoui"
	CategoryTGV            Category = "tgv"
	CategoryIntercitesNuit Category = "intercites-nuit"
	CategoryIntercites     Category = "intercites"
	CategoryDBSNCF         Category = "dbsncf"
	CategoryTransilien     Category = "transilien"
	CategoryRER            Category = "rer"
	CategoryTER            Category = "ter"
	CategoryOther          Category = "other"
)

var allCategories = []Category{
	CategoryEurostar, CategoryLyria, CategoryOuigoClassique, CategoryOuigo, CategoryInoui,
	CategoryTGV, CategoryIntercitesNuit, CategoryIntercites, CategoryDBSNCF,
	CategoryTransilien, CategoryRER, CategoryTER, CategoryOther,
}

// TrainFields are the free-text descriptions the API attaches to a train.
type TrainFields struct {
	CommercialMode string
	PhysicalMode   string
	Network        string
	LineCode       string
	Label          string
	Name           string
}

func (f TrainFields) all() []string {
	return []string{f.CommercialMode, f.PhysicalMode, f.Network, f.LineCode, f.Label, f.Name}
}

type Classification struct {
	Category Category
	Family   string
	Text     string
	Logo     string
}

type Classifier struct {
	brands   BrandTable
	regional map[string]struct{}
}

func NewClassifier(brands BrandTable) *Classifier {
	regional := make(map[string]struct{}, len(brands.RegionalBrands))
	for _, b := range brands.RegionalBrands {
		regional[normalizeText(b)] = struct{}{}
	}
	return &Classifier{
		brands:   brands,
		regional: regional,
	}
}

var defaultClassifier = NewClassifier(DefaultBrandTable())

// Classify uses the embedded brand table.
func Classify(f TrainFields) Classification {
	return defaultClassifier.Classify(f)
}

// categoryRule is one entry of the priority list. More specific operators come first so
// a generic token that co-occurs with them, or is a substring of them, never wins.
type categoryRule struct {
	category Category
	matches  func(searchBuffer) bool
}

var categoryRules = []categoryRule{
	{CategoryEurostar, func(b searchBuffer) bool { return b.contains("EUROSTAR") || b.contains("THALYS") }},
	{CategoryLyria, func(b searchBuffer) bool { return b.contains("LYRIA") }},
	{CategoryOuigoClassique, func(b searchBuffer) bool { return b.contains("OUIGO") && b.contains("CLASSIQUE") }},
	{CategoryOuigo, func(b searchBuffer) bool { return b.contains("OUIGO") }},
	{CategoryInoui, func(b searchBuffer) bool { return b.contains("INOUI") }},
	{CategoryTGV, func(b searchBuffer) bool { return b.contains("TGV") || b.contains("GRANDE VITESSE") }},
	{CategoryIntercitesNuit, func(b searchBuffer) bool { return b.contains("INTERCITE") && b.hasWord("NUIT") }},
	{CategoryIntercites, func(b searchBuffer) bool { return b.contains("INTERCITE") || b.contains("INTERCITY") }},
	{CategoryDBSNCF, func(b searchBuffer) bool { return b.hasWord("DB") || b.hasWord("ICE") }},
	{CategoryTransilien, func(b searchBuffer) bool { return b.contains("TRANSILIEN") }},
	{CategoryRER, func(b searchBuffer) bool { return b.hasWord("RER") }},
}

func (c *Classifier) Classify(f TrainFields) Classification {
	fields := make([]string, 0, 6)
	for _, v := range f.all() {
		if n := normalizeText(v); n != "" {
			fields = append(fields, n)
		}
	}
	buf := newSearchBuffer(fields)
	for _, rule := range categoryRules {
		if rule.matches(buf) {
			return c.classification(rule.category, "")
		}
	}
	for _, v := range fields {
		if _, ok := c.regional[v]; ok {
			return c.classification(CategoryTER, "")
		}
	}
	if buf.hasWord("TER") {
		return c.classification(CategoryTER, "")
	}
	return c.classification(CategoryOther, fallbackText(f))
}

func (c *Classifier) classification(cat Category, text string) Classification {
	b := c.brands.brand(cat)
	if text == "" {
		text = b.Text
	}
	return Classification{
		Category: cat,
		Family:   b.Family,
		Text:     text,
		Logo:     b.Logo,
	}
}

// fallbackText keeps the raw API wording; escaping happens when it is rendered.
func fallbackText(f TrainFields) string {
	if v := strings.TrimSpace(f.CommercialMode); v != "" {
		return v
	}
	if v := strings.TrimSpace(f.Label); v != "" {
		return v
	}
	return ""
}

type searchBuffer struct {
	text  string
	words map[string]struct{}
}

func newSearchBuffer(fields []string) searchBuffer {
	text := strings.Join(fields, " ")
	words := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}
	return searchBuffer{text: text, words: words}
}

func (b searchBuffer) contains(token string) bool {
	return strings.Contains(b.text, token)
}

func (b searchBuffer) hasWord(word string) bool {
	_, ok := b.words[word]
	return ok
}

// normalizeText decomposes, drops combining marks, upper-cases and collapses whitespace.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}
