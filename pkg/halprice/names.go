package halprice

import (
	"strings"
	"unicode"

	"agropazar-api/pkg/prices"
)

// canonicalEntry pairs the English product name with its category.
type canonicalEntry struct {
	En       string
	Category string
}

const (
	categoryVegetable     = "sebze"
	categoryFruit         = "meyve"
	categoryUncategorized = "uncategorized"
)

// canonicalNames maps normalized (upper-cased, whitespace-collapsed) Turkish
// product names to their English name and category. The table is static and
// append-only; it is never mutated at runtime and is safe to share across
// requests.
var canonicalNames = map[string]canonicalEntry{
	"DOMATES":        {En: "Tomato", Category: categoryVegetable},
	"SALATALIK":      {En: "Cucumber", Category: categoryVegetable},
	"HIYAR":          {En: "Cucumber", Category: categoryVegetable},
	"BİBER":          {En: "Pepper", Category: categoryVegetable},
	"BİBER DOLMALIK": {En: "Bell Pepper", Category: categoryVegetable},
	"BİBER SİVRİ":    {En: "Green Pepper", Category: categoryVegetable},
	"PATLICAN":       {En: "Eggplant", Category: categoryVegetable},
	"KABAK":          {En: "Zucchini", Category: categoryVegetable},
	"PATATES":        {En: "Potato", Category: categoryVegetable},
	"SOĞAN":          {En: "Onion", Category: categoryVegetable},
	"SOĞAN KURU":     {En: "Dry Onion", Category: categoryVegetable},
	"SOĞAN TAZE":     {En: "Spring Onion", Category: categoryVegetable},
	"SARIMSAK":       {En: "Garlic", Category: categoryVegetable},
	"HAVUÇ":          {En: "Carrot", Category: categoryVegetable},
	"MARUL":          {En: "Lettuce", Category: categoryVegetable},
	"MAYDANOZ":       {En: "Parsley", Category: categoryVegetable},
	"ISPANAK":        {En: "Spinach", Category: categoryVegetable},
	"PIRASA":         {En: "Leek", Category: categoryVegetable},
	"LAHANA":         {En: "Cabbage", Category: categoryVegetable},
	"KARNABAHAR":     {En: "Cauliflower", Category: categoryVegetable},
	"BROKOLİ":        {En: "Broccoli", Category: categoryVegetable},
	"FASULYE":        {En: "Green Bean", Category: categoryVegetable},
	"BEZELYE":        {En: "Pea", Category: categoryVegetable},
	"BAMYA":          {En: "Okra", Category: categoryVegetable},
	"TURP":           {En: "Radish", Category: categoryVegetable},
	"KEREVİZ":        {En: "Celery", Category: categoryVegetable},
	"ENGİNAR":        {En: "Artichoke", Category: categoryVegetable},
	"ROKA":           {En: "Arugula", Category: categoryVegetable},
	"DEREOTU":        {En: "Dill", Category: categoryVegetable},
	"NANE":           {En: "Mint", Category: categoryVegetable},
	"MANTAR":         {En: "Mushroom", Category: categoryVegetable},
	"ELMA":           {En: "Apple", Category: categoryFruit},
	"ARMUT":          {En: "Pear", Category: categoryFruit},
	"MUZ":            {En: "Banana", Category: categoryFruit},
	"PORTAKAL":       {En: "Orange", Category: categoryFruit},
	"MANDALİNA":      {En: "Tangerine", Category: categoryFruit},
	"LİMON":          {En: "Lemon", Category: categoryFruit},
	"GREYFURT":       {En: "Grapefruit", Category: categoryFruit},
	"ÇİLEK":          {En: "Strawberry", Category: categoryFruit},
	"KİRAZ":          {En: "Cherry", Category: categoryFruit},
	"VİŞNE":          {En: "Sour Cherry", Category: categoryFruit},
	"ÜZÜM":           {En: "Grape", Category: categoryFruit},
	"KARPUZ":         {En: "Watermelon", Category: categoryFruit},
	"KAVUN":          {En: "Melon", Category: categoryFruit},
	"ŞEFTALİ":        {En: "Peach", Category: categoryFruit},
	"KAYISI":         {En: "Apricot", Category: categoryFruit},
	"ERİK":           {En: "Plum", Category: categoryFruit},
	"NAR":            {En: "Pomegranate", Category: categoryFruit},
	"İNCİR":          {En: "Fig", Category: categoryFruit},
	"AYVA":           {En: "Quince", Category: categoryFruit},
	"KİVİ":           {En: "Kiwi", Category: categoryFruit},
	"AVOKADO":        {En: "Avocado", Category: categoryFruit},
	"HURMA":          {En: "Persimmon", Category: categoryFruit},
	"DUT":            {En: "Mulberry", Category: categoryFruit},
}

// popularOrder is the fixed popularity ranking for the capped snapshot.
// A record ranks at the position of the first prefix its normalized name
// starts with; names matching nothing sort after every ranked name.
var popularOrder = []string{
	"DOMATES",
	"SALATALIK",
	"BİBER",
	"PATLICAN",
	"KABAK",
	"PATATES",
	"SOĞAN",
	"SARIMSAK",
	"HAVUÇ",
	"MARUL",
	"ISPANAK",
	"LİMON",
	"ELMA",
	"ARMUT",
	"MUZ",
	"PORTAKAL",
	"MANDALİNA",
	"ÇİLEK",
	"KİRAZ",
	"ÜZÜM",
	"KARPUZ",
	"KAVUN",
	"ŞEFTALİ",
	"KAYISI",
	"NAR",
}

const unrankedPosition = int(^uint(0) >> 1) // max int: unranked sorts last

// normalizeKey collapses internal whitespace, trims, and upper-cases with
// Turkish casing rules so dotted/dotless I survive the round trip.
func normalizeKey(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return strings.ToUpperSpecial(unicode.TurkishCase, collapsed)
}

// baseKey is the first whitespace-delimited token of a raw product name,
// used to collapse name variants ("DOMATES SERA", "DOMATES TARLA") onto one
// representative record.
func baseKey(name string) string {
	fields := strings.Fields(normalizeKey(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// displayName renders a raw bulletin name for display using the shared
// Turkish title-casing rules.
func displayName(name string) string {
	return prices.TitleTurkish(name)
}

// lookupCanonical resolves the English name and category for a normalized
// product name: exact key first, then the first word, then the first two
// words. Unmatched names fall back to the bulletin's coarse kind tag.
func lookupCanonical(normKey, kind string) canonicalEntry {
	if entry, ok := canonicalNames[normKey]; ok {
		return entry
	}
	words := strings.Fields(normKey)
	if len(words) > 0 {
		if entry, ok := canonicalNames[words[0]]; ok {
			return entry
		}
	}
	if len(words) > 1 {
		if entry, ok := canonicalNames[words[0]+" "+words[1]]; ok {
			return entry
		}
	}
	return canonicalEntry{Category: categoryFromKind(kind)}
}

// categoryFromKind maps the bulletin's coarse product-type tag to a
// category, defaulting to uncategorized.
func categoryFromKind(kind string) string {
	switch normalizeKey(kind) {
	case "SEBZE":
		return categoryVegetable
	case "MEYVE":
		return categoryFruit
	default:
		return categoryUncategorized
	}
}

// popularityRank returns the fixed-list rank for a normalized name, or
// unrankedPosition when no prefix matches.
func popularityRank(normKey string) int {
	for i, prefix := range popularOrder {
		if strings.HasPrefix(normKey, prefix) {
			return i
		}
	}
	return unrankedPosition
}

// unitLabel maps the bulletin unit to a display label: kilogram pricing
// becomes ₺/kg, everything else is treated as per-piece.
func unitLabel(unit string) string {
	if strings.Contains(normalizeKey(unit), "KG") {
		return "₺/kg"
	}
	return "₺/adet"
}
