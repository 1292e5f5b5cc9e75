package pazar

import (
	"strings"
	"unicode"
)

const categoryUncategorized = "uncategorized"

// productCategories maps specific normalized product names to a category.
// Checked before the parent table so a product listed under a generic
// sub-category still resolves precisely.
var productCategories = map[string]string{
	"DOMATES":   "sebze",
	"SALATALIK": "sebze",
	"BİBER":     "sebze",
	"PATLICAN":  "sebze",
	"KABAK":     "sebze",
	"PATATES":   "sebze",
	"SOĞAN":     "sebze",
	"SARIMSAK":  "sebze",
	"HAVUÇ":     "sebze",
	"MARUL":     "sebze",
	"ISPANAK":   "sebze",
	"FASULYE":   "sebze",
	"ELMA":      "meyve",
	"ARMUT":     "meyve",
	"MUZ":       "meyve",
	"PORTAKAL":  "meyve",
	"MANDALİNA": "meyve",
	"LİMON":     "meyve",
	"ÇİLEK":     "meyve",
	"KİRAZ":     "meyve",
	"ÜZÜM":      "meyve",
	"KARPUZ":    "meyve",
	"KAVUN":     "meyve",
	"ŞEFTALİ":   "meyve",
	"KAYISI":    "meyve",
	"NAR":       "meyve",
	"BUĞDAY":    "tahil",
	"ARPA":      "tahil",
	"MISIR":     "tahil",
	"YULAF":     "tahil",
	"NOHUT":     "bakliyat",
	"MERCİMEK":  "bakliyat",
	"FINDIK":    "kuruyemis",
	"CEVİZ":     "kuruyemis",
	"BADEM":     "kuruyemis",
	"ZEYTİN":    "meyve",
	"BAL":       "hayvansal",
	"YUMURTA":   "hayvansal",
	"SÜT":       "hayvansal",
	"PEYNİR":    "hayvansal",
}

// parentCategories maps marketplace sub-category codes to a category.
var parentCategories = map[string]string{
	"SEBZE":     "sebze",
	"MEYVE":     "meyve",
	"TAHIL":     "tahil",
	"BAKLİYAT":  "bakliyat",
	"KURUYEMİS": "kuruyemis",
	"KURUYEMİŞ": "kuruyemis",
	"HAYVANSAL": "hayvansal",
	"FİDE":      "fide",
	"FİDAN":     "fide",
	"TOHUM":     "tohum",
}

// normalizeGroupKey collapses whitespace and upper-cases with Turkish rules,
// matching the feed-side key normalization.
func normalizeGroupKey(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	return strings.ToUpperSpecial(unicode.TurkishCase, collapsed)
}

// resolveCategory applies the fixed precedence: per-product table, then
// parent-category table, then the raw sub-category string itself, then
// uncategorized. The ordering is a preserved contract.
func resolveCategory(groupKey string) string {
	norm := normalizeGroupKey(groupKey)
	if norm == "" {
		return categoryUncategorized
	}
	if cat, ok := productCategories[norm]; ok {
		return cat
	}
	if cat, ok := parentCategories[norm]; ok {
		return cat
	}
	return strings.ToLowerSpecial(unicode.TurkishCase, groupKey)
}
