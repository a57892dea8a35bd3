package content

import (
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"

	"campaign-engine/internal/criteria"
	"campaign-engine/internal/store"
)

// SelectVariant picks a variant for a recipient by weighted hash of
// (seed, recipient). The same pair always gets the same variant; zero-weight
// variants are never picked.
func SelectVariant(variants []store.ContentVariant, seed, recipientID string) (store.ContentVariant, bool) {
	total := 0
	for _, v := range variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total == 0 {
		return store.ContentVariant{}, false
	}

	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(recipientID))
	point := int(h.Sum64() % uint64(total))

	for _, v := range variants {
		if v.Weight <= 0 {
			continue
		}
		if point < v.Weight {
			return v, true
		}
		point -= v.Weight
	}
	return variants[len(variants)-1], true
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Personalize substitutes {{field}} placeholders from the recipient's
// attributes. Unknown fields render empty.
func Personalize(text string, attrs criteria.Attributes) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(token string) string {
		field := placeholder.FindStringSubmatch(token)[1]
		v, ok := attrs.Lookup(field)
		if !ok {
			return ""
		}
		return v.Text()
	})
}

// CacheKey identifies one rendered variant of one content version.
func CacheKey(c store.Content, variantID string) string {
	return c.ID.String() + ":" + strconv.Itoa(c.Version) + ":" + variantID
}
