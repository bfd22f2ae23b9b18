// Package variables resolves ${...} placeholders in element content
// against a product record.
package variables

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Options controls price and name formatting during resolution
type Options struct {
	PricePrefix   string // default "R$ "
	PriceFormat   string // "decimal" (default) or "integer"
	TruncateNames bool
	MaxNameLength int
	Installments  int // for ${preco_parcelado}, default 3
}

const defaultInstallments = 3

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Placeholder tokens are matched case-insensitively, anywhere in the
// template, any number of times.
var tokenPatterns = map[string]*regexp.Regexp{}

var knownTokens = []string{
	"nome",
	"preco",
	"codigo",
	"barcode",
	"categoria",
	"descricao",
	"quantidade",
	"preco_mascarado",
	"preco_parcelado",
	"preco_cheio_parcelado",
	"nome_abreviado",
}

func init() {
	for _, tok := range knownTokens {
		tokenPatterns[tok] = regexp.MustCompile(`(?i)\$\{` + tok + `\}`)
	}
}

// Resolve replaces every known placeholder in template with its value
// computed from product. Unknown field values resolve to the empty
// string, never to a literal "undefined". Pure: neither argument is
// mutated.
func Resolve(template string, product labelformat.Product, opts Options) string {
	if !strings.Contains(template, "$") {
		return template
	}

	values := map[string]string{
		"nome":                  formatName(product.Name, opts),
		"preco":                 formatPrice(product.Price, opts),
		"codigo":                product.Code,
		"barcode":               product.Barcode,
		"categoria":             product.Category,
		"descricao":             product.Description,
		"quantidade":            strconv.Itoa(product.Quantity),
		"preco_mascarado":       maskedPrice(product.Name, product.Price),
		"preco_parcelado":       installmentPrice(product.Price, opts),
		"preco_cheio_parcelado": fullInstallmentPrice(product.Price, opts),
		"nome_abreviado":        abbreviateName(product.Name),
	}

	out := template
	for tok, re := range tokenPatterns {
		out = re.ReplaceAllLiteralString(out, values[tok])
	}

	return out
}

// ResolveOrKeep resolves the template and falls back to the original
// text when resolution yields only whitespace, so an element bound to
// an unknown or empty variable never renders blank.
func ResolveOrKeep(template string, product labelformat.Product, opts Options) string {
	resolved := Resolve(template, product, opts)
	if strings.TrimSpace(resolved) == "" {
		return template
	}
	return resolved
}

func formatName(name string, opts Options) string {
	if opts.TruncateNames && opts.MaxNameLength > 0 {
		runes := []rune(name)
		if len(runes) > opts.MaxNameLength {
			return string(runes[:opts.MaxNameLength]) + "..."
		}
	}
	return name
}

func formatPrice(price float64, opts Options) string {
	prefix := opts.PricePrefix
	if prefix == "" {
		prefix = "R$ "
	}

	if opts.PriceFormat == "integer" {
		return prefix + ptBR.Sprintf("%v", number.Decimal(math.Floor(price), number.Scale(0)))
	}

	return prefix + ptBR.Sprintf("%v", number.Decimal(price, number.Scale(2)))
}

// maskedPrice encodes the price as a store-internal code: the first two
// letters of the product name uppercased, a fixed "00", and the two
// cent digits.
func maskedPrice(name string, price float64) string {
	letters := []rune(strings.TrimSpace(name))
	if len(letters) > 2 {
		letters = letters[:2]
	}
	prefix := strings.ToUpper(string(letters))

	cents := int(math.Round(price*100)) % 100
	return fmt.Sprintf("%s00%02d", prefix, cents)
}

func installmentPrice(price float64, opts Options) string {
	n := opts.Installments
	if n <= 0 {
		n = defaultInstallments
	}

	per := price / float64(n)
	perOpts := opts
	perOpts.PriceFormat = "" // installments always show cents
	return fmt.Sprintf("%dx %s", n, formatPrice(per, perOpts))
}

func fullInstallmentPrice(price float64, opts Options) string {
	return formatPrice(price, opts) + " ou " + installmentPrice(price, opts)
}

// abbreviateName keeps the first four characters of each word
func abbreviateName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(w)
		if len(runes) > 4 {
			words[i] = string(runes[:4])
		}
	}
	return strings.Join(words, " ")
}
