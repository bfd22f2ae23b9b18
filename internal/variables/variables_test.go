package variables

import (
	"strings"
	"testing"

	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

var sampleProduct = labelformat.Product{
	Name:        "Camiseta Polo Azul",
	Code:        "CAM-001",
	Price:       49.9,
	Quantity:    12,
	Category:    "Vestuário",
	Barcode:     "7891234567895",
	Description: "Camiseta polo de algodão",
}

func TestResolve_BasicFields(t *testing.T) {
	tests := []struct {
		template string
		expected string
	}{
		{"${nome}", "Camiseta Polo Azul"},
		{"${codigo}", "CAM-001"},
		{"${barcode}", "7891234567895"},
		{"${categoria}", "Vestuário"},
		{"${descricao}", "Camiseta polo de algodão"},
		{"${quantidade}", "12"},
		{"${preco}", "R$ 49,90"},
		{"Produto: ${nome} (${codigo})", "Produto: Camiseta Polo Azul (CAM-001)"},
	}

	for _, tt := range tests {
		got := Resolve(tt.template, sampleProduct, Options{})
		if got != tt.expected {
			t.Errorf("Resolve(%q) = %q, want %q", tt.template, got, tt.expected)
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	got := Resolve("${NOME} - ${Preco}", sampleProduct, Options{})
	if got != "Camiseta Polo Azul - R$ 49,90" {
		t.Errorf("Case-insensitive resolve failed: %q", got)
	}
}

func TestResolve_RepeatedToken(t *testing.T) {
	got := Resolve("${codigo}/${codigo}", sampleProduct, Options{})
	if got != "CAM-001/CAM-001" {
		t.Errorf("Expected global replacement, got %q", got)
	}
}

func TestResolve_PriceFormatting(t *testing.T) {
	tests := []struct {
		price    float64
		opts     Options
		expected string
	}{
		{49.9, Options{}, "R$ 49,90"},
		{1234.56, Options{}, "R$ 1.234,56"},
		{10, Options{}, "R$ 10,00"},
		{49.9, Options{PriceFormat: "integer"}, "R$ 49"},
		{49.9, Options{PricePrefix: "$ "}, "$ 49,90"},
	}

	for _, tt := range tests {
		p := sampleProduct
		p.Price = tt.price
		got := Resolve("${preco}", p, tt.opts)
		if got != tt.expected {
			t.Errorf("Resolve(preco=%v, %+v) = %q, want %q", tt.price, tt.opts, got, tt.expected)
		}
	}
}

func TestResolve_NameTruncation(t *testing.T) {
	opts := Options{TruncateNames: true, MaxNameLength: 8}
	got := Resolve("${nome}", sampleProduct, opts)
	if got != "Camiseta..." {
		t.Errorf("Expected truncated name 'Camiseta...', got %q", got)
	}

	// Short names are left alone
	p := sampleProduct
	p.Name = "Polo"
	if got := Resolve("${nome}", p, opts); got != "Polo" {
		t.Errorf("Expected short name untouched, got %q", got)
	}
}

func TestResolve_MaskedPrice(t *testing.T) {
	got := Resolve("${preco_mascarado}", sampleProduct, Options{})
	// First 2 letters of "Camiseta..." uppercased + "00" + cents of 49.90
	if got != "CA0090" {
		t.Errorf("preco_mascarado = %q, want CA0090", got)
	}
}

func TestResolve_InstallmentPrice(t *testing.T) {
	p := sampleProduct
	p.Price = 90

	got := Resolve("${preco_parcelado}", p, Options{})
	if got != "3x R$ 30,00" {
		t.Errorf("preco_parcelado (default 3x) = %q", got)
	}

	got = Resolve("${preco_parcelado}", p, Options{Installments: 2})
	if got != "2x R$ 45,00" {
		t.Errorf("preco_parcelado (2x) = %q", got)
	}

	got = Resolve("${preco_cheio_parcelado}", p, Options{})
	if got != "R$ 90,00 ou 3x R$ 30,00" {
		t.Errorf("preco_cheio_parcelado = %q", got)
	}
}

func TestResolve_AbbreviatedName(t *testing.T) {
	got := Resolve("${nome_abreviado}", sampleProduct, Options{})
	if got != "Cami Polo Azul" {
		t.Errorf("nome_abreviado = %q, want 'Cami Polo Azul'", got)
	}
}

func TestResolve_EmptyFieldsResolveToEmpty(t *testing.T) {
	empty := labelformat.Product{}

	for _, token := range []string{"${nome}", "${codigo}", "${barcode}", "${categoria}", "${descricao}"} {
		got := Resolve(token, empty, Options{})
		if got != "" {
			t.Errorf("Resolve(%q) on empty product = %q, want empty", token, got)
		}
		if strings.Contains(got, "undefined") {
			t.Errorf("Resolve(%q) leaked literal 'undefined'", token)
		}
	}
}

func TestResolve_NoUnresolvedKnownTokens(t *testing.T) {
	all := "${nome} ${preco} ${codigo} ${barcode} ${categoria} ${descricao} ${quantidade} " +
		"${preco_mascarado} ${preco_parcelado} ${preco_cheio_parcelado} ${nome_abreviado}"

	got := Resolve(all, sampleProduct, Options{})
	if strings.Contains(got, "${") {
		t.Errorf("Unresolved token remains in %q", got)
	}
}

func TestResolve_UnknownTokenLeftAlone(t *testing.T) {
	got := Resolve("${sku}", sampleProduct, Options{})
	if got != "${sku}" {
		t.Errorf("Unknown token should be preserved, got %q", got)
	}
}

func TestResolveOrKeep_WhitespaceFallback(t *testing.T) {
	empty := labelformat.Product{}

	got := ResolveOrKeep("${nome}", empty, Options{})
	if got != "${nome}" {
		t.Errorf("Expected fallback to original template, got %q", got)
	}

	got = ResolveOrKeep("${nome}", sampleProduct, Options{})
	if got != "Camiseta Polo Azul" {
		t.Errorf("Expected normal resolution, got %q", got)
	}

	// Plain text without variables passes through untouched
	got = ResolveOrKeep("PROMOÇÃO", empty, Options{})
	if got != "PROMOÇÃO" {
		t.Errorf("Expected plain text untouched, got %q", got)
	}
}
