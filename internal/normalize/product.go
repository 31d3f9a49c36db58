package normalize

import "strings"

// Product is the canonical product record.
type Product struct {
	FocusID       string  `json:"focus_id"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Benefits      string  `json:"benefits"`
	ProblemSolved string  `json:"problem_solved"`
	PriceType     string  `json:"price_type"`
	Price         float64 `json:"price"`
	IsActive      bool    `json:"is_active"`
}

const (
	defaultProductType = "Outro"
	defaultPriceType   = "Pagamento Único"
)

// productTypes maps lower-cased raw type values to the closed enum. The
// canonical labels lower-case back onto themselves, which keeps
// normalization idempotent.
var productTypes = map[string]string{
	"curso":       "Curso",
	"mentoria":    "Mentoria",
	"consultoria": "Consultoria",
	"ebook":       "Ebook",
	"e-book":      "Ebook",
	"servico":     "Serviço",
	"serviço":     "Serviço",
	"comunidade":  "Comunidade",
	"evento":      "Evento",
	"software":    "Software",
	"outro":       "Outro",
}

var priceTypes = map[string]string{
	"gratis":          "Grátis",
	"gratuito":        "Grátis",
	"grátis":          "Grátis",
	"mensal":          "Mensal",
	"unico":           "Pagamento Único",
	"único":           "Pagamento Único",
	"pagamento_unico": "Pagamento Único",
	"pagamento único": "Pagamento Único",
}

// ProductFromJSON maps a classified product value to the canonical shape.
// A produto sub-object is unwrapped when present. Unrecognized enum
// values fall back to the defaults; products are always created active.
func ProductFromJSON(v any, focusID string) Product {
	src, ok := v.(map[string]any)
	if !ok {
		src = map[string]any{}
	}
	if inner, ok := src["produto"].(map[string]any); ok {
		src = inner
	}

	price := 0.0
	if raw, ok := firstValue(src, "price", "preco", "valor"); ok {
		price = asNumber(raw)
	}

	return Product{
		FocusID:       focusID,
		Type:          productType(firstString(src, "type", "tipo", "tipo_produto")),
		Name:          firstString(src, "name", "nome", "nome_produto"),
		Description:   firstJoined(src, "description", "descricao"),
		Benefits:      firstJoined(src, "benefits", "beneficios"),
		ProblemSolved: firstJoined(src, "problem_solved", "problema_resolvido", "problema_que_resolve"),
		PriceType:     priceType(firstString(src, "price_type", "tipo_preco")),
		Price:         price,
		IsActive:      true,
	}
}

func productType(raw string) string {
	if t, ok := productTypes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return defaultProductType
}

func priceType(raw string) string {
	if t, ok := priceTypes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return defaultPriceType
}
