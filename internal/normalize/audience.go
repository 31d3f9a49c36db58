package normalize

import "strings"

// Audience is the canonical audience record ready for persistence.
type Audience struct {
	FocusID     string `json:"focus_id"`
	Name        string `json:"name"`
	FunnelStage string `json:"funnel_stage"`
	Description string `json:"description"`
	Pains       string `json:"pains"`
	Ambitions   string `json:"ambitions"`
	Habits      string `json:"habits"`
	CommonEnemy string `json:"common_enemy"`
}

const defaultFunnelStage = "Topo de Funil"

// funnelStages maps the level codes and pre-set labels seen across
// schema generations, matched case-insensitively.
var funnelStages = map[string]string{
	"topo":  "Topo de Funil",
	"meio":  "Meio de Funil",
	"fundo": "Fundo de Funil",
}

func funnelStage(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	// Pre-set labels like "Topo de Funil" resolve through their prefix.
	for code, label := range funnelStages {
		if key == code || strings.HasPrefix(key, code+" ") {
			return label
		}
	}
	return defaultFunnelStage
}

// AudienceFromJSON maps a classified audience value, in either of its two
// source shapes, to canonical records. The wrapper shape nests levels
// under publico_unico.niveis; the flat shape is a top-level array. Both
// passes run and their outputs concatenate. Every record carries the
// caller's focus id.
func AudienceFromJSON(v any, focusID string) []Audience {
	var out []Audience

	if obj, ok := v.(map[string]any); ok {
		if niveis, ok := dig(obj, "publico_unico", "niveis").([]any); ok {
			for _, lvl := range niveis {
				m, ok := lvl.(map[string]any)
				if !ok {
					continue
				}
				out = append(out, audienceFromLevel(m, focusID))
			}
		}
	}

	if arr, ok := v.([]any); ok {
		for _, e := range arr {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, audienceFromFlat(m, focusID))
		}
	}

	return out
}

// audienceFromLevel handles one element of the publico_unico wrapper
// shape, which only ever used the localized field names.
func audienceFromLevel(m map[string]any, focusID string) Audience {
	return Audience{
		FocusID:     focusID,
		Name:        firstString(m, "nome", "name"),
		FunnelStage: funnelStage(firstString(m, "tipo")),
		Description: firstJoined(m, "descricao", "description"),
		Pains:       firstJoined(m, "dores"),
		Ambitions:   firstJoined(m, "desejos", "ambicoes"),
		Habits:      firstJoined(m, "habitos"),
		CommonEnemy: firstJoined(m, "inimigo_comum"),
	}
}

// audienceFromFlat handles one element of the flat-array shape, which
// mixes localized and English keys; the localized name wins when both
// are present.
func audienceFromFlat(m map[string]any, focusID string) Audience {
	stage := firstString(m, "tipo", "funnel_stage")
	return Audience{
		FocusID:     focusID,
		Name:        firstString(m, "nome", "name"),
		FunnelStage: funnelStage(stage),
		Description: firstJoined(m, "descricao", "description"),
		Pains:       firstJoined(m, "dores", "pains"),
		Ambitions:   firstJoined(m, "desejos", "ambicoes", "ambitions"),
		Habits:      firstJoined(m, "habitos", "habits"),
		CommonEnemy: firstJoined(m, "inimigo_comum", "common_enemy"),
	}
}
