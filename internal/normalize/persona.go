package normalize

// Persona is the canonical persona record. Several fields keep their
// object or array shape: downstream rendering consumes them structured,
// so flattening them here would lose information.
type Persona struct {
	FocusID         string         `json:"focus_id"`
	Name            string         `json:"name"`
	WhoAmI          string         `json:"who_am_i"`
	Skills          any            `json:"skills"`
	Hobbies         any            `json:"hobbies"`
	Beliefs         any            `json:"beliefs"`
	ToneOfVoice     string         `json:"tone_of_voice"`
	ThoughtsPhrases any            `json:"thoughts_phrases"`
	ExampleTexts    string         `json:"example_texts"`
	HatredList      []any          `json:"hatred_list"`
	Story           string         `json:"story"`
	Values          any            `json:"values"`
	Objectives      map[string]any `json:"objectives"`
	Identity        any            `json:"identity"`
}

// PersonaFromJSON maps a classified persona value to the canonical shape.
// A persona sub-object is unwrapped when present; otherwise the top-level
// value is used directly. Missing fields resolve to the field's empty
// shape, never to nothing.
func PersonaFromJSON(v any, focusID string) Persona {
	top, ok := v.(map[string]any)
	if !ok {
		top = map[string]any{}
	}

	src := top
	if inner, ok := top["persona"].(map[string]any); ok {
		src = inner
	}

	p := Persona{
		FocusID:         focusID,
		Name:            firstString(src, "nome", "name"),
		WhoAmI:          firstJoined(src, "quem_sou_eu", "who_am_i"),
		Skills:          firstShaped(src, []any{}, "habilidades", "skills"),
		Hobbies:         firstShaped(src, []any{}, "hobbies_e_interesses", "hobbies"),
		Beliefs:         firstShaped(src, []any{}, "crencas", "beliefs"),
		ToneOfVoice:     firstJoined(src, "tom_de_voz", "tone_of_voice"),
		ThoughtsPhrases: firstShaped(src, []any{}, "pensamentos_e_frases", "frases_pensamentos", "thoughts_phrases"),
		Story:           firstJoined(src, "minha_historia", "historia", "story"),
		Values:          firstShaped(src, map[string]any{}, "valores", "values"),
		Identity:        firstShaped(src, map[string]any{}, "identidade", "identity"),
	}

	p.HatredList = hatredList(src)
	p.Objectives = objectives(src)

	// example_texts falls back to the top-level formatted profile, which
	// older schema versions emitted beside the persona wrapper.
	p.ExampleTexts = firstJoined(src, "textos_de_exemplo", "example_texts")
	if p.ExampleTexts == "" {
		p.ExampleTexts = firstJoined(top, "perfil_final_formatado")
	}

	return p
}

// firstShaped resolves a field that keeps its structured shape, falling
// back to the supplied empty shape when no source key is present.
func firstShaped(obj map[string]any, empty any, keys ...string) any {
	if v, ok := firstValue(obj, keys...); ok {
		return v
	}
	return empty
}

// hatredList resolves the hatred list directly, or synthesizes it from
// the mission block by wrapping each fought-against string as an item.
func hatredList(src map[string]any) []any {
	if v, ok := firstValue(src, "lista_de_odio", "hatred_list"); ok {
		if arr, ok := v.([]any); ok {
			return arr
		}
	}
	if fights, ok := dig(src, "missao_e_anti_herois", "contra_o_que_eu_luto").([]any); ok {
		out := make([]any, 0, len(fights))
		for _, f := range fights {
			if s, ok := f.(string); ok {
				out = append(out, map[string]any{"item": s})
			}
		}
		return out
	}
	return []any{}
}

// objectives resolves objectives directly, or synthesizes them from the
// mission block's o_que_eu_busco value.
func objectives(src map[string]any) map[string]any {
	if v, ok := firstValue(src, "objetivos", "objectives"); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	if seek := dig(src, "missao_e_anti_herois", "o_que_eu_busco"); seek != nil {
		return map[string]any{"missao": seek}
	}
	return map[string]any{}
}
