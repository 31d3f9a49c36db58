package normalize

import "testing"

func TestPersonaFromJSON_TopLevel(t *testing.T) {
	v := map[string]any{
		"quem_sou_eu": "Criador de conteúdo",
		"tom_de_voz":  "informal",
		"crencas":     []any{"consistência vence"},
		"nome":        "Lucas",
	}
	p := PersonaFromJSON(v, "f1")
	if p.FocusID != "f1" {
		t.Errorf("focus_id = %q", p.FocusID)
	}
	if p.WhoAmI != "Criador de conteúdo" {
		t.Errorf("who_am_i = %q", p.WhoAmI)
	}
	if p.ToneOfVoice != "informal" {
		t.Errorf("tone_of_voice = %q", p.ToneOfVoice)
	}
	if p.Name != "Lucas" {
		t.Errorf("name = %q", p.Name)
	}
	beliefs, ok := p.Beliefs.([]any)
	if !ok || len(beliefs) != 1 {
		t.Errorf("beliefs = %v, want retained array", p.Beliefs)
	}
}

func TestPersonaFromJSON_UnwrapsPersonaObject(t *testing.T) {
	v := map[string]any{
		"persona": map[string]any{
			"who_am_i": "inner",
		},
	}
	p := PersonaFromJSON(v, "f1")
	if p.WhoAmI != "inner" {
		t.Errorf("who_am_i = %q, want value from wrapped object", p.WhoAmI)
	}
}

func TestPersonaFromJSON_SynthesizedHatredList(t *testing.T) {
	v := map[string]any{
		"quem_sou_eu": "x",
		"missao_e_anti_herois": map[string]any{
			"contra_o_que_eu_luto": []any{"burocracia", "clickbait"},
		},
	}
	p := PersonaFromJSON(v, "f1")
	if len(p.HatredList) != 2 {
		t.Fatalf("hatred_list len = %d, want 2", len(p.HatredList))
	}
	first, ok := p.HatredList[0].(map[string]any)
	if !ok || first["item"] != "burocracia" {
		t.Errorf("hatred_list[0] = %v, want {item: burocracia}", p.HatredList[0])
	}
}

func TestPersonaFromJSON_SynthesizedObjectives(t *testing.T) {
	v := map[string]any{
		"quem_sou_eu": "x",
		"missao_e_anti_herois": map[string]any{
			"o_que_eu_busco": "liberdade criativa",
		},
	}
	p := PersonaFromJSON(v, "f1")
	if p.Objectives["missao"] != "liberdade criativa" {
		t.Errorf("objectives = %v", p.Objectives)
	}
}

func TestPersonaFromJSON_DirectFieldBeatsSynthesis(t *testing.T) {
	v := map[string]any{
		"quem_sou_eu": "x",
		"objetivos":   map[string]any{"meta": "10k"},
		"missao_e_anti_herois": map[string]any{
			"o_que_eu_busco": "ignored",
		},
	}
	p := PersonaFromJSON(v, "f1")
	if p.Objectives["meta"] != "10k" {
		t.Errorf("objectives = %v, want direct field", p.Objectives)
	}
}

// example_texts falls back to the top-level formatted profile, which
// older schemas emitted beside the persona wrapper, not inside it.
func TestPersonaFromJSON_ExampleTextsTopLevelFallback(t *testing.T) {
	v := map[string]any{
		"persona":                map[string]any{"who_am_i": "x"},
		"perfil_final_formatado": "## Perfil\ntexto",
	}
	p := PersonaFromJSON(v, "f1")
	if p.ExampleTexts != "## Perfil\ntexto" {
		t.Errorf("example_texts = %q", p.ExampleTexts)
	}
}

// Missing fields resolve to their empty shape, never to nothing.
func TestPersonaFromJSON_EmptyShapes(t *testing.T) {
	p := PersonaFromJSON(map[string]any{"who_am_i": "only this"}, "f1")

	if p.Name != "" || p.ToneOfVoice != "" || p.Story != "" || p.ExampleTexts != "" {
		t.Error("string fields should default to empty string")
	}
	if skills, ok := p.Skills.([]any); !ok || len(skills) != 0 {
		t.Errorf("skills = %v, want empty array", p.Skills)
	}
	if p.HatredList == nil || len(p.HatredList) != 0 {
		t.Errorf("hatred_list = %v, want empty array", p.HatredList)
	}
	if p.Objectives == nil || len(p.Objectives) != 0 {
		t.Errorf("objectives = %v, want empty object", p.Objectives)
	}
	if values, ok := p.Values.(map[string]any); !ok || len(values) != 0 {
		t.Errorf("values = %v, want empty object", p.Values)
	}
}
