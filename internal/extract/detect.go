package extract

// Kind is the record category a detected JSON value belongs to.
type Kind string

const (
	KindNone         Kind = ""
	KindAudience     Kind = "audience"
	KindAudienceList Kind = "audience_list"
	KindPersona      Kind = "persona"
	KindProduct      Kind = "product"
)

var (
	audienceKeys = []string{"publico_unico", "niveis", "descricao_base"}
	personaKeys  = []string{"who_am_i", "quem_sou_eu", "tone_of_voice", "tom_de_voz", "beliefs", "crencas"}
	// Values carrying these wrappers belong to the richer persona-preview
	// path and are deliberately not claimed here.
	personaExcludeKeys = []string{"persona", "perfil_final_formatado", "hobbies_e_interesses"}
	productKeys        = []string{"produto", "benefits", "beneficios", "problem_solved", "problema_resolvido", "problema_que_resolve"}
)

// DetectType decides which record kind a previously extracted JSON value
// represents. The order matters: audience checks run before persona, so
// a value satisfying both is an audience. KindNone means "no confident
// match", not "invalid".
func DetectType(v any) Kind {
	obj, isObj := v.(map[string]any)

	if isObj && hasAny(obj, audienceKeys) {
		return KindAudience
	}

	if arr, ok := v.([]any); ok && isAudienceList(arr) {
		return KindAudienceList
	}

	if isObj && hasAny(obj, personaKeys) {
		if hasAny(obj, personaExcludeKeys) {
			return KindNone
		}
		return KindPersona
	}

	if isObj && hasAny(obj, productKeys) {
		return KindProduct
	}

	return KindNone
}

// isAudienceList recognises a flat array of audience levels: the first
// element must be named and carry at least one audience-ish field.
func isAudienceList(arr []any) bool {
	if len(arr) == 0 {
		return false
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return false
	}
	if !hasAny(first, []string{"nome", "name"}) {
		return false
	}
	return hasAny(first, []string{"tipo", "dores", "descricao"})
}

func hasAny(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}
