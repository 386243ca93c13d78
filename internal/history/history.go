// Package history maneja la lista de títulos vistos. La lista es del
// cliente: entra con el request y sale en la respuesta; el motor de
// recomendaciones no la lee ni la escribe.
package history

// MaxLen límite de entradas que se devuelven (se descartan las más viejas).
const MaxLen = 50

// Push agrega title al final salvo que ya sea la última entrada.
// No modifica el slice recibido.
func Push(list []string, title string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	if title == "" || (len(out) > 0 && out[len(out)-1] == title) {
		return trim(out)
	}
	return trim(append(out, title))
}

// Reverse devuelve la lista de más nuevo a más viejo.
func Reverse(list []string) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[len(list)-1-i] = t
	}
	return out
}

func trim(list []string) []string {
	if len(list) > MaxLen {
		return list[len(list)-MaxLen:]
	}
	return list
}
