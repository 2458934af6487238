package planificacion

import (
	"strings"

	"poa-backend/internal/catalogo"
	"poa-backend/internal/models"
)

// ResolverOrdinalActividad mapea una actividad ya persistida de vuelta a su
// ordinal de catálogo. Hace falta porque dos entradas del catálogo pueden
// compartir exactamente el mismo texto de descripción. Resolución en cascada:
//  1. coincidencia de descripción no ambigua;
//  2. si es ambigua, el dígito inicial del nombre de la primera tarea de la
//     actividad (por convención los nombres de tarea llevan el ordinal de su
//     actividad como prefijo);
//  3. el prefijo numérico "(N) ..." embebido en la propia descripción;
//  4. el primer candidato ambiguo. Este último escalón es mejor-esfuerzo
//     documentado, no garantizado.
//
// Devuelve 0 si no hay forma de resolver.
func (m *Motor) ResolverOrdinalActividad(actividad models.Actividad, entradas []catalogo.ActividadCatalogo) int {
	descripcion := strings.TrimSpace(actividad.Descripcion)

	var candidatos []catalogo.ActividadCatalogo
	for _, e := range entradas {
		if strings.TrimSpace(e.Descripcion) == descripcion {
			candidatos = append(candidatos, e)
		}
	}

	if len(candidatos) == 1 {
		return candidatos[0].Ordinal
	}

	if len(candidatos) > 1 {
		if tareas, err := m.almacen.TareasPorActividad(actividad.ID); err == nil && len(tareas) > 0 {
			if n := digitoInicial(tareas[0].Nombre); n > 0 {
				for _, cand := range candidatos {
					if cand.Ordinal == n {
						return n
					}
				}
			}
		}
	}

	if n := prefijoNumerico(descripcion); n > 0 {
		if len(candidatos) == 0 {
			return n
		}
		for _, cand := range candidatos {
			if cand.Ordinal == n {
				return n
			}
		}
	}

	if len(candidatos) > 0 {
		return candidatos[0].Ordinal
	}
	return 0
}

// digitoInicial lee el número con que empieza la cadena ("3.2 Pasajes" → 3).
func digitoInicial(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// prefijoNumerico extrae N de una descripción con formato "(N) ...".
func prefijoNumerico(s string) int {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		return 0
	}
	cierre := strings.Index(s, ")")
	if cierre <= 1 {
		return 0
	}
	n := 0
	for _, r := range s[1:cierre] {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
