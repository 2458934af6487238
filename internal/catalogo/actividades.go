package catalogo

import "strings"

// ActividadCatalogo: entrada del catálogo de actividades de un POA. El
// ordinal es la posición que los tokens de características de los detalles
// de tarea referencian ("3.1", "3.2", ... pertenecen a la actividad 3).
type ActividadCatalogo struct {
	Codigo      string `json:"codigo"`
	Ordinal     int    `json:"ordinal"`
	Descripcion string `json:"descripcion"`
}

// Catálogo institucional de actividades. El texto se repite entre algunas
// entradas, por eso existe la heurística de desambiguación del motor.
var catalogoActividades = []ActividadCatalogo{
	{Codigo: "ACT-01", Ordinal: 1, Descripcion: "(1) Contratación de personal de investigación"},
	{Codigo: "ACT-02", Ordinal: 2, Descripcion: "(2) Adquisición de equipos e insumos"},
	{Codigo: "ACT-03", Ordinal: 3, Descripcion: "(3) Salidas de campo y movilización"},
	{Codigo: "ACT-04", Ordinal: 4, Descripcion: "(4) Participación en eventos académicos"},
	{Codigo: "ACT-05", Ordinal: 5, Descripcion: "(5) Publicaciones y difusión de resultados"},
	{Codigo: "ACT-06", Ordinal: 6, Descripcion: "(6) Capacitación del equipo de investigación"},
	{Codigo: "ACT-07", Ordinal: 7, Descripcion: "(7) Servicios y gastos operativos"},
	{Codigo: "ACT-08", Ordinal: 8, Descripcion: "(8) Servicios y gastos operativos"},
}

// CatalogoActividades devuelve una copia del catálogo completo.
func CatalogoActividades() []ActividadCatalogo {
	out := make([]ActividadCatalogo, len(catalogoActividades))
	copy(out, catalogoActividades)
	return out
}

// IndiceCaracteristica elige qué token de Caracteristicas aplica según la
// familia del tipo de POA. Hay tres variantes históricas del catálogo: los
// proyectos de investigación usan el primer token, los de transferencia
// tecnológica el segundo y el resto (vinculación y demás) el tercero.
func IndiceCaracteristica(tipoPoa string) int {
	switch strings.ToUpper(strings.TrimSpace(tipoPoa)) {
	case "PIF", "PIS", "PIGR":
		return 0
	case "PTT":
		return 1
	default:
		return 2
	}
}

// OrdenarActividades reordena las descripciones según la posición de cada una
// en el catálogo; las que no aparecen en el catálogo quedan al final en su
// orden original.
func OrdenarActividades(descripciones []string) []string {
	posicion := make(map[string]int, len(catalogoActividades))
	for i, a := range catalogoActividades {
		if _, visto := posicion[a.Descripcion]; !visto {
			posicion[a.Descripcion] = i
		}
	}

	ordenadas := make([]string, 0, len(descripciones))
	var restantes []string
	for _, d := range descripciones {
		if _, ok := posicion[d]; ok {
			ordenadas = append(ordenadas, d)
		} else {
			restantes = append(restantes, d)
		}
	}
	for i := 0; i < len(ordenadas); i++ {
		for j := i + 1; j < len(ordenadas); j++ {
			if posicion[ordenadas[j]] < posicion[ordenadas[i]] {
				ordenadas[i], ordenadas[j] = ordenadas[j], ordenadas[i]
			}
		}
	}
	return append(ordenadas, restantes...)
}
