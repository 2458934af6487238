package catalogo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"poa-backend/internal/models"
)

// BuscarItem resuelve un item presupuestario por id; normalmente respaldada
// por el caché de sesión.
type BuscarItem func(id uint) (models.ItemPresupuestario, error)

// DetalleCandidato: detalle del catálogo que pasó el filtro de actividad,
// con su item presupuestario ya resuelto y el valor numérico del token usado
// para ordenar ("3.2" → 3.2).
type DetalleCandidato struct {
	Detalle    models.DetalleTarea
	Item       models.ItemPresupuestario
	Token      string
	OrdenToken float64
}

// DetalleAgrupado: salida lista para la interfaz, con duplicados fusionados.
type DetalleAgrupado struct {
	DetalleID                   uint                        `json:"detalle_id"`
	Nombre                      string                      `json:"nombre"`
	Descripcion                 string                      `json:"descripcion"`
	ItemsPresupuestarios        []models.ItemPresupuestario `json:"items_presupuestarios"`
	TieneMultiplesItems         bool                        `json:"tiene_multiples_items"`
	DescripcionesDisponibles    []string                    `json:"descripciones_disponibles,omitempty"`
	TieneMultiplesDescripciones bool                        `json:"tiene_multiples_descripciones"`
}

// FiltrarPorActividad selecciona los detalles que pertenecen a la actividad
// dada según el token de características de la familia del tipo de POA.
// Un token "0" significa que el detalle no aplica; en otro caso el token debe
// empezar con "{ordinal}.". El resultado queda ordenado numéricamente por el
// valor completo del token, ascendente. Si la búsqueda del item de un detalle
// falla, se excluye solo ese detalle.
func FiltrarPorActividad(detalles []models.DetalleTarea, ordinal int, tipoPoa string, buscar BuscarItem) []DetalleCandidato {
	indice := IndiceCaracteristica(tipoPoa)
	prefijo := fmt.Sprintf("%d.", ordinal)

	var candidatos []DetalleCandidato
	for _, d := range detalles {
		tokens := strings.Split(d.Caracteristicas, "; ")
		if len(tokens) != 3 {
			continue
		}
		token := strings.TrimSpace(tokens[indice])
		if token == "0" || !strings.HasPrefix(token, prefijo) {
			continue
		}
		orden, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		item, err := buscar(d.ItemPresupuestarioID)
		if err != nil {
			// Tolerante: un item irresoluble excluye solo su detalle
			continue
		}
		candidatos = append(candidatos, DetalleCandidato{
			Detalle:    d,
			Item:       item,
			Token:      token,
			OrdenToken: orden,
		})
	}

	sort.SliceStable(candidatos, func(i, j int) bool {
		return candidatos[i].OrdenToken < candidatos[j].OrdenToken
	})
	return candidatos
}

// AgruparDuplicados fusiona los candidatos en dos fases. Fase 1: detalles con
// (nombre, descripción) idénticos se fusionan y sus items presupuestarios
// distintos se acumulan. Fase 2: el resultado se reagrupa por (nombre, id del
// primer item) y las descripciones no vacías distintas se acumulan. A
// diferencia del filtrado, aquí un fallo de búsqueda aborta toda la
// operación: no hay tolerancia a resultados parciales durante la fusión.
func AgruparDuplicados(candidatos []DetalleCandidato, buscar BuscarItem) ([]DetalleAgrupado, error) {
	// Fase 1: (nombre, descripción)
	type grupo1 struct {
		primero  DetalleCandidato
		items    []models.ItemPresupuestario
		miembros int
	}
	var orden1 []string
	grupos1 := make(map[string]*grupo1)
	for _, c := range candidatos {
		clave := c.Detalle.Nombre + "\x00" + c.Detalle.Descripcion
		item, err := buscar(c.Detalle.ItemPresupuestarioID)
		if err != nil {
			return nil, fmt.Errorf("no se pudo resolver el item presupuestario del detalle %q: %w", c.Detalle.Nombre, err)
		}
		g, existe := grupos1[clave]
		if !existe {
			g = &grupo1{primero: c}
			grupos1[clave] = g
			orden1 = append(orden1, clave)
		}
		g.miembros++
		if !contieneItem(g.items, item.ID) {
			g.items = append(g.items, item)
		}
	}

	fase1 := make([]DetalleAgrupado, 0, len(orden1))
	for _, clave := range orden1 {
		g := grupos1[clave]
		fase1 = append(fase1, DetalleAgrupado{
			DetalleID:            g.primero.Detalle.ID,
			Nombre:               g.primero.Detalle.Nombre,
			Descripcion:          g.primero.Detalle.Descripcion,
			ItemsPresupuestarios: g.items,
			TieneMultiplesItems:  g.miembros > 1,
		})
	}

	// Fase 2: (nombre, id del primer item)
	type grupo2 struct {
		primero       DetalleAgrupado
		descripciones []string
		miembros      int
	}
	var orden2 []string
	grupos2 := make(map[string]*grupo2)
	for _, d := range fase1 {
		var primerItem uint
		if len(d.ItemsPresupuestarios) > 0 {
			primerItem = d.ItemsPresupuestarios[0].ID
		}
		clave := fmt.Sprintf("%s\x00%d", d.Nombre, primerItem)
		g, existe := grupos2[clave]
		if !existe {
			g = &grupo2{primero: d}
			grupos2[clave] = g
			orden2 = append(orden2, clave)
		}
		g.miembros++
		if d.Descripcion != "" && !contieneCadena(g.descripciones, d.Descripcion) {
			g.descripciones = append(g.descripciones, d.Descripcion)
		}
	}

	resultado := make([]DetalleAgrupado, 0, len(orden2))
	for _, clave := range orden2 {
		g := grupos2[clave]
		salida := g.primero
		if g.miembros > 1 {
			salida.DescripcionesDisponibles = g.descripciones
			salida.TieneMultiplesDescripciones = true
		}
		resultado = append(resultado, salida)
	}
	return resultado, nil
}

func contieneItem(items []models.ItemPresupuestario, id uint) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func contieneCadena(lista []string, s string) bool {
	for _, v := range lista {
		if v == s {
			return true
		}
	}
	return false
}
