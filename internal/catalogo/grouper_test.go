package catalogo

import (
	"errors"
	"testing"

	"poa-backend/internal/models"
)

// buscadorDePrueba devuelve un BuscarItem sobre un mapa fijo y cuenta las
// llamadas que recibe.
func buscadorDePrueba(items map[uint]models.ItemPresupuestario, llamadas *int) BuscarItem {
	return func(id uint) (models.ItemPresupuestario, error) {
		if llamadas != nil {
			*llamadas++
		}
		item, ok := items[id]
		if !ok {
			return models.ItemPresupuestario{}, errors.New("item no encontrado")
		}
		return item, nil
	}
}

var itemsDePrueba = map[uint]models.ItemPresupuestario{
	1: {ID: 1, Codigo: "730601", Nombre: "Consultoría"},
	2: {ID: 2, Codigo: "730204", Nombre: "Impresión"},
	3: {ID: 3, Codigo: "840107", Nombre: "Equipos informáticos"},
}

func TestIndiceCaracteristica(t *testing.T) {
	casos := []struct {
		tipo   string
		indice int
	}{
		{"PIF", 0},
		{"PIS", 0},
		{"PIGR", 0},
		{"PTT", 1},
		{"PVIF", 2},
		{"ptt", 1},
		{" pif ", 0},
		{"", 2},
	}
	for _, c := range casos {
		if got := IndiceCaracteristica(c.tipo); got != c.indice {
			t.Errorf("IndiceCaracteristica(%q) = %d, se esperaba %d", c.tipo, got, c.indice)
		}
	}
}

func TestFiltrarPorActividadPorFamilia(t *testing.T) {
	// El mismo detalle no aplica a investigación, es "3.2" para transferencia
	// tecnológica y "5.1" para el resto
	detalle := models.DetalleTarea{
		ID:                   10,
		ItemPresupuestarioID: 1,
		Nombre:               "Consultoría externa",
		Caracteristicas:      "0; 3.2; 5.1",
	}

	buscar := buscadorDePrueba(itemsDePrueba, nil)

	if res := FiltrarPorActividad([]models.DetalleTarea{detalle}, 3, "PTT", buscar); len(res) != 1 {
		t.Errorf("PTT actividad 3: %d candidatos, se esperaba 1", len(res))
	}
	if res := FiltrarPorActividad([]models.DetalleTarea{detalle}, 3, "PVIF", buscar); len(res) != 0 {
		t.Errorf("PVIF actividad 3: %d candidatos, el token de su familia es 5.1", len(res))
	}
	if res := FiltrarPorActividad([]models.DetalleTarea{detalle}, 5, "PVIF", buscar); len(res) != 1 {
		t.Errorf("PVIF actividad 5: %d candidatos, se esperaba 1", len(res))
	}
	// Token "0": el detalle no aplica a la familia de investigación
	if res := FiltrarPorActividad([]models.DetalleTarea{detalle}, 3, "PIF", buscar); len(res) != 0 {
		t.Errorf("PIF: %d candidatos, el token 0 excluye", len(res))
	}
}

func TestFiltrarPorActividadOrdenNumerico(t *testing.T) {
	detalles := []models.DetalleTarea{
		{ID: 1, ItemPresupuestarioID: 1, Nombre: "B", Caracteristicas: "3.10; 0; 0"},
		{ID: 2, ItemPresupuestarioID: 2, Nombre: "A", Caracteristicas: "3.2; 0; 0"},
		{ID: 3, ItemPresupuestarioID: 3, Nombre: "C", Caracteristicas: "3.9; 0; 0"},
	}

	res := FiltrarPorActividad(detalles, 3, "PIF", buscadorDePrueba(itemsDePrueba, nil))
	if len(res) != 3 {
		t.Fatalf("candidatos = %d", len(res))
	}
	// Orden numérico por el valor del token, no lexicográfico: 3.10 < 3.2 < 3.9
	if res[0].Token != "3.10" || res[1].Token != "3.2" || res[2].Token != "3.9" {
		t.Errorf("orden: %s, %s, %s", res[0].Token, res[1].Token, res[2].Token)
	}
}

func TestFiltrarPorActividadCasosDegenerados(t *testing.T) {
	detalles := []models.DetalleTarea{
		// Menos de tres tokens: malformado, se ignora
		{ID: 1, ItemPresupuestarioID: 1, Nombre: "corto", Caracteristicas: "3.1; 0"},
		// Token no numérico
		{ID: 2, ItemPresupuestarioID: 1, Nombre: "raro", Caracteristicas: "3.x; 0; 0"},
		// Prefijo de otra actividad: "31.1" no es de la actividad 3
		{ID: 3, ItemPresupuestarioID: 1, Nombre: "ajeno", Caracteristicas: "31.1; 0; 0"},
		// Item irresoluble: se excluye solo este detalle
		{ID: 4, ItemPresupuestarioID: 99, Nombre: "huérfano", Caracteristicas: "3.1; 0; 0"},
		{ID: 5, ItemPresupuestarioID: 2, Nombre: "válido", Caracteristicas: "3.4; 0; 0"},
	}

	res := FiltrarPorActividad(detalles, 3, "PIF", buscadorDePrueba(itemsDePrueba, nil))
	if len(res) != 1 || res[0].Detalle.Nombre != "válido" {
		t.Fatalf("candidatos = %+v, solo el detalle válido debía pasar", res)
	}
}

func candidato(id uint, nombre, descripcion string, itemID uint) DetalleCandidato {
	return DetalleCandidato{
		Detalle: models.DetalleTarea{
			ID:                   id,
			Nombre:               nombre,
			Descripcion:          descripcion,
			ItemPresupuestarioID: itemID,
		},
		Item: itemsDePrueba[itemID],
	}
}

func TestAgruparDuplicadosAcumulaItems(t *testing.T) {
	// Mismo (nombre, descripción) con dos items distintos
	candidatos := []DetalleCandidato{
		candidato(1, "Impresión de pósters", "Formato A0", 1),
		candidato(2, "Impresión de pósters", "Formato A0", 2),
		candidato(3, "Alquiler de stand", "", 3),
	}

	res, err := AgruparDuplicados(candidatos, buscadorDePrueba(itemsDePrueba, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("grupos = %d", len(res))
	}

	posters := res[0]
	if !posters.TieneMultiplesItems {
		t.Error("el grupo con dos items debe marcarse tiene_multiples_items")
	}
	if len(posters.ItemsPresupuestarios) != 2 {
		t.Errorf("items acumulados = %d", len(posters.ItemsPresupuestarios))
	}
	if posters.DetalleID != 1 {
		t.Errorf("el grupo conserva el id del primer detalle, no %d", posters.DetalleID)
	}

	stand := res[1]
	if stand.TieneMultiplesItems || len(stand.ItemsPresupuestarios) != 1 {
		t.Errorf("grupo sin duplicados malformado: %+v", stand)
	}
}

func TestAgruparDuplicadosAcumulaDescripciones(t *testing.T) {
	// Mismo nombre y mismo primer item pero descripciones distintas: la fase 2
	// los fusiona y ofrece las variantes
	candidatos := []DetalleCandidato{
		candidato(1, "Servicios profesionales", "Servicios profesionales 1", 1),
		candidato(2, "Servicios profesionales", "Servicios profesionales 2", 1),
	}

	res, err := AgruparDuplicados(candidatos, buscadorDePrueba(itemsDePrueba, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("grupos = %d, se esperaba 1", len(res))
	}
	g := res[0]
	if !g.TieneMultiplesDescripciones {
		t.Error("debe marcarse tiene_multiples_descripciones")
	}
	if len(g.DescripcionesDisponibles) != 2 {
		t.Errorf("descripciones = %v", g.DescripcionesDisponibles)
	}
	if g.TieneMultiplesItems {
		t.Error("un solo item por grupo de fase 1; no debe marcarse múltiple")
	}
}

func TestAgruparDuplicadosFalloEstricto(t *testing.T) {
	candidatos := []DetalleCandidato{
		candidato(1, "Impresión de pósters", "Formato A0", 1),
		{Detalle: models.DetalleTarea{ID: 2, Nombre: "Roto", ItemPresupuestarioID: 99}},
	}

	_, err := AgruparDuplicados(candidatos, buscadorDePrueba(itemsDePrueba, nil))
	if err == nil {
		t.Fatal("un item irresoluble durante la fusión debe abortar la operación completa")
	}
}
