// Package precios aplica la tabla de precios fijos institucionales para las
// tareas de contratación de servicios profesionales. Cuando se selecciona una
// de las descripciones tarifadas, el precio unitario manual queda anulado por
// el precio fijo.
package precios

import (
	"strings"

	"poa-backend/internal/planificacion"
)

const claveServiciosProfesionales = "contratación de servicios profesionales"

type precioFijo struct {
	Clave  string
	Precio float64
}

// Tabla fija; el orden importa: la coincidencia exacta se prueba primero y
// luego la parcial, en este mismo orden.
var preciosFijos = []precioFijo{
	{Clave: "asistente de investigación", Precio: 986},
	{Clave: "servicios profesionales 1", Precio: 1212},
	{Clave: "servicios profesionales 2", Precio: 1412},
	{Clave: "servicios profesionales 3", Precio: 1676},
}

// AplicarSiCorresponde devuelve una copia de la tarea con el precio fijo
// aplicado si el nombre del detalle indica contratación de servicios
// profesionales y la descripción coincide con una clave tarifada. En
// cualquier otro caso la tarea vuelve sin cambios: una descripción de
// servicios profesionales sin tarifa es una vía de escape deliberada para
// entradas del catálogo aún sin precio, y deja editable el precio manual.
// Nunca muta la tarea recibida.
func AplicarSiCorresponde(t planificacion.TareaEdicion, nombreDetalle, descripcionSeleccionada string) planificacion.TareaEdicion {
	nombre := strings.ToLower(strings.TrimSpace(nombreDetalle))
	if !strings.Contains(nombre, claveServiciosProfesionales) {
		return t
	}

	descripcion := strings.ToLower(strings.TrimSpace(descripcionSeleccionada))

	precio, encontrado := buscarPrecio(descripcion)
	if !encontrado {
		return t
	}

	resultado := t
	resultado.PrecioUnitario = precio
	resultado.Total = float64(resultado.Cantidad) * precio
	resultado.SaldoDisponible = resultado.Total
	return resultado
}

func buscarPrecio(descripcion string) (float64, bool) {
	for _, pf := range preciosFijos {
		if descripcion == pf.Clave {
			return pf.Precio, true
		}
	}
	for _, pf := range preciosFijos {
		if strings.Contains(descripcion, pf.Clave) {
			return pf.Precio, true
		}
	}
	return 0, false
}
