package precios

import (
	"testing"

	"poa-backend/internal/planificacion"
)

func tareaBase(precioManual float64) planificacion.TareaEdicion {
	return planificacion.TareaEdicion{
		Nombre:          "Contratación de servicios profesionales",
		Cantidad:        3,
		PrecioUnitario:  precioManual,
		Total:           3 * precioManual,
		SaldoDisponible: 3 * precioManual,
	}
}

func TestAplicarSiCorrespondeTabla(t *testing.T) {
	casos := []struct {
		descripcion string
		precio      float64
	}{
		{"Asistente de investigación", 986},
		{"Servicios profesionales 1", 1212},
		{"Servicios profesionales 2", 1412},
		{"Servicios profesionales 3", 1676},
	}

	for _, c := range casos {
		t.Run(c.descripcion, func(t *testing.T) {
			res := AplicarSiCorresponde(tareaBase(50), "Contratación de servicios profesionales", c.descripcion)
			if res.PrecioUnitario != c.precio {
				t.Errorf("precio = %.2f, se esperaba %.2f", res.PrecioUnitario, c.precio)
			}
			if res.Total != 3*c.precio {
				t.Errorf("total = %.2f, se esperaba %.2f", res.Total, 3*c.precio)
			}
			if res.SaldoDisponible != res.Total {
				t.Errorf("saldo = %.2f, debe igualar el total", res.SaldoDisponible)
			}
		})
	}
}

// El precio fijo es determinista: no depende del precio manual previo ni de
// cuántas veces se aplique.
func TestAplicarSiCorrespondeDeterminista(t *testing.T) {
	primera := AplicarSiCorresponde(tareaBase(1), "contratación de servicios profesionales", "Servicios profesionales 2")
	segunda := AplicarSiCorresponde(tareaBase(9999), "contratación de servicios profesionales", "Servicios profesionales 2")
	reaplicada := AplicarSiCorresponde(primera, "contratación de servicios profesionales", "Servicios profesionales 2")

	for _, res := range []planificacion.TareaEdicion{primera, segunda, reaplicada} {
		if res.PrecioUnitario != 1412 {
			t.Errorf("precio = %.2f, se esperaba 1412 sin importar el precio previo", res.PrecioUnitario)
		}
	}
}

func TestAplicarSiCorrespondeNoMuta(t *testing.T) {
	original := tareaBase(50)
	_ = AplicarSiCorresponde(original, "Contratación de servicios profesionales", "Servicios profesionales 3")
	if original.PrecioUnitario != 50 || original.Total != 150 {
		t.Errorf("la tarea de entrada fue mutada: precio=%.2f total=%.2f", original.PrecioUnitario, original.Total)
	}
}

func TestAplicarSiCorrespondeViasDeEscape(t *testing.T) {
	// Detalle que no es de servicios profesionales: el precio manual se respeta
	otra := AplicarSiCorresponde(tareaBase(75), "Adquisición de reactivos", "Asistente de investigación")
	if otra.PrecioUnitario != 75 {
		t.Errorf("un detalle ajeno a servicios profesionales cambió el precio a %.2f", otra.PrecioUnitario)
	}

	// Descripción de servicios profesionales sin tarifa en la tabla: editable
	sinTarifa := AplicarSiCorresponde(tareaBase(75), "Contratación de servicios profesionales", "Consultoría especializada")
	if sinTarifa.PrecioUnitario != 75 {
		t.Errorf("una descripción sin tarifa cambió el precio a %.2f", sinTarifa.PrecioUnitario)
	}
}

func TestAplicarSiCorrespondeCoincidenciaParcial(t *testing.T) {
	res := AplicarSiCorresponde(tareaBase(10), "Contratación de servicios profesionales",
		"Servicios profesionales 2 (medio tiempo)")
	if res.PrecioUnitario != 1412 {
		t.Errorf("precio = %.2f, la coincidencia parcial debe tarifar 1412", res.PrecioUnitario)
	}
}
