package programacion

import (
	"strings"
	"testing"

	"poa-backend/internal/models"
)

func TestValidarReemplazo(t *testing.T) {
	tarea := models.Tarea{
		Nombre:         "Asistente de investigación",
		Cantidad:       2,
		PrecioUnitario: 986,
		Total:          1972,
	}

	casos := []struct {
		nombre  string
		gastos  [12]float64
		valido  bool
		detalle string
	}{
		{
			nombre: "cronograma que cuadra con el total",
			gastos: [12]float64{986, 986},
			valido: true,
		},
		{
			nombre: "todo en cero vacía el cronograma sin exigir el cuadre",
			gastos: [12]float64{},
			valido: true,
		},
		{
			nombre:  "cronograma parcial se rechaza",
			gastos:  [12]float64{986},
			valido:  false,
			detalle: "faltan 986.00 por programar",
		},
		{
			nombre:  "cronograma excedido se rechaza",
			gastos:  [12]float64{986, 986, 100},
			valido:  false,
			detalle: "excede el total de la tarea (1972.00) por 100.00",
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := validarReemplazo(tarea, c.gastos)
			if c.valido {
				if err != nil {
					t.Fatalf("se esperaba aceptar el vector, error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("se esperaba rechazo")
			}
			if !strings.Contains(err.Error(), c.detalle) {
				t.Errorf("mensaje %q no contiene %q", err.Error(), c.detalle)
			}
		})
	}
}
