package planificacion

import (
	"testing"

	"poa-backend/internal/models"
)

func TestCrearProgramacionInicialOmiteMesesEnCero(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)

	creadas, err := r.CrearProgramacionInicial(1, [12]float64{500, 0, 0, 500})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creadas != 2 {
		t.Fatalf("creadas = %d, se esperaban 2", creadas)
	}
	filas, _ := almacen.ProgramacionPorTarea(1)
	if len(filas) != 2 {
		t.Fatalf("filas persistidas = %d", len(filas))
	}
	if filas[0].Mes != "01-2025" || filas[1].Mes != "04-2025" {
		t.Errorf("meses persistidos: %q, %q", filas[0].Mes, filas[1].Mes)
	}
}

func TestReemplazarProgramacionConjuntoVacio(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)
	if _, err := r.CrearProgramacionInicial(1, [12]float64{100, 200}); err != nil {
		t.Fatal(err)
	}

	creadas, err := r.ReemplazarProgramacion(1, [12]float64{})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creadas != 0 {
		t.Errorf("creadas = %d, se esperaba 0", creadas)
	}
	if almacen.eliminacionesProg != 1 {
		t.Errorf("eliminaciones = %d, se esperaba 1", almacen.eliminacionesProg)
	}
	filas, _ := almacen.ProgramacionPorTarea(1)
	if len(filas) != 0 {
		t.Errorf("quedaron %d filas tras el reemplazo vacío", len(filas))
	}
}

func TestReconciliarIncrementalSoloMesesCambiados(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)

	original := [12]float64{100, 200, 0, 300}
	if _, err := r.CrearProgramacionInicial(7, original); err != nil {
		t.Fatal(err)
	}
	existentes, _ := almacen.ProgramacionPorTarea(7)
	base := almacen.escrituras()

	// Solo cambia febrero (actualización) y marzo (mes nuevo)
	editado := original
	editado[1] = 250
	editado[2] = 50

	creadas, actualizadas, err := r.ReconciliarIncremental(7, original, editado, existentes)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creadas != 1 || actualizadas != 1 {
		t.Fatalf("creadas = %d, actualizadas = %d; se esperaba 1 y 1", creadas, actualizadas)
	}
	if got := almacen.escrituras() - base; got != 2 {
		t.Errorf("escrituras = %d, el resto de meses no debe tocarse", got)
	}
}

func TestReconciliarIncrementalSinCambiosNoEscribe(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)

	gastos := [12]float64{100, 0, 0, 0, 0, 0, 900}
	if _, err := r.CrearProgramacionInicial(3, gastos); err != nil {
		t.Fatal(err)
	}
	existentes, _ := almacen.ProgramacionPorTarea(3)
	base := almacen.escrituras()

	creadas, actualizadas, err := r.ReconciliarIncremental(3, gastos, gastos, existentes)
	if err != nil {
		t.Fatal(err)
	}
	if creadas != 0 || actualizadas != 0 || almacen.escrituras() != base {
		t.Errorf("un vector idéntico produjo escrituras: creadas=%d actualizadas=%d", creadas, actualizadas)
	}
}

func TestReconciliarIncrementalMesEnCeroNoElimina(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)

	original := [12]float64{100, 200}
	if _, err := r.CrearProgramacionInicial(5, original); err != nil {
		t.Fatal(err)
	}
	existentes, _ := almacen.ProgramacionPorTarea(5)

	editado := original
	editado[1] = 0

	creadas, actualizadas, err := r.ReconciliarIncremental(5, original, editado, existentes)
	if err != nil {
		t.Fatal(err)
	}
	if creadas != 0 || actualizadas != 0 {
		t.Errorf("un mes puesto a cero no debe generar escrituras (creadas=%d actualizadas=%d)", creadas, actualizadas)
	}
	if almacen.eliminacionesProg != 0 {
		t.Error("el registro previo del mes en cero no debe eliminarse")
	}
	filas, _ := almacen.ProgramacionPorTarea(5)
	if len(filas) != 2 {
		t.Errorf("quedaron %d filas, se esperaban 2", len(filas))
	}
}

func TestCrearProgramacionDuplicadaAbortaMesesRestantes(t *testing.T) {
	almacen := nuevoAlmacenFalso()
	r := NuevoReconciliador(almacen, 2025)

	previa := models.ProgramacionMensual{TareaID: 9, Mes: "02-2025", Valor: 50}
	if err := almacen.CrearProgramacion(&previa); err != nil {
		t.Fatal(err)
	}

	creadas, err := r.CrearProgramacionInicial(9, [12]float64{100, 200, 300})
	if err != ErrProgramacionDuplicada {
		t.Fatalf("error = %v, se esperaba ErrProgramacionDuplicada", err)
	}
	// Enero se creó antes del choque; marzo ya no se intenta
	if creadas != 1 {
		t.Errorf("creadas = %d, se esperaba 1", creadas)
	}
	filas, _ := almacen.ProgramacionPorTarea(9)
	if len(filas) != 2 {
		t.Errorf("filas = %d (la previa más enero)", len(filas))
	}
}
