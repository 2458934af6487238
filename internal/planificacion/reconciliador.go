package planificacion

import (
	"fmt"
	"strconv"

	"poa-backend/internal/models"
)

// FormatearMes devuelve la clave de mes persistida, formato "MM-YYYY".
func FormatearMes(indice int, anio int) string {
	return fmt.Sprintf("%02d-%d", indice+1, anio)
}

// IndiceMes deshace FormatearMes; devuelve -1 si la clave no es válida.
func IndiceMes(mes string) int {
	if len(mes) < 3 || mes[2] != '-' {
		return -1
	}
	m, err := strconv.Atoi(mes[:2])
	if err != nil || m < 1 || m > 12 {
		return -1
	}
	return m - 1
}

// Reconciliador mantiene consistente la programación mensual persistida de
// una tarea frente a su vector de 12 meses en el árbol de edición.
type Reconciliador struct {
	almacen Almacen
	anio    int // año calendario usado en las claves "MM-YYYY"
}

func NuevoReconciliador(almacen Almacen, anio int) *Reconciliador {
	return &Reconciliador{almacen: almacen, anio: anio}
}

// CrearProgramacionInicial: camino de tarea nueva. Crea un registro por cada
// mes con valor positivo; los meses en cero se omiten por completo.
// Un fallo en un mes aborta los meses restantes; lo ya creado queda.
func (r *Reconciliador) CrearProgramacionInicial(tareaID uint, gastos [12]float64) (int, error) {
	creadas := 0
	for i, valor := range gastos {
		if valor <= 0 {
			continue
		}
		p := models.ProgramacionMensual{
			TareaID: tareaID,
			Mes:     FormatearMes(i, r.anio),
			Valor:   valor,
		}
		if err := r.almacen.CrearProgramacion(&p); err != nil {
			return creadas, err
		}
		creadas++
	}
	return creadas, nil
}

// ReemplazarProgramacion: reescritura completa del cronograma. Borra todo lo
// de la tarea y recrea los meses positivos; si el conjunto resultante queda
// vacío, solo borra y reporta cero creaciones.
func (r *Reconciliador) ReemplazarProgramacion(tareaID uint, gastos [12]float64) (int, error) {
	if err := r.almacen.EliminarProgramacionDeTarea(tareaID); err != nil {
		return 0, err
	}
	return r.CrearProgramacionInicial(tareaID, gastos)
}

// ReconciliarIncremental: camino de edición. Compara mes a mes el vector
// editado contra el original; los meses sin cambio no generan ninguna
// operación, de modo que el número de escrituras queda acotado por los meses
// realmente cambiados, nunca por 12. Un mes cambiado a un valor positivo se
// actualiza si ya tenía registro o se crea si no lo tenía. Un mes editado a
// cero se deja tal cual: el registro previo no se elimina; quien quiera
// quitar meses usa el reemplazo completo.
func (r *Reconciliador) ReconciliarIncremental(tareaID uint, original, editado [12]float64, existentes []models.ProgramacionMensual) (creadas, actualizadas int, err error) {
	porMes := make(map[int]models.ProgramacionMensual, len(existentes))
	for _, p := range existentes {
		if idx := IndiceMes(p.Mes); idx >= 0 {
			porMes[idx] = p
		}
	}

	for i := 0; i < 12; i++ {
		if original[i] == editado[i] {
			continue
		}
		if editado[i] <= 0 {
			continue
		}
		if previa, existe := porMes[i]; existe {
			if err := r.almacen.ActualizarProgramacion(previa.ID, editado[i]); err != nil {
				return creadas, actualizadas, err
			}
			actualizadas++
			continue
		}
		p := models.ProgramacionMensual{
			TareaID: tareaID,
			Mes:     FormatearMes(i, r.anio),
			Valor:   editado[i],
		}
		if err := r.almacen.CrearProgramacion(&p); err != nil {
			return creadas, actualizadas, err
		}
		creadas++
	}
	return creadas, actualizadas, nil
}
