// Package presupuesto reúne los cálculos puros de totales y saldos que
// alimentan la validación en vivo del formulario de planificación. Ninguna
// función toca la red ni la base de datos.
package presupuesto

import (
	"fmt"

	"poa-backend/internal/models"
	"poa-backend/internal/planificacion"
)

// TotalActividad: suma de los totales de las tareas de una actividad.
func TotalActividad(tareas []planificacion.TareaEdicion) float64 {
	total := 0.0
	for _, t := range tareas {
		total += t.Total
	}
	return total
}

// TotalPlanificadoPoa: suma de los totales de actividad de un POA.
func TotalPlanificadoPoa(actividades []planificacion.ActividadEdicion) float64 {
	total := 0.0
	for _, a := range actividades {
		total += TotalActividad(a.Tareas)
	}
	return total
}

// PresupuestoRestante: aprobado − ya asignado en otros POAs − asignado actual.
func PresupuestoRestante(aprobado, asignadoOtrosPoas, asignadoActual float64) float64 {
	return aprobado - asignadoOtrosPoas - asignadoActual
}

// AsignadoEnOtrosPoas suma el presupuesto asignado de los POAs del proyecto
// que no están en revisión. En modo edición se excluyen los POAs cuyo año
// fiscal pertenece al conjunto de períodos abiertos en la sesión, para no
// contar dos veces presupuesto que se está revisando.
func AsignadoEnOtrosPoas(poas []models.Poa, aniosEnEdicion map[int]bool) float64 {
	total := 0.0
	for _, p := range poas {
		if aniosEnEdicion[p.AnioEjecucion] {
			continue
		}
		total += p.PresupuestoAsignado
	}
	return total
}

// ValidarTechoProyecto aplica la regla dura al crear o editar un POA: la suma
// de presupuestos asignados de todos los POAs del proyecto, con el monto
// nuevo del POA editado, no puede superar el presupuesto aprobado.
// poaEditadoID en 0 significa POA nuevo.
func ValidarTechoProyecto(presupuestoAprobado float64, poasExistentes []models.Poa, poaEditadoID uint, nuevoMonto float64) error {
	suma := nuevoMonto
	for _, p := range poasExistentes {
		if p.ID == poaEditadoID {
			continue
		}
		suma += p.PresupuestoAsignado
	}
	if suma > presupuestoAprobado+planificacion.Tolerancia {
		return fmt.Errorf("la suma de presupuestos asignados (%.2f) supera el presupuesto aprobado del proyecto (%.2f)", suma, presupuestoAprobado)
	}
	return nil
}

// ExcedePlanificado indica si el total planificado supera el presupuesto
// asignado del POA. Es una advertencia para la interfaz, no bloquea el guardado.
func ExcedePlanificado(presupuestoAsignado, totalPlanificado float64) bool {
	return totalPlanificado > presupuestoAsignado+planificacion.Tolerancia
}
