package planificacion

import (
	"errors"

	"poa-backend/internal/models"

	"golang.org/x/sync/errgroup"
)

// Valor centinela mostrado cuando el item presupuestario de una tarea no se
// puede resolver; la carga no propaga el 404 crudo.
const CodigoItemNoDisponible = "-"

// CargarActividades arma el árbol de edición de un POA desde el almacén. Por
// cada tarea, la programación mensual y el item presupuestario se piden en
// paralelo y se espera a ambos antes de pasar a la siguiente tarea; es la
// única concurrencia intencional del flujo (las demás iteraciones son
// secuenciales para conservar el orden de inserción).
func (m *Motor) CargarActividades(poaID uint) ([]ActividadEdicion, error) {
	actividades, err := m.almacen.ActividadesPorPoa(poaID)
	if err != nil {
		return nil, err
	}

	arbol := make([]ActividadEdicion, 0, len(actividades))
	for _, act := range actividades {
		tareas, err := m.almacen.TareasPorActividad(act.ID)
		if err != nil {
			return nil, err
		}

		ediciones := make([]TareaEdicion, 0, len(tareas))
		for _, t := range tareas {
			var (
				filas []models.ProgramacionMensual
				item  models.ItemPresupuestario
			)

			g := new(errgroup.Group)
			tareaID := t.ID
			itemID := t.ItemPresupuestarioID
			g.Go(func() error {
				var err error
				filas, err = m.almacen.ProgramacionPorTarea(tareaID)
				return err
			})
			g.Go(func() error {
				var err error
				item, err = m.almacen.ObtenerItem(itemID)
				if errors.Is(err, ErrItemNoAsociado) || errors.Is(err, ErrTareaNoEncontrada) {
					item = models.ItemPresupuestario{Codigo: CodigoItemNoDisponible}
					return nil
				}
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}

			edicion := TareaEdicion{
				TareaID:              t.ID,
				DetalleTareaID:       t.DetalleTareaID,
				Nombre:               t.Nombre,
				Descripcion:          t.DetalleDescripcion,
				ItemPresupuestarioID: t.ItemPresupuestarioID,
				Cantidad:             t.Cantidad,
				PrecioUnitario:       t.PrecioUnitario,
				Total:                t.Total,
				SaldoDisponible:      t.SaldoDisponible,
				LineaPaiViiv:         t.LineaPaiViiv,
				CodigoItem:           item.Codigo,
			}
			for _, fila := range filas {
				if idx := IndiceMes(fila.Mes); idx >= 0 {
					edicion.GastosMensuales[idx] = fila.Valor
				}
			}
			ediciones = append(ediciones, edicion)
		}

		arbol = append(arbol, ActividadEdicion{
			IDActividadReal: act.ID,
			Descripcion:     act.Descripcion,
			Tareas:          ediciones,
		})
	}
	return arbol, nil
}
