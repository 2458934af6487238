package planificacion

import (
	"errors"
	"fmt"

	"poa-backend/internal/models"
)

// ResultadoGuardado: contrato único de salida del guardado masivo. El caller
// siempre recibe este objeto, nunca un error crudo, y con él muestra el
// resumen de éxito o un solo mensaje de error. Ante un fallo a mitad de
// secuencia, los totales reflejan lo ya confirmado en el servidor para fines
// de diagnóstico: no hay rollback.
type ResultadoGuardado struct {
	Exito                      bool         `json:"exito"`
	Datos                      []PoaEdicion `json:"datos,omitempty"`
	TotalActividadesCreadas    int          `json:"total_actividades_creadas"`
	TotalTareasCreadas         int          `json:"total_tareas_creadas"`
	TotalProgramacionesCreadas int          `json:"total_programaciones_creadas"`
	Error                      string       `json:"error,omitempty"`
	// Código del POA cuya tarea provocó el error de validación, para que la
	// interfaz cambie a esa pestaña.
	PoaConError string `json:"poa_con_error,omitempty"`
}

// ResultadoEdicion: contrato de salida del flujo de edición.
type ResultadoEdicion struct {
	Exito                           bool   `json:"exito"`
	TotalTareasCreadas              int    `json:"total_tareas_creadas"`
	TotalTareasActualizadas         int    `json:"total_tareas_actualizadas"`
	TotalProgramacionesCreadas      int    `json:"total_programaciones_creadas"`
	TotalProgramacionesActualizadas int    `json:"total_programaciones_actualizadas"`
	Error                           string `json:"error,omitempty"`
}

// Motor orquesta el guardado del árbol POA → Actividad → Tarea contra el
// almacén. Las secuencias de escritura son estrictamente ordenadas
// (actividades, luego tareas, luego programaciones) porque cada POST depende
// del id devuelto por el anterior; el primer fallo detiene el avance y lo ya
// confirmado queda en el servidor.
type Motor struct {
	almacen       Almacen
	reconciliador *Reconciliador
}

func NuevoMotor(almacen Almacen, anio int) *Motor {
	return &Motor{
		almacen:       almacen,
		reconciliador: NuevoReconciliador(almacen, anio),
	}
}

func (m *Motor) Reconciliador() *Reconciliador {
	return m.reconciliador
}

// GuardarActividades: flujo de creación. Valida todo el árbol antes de tocar
// el almacén; luego, por cada POA, crea las actividades en lote, mapea los
// ids devueltos posicionalmente sobre el árbol, crea las tareas en orden y la
// programación mensual de cada una. Las tareas con cantidad 0 se omiten (son
// filas del formulario sin seleccionar).
func (m *Motor) GuardarActividades(poas []PoaEdicion) ResultadoGuardado {
	// Fase de validación: ningún error de esta fase llega al almacén
	for _, poa := range poas {
		for _, act := range poa.Actividades {
			for _, t := range act.Tareas {
				if t.Cantidad <= 0 {
					continue
				}
				if err := ValidarTotalTarea(t); err != nil {
					return resultadoInvalido(t, poa, err)
				}
				if SumaGastos(t.GastosMensuales) <= Tolerancia {
					return resultadoInvalido(t, poa, fmt.Errorf("no tiene programación mensual asignada"))
				}
				if err := ValidarProgramacionTarea(t); err != nil {
					return resultadoInvalido(t, poa, err)
				}
			}
		}
	}

	resultado := ResultadoGuardado{}

	for pi := range poas {
		poa := &poas[pi]

		// Solo entran al lote las actividades con al menos una tarea
		// seleccionada; una actividad cuyo formulario quedó sin marcar no se
		// persiste vacía.
		lote := make([]models.Actividad, 0, len(poa.Actividades))
		var posiciones []int
		for j, act := range poa.Actividades {
			if !tieneTareasSeleccionadas(act.Tareas) {
				continue
			}
			total := totalTareasSeleccionadas(act.Tareas)
			lote = append(lote, models.Actividad{
				Descripcion:       act.Descripcion,
				TotalPorActividad: total,
				SaldoActividad:    total,
			})
			posiciones = append(posiciones, j)
		}
		if len(lote) == 0 {
			continue
		}

		creadas, err := m.almacen.CrearActividades(poa.PoaID, lote)
		if err != nil {
			resultado.Error = fmt.Sprintf("no se pudieron crear las actividades del POA %s: %v", poa.CodigoPoa, err)
			return resultado
		}
		// Chequeo defensivo: el mapeo de ids es posicional, así que la cuenta
		// debe coincidir exactamente. Un desfase silencioso corrompería el árbol.
		if len(creadas) != len(lote) {
			resultado.Error = fmt.Sprintf("se esperaban %d actividades creadas para el POA %s pero se recibieron %d", len(lote), poa.CodigoPoa, len(creadas))
			return resultado
		}
		for k, j := range posiciones {
			poa.Actividades[j].IDActividadReal = creadas[k].ID
		}
		resultado.TotalActividadesCreadas += len(creadas)

		for j := range poa.Actividades {
			act := &poa.Actividades[j]
			for k := range act.Tareas {
				t := &act.Tareas[k]
				if t.Cantidad <= 0 {
					continue
				}

				modelo := models.Tarea{
					ActividadID:          act.IDActividadReal,
					DetalleTareaID:       t.DetalleTareaID,
					Nombre:               t.Nombre,
					DetalleDescripcion:   t.Descripcion,
					ItemPresupuestarioID: t.ItemPresupuestarioID,
					Cantidad:             t.Cantidad,
					PrecioUnitario:       t.PrecioUnitario,
					Total:                t.Total,
					SaldoDisponible:      t.Total,
					LineaPaiViiv:         t.LineaPaiViiv,
				}
				if err := m.almacen.CrearTarea(&modelo); err != nil {
					resultado.Error = traducirError(err)
					return resultado
				}
				t.TareaID = modelo.ID
				resultado.TotalTareasCreadas++

				n, err := m.reconciliador.CrearProgramacionInicial(modelo.ID, t.GastosMensuales)
				resultado.TotalProgramacionesCreadas += n
				if err != nil {
					resultado.Error = traducirError(err)
					return resultado
				}
			}
		}
	}

	resultado.Exito = true
	resultado.Datos = poas
	return resultado
}

// EditarTareas: flujo de edición. Reconstruye la instantánea original desde
// el almacén, compara con la copia de trabajo y solo escribe lo que cambió:
// una tarea sin id real se crea (su actividad debe existir ya), una tarea con
// cambios se actualiza en sus campos editables, y si cambió su vector mensual
// se reconcilia incrementalmente. Las tareas sin cambios no generan ninguna
// llamada.
func (m *Motor) EditarTareas(editado []PoaEdicion) ResultadoEdicion {
	resultado := ResultadoEdicion{}

	// Validación previa, sin tocar el almacén. El cuadre de la programación
	// mensual contra el total solo se exige a las tareas nuevas: son las que
	// entran por el camino de creación. Una tarea ya persistida puede cambiar
	// cantidad o precio sin tocar su cronograma.
	for _, poa := range editado {
		for _, act := range poa.Actividades {
			for _, t := range act.Tareas {
				if err := ValidarTotalTarea(t); err != nil {
					resultado.Error = fmt.Sprintf("la tarea %q no es válida: %v", t.Nombre, err)
					return resultado
				}
				if t.TareaID != 0 {
					continue
				}
				if err := ValidarProgramacionTarea(t); err != nil {
					resultado.Error = fmt.Sprintf("la tarea %q no es válida: %v", t.Nombre, err)
					return resultado
				}
			}
		}
	}

	original, programacionExistente, err := m.instantaneaDesdeAlmacen(editado)
	if err != nil {
		resultado.Error = traducirError(err)
		return resultado
	}

	cambios := CompararArboles(original, editado)
	for _, ca := range cambios {
		for _, cambio := range ca.Cambios {
			switch cambio.Estado {
			case TareaSinCambios:
				// Idempotencia: repetir el diff sobre un árbol sin cambios
				// no produce ninguna escritura
				continue

			case TareaNueva:
				if ca.IDActividadReal == 0 {
					resultado.Error = fmt.Sprintf("no se puede crear la tarea %q: su actividad aún no está persistida", cambio.Tarea.Nombre)
					return resultado
				}
				t := cambio.Tarea
				modelo := models.Tarea{
					ActividadID:          ca.IDActividadReal,
					DetalleTareaID:       t.DetalleTareaID,
					Nombre:               t.Nombre,
					DetalleDescripcion:   t.Descripcion,
					ItemPresupuestarioID: t.ItemPresupuestarioID,
					Cantidad:             t.Cantidad,
					PrecioUnitario:       t.PrecioUnitario,
					Total:                t.Total,
					SaldoDisponible:      t.Total,
					LineaPaiViiv:         t.LineaPaiViiv,
				}
				if err := m.almacen.CrearTarea(&modelo); err != nil {
					resultado.Error = traducirError(err)
					return resultado
				}
				resultado.TotalTareasCreadas++
				n, err := m.reconciliador.CrearProgramacionInicial(modelo.ID, t.GastosMensuales)
				resultado.TotalProgramacionesCreadas += n
				if err != nil {
					resultado.Error = traducirError(err)
					return resultado
				}

			case TareaModificada:
				t := cambio.Tarea
				if cambio.CamposEditados {
					err := m.almacen.ActualizarTarea(t.TareaID, t.Cantidad, t.PrecioUnitario, t.Total, t.LineaPaiViiv)
					if err != nil {
						resultado.Error = traducirError(err)
						return resultado
					}
					resultado.TotalTareasActualizadas++
				}
				if cambio.ProgramacionCambiada {
					var gastosOriginales [12]float64
					if cambio.Original != nil {
						gastosOriginales = cambio.Original.GastosMensuales
					}
					creadas, actualizadas, err := m.reconciliador.ReconciliarIncremental(
						t.TareaID, gastosOriginales, t.GastosMensuales, programacionExistente[t.TareaID])
					resultado.TotalProgramacionesCreadas += creadas
					resultado.TotalProgramacionesActualizadas += actualizadas
					if err != nil {
						resultado.Error = traducirError(err)
						return resultado
					}
				}
			}
		}
	}

	resultado.Exito = true
	return resultado
}

// instantaneaDesdeAlmacen reconstruye el árbol original desde el almacén para
// las tareas ya persistidas del árbol editado, junto con sus filas de
// programación vigentes.
func (m *Motor) instantaneaDesdeAlmacen(editado []PoaEdicion) ([]PoaEdicion, map[uint][]models.ProgramacionMensual, error) {
	original := ClonarPoas(editado)
	existentes := make(map[uint][]models.ProgramacionMensual)

	for pi := range original {
		for ai := range original[pi].Actividades {
			act := &original[pi].Actividades[ai]
			for ti := range act.Tareas {
				t := &act.Tareas[ti]
				if t.TareaID == 0 {
					continue
				}
				almacenada, err := m.almacen.ObtenerTarea(t.TareaID)
				if err != nil {
					return nil, nil, err
				}
				filas, err := m.almacen.ProgramacionPorTarea(t.TareaID)
				if err != nil {
					return nil, nil, err
				}
				existentes[t.TareaID] = filas

				t.Cantidad = almacenada.Cantidad
				t.PrecioUnitario = almacenada.PrecioUnitario
				t.Total = almacenada.Total
				t.SaldoDisponible = almacenada.SaldoDisponible
				t.LineaPaiViiv = almacenada.LineaPaiViiv
				t.GastosMensuales = [12]float64{}
				for _, fila := range filas {
					if idx := IndiceMes(fila.Mes); idx >= 0 {
						t.GastosMensuales[idx] = fila.Valor
					}
				}
			}
		}
	}
	return original, existentes, nil
}

func resultadoInvalido(t TareaEdicion, poa PoaEdicion, err error) ResultadoGuardado {
	return ResultadoGuardado{
		Error:       fmt.Sprintf("la tarea %q del POA %s no se puede guardar: %v", t.Nombre, poa.CodigoPoa, err),
		PoaConError: poa.CodigoPoa,
	}
}

func tieneTareasSeleccionadas(tareas []TareaEdicion) bool {
	for _, t := range tareas {
		if t.Cantidad > 0 {
			return true
		}
	}
	return false
}

func totalTareasSeleccionadas(tareas []TareaEdicion) float64 {
	total := 0.0
	for _, t := range tareas {
		if t.Cantidad > 0 {
			total += t.Total
		}
	}
	return total
}

// traducirError convierte los errores conocidos del almacén en mensajes para
// el usuario; el resto pasa con su mensaje original.
func traducirError(err error) string {
	switch {
	case errors.Is(err, ErrProgramacionDuplicada):
		return ErrProgramacionDuplicada.Error()
	case errors.Is(err, ErrTareaNoEncontrada):
		return ErrTareaNoEncontrada.Error()
	case errors.Is(err, ErrItemNoAsociado):
		return ErrItemNoAsociado.Error()
	default:
		return err.Error()
	}
}
